package api

import (
	"fmt"
	"strings"
)

// List binds one list, addressed either by title
// (".../lists/getByTitle('X')") or by id (".../lists('guid')"). The
// binding is a path descriptor only: no server state is cached, and
// operations that change list identity return a fresh binding rather
// than mutating the receiver.
type List struct {
	client    *HTTPClient
	endpoint  string
	parent    string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewList creates a binding at the given endpoint. Bindings resolved
// through Lists.GetByTitle/GetByID carry the collection endpoint as
// their parent; for directly constructed endpoints the parent defaults
// to the URL minus its final segment.
func NewList(client *HTTPClient, endpoint string, config *RequestConfig) *List {
	return &List{
		client:    client,
		endpoint:  endpoint,
		parent:    parentOf(endpoint),
		config:    config,
		modifiers: NewODataMods(),
	}
}

// ToURL returns the endpoint with OData modifiers applied.
func (list *List) ToURL() string {
	return toURL(list.endpoint, list.modifiers)
}

// Conf sets the request config for chained calls.
func (list *List) Conf(config *RequestConfig) *List {
	list.config = config
	return list
}

// Select adds a $select modifier.
func (list *List) Select(oDataSelect string) *List {
	list.modifiers.Add("$select", trimMultiline(oDataSelect))
	return list
}

// Expand adds an $expand modifier.
func (list *List) Expand(oDataExpand string) *List {
	list.modifiers.Add("$expand", trimMultiline(oDataExpand))
	return list
}

// Get retrieves the list metadata.
func (list *List) Get() (ListResp, error) {
	data, err := list.client.Get(list.ToURL(), list.config)
	if err != nil {
		return nil, err
	}
	return ListResp(data), nil
}

// childList clones a fresh descriptor for a child operation so the
// receiver is never touched.
func (list *List) childList(segment string) *List {
	child := NewList(list.client, appendPath(list.endpoint, segment), list.config)
	child.parent = list.endpoint
	return child
}

// Sub-resource accessors. Pure path composition, no network calls.

// Items binds the list's item collection.
func (list *List) Items() *Items {
	return NewItems(list.client, appendPath(list.endpoint, "items"), list.config)
}

// ContentTypes binds the list's content type collection.
func (list *List) ContentTypes() *ContentTypes {
	return NewContentTypes(list.client, appendPath(list.endpoint, "contenttypes"), list.config)
}

// Views binds the list's view collection.
func (list *List) Views() *Views {
	return NewViews(list.client, appendPath(list.endpoint, "views"), list.config)
}

// DefaultView binds the list's default view.
func (list *List) DefaultView() *View {
	return NewView(list.client, appendPath(list.endpoint, "defaultview"), list.config)
}

// GetView binds a view by id.
func (list *List) GetView(viewID string) *View {
	return NewView(list.client, appendPath(list.endpoint, fmt.Sprintf("getview('%s')", escapeParam(viewID))), list.config)
}

// Fields binds the list's field collection.
func (list *List) Fields() *Fields {
	return NewFields(list.client, appendPath(list.endpoint, "fields"), list.config)
}

// RelatedFields binds the lookup fields related to this list.
func (list *List) RelatedFields() *Fields {
	return NewFields(list.client, appendPath(list.endpoint, "getRelatedFields"), list.config)
}

// Forms binds the list's form collection.
func (list *List) Forms() *Forms {
	return NewForms(list.client, appendPath(list.endpoint, "forms"), list.config)
}

// UserCustomActions binds the list's custom action collection.
func (list *List) UserCustomActions() *UserCustomActions {
	return NewUserCustomActions(list.client, appendPath(list.endpoint, "usercustomactions"), list.config)
}

// EventReceivers binds the list's event receiver collection.
func (list *List) EventReceivers() *EventReceivers {
	return NewEventReceivers(list.client, appendPath(list.endpoint, "eventreceivers"), list.config)
}

// Subscriptions binds the list's webhook subscription collection.
func (list *List) Subscriptions() *Subscriptions {
	return NewSubscriptions(list.client, appendPath(list.endpoint, "subscriptions"), list.config)
}

// InformationRightsManagementSettings binds the list's IRM settings.
func (list *List) InformationRightsManagementSettings() *IRMSettings {
	return NewIRMSettings(list.client, appendPath(list.endpoint, "informationrightsmanagementsettings"), list.config)
}

// EffectiveBasePermissions binds the caller's effective permissions on
// the list.
func (list *List) EffectiveBasePermissions() *BasePermissions {
	return NewBasePermissions(list.client, appendPath(list.endpoint, "effectivebasepermissions"), list.config)
}

// Update applies a MERGE with the given properties, guarded by the
// IF-Match eTag ("" means "*"). When the properties rename the list,
// the returned reference is re-rooted at getByTitle('<new title>')
// under the same parent URL the original binding had, so identity stays
// correct after the rename; otherwise the receiver is returned.
func (list *List) Update(properties map[string]any, eTag string) (*ListUpdateResult, error) {
	body, err := metadataBody("SP.List", nil, properties)
	if err != nil {
		return nil, err
	}

	data, err := list.client.Update(list.endpoint, body, eTag, list.config)
	if err != nil {
		return nil, fmt.Errorf("update list: %w", err)
	}

	updated := list
	if title, ok := properties["Title"].(string); ok {
		updated = NewList(list.client, appendPath(list.parent, byTitleSegment(title)), list.config)
		updated.parent = list.parent
	}

	return &ListUpdateResult{Data: ListResp(data), List: updated}, nil
}

// Delete removes the list, guarded by the IF-Match eTag ("" means "*").
func (list *List) Delete(eTag string) error {
	if _, err := list.client.Delete(list.endpoint, eTag, list.config); err != nil {
		return fmt.Errorf("delete list: %w", err)
	}
	return nil
}

// GetChanges queries the list's change log. The request is issued
// against a fresh child descriptor, so the receiver keeps its identity.
func (list *List) GetChanges(query *ChangeQuery) (ChangesResp, error) {
	body, err := queryBody("SP.ChangeQuery", query)
	if err != nil {
		return nil, err
	}
	child := list.childList("getchanges")
	data, err := list.client.Post(child.endpoint, body, list.config)
	if err != nil {
		return nil, fmt.Errorf("get changes: %w", err)
	}
	return ChangesResp(data), nil
}

// GetItemsByCAMLQuery runs a CAML query against the list's items. The
// supplied field names become a single comma-joined OData $expand on
// the request; a modifier set holds one value per key, so the fields
// must be joined rather than added one by one.
func (list *List) GetItemsByCAMLQuery(query *CamlQuery, expands ...string) (ItemsResp, error) {
	body, err := queryBody("SP.CamlQuery", query)
	if err != nil {
		return nil, err
	}

	child := list.childList("getitems")
	if len(expands) > 0 {
		child.Expand(strings.Join(expands, ","))
	}

	data, err := list.client.Post(child.ToURL(), body, list.config)
	if err != nil {
		return nil, fmt.Errorf("get items by caml query: %w", err)
	}
	return ItemsResp(data), nil
}

// GetListItemChangesSinceToken queries the legacy change-log endpoint.
// Unlike every other operation the response body is an XML document and
// is returned as raw text, never JSON-parsed.
func (list *List) GetListItemChangesSinceToken(query *ChangeLogItemQuery) (string, error) {
	body, err := queryBody("SP.ChangeLogItemQuery", query)
	if err != nil {
		return "", err
	}
	child := list.childList("getlistitemchangessincetoken")
	text, err := list.client.PostText(child.endpoint, body, list.config)
	if err != nil {
		return "", fmt.Errorf("get list item changes since token: %w", err)
	}
	return text, nil
}

// Recycle moves the list to the recycle bin. The response wraps the new
// Recycle Bin item identifier; see RecycleResp.
func (list *List) Recycle() (RecycleResp, error) {
	child := list.childList("recycle")
	data, err := list.client.Post(child.endpoint, nil, list.config)
	if err != nil {
		return nil, fmt.Errorf("recycle list: %w", err)
	}
	return RecycleResp(data), nil
}

// RenderListData renders list rows for the given CAML view XML, passed
// as the @viewXml query parameter. See RenderListDataResp for the
// double-decode contract.
func (list *List) RenderListData(viewXML string) (RenderListDataResp, error) {
	child := list.childList("renderlistdata(@viewXml)")
	child.modifiers.Add("@viewXml", "'"+escapeParam(viewXML)+"'")
	data, err := list.client.Post(child.ToURL(), nil, list.config)
	if err != nil {
		return nil, fmt.Errorf("render list data: %w", err)
	}
	return RenderListDataResp(data), nil
}

// RenderListFormData renders the form data for an item in the given
// form and mode. See RenderListFormDataResp for the double-decode
// contract.
func (list *List) RenderListFormData(itemID int, formID string, mode int) (RenderListFormDataResp, error) {
	segment := fmt.Sprintf("renderlistformdata(itemid=%d, formid='%s', mode='%d')", itemID, escapeParam(formID), mode)
	child := list.childList(segment)
	data, err := list.client.Post(child.endpoint, nil, list.config)
	if err != nil {
		return nil, fmt.Errorf("render list form data: %w", err)
	}
	return RenderListFormDataResp(data), nil
}

// ReserveListItemID reserves the next item id on the list without
// creating an item.
func (list *List) ReserveListItemID() (ReserveListItemIDResp, error) {
	child := list.childList("reservelistitemid")
	data, err := list.client.Post(child.endpoint, nil, list.config)
	if err != nil {
		return nil, fmt.Errorf("reserve list item id: %w", err)
	}
	return ReserveListItemIDResp(data), nil
}
