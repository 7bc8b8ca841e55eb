package api

import (
	"encoding/json"
	"fmt"
)

// ItemInfo is the list item metadata shape returned by the service.
type ItemInfo struct {
	ID                   int    `json:"Id"`
	GUID                 string `json:"GUID"`
	Title                string `json:"Title"`
	FileSystemObjectType int    `json:"FileSystemObjectType"`
	FileLeafRef          string `json:"FileLeafRef"`
	FileRef              string `json:"FileRef"`
}

// ItemResp is a single-item response payload.
type ItemResp []byte

// Data decodes the item metadata.
func (r ItemResp) Data() (*ItemInfo, error) {
	info := &ItemInfo{}
	if err := json.Unmarshal(r.Normalized(), info); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return info, nil
}

// Normalized returns the payload without the verbose OData envelope.
func (r ItemResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// ItemsResp is an item-collection response payload.
type ItemsResp []byte

// Data decodes the collection.
func (r ItemsResp) Data() ([]*ItemInfo, error) {
	var infos []*ItemInfo
	if err := json.Unmarshal(r.Normalized(), &infos); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return infos, nil
}

// Normalized returns the payload without the verbose OData envelope.
func (r ItemsResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// Items binds a list's item collection.
type Items struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewItems creates an item-collection binding.
func NewItems(client *HTTPClient, endpoint string, config *RequestConfig) *Items {
	return &Items{
		client:    client,
		endpoint:  endpoint,
		config:    config,
		modifiers: NewODataMods(),
	}
}

// ToURL returns the endpoint with OData modifiers applied.
func (items *Items) ToURL() string {
	return toURL(items.endpoint, items.modifiers)
}

// Conf sets the request config for chained calls.
func (items *Items) Conf(config *RequestConfig) *Items {
	items.config = config
	return items
}

// Select adds a $select modifier.
func (items *Items) Select(oDataSelect string) *Items {
	items.modifiers.Add("$select", trimMultiline(oDataSelect))
	return items
}

// Expand adds an $expand modifier.
func (items *Items) Expand(oDataExpand string) *Items {
	items.modifiers.Add("$expand", trimMultiline(oDataExpand))
	return items
}

// Filter adds a $filter modifier.
func (items *Items) Filter(oDataFilter string) *Items {
	items.modifiers.Add("$filter", trimMultiline(oDataFilter))
	return items
}

// Top adds a $top modifier. The service caps page sizes at 5000.
func (items *Items) Top(count int) *Items {
	items.modifiers.Add("$top", fmt.Sprintf("%d", count))
	return items
}

// OrderBy adds a $orderby modifier.
func (items *Items) OrderBy(oDataOrderBy string, ascending bool) *Items {
	direction := "asc"
	if !ascending {
		direction = "desc"
	}
	items.modifiers.Add("$orderby", fmt.Sprintf("%s %s", trimMultiline(oDataOrderBy), direction))
	return items
}

// Skiptoken adds a $skiptoken modifier for id-based paging.
func (items *Items) Skiptoken(token string) *Items {
	items.modifiers.Add("$skiptoken", token)
	return items
}

// Get retrieves the item collection.
func (items *Items) Get() (ItemsResp, error) {
	data, err := items.client.Get(items.ToURL(), items.config)
	if err != nil {
		return nil, err
	}
	return ItemsResp(data), nil
}

// GetByID binds a single item by its integer id. No request is issued.
func (items *Items) GetByID(itemID int) *Item {
	return NewItem(items.client, items.endpoint+fmt.Sprintf("(%d)", itemID), items.config)
}

// Add creates an item. entityType is the list's item entity type name
// (e.g. "SP.Data.DocumentsItem"); fields are merged into the metadata
// envelope.
func (items *Items) Add(entityType string, fields map[string]any) (ItemResp, error) {
	body, err := metadataBody(entityType, nil, fields)
	if err != nil {
		return nil, err
	}
	data, err := items.client.Post(items.endpoint, body, items.config)
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}
	return ItemResp(data), nil
}

// Item binds a single list item.
type Item struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewItem creates a single-item binding.
func NewItem(client *HTTPClient, endpoint string, config *RequestConfig) *Item {
	return &Item{
		client:    client,
		endpoint:  endpoint,
		config:    config,
		modifiers: NewODataMods(),
	}
}

// ToURL returns the endpoint with OData modifiers applied.
func (item *Item) ToURL() string {
	return toURL(item.endpoint, item.modifiers)
}

// Conf sets the request config for chained calls.
func (item *Item) Conf(config *RequestConfig) *Item {
	item.config = config
	return item
}

// Select adds a $select modifier.
func (item *Item) Select(oDataSelect string) *Item {
	item.modifiers.Add("$select", trimMultiline(oDataSelect))
	return item
}

// Expand adds an $expand modifier.
func (item *Item) Expand(oDataExpand string) *Item {
	item.modifiers.Add("$expand", trimMultiline(oDataExpand))
	return item
}

// Get retrieves the item.
func (item *Item) Get() (ItemResp, error) {
	data, err := item.client.Get(item.ToURL(), item.config)
	if err != nil {
		return nil, err
	}
	return ItemResp(data), nil
}

// Update applies a MERGE with the given fields, guarded by the IF-Match
// eTag ("" means "*").
func (item *Item) Update(entityType string, fields map[string]any, eTag string) (ItemResp, error) {
	body, err := metadataBody(entityType, nil, fields)
	if err != nil {
		return nil, err
	}
	data, err := item.client.Update(item.endpoint, body, eTag, item.config)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return ItemResp(data), nil
}

// Delete removes the item, guarded by the IF-Match eTag ("" means "*").
func (item *Item) Delete(eTag string) error {
	if _, err := item.client.Delete(item.endpoint, eTag, item.config); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// Recycle moves the item to the recycle bin.
func (item *Item) Recycle() (RecycleResp, error) {
	data, err := item.client.Post(appendPath(item.endpoint, "recycle"), nil, item.config)
	if err != nil {
		return nil, fmt.Errorf("recycle item: %w", err)
	}
	return RecycleResp(data), nil
}
