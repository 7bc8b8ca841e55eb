package api

import (
	"encoding/json"
	"fmt"
)

// FieldInfo is the field metadata shape returned by the service.
type FieldInfo struct {
	ID            string `json:"Id"`
	Title         string `json:"Title"`
	InternalName  string `json:"InternalName"`
	TypeAsString  string `json:"TypeAsString"`
	Hidden        bool   `json:"Hidden"`
	ReadOnlyField bool   `json:"ReadOnlyField"`
	Required      bool   `json:"Required"`
}

// FieldResp is a single-field response payload.
type FieldResp []byte

// Data decodes the field metadata.
func (r FieldResp) Data() (*FieldInfo, error) {
	info := &FieldInfo{}
	if err := json.Unmarshal(NormalizeODataJSON(r), info); err != nil {
		return nil, fmt.Errorf("decode field: %w", err)
	}
	return info, nil
}

// FieldsResp is a field-collection response payload.
type FieldsResp []byte

// Data decodes the collection.
func (r FieldsResp) Data() ([]*FieldInfo, error) {
	var infos []*FieldInfo
	if err := json.Unmarshal(NormalizeODataJSON(r), &infos); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return infos, nil
}

// Fields binds a list's field collection. The same binding shape serves
// getRelatedFields, which returns lookup fields pointing at the list.
type Fields struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewFields creates a field-collection binding.
func NewFields(client *HTTPClient, endpoint string, config *RequestConfig) *Fields {
	return &Fields{client: client, endpoint: endpoint, config: config, modifiers: NewODataMods()}
}

// ToURL returns the endpoint with OData modifiers applied.
func (fields *Fields) ToURL() string {
	return toURL(fields.endpoint, fields.modifiers)
}

// Conf sets the request config for chained calls.
func (fields *Fields) Conf(config *RequestConfig) *Fields {
	fields.config = config
	return fields
}

// Select adds a $select modifier.
func (fields *Fields) Select(oDataSelect string) *Fields {
	fields.modifiers.Add("$select", trimMultiline(oDataSelect))
	return fields
}

// Filter adds a $filter modifier.
func (fields *Fields) Filter(oDataFilter string) *Fields {
	fields.modifiers.Add("$filter", trimMultiline(oDataFilter))
	return fields
}

// Get retrieves the field collection.
func (fields *Fields) Get() (FieldsResp, error) {
	data, err := fields.client.Get(fields.ToURL(), fields.config)
	if err != nil {
		return nil, err
	}
	return FieldsResp(data), nil
}

// GetByInternalNameOrTitle retrieves a field by internal name or title.
func (fields *Fields) GetByInternalNameOrTitle(name string) (FieldResp, error) {
	endpoint := appendPath(fields.endpoint, fmt.Sprintf("getByInternalNameOrTitle('%s')", escapeParam(name)))
	data, err := fields.client.Get(endpoint, fields.config)
	if err != nil {
		return nil, err
	}
	return FieldResp(data), nil
}
