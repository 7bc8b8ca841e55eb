package api

import (
	"encoding/json"
	"fmt"
)

// ContentTypeInfo is the content type metadata shape returned by the
// service. StringID carries the full content type id
// (e.g. "0x0101...").
type ContentTypeInfo struct {
	StringID    string `json:"StringId"`
	Name        string `json:"Name"`
	Description string `json:"Description"`
	Group       string `json:"Group"`
	Hidden      bool   `json:"Hidden"`
	ReadOnly    bool   `json:"ReadOnly"`
	Sealed      bool   `json:"Sealed"`
}

// ContentTypesResp is a content-type-collection response payload.
type ContentTypesResp []byte

// Data decodes the collection.
func (r ContentTypesResp) Data() ([]*ContentTypeInfo, error) {
	var infos []*ContentTypeInfo
	if err := json.Unmarshal(NormalizeODataJSON(r), &infos); err != nil {
		return nil, fmt.Errorf("decode content types: %w", err)
	}
	return infos, nil
}

// ContentTypes binds a list's content type collection.
type ContentTypes struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewContentTypes creates a content-type-collection binding.
func NewContentTypes(client *HTTPClient, endpoint string, config *RequestConfig) *ContentTypes {
	return &ContentTypes{client: client, endpoint: endpoint, config: config, modifiers: NewODataMods()}
}

// ToURL returns the endpoint with OData modifiers applied.
func (cts *ContentTypes) ToURL() string {
	return toURL(cts.endpoint, cts.modifiers)
}

// Conf sets the request config for chained calls.
func (cts *ContentTypes) Conf(config *RequestConfig) *ContentTypes {
	cts.config = config
	return cts
}

// Select adds a $select modifier.
func (cts *ContentTypes) Select(oDataSelect string) *ContentTypes {
	cts.modifiers.Add("$select", trimMultiline(oDataSelect))
	return cts
}

// Get retrieves the content type collection.
func (cts *ContentTypes) Get() (ContentTypesResp, error) {
	data, err := cts.client.Get(cts.ToURL(), cts.config)
	if err != nil {
		return nil, err
	}
	return ContentTypesResp(data), nil
}

// GetByID retrieves a content type by its string id.
func (cts *ContentTypes) GetByID(contentTypeID string) ([]byte, error) {
	endpoint := appendPath(cts.endpoint, fmt.Sprintf("getById('%s')", escapeParam(contentTypeID)))
	return cts.client.Get(endpoint, cts.config)
}
