package api

import (
	"encoding/json"
	"fmt"
)

// ViewInfo is the view metadata shape returned by the service.
type ViewInfo struct {
	ID                string `json:"Id"`
	Title             string `json:"Title"`
	DefaultView       bool   `json:"DefaultView"`
	Hidden            bool   `json:"Hidden"`
	PersonalView      bool   `json:"PersonalView"`
	RowLimit          int    `json:"RowLimit"`
	ServerRelativeURL string `json:"ServerRelativeUrl"`
	ViewQuery         string `json:"ViewQuery"`
}

// ViewResp is a single-view response payload.
type ViewResp []byte

// Data decodes the view metadata.
func (r ViewResp) Data() (*ViewInfo, error) {
	info := &ViewInfo{}
	if err := json.Unmarshal(NormalizeODataJSON(r), info); err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	return info, nil
}

// ViewsResp is a view-collection response payload.
type ViewsResp []byte

// Data decodes the collection.
func (r ViewsResp) Data() ([]*ViewInfo, error) {
	var infos []*ViewInfo
	if err := json.Unmarshal(NormalizeODataJSON(r), &infos); err != nil {
		return nil, fmt.Errorf("decode views: %w", err)
	}
	return infos, nil
}

// Views binds a list's view collection.
type Views struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewViews creates a view-collection binding.
func NewViews(client *HTTPClient, endpoint string, config *RequestConfig) *Views {
	return &Views{client: client, endpoint: endpoint, config: config, modifiers: NewODataMods()}
}

// ToURL returns the endpoint with OData modifiers applied.
func (views *Views) ToURL() string {
	return toURL(views.endpoint, views.modifiers)
}

// Conf sets the request config for chained calls.
func (views *Views) Conf(config *RequestConfig) *Views {
	views.config = config
	return views
}

// Select adds a $select modifier.
func (views *Views) Select(oDataSelect string) *Views {
	views.modifiers.Add("$select", trimMultiline(oDataSelect))
	return views
}

// Get retrieves the view collection.
func (views *Views) Get() (ViewsResp, error) {
	data, err := views.client.Get(views.ToURL(), views.config)
	if err != nil {
		return nil, err
	}
	return ViewsResp(data), nil
}

// GetByID binds a view by id.
func (views *Views) GetByID(viewID string) *View {
	return NewView(views.client, views.endpoint+byIDSegment(viewID), views.config)
}

// GetByTitle binds a view by title.
func (views *Views) GetByTitle(title string) *View {
	return NewView(views.client, appendPath(views.endpoint, byTitleSegment(title)), views.config)
}

// View binds a single view.
type View struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewView creates a single-view binding.
func NewView(client *HTTPClient, endpoint string, config *RequestConfig) *View {
	return &View{client: client, endpoint: endpoint, config: config, modifiers: NewODataMods()}
}

// ToURL returns the endpoint with OData modifiers applied.
func (view *View) ToURL() string {
	return toURL(view.endpoint, view.modifiers)
}

// Conf sets the request config for chained calls.
func (view *View) Conf(config *RequestConfig) *View {
	view.config = config
	return view
}

// Get retrieves the view metadata.
func (view *View) Get() (ViewResp, error) {
	data, err := view.client.Get(view.ToURL(), view.config)
	if err != nil {
		return nil, err
	}
	return ViewResp(data), nil
}
