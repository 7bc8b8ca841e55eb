package api

import (
	"encoding/json"
	"fmt"
)

// WebInfo is the web metadata shape returned by the service.
type WebInfo struct {
	ID          string `json:"Id"`
	Title       string `json:"Title"`
	URL         string `json:"Url"`
	WebTemplate string `json:"WebTemplate"`
}

// WebResp is a web response payload.
type WebResp []byte

// Data decodes the web metadata.
func (r WebResp) Data() (*WebInfo, error) {
	info := &WebInfo{}
	if err := json.Unmarshal(NormalizeODataJSON(r), info); err != nil {
		return nil, fmt.Errorf("decode web: %w", err)
	}
	return info, nil
}

// Normalized returns the payload without the verbose OData envelope.
func (r WebResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// Web binds a site's web resource.
type Web struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewWeb creates a web binding.
func NewWeb(client *HTTPClient, endpoint string, config *RequestConfig) *Web {
	return &Web{
		client:    client,
		endpoint:  endpoint,
		config:    config,
		modifiers: NewODataMods(),
	}
}

// ToURL returns the endpoint with OData modifiers applied.
func (web *Web) ToURL() string {
	return toURL(web.endpoint, web.modifiers)
}

// Conf sets the request config for chained calls.
func (web *Web) Conf(config *RequestConfig) *Web {
	web.config = config
	return web
}

// Select adds a $select modifier.
func (web *Web) Select(oDataSelect string) *Web {
	web.modifiers.Add("$select", trimMultiline(oDataSelect))
	return web
}

// Expand adds an $expand modifier.
func (web *Web) Expand(oDataExpand string) *Web {
	web.modifiers.Add("$expand", trimMultiline(oDataExpand))
	return web
}

// Get retrieves the web metadata.
func (web *Web) Get() (WebResp, error) {
	data, err := web.client.Get(web.ToURL(), web.config)
	if err != nil {
		return nil, err
	}
	return WebResp(data), nil
}

// Lists binds the web's list collection.
func (web *Web) Lists() *Lists {
	return NewLists(web.client, appendPath(web.endpoint, "lists"), web.config)
}
