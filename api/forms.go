package api

import (
	"encoding/json"
	"fmt"
)

// Form render modes accepted by renderlistformdata.
const (
	FormDisplay = 1
	FormEdit    = 2
	FormNew     = 3
)

// FormInfo is the form metadata shape returned by the service.
type FormInfo struct {
	ID                string `json:"Id"`
	FormType          int    `json:"FormType"`
	ServerRelativeURL string `json:"ServerRelativeUrl"`
}

// FormsResp is a form-collection response payload.
type FormsResp []byte

// Data decodes the collection.
func (r FormsResp) Data() ([]*FormInfo, error) {
	var infos []*FormInfo
	if err := json.Unmarshal(NormalizeODataJSON(r), &infos); err != nil {
		return nil, fmt.Errorf("decode forms: %w", err)
	}
	return infos, nil
}

// Forms binds a list's form collection.
type Forms struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewForms creates a form-collection binding.
func NewForms(client *HTTPClient, endpoint string, config *RequestConfig) *Forms {
	return &Forms{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (forms *Forms) ToURL() string {
	return forms.endpoint
}

// Conf sets the request config for chained calls.
func (forms *Forms) Conf(config *RequestConfig) *Forms {
	forms.config = config
	return forms
}

// Get retrieves the form collection.
func (forms *Forms) Get() (FormsResp, error) {
	data, err := forms.client.Get(forms.endpoint, forms.config)
	if err != nil {
		return nil, err
	}
	return FormsResp(data), nil
}

// GetByID retrieves a form by id.
func (forms *Forms) GetByID(formID string) ([]byte, error) {
	return forms.client.Get(forms.endpoint+byIDSegment(formID), forms.config)
}
