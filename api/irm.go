package api

// IRMSettings binds a list's information rights management settings.
type IRMSettings struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewIRMSettings creates an IRM settings binding.
func NewIRMSettings(client *HTTPClient, endpoint string, config *RequestConfig) *IRMSettings {
	return &IRMSettings{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (irm *IRMSettings) ToURL() string {
	return irm.endpoint
}

// Conf sets the request config for chained calls.
func (irm *IRMSettings) Conf(config *RequestConfig) *IRMSettings {
	irm.config = config
	return irm
}

// Get retrieves the IRM settings.
func (irm *IRMSettings) Get() ([]byte, error) {
	return irm.client.Get(irm.endpoint, irm.config)
}
