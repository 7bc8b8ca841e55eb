package api

// UserCustomActions binds a list's custom action collection.
type UserCustomActions struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewUserCustomActions creates a custom-action-collection binding.
func NewUserCustomActions(client *HTTPClient, endpoint string, config *RequestConfig) *UserCustomActions {
	return &UserCustomActions{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (actions *UserCustomActions) ToURL() string {
	return actions.endpoint
}

// Conf sets the request config for chained calls.
func (actions *UserCustomActions) Conf(config *RequestConfig) *UserCustomActions {
	actions.config = config
	return actions
}

// Get retrieves the custom action collection.
func (actions *UserCustomActions) Get() ([]byte, error) {
	return actions.client.Get(actions.endpoint, actions.config)
}

// GetByID retrieves a custom action by id.
func (actions *UserCustomActions) GetByID(actionID string) ([]byte, error) {
	return actions.client.Get(actions.endpoint+byIDSegment(actionID), actions.config)
}
