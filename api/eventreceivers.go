package api

// EventReceivers binds a list's event receiver collection.
type EventReceivers struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewEventReceivers creates an event-receiver-collection binding.
func NewEventReceivers(client *HTTPClient, endpoint string, config *RequestConfig) *EventReceivers {
	return &EventReceivers{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (receivers *EventReceivers) ToURL() string {
	return receivers.endpoint
}

// Conf sets the request config for chained calls.
func (receivers *EventReceivers) Conf(config *RequestConfig) *EventReceivers {
	receivers.config = config
	return receivers
}

// Get retrieves the event receiver collection.
func (receivers *EventReceivers) Get() ([]byte, error) {
	return receivers.client.Get(receivers.endpoint, receivers.config)
}

// GetByID retrieves an event receiver by id.
func (receivers *EventReceivers) GetByID(receiverID string) ([]byte, error) {
	return receivers.client.Get(receivers.endpoint+byIDSegment(receiverID), receivers.config)
}
