package api

import "fmt"

// Subscriptions binds a list's webhook subscription collection.
type Subscriptions struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewSubscriptions creates a subscription-collection binding.
func NewSubscriptions(client *HTTPClient, endpoint string, config *RequestConfig) *Subscriptions {
	return &Subscriptions{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (subs *Subscriptions) ToURL() string {
	return subs.endpoint
}

// Conf sets the request config for chained calls.
func (subs *Subscriptions) Conf(config *RequestConfig) *Subscriptions {
	subs.config = config
	return subs
}

// Get retrieves the subscription collection.
func (subs *Subscriptions) Get() ([]byte, error) {
	return subs.client.Get(subs.endpoint, subs.config)
}

// GetByID retrieves a subscription by id.
func (subs *Subscriptions) GetByID(subscriptionID string) ([]byte, error) {
	return subs.client.Get(subs.endpoint+byIDSegment(subscriptionID), subs.config)
}

// Add registers a webhook subscription. expirationDateTime is an ISO
// timestamp no more than 180 days out; clientState is echoed back on
// notifications.
func (subs *Subscriptions) Add(notificationURL, expirationDateTime, clientState string) ([]byte, error) {
	fields := map[string]any{
		"notificationUrl":    notificationURL,
		"expirationDateTime": expirationDateTime,
		"resource":           parentOf(subs.endpoint),
	}
	if clientState != "" {
		fields["clientState"] = clientState
	}
	body, err := metadataBody("Microsoft.SharePoint.Webhooks.Subscription", nil, fields)
	if err != nil {
		return nil, err
	}
	data, err := subs.client.Post(subs.endpoint, body, subs.config)
	if err != nil {
		return nil, fmt.Errorf("add subscription: %w", err)
	}
	return data, nil
}
