package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"splists/logging"
)

// Client executes HTTP requests against a SharePoint site. The
// production implementation is *gosip.SPClient, which layers
// authentication and throttling retry underneath; tests use a plain
// http.Client-backed executor.
type Client interface {
	Execute(req *http.Request) (*http.Response, error)
}

// HTTPClient provides the REST verbs the bindings are built on. MERGE
// and DELETE are tunneled over POST with an X-HTTP-Method override so
// the calls survive proxies that only allow GET/POST.
type HTTPClient struct {
	client Client
	logger *logging.Logger
}

// NewHTTPClient wraps a transport client.
func NewHTTPClient(client Client) *HTTPClient {
	return &HTTPClient{
		client: client,
		logger: logging.Default().WithComponent("sp_http"),
	}
}

// APIError is an HTTP-level failure from the service, carrying the
// status code and the message extracted from the OData error payload.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sharepoint api: %d %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("sharepoint api: %d %s", e.StatusCode, e.Endpoint)
}

// Get issues a GET and returns the response body.
func (c *HTTPClient) Get(endpoint string, conf *RequestConfig) ([]byte, error) {
	return c.do(http.MethodGet, endpoint, nil, nil, conf)
}

// Post issues a POST with a JSON body and returns the response body.
func (c *HTTPClient) Post(endpoint string, body []byte, conf *RequestConfig) ([]byte, error) {
	return c.do(http.MethodPost, endpoint, body, nil, conf)
}

// PostText issues a POST and returns the raw response body as text
// without any JSON handling. Used for operations whose response is an
// XML document rather than JSON.
func (c *HTTPClient) PostText(endpoint string, body []byte, conf *RequestConfig) (string, error) {
	data, err := c.do(http.MethodPost, endpoint, body, nil, conf)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Update issues a MERGE (POST + X-HTTP-Method override) guarded by an
// IF-Match eTag.
func (c *HTTPClient) Update(endpoint string, body []byte, eTag string, conf *RequestConfig) ([]byte, error) {
	return c.do(http.MethodPost, endpoint, body, mergeHeaders("MERGE", eTag), conf)
}

// Delete issues a DELETE (POST + X-HTTP-Method override) guarded by an
// IF-Match eTag.
func (c *HTTPClient) Delete(endpoint string, eTag string, conf *RequestConfig) ([]byte, error) {
	return c.do(http.MethodPost, endpoint, nil, mergeHeaders("DELETE", eTag), conf)
}

func mergeHeaders(methodOverride, eTag string) map[string]string {
	if eTag == "" {
		eTag = "*"
	}
	return map[string]string{
		"X-HTTP-Method": methodOverride,
		"IF-Match":      eTag,
	}
}

func (c *HTTPClient) do(method, endpoint string, body []byte, headers map[string]string, conf *RequestConfig) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(conf.context(), method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json;odata=verbose")
	if body != nil {
		req.Header.Set("Content-Type", "application/json;odata=verbose;charset=utf-8")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if conf != nil {
		for k, v := range conf.Headers {
			req.Header.Set(k, v)
		}
	}

	c.logger.API("Request", "method", method, "endpoint", endpoint)

	resp, err := c.client.Execute(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    extractODataError(data),
		}
	}

	return data, nil
}

// NormalizeODataJSON strips the verbose OData envelope when present:
// {"d":{"results":[...]}} and {"d":{...}} unwrap to their inner value,
// everything else passes through unchanged.
func NormalizeODataJSON(data []byte) []byte {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return data
	}
	inner, ok := envelope["d"]
	if !ok {
		return data
	}
	var d map[string]json.RawMessage
	if err := json.Unmarshal(inner, &d); err != nil {
		return inner
	}
	if results, ok := d["results"]; ok {
		return results
	}
	return inner
}

// extractODataError pulls the human-readable message out of the error
// payload, tolerating both verbose and minimal shapes.
func extractODataError(data []byte) string {
	var verbose struct {
		Error struct {
			Message struct {
				Value string `json:"value"`
			} `json:"message"`
		} `json:"odata.error"`
	}
	if err := json.Unmarshal(data, &verbose); err == nil && verbose.Error.Message.Value != "" {
		return verbose.Error.Message.Value
	}

	var minimal struct {
		Error struct {
			Message json.RawMessage `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &minimal); err == nil && len(minimal.Error.Message) > 0 {
		var text string
		if err := json.Unmarshal(minimal.Error.Message, &text); err == nil {
			return text
		}
		var wrapped struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(minimal.Error.Message, &wrapped); err == nil {
			return wrapped.Value
		}
	}

	return ""
}
