// Package fakesp runs an in-process fake of the SharePoint Lists REST
// surface for tests: canned responses keyed by method and path, with
// request capture for asserting what the bindings put on the wire.
package fakesp

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
)

// CapturedRequest records one request the fake served.
type CapturedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

type responder struct {
	status  int
	body    []byte
	handler http.HandlerFunc
}

// Server is the fake SharePoint endpoint.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	responders map[string]responder
	requests   []CapturedRequest
}

// New starts a fake server. Callers own shutdown via Close.
func New() *Server {
	s := &Server{responders: map[string]responder{}}

	logger := httplog.NewLogger("fakesp", httplog.Options{
		LogLevel: 8, // quiet during tests
		Concise:  true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.HandleFunc("/*", s.dispatch)

	s.Server = httptest.NewServer(r)
	return s
}

// Handle registers a canned JSON response for an exact method + path.
// A string body is sent verbatim; anything else is JSON-encoded.
func (s *Server) Handle(method, path string, status int, body any) {
	var raw []byte
	switch b := body.(type) {
	case nil:
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	default:
		raw, _ = json.Marshal(b)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[method+" "+path] = responder{status: status, body: raw}
}

// HandleFunc registers a custom handler for an exact method + path.
func (s *Server) HandleFunc(method, path string, handler http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[method+" "+path] = responder{handler: handler}
}

// Requests returns a snapshot of the captured requests in order.
func (s *Server) Requests() []CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CapturedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent captured request, or nil.
func (s *Server) LastRequest() *CapturedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	req := s.requests[len(s.requests)-1]
	return &req
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, CapturedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	resp, ok := s.responders[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"odata.error":{"message":{"value":"404 FILE NOT FOUND"}}}`))
		return
	}

	if resp.handler != nil {
		resp.handler(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}

// Client is a plain transport executor for tests, satisfying the
// bindings' Client interface without any auth layer.
type Client struct {
	HTTPClient *http.Client
}

// Execute performs the request with the underlying HTTP client.
func (c *Client) Execute(req *http.Request) (*http.Response, error) {
	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return hc.Do(req)
}
