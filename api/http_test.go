package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splists/api"
	"splists/test/fakesp"
)

func newTestSP(s *fakesp.Server) *api.SP {
	return api.NewSP(&fakesp.Client{HTTPClient: s.Server.Client()}, s.URL)
}

func TestNormalizeODataJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "verbose_object",
			payload:  `{"d":{"Id":"abc","Title":"Docs"}}`,
			expected: `{"Id":"abc","Title":"Docs"}`,
		},
		{
			name:     "verbose_collection",
			payload:  `{"d":{"results":[{"Id":"abc"}]}}`,
			expected: `[{"Id":"abc"}]`,
		},
		{
			name:     "minimal_passthrough",
			payload:  `{"Id":"abc"}`,
			expected: `{"Id":"abc"}`,
		},
		{
			name:     "array_passthrough",
			payload:  `[{"Id":"abc"}]`,
			expected: `[{"Id":"abc"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.expected, string(api.NormalizeODataJSON([]byte(tt.payload))))
		})
	}
}

func TestAPIErrorCarriesODataMessage(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	server.Handle(http.MethodGet, "/_api/web/lists/getByTitle('Missing')",
		http.StatusNotFound,
		`{"odata.error":{"message":{"value":"List 'Missing' does not exist"}}}`)

	_, err := newTestSP(server).Web().Lists().GetByTitle("Missing").Get()
	require.Error(t, err)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "does not exist")
}

func TestRequestHeaders(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodGet, "/_api/web/lists", http.StatusOK, `{"d":{"results":[]}}`)

	_, err := newTestSP(server).Web().Lists().Get()
	require.NoError(t, err)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "application/json;odata=verbose", req.Header.Get("Accept"))
}

func TestConfigHeadersOverrideDefaults(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodGet, "/_api/web/lists", http.StatusOK, `[]`)

	conf := &api.RequestConfig{
		Headers: map[string]string{"Accept": "application/json;odata=nometadata"},
	}
	_, err := newTestSP(server).Web().Lists().Conf(conf).Get()
	require.NoError(t, err)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "application/json;odata=nometadata", req.Header.Get("Accept"))
}
