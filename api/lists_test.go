package api_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splists/api"
	"splists/test/fakesp"
)

func TestGetByTitleComposesPathWithoutNetworkCall(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	list := newTestSP(server).Web().Lists().GetByTitle("Team Docs")

	assert.True(t, strings.HasSuffix(list.ToURL(), "/_api/web/lists/getByTitle('Team Docs')"))
	assert.Empty(t, server.Requests(), "path composition must not issue requests")
}

func TestGetByIDComposesSuffixWithoutSeparator(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	list := newTestSP(server).Web().Lists().GetByID("f0000000-0000-0000-0000-00000000000f")

	assert.True(t, strings.HasSuffix(list.ToURL(), "/_api/web/lists('f0000000-0000-0000-0000-00000000000f')"))
	assert.Empty(t, server.Requests())
}

func TestListsAddMergesDefaultsAndOverrides(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists", http.StatusCreated,
		`{"d":{"Id":"abc","Title":"Docs"}}`)

	// Arrange: override a default and supply an extra setting
	opts := &api.ListAddOptions{
		Description: "team documents",
		AdditionalSettings: map[string]any{
			"ContentTypesEnabled": true,
			"EnableVersioning":    true,
		},
	}

	// Act
	result, err := newTestSP(server).Web().Lists().Add("Docs", opts)
	require.NoError(t, err)

	// Assert: request body merges caller settings over defaults
	req := server.LastRequest()
	require.NotNil(t, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))

	assert.Equal(t, map[string]any{"type": "SP.List"}, body["__metadata"])
	assert.Equal(t, "Docs", body["Title"])
	assert.Equal(t, "team documents", body["Description"])
	assert.Equal(t, float64(100), body["BaseTemplate"]) // default template
	assert.Equal(t, false, body["AllowContentTypes"])   // default kept
	assert.Equal(t, true, body["ContentTypesEnabled"])  // caller override wins
	assert.Equal(t, true, body["EnableVersioning"])

	// The returned reference is built from the requested title
	assert.True(t, strings.HasSuffix(result.List.ToURL(), "/getByTitle('Docs')"))
}

func TestListsAddTemplateOverride(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists", http.StatusCreated, `{"d":{"Id":"abc"}}`)

	_, err := newTestSP(server).Web().Lists().Add("Pages", &api.ListAddOptions{Template: 101})
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(server.LastRequest().Body, &body))
	assert.Equal(t, float64(101), body["BaseTemplate"])
}

func TestEnsureRefusesBatchedConfig(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	conf := &api.RequestConfig{Batch: api.NewBatch()}
	_, err := newTestSP(server).Web().Lists().Conf(conf).Ensure("Docs", nil)

	require.ErrorIs(t, err, api.ErrEnsureInBatch)
	assert.Empty(t, server.Requests(), "the guard must fire before any request")
}

func TestEnsureExistingListDoesNotAdd(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodGet, "/_api/web/lists/getByTitle('Docs')", http.StatusOK,
		`{"d":{"Id":"abc","Title":"Docs"}}`)

	result, err := newTestSP(server).Web().Lists().Ensure("Docs", nil)
	require.NoError(t, err)

	assert.False(t, result.Created)
	info, err := result.Data.Data()
	require.NoError(t, err)
	assert.Equal(t, "Docs", info.Title)

	// Exactly one round trip, and it was the read
	reqs := server.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
}

func TestEnsureMissingListAddsOnce(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	// getByTitle is not registered: the probing read 404s
	server.Handle(http.MethodPost, "/_api/web/lists", http.StatusCreated,
		`{"d":{"Id":"abc","Title":"Docs"}}`)

	result, err := newTestSP(server).Web().Lists().Ensure("Docs", nil)
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.True(t, strings.HasSuffix(result.List.ToURL(), "/getByTitle('Docs')"))

	reqs := server.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, http.MethodPost, reqs[1].Method)
}

func TestEnsureSiteAssetsLibraryBindsODataIdentity(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/ensuresiteassetslibrary", http.StatusOK,
		`{"odata.id":"https://contoso/_api/Web/Lists(guid'11111111-1111-1111-1111-111111111111')"}`)

	list, err := newTestSP(server).Web().Lists().EnsureSiteAssetsLibrary()
	require.NoError(t, err)

	assert.Equal(t,
		"https://contoso/_api/Web/Lists(guid'11111111-1111-1111-1111-111111111111')",
		list.ToURL())
}

func TestEnsureSitePagesLibraryVerboseIdentity(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/ensuresitepageslibrary", http.StatusOK,
		`{"d":{"__metadata":{"id":"https://contoso/_api/Web/Lists(guid'22222222-2222-2222-2222-222222222222')"}}}`)

	list, err := newTestSP(server).Web().Lists().EnsureSitePagesLibrary()
	require.NoError(t, err)
	assert.Contains(t, list.ToURL(), "22222222-2222-2222-2222-222222222222")
}

func TestListsGetDecodesCollection(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodGet, "/_api/web/lists", http.StatusOK,
		`{"d":{"results":[{"Id":"a","Title":"Docs","BaseTemplate":101},{"Id":"b","Title":"Tasks","BaseTemplate":100}]}}`)

	resp, err := newTestSP(server).Web().Lists().Get()
	require.NoError(t, err)

	infos, err := resp.Data()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "Docs", infos[0].Title)
	assert.Equal(t, 101, infos[0].BaseTemplate)
}
