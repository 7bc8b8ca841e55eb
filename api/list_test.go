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

func TestListUpdateRenameRerootsAtOriginalParent(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Old')", http.StatusNoContent, nil)
	server.Handle(http.MethodPost, "/_api/web/lists('abc')", http.StatusNoContent, nil)

	lists := newTestSP(server).Web().Lists()

	tests := []struct {
		name string
		list *api.List
	}{
		{name: "looked_up_by_title", list: lists.GetByTitle("Old")},
		{name: "looked_up_by_id", list: lists.GetByID("abc")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.list.Update(map[string]any{"Title": "New"}, "")
			require.NoError(t, err)

			// Re-rooted under the same collection, regardless of lookup method
			assert.True(t, strings.HasSuffix(result.List.ToURL(), "/_api/web/lists/getByTitle('New')"))
			// The receiver keeps its original identity
			assert.NotEqual(t, result.List.ToURL(), tt.list.ToURL())
		})
	}
}

func TestListUpdateWithoutRenameReturnsReceiver(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')", http.StatusNoContent, nil)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	result, err := list.Update(map[string]any{"Description": "updated"}, "")
	require.NoError(t, err)

	assert.Equal(t, list.ToURL(), result.List.ToURL())

	// MERGE over POST with the wildcard eTag default
	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "MERGE", req.Header.Get("X-HTTP-Method"))
	assert.Equal(t, "*", req.Header.Get("IF-Match"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, map[string]any{"type": "SP.List"}, body["__metadata"])
	assert.Equal(t, "updated", body["Description"])
}

func TestListDeleteSendsOverrideHeaders(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')", http.StatusOK, nil)

	err := newTestSP(server).Web().Lists().GetByTitle("Docs").Delete(`"2"`)
	require.NoError(t, err)

	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "DELETE", req.Header.Get("X-HTTP-Method"))
	assert.Equal(t, `"2"`, req.Header.Get("IF-Match"))
}

func TestGetChangesWrapsQueryAndKeepsReceiver(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/getchanges", http.StatusOK,
		`{"d":{"results":[{"ChangeType":1}]}}`)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	before := list.ToURL()

	query := &api.ChangeQuery{
		Item: true,
		Add:  true,
		ChangeTokenStart: &api.ChangeToken{
			StringValue: "1;3;abc;636354547851600000;123",
		},
	}
	_, err := list.GetChanges(query)
	require.NoError(t, err)

	assert.Equal(t, before, list.ToURL(), "caller's binding must not be mutated")

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(server.LastRequest().Body, &body))
	q := body["query"]
	require.NotNil(t, q)
	assert.Equal(t, map[string]any{"type": "SP.ChangeQuery"}, q["__metadata"])
	assert.Equal(t, true, q["Item"])
	assert.Equal(t, true, q["Add"])
	assert.Equal(t,
		map[string]any{"StringValue": "1;3;abc;636354547851600000;123"},
		q["ChangeTokenStart"])
}

func TestGetItemsByCAMLQueryExpandsFields(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/getitems", http.StatusOK,
		`{"d":{"results":[{"Id":1,"Title":"first"}]}}`)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	query := &api.CamlQuery{ViewXML: "<View><RowLimit>10</RowLimit></View>"}

	resp, err := list.GetItemsByCAMLQuery(query, "FieldValuesAsText", "RoleAssignments")
	require.NoError(t, err)

	items, err := resp.Data()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)

	// Every supplied field must survive in a single comma-joined $expand.
	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Contains(t, req.RawQuery, "%24expand=FieldValuesAsText%2CRoleAssignments")

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &body))
	assert.Equal(t, map[string]any{"type": "SP.CamlQuery"}, body["query"]["__metadata"])
	assert.Equal(t, "<View><RowLimit>10</RowLimit></View>", body["query"]["ViewXml"])
}

func TestGetListItemChangesSinceTokenReturnsRawText(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	const changeLog = `<?xml version="1.0" encoding="utf-8"?><Changes><Id ChangeType="InvalidToken"/></Changes>`
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/getlistitemchangessincetoken",
		http.StatusOK, changeLog)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	text, err := list.GetListItemChangesSinceToken(&api.ChangeLogItemQuery{RowLimit: "100"})
	require.NoError(t, err)

	// Returned verbatim, never JSON-parsed
	assert.Equal(t, changeLog, text)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(server.LastRequest().Body, &body))
	assert.Equal(t, map[string]any{"type": "SP.ChangeLogItemQuery"}, body["query"]["__metadata"])
	assert.Equal(t, "100", body["query"]["RowLimit"])
}

func TestRecycleUnwrapsBinItemID(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "wrapped",
			payload:  `{"Recycle":"9ce483a0-05a6-4ddd-b811-0f7de79bcb7b"}`,
			expected: "9ce483a0-05a6-4ddd-b811-0f7de79bcb7b",
		},
		{
			name:     "verbose_wrapped",
			payload:  `{"d":{"Recycle":"9ce483a0-05a6-4ddd-b811-0f7de79bcb7b"}}`,
			expected: "9ce483a0-05a6-4ddd-b811-0f7de79bcb7b",
		},
		{
			name:     "wrapper_absent",
			payload:  `{"SomethingElse":"x"}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := fakesp.New()
			defer server.Close()
			server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/recycle",
				http.StatusOK, tt.payload)

			resp, err := newTestSP(server).Web().Lists().GetByTitle("Docs").Recycle()
			require.NoError(t, err)

			assert.Equal(t, tt.expected, resp.BinItemID())
			// Raw payload is preserved either way
			assert.JSONEq(t, tt.payload, string(resp))
		})
	}
}

func TestRenderListDataDoubleDecodes(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	// The wrapper property holds a JSON-encoded string
	payload := map[string]string{"RenderListData": `{"Row":[{"ID":"1"}],"FirstRow":1}`}
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/renderlistdata(@viewXml)",
		http.StatusOK, payload)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	resp, err := list.RenderListData("<View/>")
	require.NoError(t, err)

	data, err := resp.Data()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Row":[{"ID":"1"}],"FirstRow":1}`, string(data))

	// The view XML travels as a single-quoted query parameter
	req := server.LastRequest()
	require.NotNil(t, req)
	assert.Contains(t, req.RawQuery, "%40viewXml=%27%3CView%2F%3E%27")
}

func TestRenderListDataWrapperAbsentReturnsParsedObject(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/renderlistdata(@viewXml)",
		http.StatusOK, `{"Row":[],"FirstRow":0}`)

	resp, err := newTestSP(server).Web().Lists().GetByTitle("Docs").RenderListData("<View/>")
	require.NoError(t, err)

	data, err := resp.Data()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Row":[],"FirstRow":0}`, string(data))
}

func TestRenderListFormDataUnwrapsListData(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	payload := map[string]string{"ListData": `{"Title":"first item"}`}
	server.Handle(http.MethodPost,
		"/_api/web/lists/getByTitle('Docs')/renderlistformdata(itemid=1, formid='editform', mode='2')",
		http.StatusOK, payload)

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	resp, err := list.RenderListFormData(1, "editform", api.FormEdit)
	require.NoError(t, err)

	data, err := resp.Data()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Title":"first item"}`, string(data))
}

func TestReserveListItemID(t *testing.T) {
	server := fakesp.New()
	defer server.Close()
	server.Handle(http.MethodPost, "/_api/web/lists/getByTitle('Docs')/reservelistitemid",
		http.StatusOK, `{"d":{"ReserveListItemId":42}}`)

	resp, err := newTestSP(server).Web().Lists().GetByTitle("Docs").ReserveListItemID()
	require.NoError(t, err)
	assert.Equal(t, 42, resp.Value())
}

func TestSubResourceAccessorsComposePathsOnly(t *testing.T) {
	server := fakesp.New()
	defer server.Close()

	list := newTestSP(server).Web().Lists().GetByTitle("Docs")
	base := list.ToURL()

	assert.Equal(t, base+"/items", list.Items().ToURL())
	assert.Equal(t, base+"/contenttypes", list.ContentTypes().ToURL())
	assert.Equal(t, base+"/views", list.Views().ToURL())
	assert.Equal(t, base+"/defaultview", list.DefaultView().ToURL())
	assert.Equal(t, base+"/getview('v1')", list.GetView("v1").ToURL())
	assert.Equal(t, base+"/fields", list.Fields().ToURL())
	assert.Equal(t, base+"/getRelatedFields", list.RelatedFields().ToURL())
	assert.Equal(t, base+"/forms", list.Forms().ToURL())
	assert.Equal(t, base+"/usercustomactions", list.UserCustomActions().ToURL())
	assert.Equal(t, base+"/eventreceivers", list.EventReceivers().ToURL())
	assert.Equal(t, base+"/subscriptions", list.Subscriptions().ToURL())
	assert.Equal(t, base+"/informationrightsmanagementsettings",
		list.InformationRightsManagementSettings().ToURL())
	assert.Equal(t, base+"/effectivebasepermissions", list.EffectiveBasePermissions().ToURL())

	assert.Empty(t, server.Requests(), "accessors must not issue requests")
}
