package api

import (
	"errors"
	"fmt"
)

// ErrEnsureInBatch is returned when Ensure is invoked as part of a
// batched request sequence. Get-or-create needs two dependent round
// trips and cannot be expressed as a single batched operation, so the
// misuse is reported before any request is issued.
var ErrEnsureInBatch = errors.New("ensure requires sequential requests and cannot run inside a batch")

// Lists binds the list collection of a web.
type Lists struct {
	client    *HTTPClient
	endpoint  string
	config    *RequestConfig
	modifiers *ODataMods
}

// NewLists creates a collection binding at the given endpoint
// (typically "<site>/_api/web/lists").
func NewLists(client *HTTPClient, endpoint string, config *RequestConfig) *Lists {
	return &Lists{
		client:    client,
		endpoint:  endpoint,
		config:    config,
		modifiers: NewODataMods(),
	}
}

// ToURL returns the endpoint with OData modifiers applied.
func (lists *Lists) ToURL() string {
	return toURL(lists.endpoint, lists.modifiers)
}

// Conf sets the request config for chained calls.
func (lists *Lists) Conf(config *RequestConfig) *Lists {
	lists.config = config
	return lists
}

// Select adds a $select modifier.
func (lists *Lists) Select(oDataSelect string) *Lists {
	lists.modifiers.Add("$select", trimMultiline(oDataSelect))
	return lists
}

// Expand adds an $expand modifier.
func (lists *Lists) Expand(oDataExpand string) *Lists {
	lists.modifiers.Add("$expand", trimMultiline(oDataExpand))
	return lists
}

// Filter adds a $filter modifier.
func (lists *Lists) Filter(oDataFilter string) *Lists {
	lists.modifiers.Add("$filter", trimMultiline(oDataFilter))
	return lists
}

// Top adds a $top modifier.
func (lists *Lists) Top(count int) *Lists {
	lists.modifiers.Add("$top", fmt.Sprintf("%d", count))
	return lists
}

// OrderBy adds a $orderby modifier.
func (lists *Lists) OrderBy(oDataOrderBy string, ascending bool) *Lists {
	direction := "asc"
	if !ascending {
		direction = "desc"
	}
	lists.modifiers.Add("$orderby", fmt.Sprintf("%s %s", trimMultiline(oDataOrderBy), direction))
	return lists
}

// Get retrieves the collection.
func (lists *Lists) Get() (ListsResp, error) {
	data, err := lists.client.Get(lists.ToURL(), lists.config)
	if err != nil {
		return nil, err
	}
	return ListsResp(data), nil
}

// GetByTitle returns a binding for the list with the given title. No
// request is issued; an invalid title surfaces only server-side.
func (lists *Lists) GetByTitle(title string) *List {
	list := NewList(lists.client, appendPath(lists.endpoint, byTitleSegment(title)), lists.config)
	list.parent = lists.endpoint
	return list
}

// GetByID returns a binding for the list with the given GUID.
func (lists *Lists) GetByID(listID string) *List {
	list := NewList(lists.client, lists.endpoint+byIDSegment(listID), lists.config)
	list.parent = lists.endpoint
	return list
}

// ListAddOptions cover the optional create parameters. AdditionalSettings
// are merged over the built-in defaults and win on key collision.
type ListAddOptions struct {
	Description        string
	Template           int
	EnableContentTypes bool
	AdditionalSettings map[string]any
}

// Add creates a list with the given title. Template defaults to 100
// (generic list). The result's List reference is constructed from the
// requested title; reload through it to confirm server-side state.
func (lists *Lists) Add(title string, opts *ListAddOptions) (*ListAddResult, error) {
	if opts == nil {
		opts = &ListAddOptions{}
	}
	template := opts.Template
	if template == 0 {
		template = 100
	}

	defaults := map[string]any{
		"Title":               title,
		"Description":         opts.Description,
		"BaseTemplate":        template,
		"AllowContentTypes":   opts.EnableContentTypes,
		"ContentTypesEnabled": opts.EnableContentTypes,
	}
	body, err := metadataBody("SP.List", defaults, opts.AdditionalSettings)
	if err != nil {
		return nil, err
	}

	data, err := lists.client.Post(lists.endpoint, body, lists.config)
	if err != nil {
		return nil, fmt.Errorf("add list %q: %w", title, err)
	}

	return &ListAddResult{
		Data: ListResp(data),
		List: lists.GetByTitle(title),
	}, nil
}

// Ensure gets the list with the given title, creating it when it does
// not exist. The probing read and the conditional create are two
// dependent sequential round trips, so Ensure refuses to run inside a
// batch (ErrEnsureInBatch) before issuing anything.
func (lists *Lists) Ensure(title string, opts *ListAddOptions) (*ListEnsureResult, error) {
	if lists.config.hasBatch() {
		return nil, ErrEnsureInBatch
	}

	list := lists.GetByTitle(title)
	data, err := list.Get()
	if err == nil {
		return &ListEnsureResult{Data: data, List: list, Created: false}, nil
	}

	added, err := lists.Add(title, opts)
	if err != nil {
		return nil, fmt.Errorf("ensure list %q: %w", title, err)
	}
	return &ListEnsureResult{Data: added.Data, List: added.List, Created: true}, nil
}

// EnsureSiteAssetsLibrary gets or provisions the well-known Site Assets
// library through its provisioning endpoint. The response carries an
// OData identity URL; the returned binding is rooted directly at that
// identity, bypassing normal path composition.
func (lists *Lists) EnsureSiteAssetsLibrary() (*List, error) {
	return lists.ensureWellKnownLibrary("ensuresiteassetslibrary")
}

// EnsureSitePagesLibrary gets or provisions the well-known Site Pages
// library. Same identity contract as EnsureSiteAssetsLibrary.
func (lists *Lists) EnsureSitePagesLibrary() (*List, error) {
	return lists.ensureWellKnownLibrary("ensuresitepageslibrary")
}

func (lists *Lists) ensureWellKnownLibrary(operation string) (*List, error) {
	endpoint := appendPath(extractWebURL(lists.endpoint), "_api/web/"+operation)
	data, err := lists.client.Post(endpoint, nil, lists.config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	identity := odataID(data)
	if identity == "" {
		return nil, fmt.Errorf("%s: response carries no odata identity", operation)
	}
	return NewList(lists.client, identity, lists.config), nil
}
