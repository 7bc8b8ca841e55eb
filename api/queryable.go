// Package api is a typed client binding over the SharePoint Lists REST
// surface. Bindings are cheap immutable path descriptors: sub-resource
// accessors compose URLs without touching the network, and mutating
// operations return fresh references instead of rewriting the receiver.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// RequestConfig carries per-request options shared by every binding:
// the request context, extra headers, and the batch group the request
// belongs to, if any.
type RequestConfig struct {
	Context context.Context
	Headers map[string]string
	Batch   *Batch
}

func (config *RequestConfig) context() context.Context {
	if config == nil || config.Context == nil {
		return context.Background()
	}
	return config.Context
}

func (config *RequestConfig) hasBatch() bool {
	return config != nil && config.Batch != nil
}

// ODataMods accumulates OData query string modifiers ($select, $expand,
// $filter, ...) plus service-specific parameters such as @viewXml.
type ODataMods struct {
	mods map[string]string
}

// NewODataMods creates an empty modifier set.
func NewODataMods() *ODataMods {
	return &ODataMods{mods: map[string]string{}}
}

// Add sets a raw modifier, replacing any previous value for the key.
func (mods *ODataMods) Add(key, value string) *ODataMods {
	mods.mods[key] = value
	return mods
}

// Get returns a copy of the accumulated modifiers.
func (mods *ODataMods) Get() map[string]string {
	out := make(map[string]string, len(mods.mods))
	for k, v := range mods.mods {
		out[k] = v
	}
	return out
}

func (mods *ODataMods) clone() *ODataMods {
	clone := NewODataMods()
	for k, v := range mods.mods {
		clone.mods[k] = v
	}
	return clone
}

// toURL renders an endpoint with its query string modifiers applied.
func toURL(endpoint string, mods *ODataMods) string {
	if mods == nil || len(mods.mods) == 0 {
		return endpoint
	}
	qs := url.Values{}
	for k, v := range mods.mods {
		qs.Set(k, v)
	}
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + qs.Encode()
}

// appendPath joins a child segment onto an endpoint.
func appendPath(endpoint, path string) string {
	return strings.TrimRight(endpoint, "/") + "/" + path
}

// byTitleSegment builds the getByTitle('...') child segment. Single
// quotes inside the title are doubled per the OData literal rules.
func byTitleSegment(title string) string {
	return fmt.Sprintf("getByTitle('%s')", escapeParam(title))
}

// byIDSegment builds the ('<guid>') suffix appended directly to the
// collection endpoint (no path separator).
func byIDSegment(listID string) string {
	return fmt.Sprintf("('%s')", escapeParam(listID))
}

func escapeParam(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// extractWebURL cuts an endpoint down to its web URL, e.g.
// "https://contoso/sites/a/_api/web/lists" -> "https://contoso/sites/a".
// Endpoints without an /_api marker are returned unchanged.
func extractWebURL(endpoint string) string {
	if i := strings.Index(strings.ToLower(endpoint), "/_api"); i >= 0 {
		return endpoint[:i]
	}
	return endpoint
}

// trimMultiline collapses a multiline field-selector constant into the
// single-line form the service expects.
func trimMultiline(selector string) string {
	parts := strings.Split(selector, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return strings.Join(parts, ",")
}

// parentOf derives a parent URL by dropping the final path segment.
// Bindings resolved through a collection record their parent explicitly;
// this is the fallback for directly constructed endpoints.
func parentOf(endpoint string) string {
	if i := strings.LastIndex(endpoint, "/"); i > 0 {
		return endpoint[:i]
	}
	return endpoint
}
