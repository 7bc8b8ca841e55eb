package api

import "strings"

// SP is the root binding for a site. Mirrors the call shape the rest of
// the codebase uses: sp.Web().Lists().GetByTitle("Documents").
type SP struct {
	client  *HTTPClient
	siteURL string
	config  *RequestConfig
}

// NewSP creates a root binding for the given site URL.
func NewSP(client Client, siteURL string) *SP {
	return &SP{
		client:  NewHTTPClient(client),
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

// Conf sets the request config inherited by bindings resolved through
// this root.
func (sp *SP) Conf(config *RequestConfig) *SP {
	sp.config = config
	return sp
}

// Web binds the site's root web.
func (sp *SP) Web() *Web {
	return NewWeb(sp.client, sp.siteURL+"/_api/web", sp.config)
}

// ToURL returns the site URL.
func (sp *SP) ToURL() string {
	return sp.siteURL
}
