package api

import (
	"encoding/json"
	"fmt"
)

// ChangeToken identifies a position in a list or web change log.
type ChangeToken struct {
	StringValue string `json:"StringValue"`
}

// ChangeQuery selects which change-log entries GetChanges returns.
type ChangeQuery struct {
	ChangeTokenStart *ChangeToken `json:"ChangeTokenStart,omitempty"`
	ChangeTokenEnd   *ChangeToken `json:"ChangeTokenEnd,omitempty"`

	Add            bool `json:"Add,omitempty"`
	Update         bool `json:"Update,omitempty"`
	DeleteObject   bool `json:"DeleteObject,omitempty"`
	Restore        bool `json:"Restore,omitempty"`
	Move           bool `json:"Move,omitempty"`
	Rename         bool `json:"Rename,omitempty"`
	Item           bool `json:"Item,omitempty"`
	List           bool `json:"List,omitempty"`
	File           bool `json:"File,omitempty"`
	Folder         bool `json:"Folder,omitempty"`
	Field          bool `json:"Field,omitempty"`
	ContentType    bool `json:"ContentType,omitempty"`
	SecurityPolicy bool `json:"SecurityPolicy,omitempty"`
}

// CamlQuery carries a CAML view for getitems.
type CamlQuery struct {
	ViewXML                 string `json:"ViewXml"`
	FolderServerRelativeURL string `json:"FolderServerRelativeUrl,omitempty"`
	AllowIncrementalResults bool   `json:"AllowIncrementalResults,omitempty"`
	DatesInUTC              bool   `json:"DatesInUtc,omitempty"`
}

// ChangeLogItemQuery drives getlistitemchangessincetoken, the one
// operation whose response is an XML document rather than JSON.
type ChangeLogItemQuery struct {
	ChangeToken  string `json:"ChangeToken,omitempty"`
	Contains     string `json:"Contains,omitempty"`
	Query        string `json:"Query,omitempty"`
	QueryOptions string `json:"QueryOptions,omitempty"`
	RowLimit     string `json:"RowLimit,omitempty"`
	ViewName     string `json:"ViewName,omitempty"`
}

// queryBody wraps a query value in the service's type-discriminator
// envelope: {"query": {"__metadata": {"type": "<spType>"}, ...fields}}.
// The envelope is a fixed wire contract; requests without it are
// rejected by the server.
func queryBody(spType string, query any) ([]byte, error) {
	encoded, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	fields := map[string]any{}
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, fmt.Errorf("flatten query: %w", err)
	}
	fields["__metadata"] = map[string]string{"type": spType}

	body, err := json.Marshal(map[string]any{"query": fields})
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return body, nil
}

// metadataBody builds a mutating request body: the type-discriminator
// envelope merged with caller fields. Caller fields win on collision
// with defaults.
func metadataBody(spType string, defaults, overrides map[string]any) ([]byte, error) {
	fields := map[string]any{
		"__metadata": map[string]string{"type": spType},
	}
	for k, v := range defaults {
		fields[k] = v
	}
	for k, v := range overrides {
		fields[k] = v
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return body, nil
}
