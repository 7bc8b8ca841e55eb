package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// ListInfo is the list metadata shape returned by the service.
type ListInfo struct {
	ID                   string    `json:"Id"`
	Title                string    `json:"Title"`
	Description          string    `json:"Description"`
	BaseTemplate         int       `json:"BaseTemplate"`
	ItemCount            int       `json:"ItemCount"`
	Hidden               bool      `json:"Hidden"`
	AllowContentTypes    bool      `json:"AllowContentTypes"`
	ContentTypesEnabled  bool      `json:"ContentTypesEnabled"`
	EnableAttachments    bool      `json:"EnableAttachments"`
	EnableFolderCreation bool      `json:"EnableFolderCreation"`
	EnableMinorVersions  bool      `json:"EnableMinorVersions"`
	EnableModeration     bool      `json:"EnableModeration"`
	EnableVersioning     bool      `json:"EnableVersioning"`
	Created              time.Time `json:"Created"`
	LastItemModifiedDate time.Time `json:"LastItemModifiedDate"`
	ParentWebURL         string    `json:"ParentWebUrl"`
}

// ListResp is a single-list response payload.
type ListResp []byte

// Data decodes the list metadata.
func (r ListResp) Data() (*ListInfo, error) {
	info := &ListInfo{}
	if err := json.Unmarshal(r.Normalized(), info); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return info, nil
}

// Normalized returns the payload without the verbose OData envelope.
func (r ListResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// ListsResp is a list-collection response payload.
type ListsResp []byte

// Data decodes the collection.
func (r ListsResp) Data() ([]*ListInfo, error) {
	var infos []*ListInfo
	if err := json.Unmarshal(r.Normalized(), &infos); err != nil {
		return nil, fmt.Errorf("decode lists: %w", err)
	}
	return infos, nil
}

// Normalized returns the payload without the verbose OData envelope.
func (r ListsResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// ListAddResult pairs the raw create response with a reference to the
// new list. The reference is built from the requested title, not the
// server-confirmed one; reload through it to confirm.
type ListAddResult struct {
	Data ListResp
	List *List
}

// ListUpdateResult pairs the raw update response with the reference
// reflecting the list's post-update identity.
type ListUpdateResult struct {
	Data ListResp
	List *List
}

// ListEnsureResult reports whether Ensure had to create the list.
type ListEnsureResult struct {
	Data    ListResp
	List    *List
	Created bool
}

// ChangesResp is the change-log response payload.
type ChangesResp []byte

// Normalized returns the payload without the verbose OData envelope.
func (r ChangesResp) Normalized() []byte {
	return NormalizeODataJSON(r)
}

// RecycleResp is the recycle response payload. The service wraps the
// new Recycle Bin item identifier in a "Recycle" property; older
// endpoints return the identifier shape directly, so the raw payload is
// preserved for callers that need it.
type RecycleResp []byte

// BinItemID returns the Recycle Bin item identifier, or "" when the
// wrapper property is absent.
func (r RecycleResp) BinItemID() string {
	var payload struct {
		Recycle string `json:"Recycle"`
	}
	if err := json.Unmarshal(NormalizeODataJSON(r), &payload); err != nil {
		return ""
	}
	return payload.Recycle
}

// RenderListDataResp is the renderlistdata response payload.
type RenderListDataResp []byte

// Data performs the double JSON decode this endpoint requires: the
// response body is itself a JSON-encoded string. The RenderListData
// wrapper is unwrapped when present; otherwise the parsed object is
// returned unchanged.
func (r RenderListDataResp) Data() (json.RawMessage, error) {
	return doubleDecode(r, "RenderListData")
}

// RenderListFormDataResp is the renderlistformdata response payload,
// sharing the double-decode contract with RenderListDataResp but
// unwrapping ListData.
type RenderListFormDataResp []byte

// Data performs the double JSON decode and unwraps ListData when
// present.
func (r RenderListFormDataResp) Data() (json.RawMessage, error) {
	return doubleDecode(r, "ListData")
}

// ReserveListItemIDResp is the reservelistitemid response payload.
type ReserveListItemIDResp []byte

// Value returns the reserved item identifier, or 0 when the wrapper
// property is absent.
func (r ReserveListItemIDResp) Value() int {
	var payload struct {
		ReserveListItemID int `json:"ReserveListItemId"`
	}
	if err := json.Unmarshal(NormalizeODataJSON(r), &payload); err != nil {
		return 0
	}
	return payload.ReserveListItemID
}

// doubleDecode handles response bodies that arrive as JSON-encoded
// strings. The wrapper property, when present, holds the encoded
// payload; when it is absent the parsed object is returned as-is.
func doubleDecode(data []byte, wrapper string) (json.RawMessage, error) {
	norm := NormalizeODataJSON(data)

	// Whole payload may be a JSON-encoded string.
	var encoded string
	if err := json.Unmarshal(norm, &encoded); err == nil {
		return json.RawMessage(encoded), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(norm, &obj); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}

	raw, ok := obj[wrapper]
	if !ok {
		return json.RawMessage(norm), nil
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		return json.RawMessage(inner), nil
	}
	return raw, nil
}

// odataID extracts the OData identity URL from a provisioning response,
// tolerating verbose and minimal metadata shapes.
func odataID(data []byte) string {
	var minimal struct {
		ID string `json:"odata.id"`
	}
	if err := json.Unmarshal(data, &minimal); err == nil && minimal.ID != "" {
		return minimal.ID
	}

	var verbose struct {
		D struct {
			Metadata struct {
				ID string `json:"id"`
			} `json:"__metadata"`
		} `json:"d"`
		Metadata struct {
			ID string `json:"id"`
		} `json:"__metadata"`
	}
	if err := json.Unmarshal(data, &verbose); err == nil {
		if verbose.D.Metadata.ID != "" {
			return verbose.D.Metadata.ID
		}
		if verbose.Metadata.ID != "" {
			return verbose.Metadata.ID
		}
	}
	return ""
}
