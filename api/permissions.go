package api

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// BasePermissionsInfo is the effective permission mask, split across
// two 32-bit halves as the service encodes it. The halves arrive as
// JSON strings.
type BasePermissionsInfo struct {
	High string `json:"High"`
	Low  string `json:"Low"`
}

// Mask folds the halves into a single 64-bit permission mask.
func (p BasePermissionsInfo) Mask() (uint64, error) {
	high, err := strconv.ParseUint(p.High, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse high bits: %w", err)
	}
	low, err := strconv.ParseUint(p.Low, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse low bits: %w", err)
	}
	return high<<32 | low, nil
}

// BasePermissionsResp is the effectivebasepermissions response payload.
type BasePermissionsResp []byte

// Data decodes the permission mask. The payload may nest the mask under
// an EffectiveBasePermissions property or carry it directly.
func (r BasePermissionsResp) Data() (*BasePermissionsInfo, error) {
	norm := NormalizeODataJSON(r)

	var wrapped struct {
		EffectiveBasePermissions *BasePermissionsInfo `json:"EffectiveBasePermissions"`
	}
	if err := json.Unmarshal(norm, &wrapped); err == nil && wrapped.EffectiveBasePermissions != nil {
		return wrapped.EffectiveBasePermissions, nil
	}

	info := &BasePermissionsInfo{}
	if err := json.Unmarshal(norm, info); err != nil {
		return nil, fmt.Errorf("decode base permissions: %w", err)
	}
	return info, nil
}

// BasePermissions binds the caller's effective permissions on a
// resource.
type BasePermissions struct {
	client   *HTTPClient
	endpoint string
	config   *RequestConfig
}

// NewBasePermissions creates an effective-permissions binding.
func NewBasePermissions(client *HTTPClient, endpoint string, config *RequestConfig) *BasePermissions {
	return &BasePermissions{client: client, endpoint: endpoint, config: config}
}

// ToURL returns the endpoint.
func (perms *BasePermissions) ToURL() string {
	return perms.endpoint
}

// Conf sets the request config for chained calls.
func (perms *BasePermissions) Conf(config *RequestConfig) *BasePermissions {
	perms.config = config
	return perms
}

// Get retrieves the effective permission mask.
func (perms *BasePermissions) Get() (BasePermissionsResp, error) {
	data, err := perms.client.Get(perms.endpoint, perms.config)
	if err != nil {
		return nil, err
	}
	return BasePermissionsResp(data), nil
}
