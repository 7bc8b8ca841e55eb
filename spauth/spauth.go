// Package spauth builds authenticated SharePoint transport clients from
// environment configuration. The returned *gosip.SPClient satisfies
// api.Client, so it plugs straight into the bindings.
package spauth

import (
	"fmt"
	"os"
	"strings"

	"github.com/koltyakov/gosip"
	"github.com/koltyakov/gosip/auth/azurecert"
)

// Config carries Azure AD certificate auth settings.
type Config struct {
	SiteURL      string
	TenantID     string
	ClientID     string
	CertPath     string
	CertPassword string
}

// FromEnv reads auth configuration from the environment. The caller is
// expected to have loaded any .env file beforehand.
func FromEnv() (Config, error) {
	cfg := Config{
		SiteURL:      os.Getenv("SP_SITE_URL"),
		TenantID:     os.Getenv("SP_TENANT_ID"),
		ClientID:     os.Getenv("SP_CLIENT_ID"),
		CertPath:     os.Getenv("SP_CERT_PATH"),
		CertPassword: os.Getenv("SP_CERT_PASSWORD"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the missing required settings by name.
func (cfg Config) Validate() error {
	var missing []string
	if cfg.SiteURL == "" {
		missing = append(missing, "SP_SITE_URL")
	}
	if cfg.TenantID == "" {
		missing = append(missing, "SP_TENANT_ID")
	}
	if cfg.ClientID == "" {
		missing = append(missing, "SP_CLIENT_ID")
	}
	if cfg.CertPath == "" {
		missing = append(missing, "SP_CERT_PATH")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// NewClient builds an authenticated SharePoint client using the Azure
// AD certificate strategy.
func NewClient(cfg Config) (*gosip.SPClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ac := &azurecert.AuthCnfg{
		SiteURL:  cfg.SiteURL,
		TenantID: cfg.TenantID,
		ClientID: cfg.ClientID,
		CertPath: cfg.CertPath,
		CertPass: cfg.CertPassword,
	}
	return &gosip.SPClient{AuthCnfg: ac}, nil
}
