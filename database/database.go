// Package database persists change-tracking state between CLI runs: the
// last change token seen per list, so successive polls report deltas.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"splists/logging"

	_ "modernc.org/sqlite"
)

// Config holds database configuration
type Config struct {
	Path              string `env:"DB_PATH" default:"./splists.db"`
	BusyTimeoutMs     int    `env:"DB_BUSY_TIMEOUT_MS" default:"5000"`
	EnableForeignKeys bool   `env:"DB_ENABLE_FOREIGN_KEYS" default:"true"`
	EnableWAL         bool   `env:"DB_ENABLE_WAL" default:"true"`
}

// DefaultConfig returns the default database configuration
func DefaultConfig() Config {
	return Config{
		Path:              "./splists.db",
		BusyTimeoutMs:     5000,
		EnableForeignKeys: true,
		EnableWAL:         true,
	}
}

// FromEnv loads database configuration from environment variables
func FromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Path = v
	}
	if v := os.Getenv("DB_BUSY_TIMEOUT_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.BusyTimeoutMs = i
		}
	}
	return cfg
}

const schema = `
CREATE TABLE IF NOT EXISTS change_tokens (
	list_id    TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// ChangeTokenStore stores the last processed change token per list.
type ChangeTokenStore struct {
	db     *sql.DB
	logger *logging.Logger
}

// Open opens (and initializes if needed) the token store.
func Open(cfg Config, logger *logging.Logger) (*ChangeTokenStore, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.WithComponent("token_store")

	db, err := sql.Open("sqlite", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Database("Opened token store", "path", cfg.Path)

	return &ChangeTokenStore{db: db, logger: logger}, nil
}

// Get returns the last stored token for a list, or "" when none has
// been stored yet.
func (s *ChangeTokenStore) Get(ctx context.Context, listID string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx,
		`SELECT token FROM change_tokens WHERE list_id = ?`, listID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get token for %s: %w", listID, err)
	}
	return token, nil
}

// Put stores the token for a list, replacing any previous value.
func (s *ChangeTokenStore) Put(ctx context.Context, listID, token string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO change_tokens (list_id, token, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(list_id) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		listID, token, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put token for %s: %w", listID, err)
	}
	s.logger.Database("Stored change token", "list_id", listID)
	return nil
}

// Close closes the underlying database.
func (s *ChangeTokenStore) Close() error {
	return s.db.Close()
}

// buildDSN constructs the sqlite DSN with pragma parameters.
func buildDSN(cfg Config) string {
	params := url.Values{}
	params.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", cfg.BusyTimeoutMs))
	if cfg.EnableWAL {
		params.Add("_pragma", "journal_mode(WAL)")
	}
	if cfg.EnableForeignKeys {
		params.Add("_pragma", "foreign_keys(1)")
	}
	params.Add("_pragma", "synchronous(NORMAL)")
	return fmt.Sprintf("file:%s?%s", cfg.Path, params.Encode())
}
