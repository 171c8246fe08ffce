// Package db opens the SQL connections used by the document stores.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"rssingest/internal/config"
)

func OpenPostgres(ctx context.Context, cfg config.PostgresConfig) (*sql.DB, error) {
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	pgURL := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(cfg.User), url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Database, sslmode,
	)
	dbConn, err := sql.Open("postgres", pgURL)
	if err != nil {
		return nil, err
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetMaxIdleConns(10)
	dbConn.SetConnMaxLifetime(30 * time.Minute)
	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}

// OpenSQLite opens path with a single writer connection, creating its
// directory when needed.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}
	dbConn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	dbConn.SetMaxOpenConns(1)
	if err := dbConn.PingContext(ctx); err != nil {
		dbConn.Close()
		return nil, err
	}
	return dbConn, nil
}
