package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rssingest/domain"
)

// Store keeps whole documents in a local bucket/key table.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			bucket     TEXT NOT NULL,
			key        TEXT NOT NULL,
			body       BLOB NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (bucket, key)
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var body []byte
	row := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE bucket = ? AND key = ?`, bucket, key)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return body, nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (bucket, key, body, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (bucket, key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, bucket, key, body)
	return err
}
