package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rssingest/domain"
)

// Store keeps whole documents in a bucket/key table.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Ensure(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS documents (
    bucket TEXT NOT NULL,
    key TEXT NOT NULL,
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT now(),
    updated_at TIMESTAMP NOT NULL DEFAULT now(),
    PRIMARY KEY (bucket, key)
);
`)
	return err
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var body string
	row := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE bucket = $1 AND key = $2`, bucket, key)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return []byte(body), nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO documents (bucket, key, body) VALUES ($1, $2, $3) ON CONFLICT (bucket, key) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`, bucket, key, string(body))
	return err
}
