package domain

import (
	"context"
	"errors"
)

var (
	// ErrDocumentNotFound is returned by a DocumentStore when bucket/key holds nothing.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrInvalidDocument marks a stored document that does not match the collection shape.
	ErrInvalidDocument = errors.New("invalid article collection document")
)

// FeedFetcher retrieves and normalizes one feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, feedURL string) FetchResult
}

// DocumentStore reads and replaces whole documents in an object store.
type DocumentStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, body []byte) error
}
