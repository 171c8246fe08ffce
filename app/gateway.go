package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"rssingest/domain"
)

// Gateway reads and replaces the article collection at one bucket/key.
type Gateway struct {
	store  domain.DocumentStore
	bucket string
	key    string
	clock  func() time.Time
	logger *slog.Logger
}

func NewGateway(store domain.DocumentStore, bucket, key string, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{store: store, bucket: bucket, key: key, clock: time.Now, logger: logger}
}

// Location returns bucket and key.
func (g *Gateway) Location() (string, string) { return g.bucket, g.key }

// Load returns the stored collection, or a fresh one when nothing is stored yet.
func (g *Gateway) Load(ctx context.Context) (*domain.ArticleCollection, error) {
	body, err := g.store.Get(ctx, g.bucket, g.key)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		loggerFrom(ctx, g.logger).InfoContext(ctx, "no existing document, starting a new collection", "bucket", g.bucket, "key", g.key)
		return domain.NewCollection(g.clock()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", g.bucket, g.key, err)
	}
	c, err := domain.DecodeCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s/%s: %w", g.bucket, g.key, err)
	}
	loggerFrom(ctx, g.logger).InfoContext(ctx, "loaded existing document", "articles", len(c.Articles), "bytes", len(body))
	return c, nil
}

// Save replaces the stored document with c in a single write.
func (g *Gateway) Save(ctx context.Context, c *domain.ArticleCollection) error {
	body, err := domain.EncodeCollection(c)
	if err != nil {
		return err
	}
	if err := g.store.Put(ctx, g.bucket, g.key, body); err != nil {
		return fmt.Errorf("write %s/%s: %w", g.bucket, g.key, err)
	}
	loggerFrom(ctx, g.logger).InfoContext(ctx, "uploaded document", "bucket", g.bucket, "key", g.key, "bytes", len(body))
	return nil
}
