// Package backend wires the configured document store and the ingestion
// pipeline around it.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"rssingest/adapter/postgres"
	"rssingest/adapter/rss"
	s3store "rssingest/adapter/s3"
	"rssingest/adapter/sqlite"
	"rssingest/app"
	"rssingest/domain"
	"rssingest/internal/catalog"
	"rssingest/internal/config"
	"rssingest/internal/db"
)

// OpenStore opens the document store named by cfg.Storage.Backend. The
// returned close function releases any connection it holds.
func OpenStore(ctx context.Context, cfg config.Config) (domain.DocumentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Backend {
	case config.BackendS3:
		store, err := s3store.NewFromEnv(ctx, cfg.Storage.Region)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendPostgres:
		conn, err := db.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store := postgres.New(conn)
		if err := store.Ensure(ctx); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("db ensure failed: %w", err)
		}
		return store, conn.Close, nil

	case config.BackendSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store := sqlite.New(conn)
		if err := store.Ensure(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		return store, conn.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Pipeline holds everything one process needs to run ingestions.
type Pipeline struct {
	Handler  *app.Handler
	Ingestor *app.Ingestor
	Catalog  *catalog.Catalog
	close    func() error
}

func (p *Pipeline) Close() error { return p.close() }

// NewPipeline builds the pipeline on an already opened store.
func NewPipeline(cfg config.Config, store domain.DocumentStore, client *http.Client, logger *slog.Logger) *Pipeline {
	fetcher := rss.NewFetcher(
		rss.WithUserAgent(cfg.Ingest.UserAgent),
		rss.WithTimeout(cfg.Ingest.FetchTimeoutDuration()),
		rss.WithDerivedIDs(cfg.Ingest.DeriveMissingIDs),
		rss.WithHTTPClient(client),
	)
	runner := app.NewBatchRunner(fetcher, app.WithRunnerLogger(logger))
	gateway := app.NewGateway(store, cfg.Storage.Bucket, cfg.Storage.Key(), logger)
	ingestor := app.NewIngestor(gateway, runner, app.WithLogger(logger))
	cat := catalog.New(cfg.Ingest.CustomFeeds)

	handler := app.NewHandler(ingestor, cat, app.Defaults{
		FeedList: cfg.Ingest.FeedList,
		MaxFeeds: cfg.Ingest.MaxFeeds,
		MinDelay: cfg.Ingest.MinDelay,
		MaxDelay: cfg.Ingest.MaxDelay,
	}, logger)

	return &Pipeline{
		Handler:  handler,
		Ingestor: ingestor,
		Catalog:  cat,
		close:    func() error { return nil },
	}
}

// Open opens the configured store and builds the pipeline on it.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Pipeline, error) {
	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p := NewPipeline(cfg, store, nil, logger)
	p.close = closeStore
	logger.InfoContext(ctx, "storage ready", "backend", cfg.Storage.Backend, "bucket", cfg.Storage.Bucket, "key", cfg.Storage.Key())
	return p, nil
}
