package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rssingest/domain"
)

// ErrRunInProgress is returned when Run is called while another run is active.
var ErrRunInProgress = errors.New("ingestion already in progress")

// RunOptions selects the feeds and pacing of one ingestion.
type RunOptions struct {
	Feeds    []string
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Report describes a finished run. Persisted is false when the batch was
// empty and nothing was written.
type Report struct {
	NewArticles     int
	UpdatedArticles int
	TotalArticles   int
	Stats           domain.BatchStats
	Persisted       bool
}

// Option configures an Ingestor.
type Option func(*Ingestor)

func WithLogger(logger *slog.Logger) Option {
	return func(in *Ingestor) {
		if logger != nil {
			in.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(in *Ingestor) {
		if clock != nil {
			in.clock = clock
		}
	}
}

// Ingestor runs the load, fetch, merge, record, save pipeline.
type Ingestor struct {
	gateway *Gateway
	runner  *BatchRunner
	logger  *slog.Logger
	clock   func() time.Time

	mu sync.Mutex
}

func NewIngestor(gateway *Gateway, runner *BatchRunner, opts ...Option) *Ingestor {
	in := &Ingestor{
		gateway: gateway,
		runner:  runner,
		logger:  slog.Default(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	gateway.clock = in.clock
	return in
}

// Run performs one ingestion. Only one run may be active per Ingestor.
func (in *Ingestor) Run(ctx context.Context, opts RunOptions) (Report, error) {
	if !in.mu.TryLock() {
		return Report{}, ErrRunInProgress
	}
	defer in.mu.Unlock()

	logger := loggerFrom(ctx, in.logger)

	bucket, key := in.gateway.Location()
	logger.InfoContext(ctx, "downloading existing data", "step", "1/4", "bucket", bucket, "key", key)
	collection, err := in.gateway.Load(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load collection: %w", err)
	}

	logger.InfoContext(ctx, "ingesting feeds", "step", "2/4", "feeds", len(opts.Feeds))
	articles, stats := in.runner.Run(ctx, opts.Feeds, opts.MinDelay, opts.MaxDelay)
	report := Report{Stats: stats, TotalArticles: len(collection.Articles)}
	if len(articles) == 0 {
		logger.InfoContext(ctx, "no articles collected, leaving document untouched")
		return report, nil
	}

	logger.InfoContext(ctx, "merging articles", "step", "3/4")
	now := in.clock()
	report.NewArticles, report.UpdatedArticles = Merge(collection, articles, now)
	UpdateMetadata(collection, report.NewArticles, report.UpdatedArticles, stats, now)
	report.TotalArticles = len(collection.Articles)

	logger.InfoContext(ctx, "uploading document", "step", "4/4")
	if err := in.gateway.Save(ctx, collection); err != nil {
		return Report{}, fmt.Errorf("save collection: %w", err)
	}
	report.Persisted = true

	logger.InfoContext(ctx, "ingestion complete",
		"new_articles", report.NewArticles,
		"updated_articles", report.UpdatedArticles,
		"total_articles", report.TotalArticles,
	)
	return report, nil
}

// Snapshot loads the stored collection without modifying it.
func (in *Ingestor) Snapshot(ctx context.Context) (*domain.ArticleCollection, error) {
	return in.gateway.Load(ctx)
}

// Busy reports whether a run is active.
func (in *Ingestor) Busy() bool {
	if in.mu.TryLock() {
		in.mu.Unlock()
		return false
	}
	return true
}
