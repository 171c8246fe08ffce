package app

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"rssingest/domain"
)

// RunnerOption configures a BatchRunner.
type RunnerOption func(*BatchRunner)

func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *BatchRunner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSleep replaces the pause taken between feeds.
func WithSleep(sleep func(ctx context.Context, d time.Duration)) RunnerOption {
	return func(r *BatchRunner) {
		if sleep != nil {
			r.sleep = sleep
		}
	}
}

// WithRandom replaces the [0,1) source used to pick delays.
func WithRandom(random func() float64) RunnerOption {
	return func(r *BatchRunner) {
		if random != nil {
			r.random = random
		}
	}
}

// BatchRunner walks a feed list sequentially and collects a deduplicated batch.
type BatchRunner struct {
	fetcher domain.FeedFetcher
	logger  *slog.Logger
	sleep   func(ctx context.Context, d time.Duration)
	random  func() float64
}

func NewBatchRunner(fetcher domain.FeedFetcher, opts ...RunnerOption) *BatchRunner {
	r := &BatchRunner{
		fetcher: fetcher,
		logger:  slog.Default(),
		sleep:   sleepContext,
		random:  rand.Float64,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run fetches every feed in order. A feed's failure is counted and logged,
// never returned. Articles whose id was already collected in this batch are
// dropped; empty ids are always kept. Between two consecutive fetches it
// sleeps a random duration in [minDelay, maxDelay].
func (r *BatchRunner) Run(ctx context.Context, feedURLs []string, minDelay, maxDelay time.Duration) ([]domain.Article, domain.BatchStats) {
	stats := domain.BatchStats{TotalFeeds: len(feedURLs)}
	collected := make([]domain.Article, 0)
	seen := make(map[string]struct{})
	logger := loggerFrom(ctx, r.logger)

	logger.InfoContext(ctx, "starting feed batch", "feeds", len(feedURLs))

	for i, url := range feedURLs {
		res := r.fetcher.Fetch(ctx, url)
		if res.OK() {
			stats.Successful++
			for _, a := range res.Articles {
				if a.ID != "" {
					if _, dup := seen[a.ID]; dup {
						continue
					}
					seen[a.ID] = struct{}{}
				}
				collected = append(collected, a)
			}
		} else {
			stats.Failed++
			logger.WarnContext(ctx, "feed failed",
				"position", i+1,
				"of", len(feedURLs),
				"feed_url", url,
				"outcome", res.Outcome.String(),
				"reason", res.Message,
			)
		}

		if i < len(feedURLs)-1 {
			r.sleep(ctx, r.delay(minDelay, maxDelay))
		}
	}

	stats.ArticlesCollected = len(collected)
	logger.InfoContext(ctx, "feed batch complete",
		"successful", stats.Successful,
		"total_feeds", stats.TotalFeeds,
		"articles_collected", stats.ArticlesCollected,
	)
	return collected, stats
}

func (r *BatchRunner) delay(minDelay, maxDelay time.Duration) time.Duration {
	if maxDelay <= minDelay {
		return minDelay
	}
	return minDelay + time.Duration(r.random()*float64(maxDelay-minDelay))
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
