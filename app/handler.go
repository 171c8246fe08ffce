package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"rssingest/domain"
)

// ErrInvalidEvent marks an invocation event with unusable parameters.
var ErrInvalidEvent = errors.New("invalid invocation event")

// FeedCatalog resolves a named feed list to URLs.
type FeedCatalog interface {
	Feeds(name string) ([]string, error)
}

// Defaults apply to any Event field left unset.
type Defaults struct {
	FeedList string
	MaxFeeds int
	MinDelay float64
	MaxDelay float64
}

// Event is the optional invocation payload. Delays are in seconds.
type Event struct {
	FeedList *string  `json:"feed_list,omitempty"`
	MaxFeeds *int     `json:"max_feeds,omitempty"`
	MinDelay *float64 `json:"min_delay,omitempty"`
	MaxDelay *float64 `json:"max_delay,omitempty"`
}

// Resolve merges e over d and selects the feeds. MaxFeeds <= 0 means no cap.
func (e Event) Resolve(d Defaults, catalog FeedCatalog) (RunOptions, error) {
	name, maxFeeds, minDelay, maxDelay := d.FeedList, d.MaxFeeds, d.MinDelay, d.MaxDelay
	if e.FeedList != nil {
		name = *e.FeedList
	}
	if e.MaxFeeds != nil {
		maxFeeds = *e.MaxFeeds
	}
	if e.MinDelay != nil {
		minDelay = *e.MinDelay
	}
	if e.MaxDelay != nil {
		maxDelay = *e.MaxDelay
	}

	if math.IsNaN(minDelay) || math.IsNaN(maxDelay) || minDelay < 0 || maxDelay < minDelay {
		return RunOptions{}, fmt.Errorf("%w: delays must satisfy 0 <= min_delay <= max_delay, got %v..%v", ErrInvalidEvent, minDelay, maxDelay)
	}

	feeds, err := catalog.Feeds(name)
	if err != nil {
		return RunOptions{}, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	if maxFeeds > 0 && len(feeds) > maxFeeds {
		feeds = feeds[:maxFeeds]
	}
	selected := make([]string, len(feeds))
	copy(selected, feeds)

	return RunOptions{
		Feeds:    selected,
		MinDelay: seconds(minDelay),
		MaxDelay: seconds(maxDelay),
	}, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// InvocationResult mirrors a Lambda proxy response; Body is a JSON document.
type InvocationResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

type successBody struct {
	Message         string `json:"message"`
	NewArticles     int    `json:"new_articles"`
	UpdatedArticles int    `json:"updated_articles"`
	TotalArticles   int    `json:"total_articles"`
	FeedsProcessed  int    `json:"feeds_processed"`
	FeedsSuccessful int    `json:"feeds_successful"`
	FeedsFailed     int    `json:"feeds_failed"`
}

type emptyBody struct {
	Message string            `json:"message"`
	Stats   domain.BatchStats `json:"stats"`
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Handler is the single boundary where run failures become results.
type Handler struct {
	ingestor *Ingestor
	catalog  FeedCatalog
	defaults Defaults
	logger   *slog.Logger
	newRunID func() string
}

func NewHandler(ingestor *Ingestor, catalog FeedCatalog, defaults Defaults, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ingestor: ingestor,
		catalog:  catalog,
		defaults: defaults,
		logger:   logger,
		newRunID: uuid.NewString,
	}
}

// Handle runs one ingestion and always returns a result: 200 on success
// (including an empty batch), 500 on any error or panic.
func (h *Handler) Handle(ctx context.Context, ev Event) (res InvocationResult) {
	logger := h.logger.With("run_id", h.newRunID())
	ctx = ContextWithLogger(ctx, logger)

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorContext(ctx, "ingestion panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			res = failure(fmt.Errorf("panic: %v", r))
		}
	}()

	logger.InfoContext(ctx, "ingestion starting")

	opts, err := ev.Resolve(h.defaults, h.catalog)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		return failure(err)
	}

	report, err := h.ingestor.Run(ctx, opts)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "error", err)
		return failure(err)
	}

	if !report.Persisted {
		return result(http.StatusOK, emptyBody{Message: "No articles collected", Stats: report.Stats})
	}
	return result(http.StatusOK, successBody{
		Message:         "Success",
		NewArticles:     report.NewArticles,
		UpdatedArticles: report.UpdatedArticles,
		TotalArticles:   report.TotalArticles,
		FeedsProcessed:  report.Stats.TotalFeeds,
		FeedsSuccessful: report.Stats.Successful,
		FeedsFailed:     report.Stats.Failed,
	})
}

func failure(err error) InvocationResult {
	return result(http.StatusInternalServerError, errorBody{Message: "Error", Error: err.Error()})
}

func result(status int, body any) InvocationResult {
	data, err := json.Marshal(body)
	if err != nil {
		return InvocationResult{
			StatusCode: http.StatusInternalServerError,
			Body:       fmt.Sprintf(`{"message":"Error","error":%q}`, err.Error()),
		}
	}
	return InvocationResult{StatusCode: status, Body: string(data)}
}

func (h *Handler) Busy() bool { return h.ingestor.Busy() }

// Snapshot returns the stored collection as it is now.
func (h *Handler) Snapshot(ctx context.Context) (*domain.ArticleCollection, error) {
	return h.ingestor.Snapshot(ctx)
}
