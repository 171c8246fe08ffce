package rss

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"rssingest/domain"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultTimeout   = 20 * time.Second

	emptyFeedMessage = "No entries found"
	maxMessageLength = 50
)

// Option configures a Fetcher.
type Option func(*Fetcher)

func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.parser.UserAgent = ua
		}
	}
}

// WithHTTPClient replaces the client used for feed requests.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.parser.Client = client
		}
	}
}

// WithTimeout bounds each feed request.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithDerivedIDs gives entries without an identifier a digest of their link.
func WithDerivedIDs(enabled bool) Option {
	return func(f *Fetcher) { f.deriveIDs = enabled }
}

func WithClock(clock func() time.Time) Option {
	return func(f *Fetcher) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// Fetcher parses RSS, Atom and JSON feeds with gofeed.
type Fetcher struct {
	parser    *gofeed.Parser
	timeout   time.Duration
	deriveIDs bool
	clock     func() time.Time
}

func NewFetcher(opts ...Option) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = DefaultUserAgent
	f := &Fetcher{
		parser:  parser,
		timeout: DefaultTimeout,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch never returns an error: failures are reported in the result.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) domain.FetchResult {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return domain.FetchResult{
			Articles: []domain.Article{},
			Outcome:  domain.FetchFailed,
			Message:  describe(err),
		}
	}
	if feed == nil || len(feed.Items) == 0 {
		return domain.FetchResult{
			Articles: []domain.Article{},
			Outcome:  domain.FetchEmpty,
			Message:  emptyFeedMessage,
		}
	}

	seen := domain.At(f.clock())
	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		a := domain.Article{
			ID:         item.GUID,
			Title:      item.Title,
			Link:       item.Link,
			Published:  item.Published,
			Author:     authorName(item),
			Summary:    item.Description,
			Tags:       tags(item),
			SourceFeed: feedURL,
			FirstSeen:  seen,
		}
		if a.ID == "" && f.deriveIDs {
			a.ID = derivedID(item)
		}
		articles = append(articles, a)
	}
	return domain.FetchResult{Articles: articles, Outcome: domain.FetchSucceeded}
}

func authorName(item *gofeed.Item) string {
	for _, p := range item.Authors {
		if p != nil && p.Name != "" {
			return p.Name
		}
	}
	if item.Author != nil { //nolint:staticcheck
		return item.Author.Name
	}
	return ""
}

func tags(item *gofeed.Item) []string {
	out := make([]string, 0, len(item.Categories))
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func derivedID(item *gofeed.Item) string {
	basis := item.Link
	if basis == "" {
		basis = item.Title
	}
	if basis == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(basis))
	return "sha256:" + hex.EncodeToString(sum[:])
}

func describe(err error) string {
	var httpErr gofeed.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return truncate(fmt.Sprintf("http error: %d %s", httpErr.StatusCode, http.StatusText(httpErr.StatusCode)), maxMessageLength)
	case errors.Is(err, gofeed.ErrFeedTypeNotDetected):
		return truncate("parse error: "+err.Error(), maxMessageLength)
	case isParseError(err):
		return truncate("parse error: "+err.Error(), maxMessageLength)
	default:
		return truncate("fetch error: "+err.Error(), maxMessageLength)
	}
}

func isParseError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "xml") || strings.Contains(msg, "json") || strings.Contains(msg, "syntax")
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
