package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// NewCollection returns the structure used when no document has been stored yet.
func NewCollection(now time.Time) *ArticleCollection {
	c := &ArticleCollection{}
	c.Initialize(now)
	return c
}

// Initialized reports whether metadata has ever been set.
func (c *ArticleCollection) Initialized() bool {
	return !c.Metadata.CreatedAt.IsZero()
}

// Initialize sets first-run metadata and non-nil slices. It leaves an
// already initialized collection untouched.
func (c *ArticleCollection) Initialize(now time.Time) {
	if c.Articles == nil {
		c.Articles = []Article{}
	}
	if c.IngestionHistory == nil {
		c.IngestionHistory = []IngestionRecord{}
	}
	if c.Initialized() {
		return
	}
	c.Metadata = Metadata{
		CreatedAt:     At(now),
		LastUpdated:   At(now),
		TotalArticles: len(c.Articles),
	}
}

// AppendIngestion adds rec and evicts the oldest records beyond MaxHistory.
func (c *ArticleCollection) AppendIngestion(rec IngestionRecord) {
	c.IngestionHistory = append(c.IngestionHistory, rec)
	c.trimHistory()
}

func (c *ArticleCollection) trimHistory() {
	over := len(c.IngestionHistory) - MaxHistory
	if over <= 0 {
		return
	}
	kept := make([]IngestionRecord, MaxHistory)
	copy(kept, c.IngestionHistory[over:])
	c.IngestionHistory = kept
}

// EncodeCollection renders c as indented UTF-8 JSON.
func EncodeCollection(c *ArticleCollection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCollection parses and validates a stored document.
func DecodeCollection(data []byte) (*ArticleCollection, error) {
	var c ArticleCollection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if c.Articles == nil {
		c.Articles = []Article{}
	}
	if c.IngestionHistory == nil {
		c.IngestionHistory = []IngestionRecord{}
	}
	for i := range c.Articles {
		if c.Articles[i].Tags == nil {
			c.Articles[i].Tags = []string{}
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.trimHistory()
	return &c, nil
}

// Validate checks counters and id uniqueness.
func (c *ArticleCollection) Validate() error {
	m := c.Metadata
	if m.TotalIngestions < 0 || m.TotalArticles < 0 {
		return fmt.Errorf("%w: negative metadata counter", ErrInvalidDocument)
	}
	seen := make(map[string]int, len(c.Articles))
	for i, a := range c.Articles {
		if a.ID == "" {
			continue
		}
		if prev, ok := seen[a.ID]; ok {
			return fmt.Errorf("%w: article id %q at %d and %d", ErrInvalidDocument, a.ID, prev, i)
		}
		seen[a.ID] = i
	}
	for i, rec := range c.IngestionHistory {
		if rec.FeedCount < 0 || rec.SuccessfulFeeds < 0 || rec.FailedFeeds < 0 ||
			rec.NewArticles < 0 || rec.UpdatedArticles < 0 || rec.TotalAfter < 0 {
			return fmt.Errorf("%w: negative counter in ingestion record %d", ErrInvalidDocument, i)
		}
	}
	return nil
}
