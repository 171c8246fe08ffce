package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"rssingest/domain"
)

const (
	testBucket = "medium-usecase-bucket"
	testKey    = "medium-rss-data/medium_articles_master.json"
)

func newTestIngestor(store *memStore, fetcher *fakeFetcher, now func() time.Time) *Ingestor {
	logger := discardLogger()
	gateway := NewGateway(store, testBucket, testKey, logger)
	runner := NewBatchRunner(fetcher, WithSleep(noSleep), WithRunnerLogger(logger))
	return NewIngestor(gateway, runner, WithLogger(logger), WithClock(now))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIngestorFirstRunScenario(t *testing.T) {
	store := newMemStore()
	fetcher := &fakeFetcher{results: map[string]domain.FetchResult{
		"A": succeeded(article("a1", "first", "A", day1), article("a2", "second", "A", day1)),
		"B": failed("parse error: bad xml"),
		"C": succeeded(article("a1", "dup", "C", day1)),
	}}
	in := newTestIngestor(store, fetcher, fixedClock(day1))

	report, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A", "B", "C"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.NewArticles != 2 || report.UpdatedArticles != 0 || !report.Persisted {
		t.Fatalf("report = %+v", report)
	}
	if want := (domain.BatchStats{TotalFeeds: 3, Successful: 2, Failed: 1, ArticlesCollected: 2}); report.Stats != want {
		t.Fatalf("stats = %+v, want %+v", report.Stats, want)
	}

	c := store.collection(t, testBucket, testKey)
	if len(c.Articles) != 2 || c.Metadata.TotalArticles != 2 || c.Metadata.TotalIngestions != 1 {
		t.Fatalf("stored metadata = %+v with %d articles", c.Metadata, len(c.Articles))
	}
	if len(c.IngestionHistory) != 1 || c.IngestionHistory[0].FailedFeeds != 1 {
		t.Fatalf("history = %+v", c.IngestionHistory)
	}
}

func TestIngestorSecondRunUpdatesLastSeen(t *testing.T) {
	store := newMemStore()
	fetcher := &fakeFetcher{results: map[string]domain.FetchResult{
		"A": succeeded(article("a1", "original", "A", day1)),
	}}
	now := day1
	in := newTestIngestor(store, fetcher, func() time.Time { return now })
	if _, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A"}}); err != nil {
		t.Fatalf("first run: %v", err)
	}

	now = day2
	fetcher.results["A"] = succeeded(article("a1", "retitled", "A", day2))
	report, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A"}})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.NewArticles != 0 || report.UpdatedArticles != 1 {
		t.Fatalf("report = %+v", report)
	}

	c := store.collection(t, testBucket, testKey)
	a := c.Articles[0]
	if a.Title != "original" {
		t.Errorf("title = %q, want original", a.Title)
	}
	if !a.LastSeen.Equal(day2) || !a.FirstSeen.Equal(day1) {
		t.Errorf("first/last seen = %v / %v", a.FirstSeen, a.LastSeen)
	}
	if c.Metadata.TotalIngestions != 2 || len(c.IngestionHistory) != 2 {
		t.Errorf("metadata = %+v, history %d", c.Metadata, len(c.IngestionHistory))
	}
	if !c.Metadata.CreatedAt.Equal(day1) {
		t.Errorf("created_at moved to %v", c.Metadata.CreatedAt)
	}
}

func TestIngestorEmptyBatchSkipsWrite(t *testing.T) {
	store := newMemStore()
	fetcher := &fakeFetcher{results: map[string]domain.FetchResult{}}
	in := newTestIngestor(store, fetcher, fixedClock(day1))

	report, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Persisted || store.puts != 0 {
		t.Fatalf("empty batch should not be written (persisted=%v, puts=%d)", report.Persisted, store.puts)
	}
	if report.Stats.Failed != 2 {
		t.Fatalf("stats = %+v", report.Stats)
	}
}

func TestIngestorErrors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*memStore)
		wantErr error
	}{
		{
			name:    "read failure",
			prepare: func(s *memStore) { s.getErr = errBoom },
			wantErr: errBoom,
		},
		{
			name:    "corrupt document",
			prepare: func(s *memStore) { s.docs[testBucket+"/"+testKey] = []byte("{not json") },
			wantErr: domain.ErrInvalidDocument,
		},
		{
			name:    "write failure",
			prepare: func(s *memStore) { s.putErr = errBoom },
			wantErr: errBoom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			tt.prepare(store)
			fetcher := &fakeFetcher{results: map[string]domain.FetchResult{
				"A": succeeded(article("a1", "t", "A", day1)),
			}}
			in := newTestIngestor(store, fetcher, fixedClock(day1))

			_, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A"}})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if store.puts != 0 {
				t.Fatalf("nothing should be written after a failure")
			}
		})
	}
}

func TestIngestorRefusesConcurrentRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetcher := &fakeFetcher{results: map[string]domain.FetchResult{
		"A": succeeded(article("a1", "t", "A", day1)),
	}}
	fetcher.onFetch = func(string) {
		close(started)
		<-release
	}
	in := newTestIngestor(newMemStore(), fetcher, fixedClock(day1))

	done := make(chan error, 1)
	go func() {
		_, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A"}})
		done <- err
	}()
	<-started

	if !in.Busy() {
		t.Error("Busy should report the active run")
	}
	if _, err := in.Run(context.Background(), RunOptions{Feeds: []string{"A"}}); !errors.Is(err, ErrRunInProgress) {
		t.Errorf("concurrent run err = %v, want ErrRunInProgress", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first run: %v", err)
	}
	if in.Busy() {
		t.Error("Busy after the run finished")
	}
}

func TestGatewayLoadMissingDocument(t *testing.T) {
	gateway := NewGateway(newMemStore(), testBucket, testKey, discardLogger())
	gateway.clock = fixedClock(day1)

	c, err := gateway.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Metadata.CreatedAt.Equal(day1) || len(c.Articles) != 0 || c.Metadata.TotalIngestions != 0 {
		t.Fatalf("unexpected fresh collection: %+v", c)
	}
}

func TestGatewaySaveLoadRoundTrip(t *testing.T) {
	store := newMemStore()
	gateway := NewGateway(store, testBucket, testKey, discardLogger())
	want := domain.NewCollection(day1)
	Merge(want, []domain.Article{article("a1", "t", "A", day1)}, day1)
	UpdateMetadata(want, 1, 0, domain.BatchStats{TotalFeeds: 1, Successful: 1, ArticlesCollected: 1}, day1)

	if err := gateway.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := gateway.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}
