package control

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rssingest/app"
)

func TestTrigger(t *testing.T) {
	var got app.Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/ingest" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Error","error":"ingestion already in progress"}`))
	}))
	defer srv.Close()

	list := "tech"
	c := NewClient(strings.TrimPrefix(srv.URL, "http://"))
	res, err := c.Trigger(context.Background(), app.Event{FeedList: &list})
	if err != nil {
		t.Fatalf("trigger: %v", err)
	}
	if res.StatusCode != http.StatusConflict || !strings.Contains(res.Body, "in progress") {
		t.Fatalf("result = %+v", res)
	}
	if got.FeedList == nil || *got.FeedList != "tech" || got.MaxFeeds != nil {
		t.Fatalf("event sent = %+v", got)
	}
}

func TestTriggerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	if _, err := NewClient(addr).Trigger(context.Background(), app.Event{}); err == nil {
		t.Fatal("expected an error for a closed server")
	}
}
