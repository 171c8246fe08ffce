package helper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateFeedURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://medium.com/feed/tag/ai", false},
		{"http://example.com/rss.xml", false},
		{"ftp://example.com/rss", true},
		{"medium.com/feed", true},
		{"", true},
		{"https://", true},
	}
	for _, tt := range tests {
		err := ValidateFeedURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFeedURL(%q) err = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}

func TestCheckReachable(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("<rss/>"))
	}))
	defer srv.Close()

	ctx := context.Background()
	if err := CheckReachable(ctx, srv.Client(), srv.URL+"/feed", "probe/1.0"); err != nil {
		t.Fatalf("reachable feed: %v", err)
	}
	if gotUA != "probe/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if err := CheckReachable(ctx, srv.Client(), srv.URL+"/missing", ""); err == nil {
		t.Fatal("404 should fail")
	}
}
