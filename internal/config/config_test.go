package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvConfigFile, "LOG_LEVEL", "CONTROL_ADDR", "STORAGE_BACKEND", "S3_BUCKET_NAME", "S3_PREFIX",
		"S3_MAIN_FILE", "AWS_REGION", "SQLITE_PATH", "FEED_LIST", "MAX_FEEDS", "MIN_DELAY", "MAX_DELAY",
		"DERIVE_MISSING_IDS", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DBNAME",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendS3 || cfg.Storage.Bucket != "medium-usecase-bucket" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if got := cfg.Storage.Key(); got != "medium-rss-data/medium_articles_master.json" {
		t.Errorf("key = %q", got)
	}
	if cfg.Ingest.FeedList != "aiml" || cfg.Ingest.MaxFeeds != 30 || cfg.Ingest.MinDelay != 2 || cfg.Ingest.MaxDelay != 5 {
		t.Errorf("ingest = %+v", cfg.Ingest)
	}
	if cfg.Storage.SQLitePath == "" {
		t.Error("sqlite path should default to the data dir")
	}
}

func TestFileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
storage:
  backend: sqlite
  bucket: local
ingest:
  feed_list: tech
  max_feeds: 5
`)
	t.Setenv("MAX_FEEDS", "7")
	t.Setenv("S3_PREFIX", "other/")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Bucket != "local" {
		t.Errorf("file values lost: %+v", cfg.Storage)
	}
	if cfg.Storage.File != "medium_articles_master.json" {
		t.Errorf("unset file field should keep default, got %q", cfg.Storage.File)
	}
	if cfg.Ingest.FeedList != "tech" {
		t.Errorf("feed_list = %q", cfg.Ingest.FeedList)
	}
	if cfg.Ingest.MaxFeeds != 7 || cfg.Storage.Prefix != "other/" {
		t.Errorf("env should win: max_feeds=%d prefix=%q", cfg.Ingest.MaxFeeds, cfg.Storage.Prefix)
	}
}

func TestConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, writeConfig(t, "log_level: debug\n"))
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
}

func TestBadIntEnvKeepsValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_FEEDS", "lots")
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Ingest.MaxFeeds != 30 {
		t.Fatalf("max_feeds = %d", cfg.Ingest.MaxFeeds)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "storage: [", "parsing config"},
		{"unknown backend", "storage:\n  backend: ftp\n", "storage.backend"},
		{"empty bucket", "storage:\n  bucket: \"\"\n", "storage.bucket"},
		{"inverted delays", "ingest:\n  min_delay: 5\n  max_delay: 1\n", "delays"},
		{"negative max feeds", "ingest:\n  max_feeds: -1\n", "max_feeds"},
		{"bad timeout", "ingest:\n  fetch_timeout: soon\n", "fetch_timeout"},
		{"bad custom feed", "ingest:\n  custom_feeds: [\"ftp://x/rss\"]\n", "custom_feeds[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestExplicitMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing explicit config should fail")
	}
}

func TestFetchTimeoutDuration(t *testing.T) {
	if got := (IngestConfig{FetchTimeout: "5s"}).FetchTimeoutDuration(); got.Seconds() != 5 {
		t.Errorf("got %v", got)
	}
	if got := (IngestConfig{}).FetchTimeoutDuration(); got.Seconds() != 20 {
		t.Errorf("fallback = %v", got)
	}
}
