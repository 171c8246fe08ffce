package config

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"rssingest/internal/helper"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

const (
	EnvConfigFile = "RSSINGEST_CONFIG"

	BackendS3       = "s3"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	LogLevel    string         `yaml:"log_level"`
	ControlAddr string         `yaml:"control_addr"`
	Storage     StorageConfig  `yaml:"storage"`
	Ingest      IngestConfig   `yaml:"ingest"`
	Postgres    PostgresConfig `yaml:"postgres"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Bucket     string `yaml:"bucket"`
	Prefix     string `yaml:"prefix"`
	File       string `yaml:"file"`
	Region     string `yaml:"region"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Key is the object key of the article collection document.
func (s StorageConfig) Key() string {
	return s.Prefix + s.File
}

type IngestConfig struct {
	FeedList         string   `yaml:"feed_list"`
	MaxFeeds         int      `yaml:"max_feeds"`
	MinDelay         float64  `yaml:"min_delay"`
	MaxDelay         float64  `yaml:"max_delay"`
	FetchTimeout     string   `yaml:"fetch_timeout"`
	UserAgent        string   `yaml:"user_agent"`
	DeriveMissingIDs bool     `yaml:"derive_missing_ids"`
	CustomFeeds      []string `yaml:"custom_feeds"`
}

func (i IngestConfig) FetchTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(i.FetchTimeout)
	if err != nil || d <= 0 {
		return 20 * time.Second
	}
	return d
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "rssingest", "config.yaml")
}

func DefaultSQLitePath() string {
	return filepath.Join(xdg.DataHome, "rssingest", "documents.db")
}

// Load builds the configuration from the embedded defaults, then the config
// file, then environment variables. An explicit path (argument or
// RSSINGEST_CONFIG) must exist; the XDG default path is optional.
func Load(path string) (Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return Config{}, err
	}

	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path == "" {
		path = DefaultConfigPath()
		explicit = false
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	applyEnv(&cfg)
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = DefaultSQLitePath()
	}

	if err := validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadDefaults() (Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return Config{}, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing embedded config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.LogLevel = getenv("LOG_LEVEL", cfg.LogLevel)
	cfg.ControlAddr = getenv("CONTROL_ADDR", cfg.ControlAddr)

	cfg.Storage.Backend = getenv("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.Bucket = getenv("S3_BUCKET_NAME", cfg.Storage.Bucket)
	cfg.Storage.Prefix = getenv("S3_PREFIX", cfg.Storage.Prefix)
	cfg.Storage.File = getenv("S3_MAIN_FILE", cfg.Storage.File)
	cfg.Storage.Region = getenv("AWS_REGION", cfg.Storage.Region)
	cfg.Storage.SQLitePath = getenv("SQLITE_PATH", cfg.Storage.SQLitePath)

	cfg.Ingest.FeedList = getenv("FEED_LIST", cfg.Ingest.FeedList)
	cfg.Ingest.MaxFeeds = parseIntEnv("MAX_FEEDS", cfg.Ingest.MaxFeeds)
	cfg.Ingest.MinDelay = parseFloatEnv("MIN_DELAY", cfg.Ingest.MinDelay)
	cfg.Ingest.MaxDelay = parseFloatEnv("MAX_DELAY", cfg.Ingest.MaxDelay)
	cfg.Ingest.DeriveMissingIDs = parseBoolEnv("DERIVE_MISSING_IDS", cfg.Ingest.DeriveMissingIDs)

	cfg.Postgres.Host = getenv("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = parseIntEnv("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = getenv("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = getenv("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Database = getenv("POSTGRES_DBNAME", cfg.Postgres.Database)
}

func validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendS3, BackendPostgres, BackendSQLite:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (valid: s3, postgres, sqlite)", cfg.Storage.Backend)
	}
	if strings.TrimSpace(cfg.Storage.Bucket) == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if strings.TrimSpace(cfg.Storage.File) == "" {
		return fmt.Errorf("storage.file is required")
	}
	if cfg.Ingest.MaxFeeds < 0 {
		return fmt.Errorf("ingest.max_feeds must be >= 0, got %d", cfg.Ingest.MaxFeeds)
	}
	if cfg.Ingest.MinDelay < 0 || cfg.Ingest.MaxDelay < cfg.Ingest.MinDelay {
		return fmt.Errorf("ingest delays must satisfy 0 <= min_delay <= max_delay, got %v..%v", cfg.Ingest.MinDelay, cfg.Ingest.MaxDelay)
	}
	if cfg.Ingest.FetchTimeout != "" {
		if _, err := time.ParseDuration(cfg.Ingest.FetchTimeout); err != nil {
			return fmt.Errorf("ingest.fetch_timeout: %w", err)
		}
	}
	for i, u := range cfg.Ingest.CustomFeeds {
		if err := helper.ValidateFeedURL(u); err != nil {
			return fmt.Errorf("ingest.custom_feeds[%d]: %w", i, err)
		}
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseBoolEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
