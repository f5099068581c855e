package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for newswatch.
type Config struct {
	Scrape  ScrapeConfig  `mapstructure:"scrape"  yaml:"scrape"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Filter  FilterConfig  `mapstructure:"filter"  yaml:"filter"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
}

// ScrapeConfig controls the scrape engine.
type ScrapeConfig struct {
	Concurrency     int           `mapstructure:"concurrency"      yaml:"concurrency"`
	MaxPages        int           `mapstructure:"max_pages"        yaml:"max_pages"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	PolitenessDelay time.Duration `mapstructure:"politeness_delay" yaml:"politeness_delay"`
	MaxRetries      int           `mapstructure:"max_retries"      yaml:"max_retries"`
	RetryDelay      time.Duration `mapstructure:"retry_delay"      yaml:"retry_delay"`
	UserAgents      []string      `mapstructure:"user_agents"      yaml:"user_agents"`
}

// FetcherConfig controls the page fetchers.
type FetcherConfig struct {
	Type            string        `mapstructure:"type"              yaml:"type"`
	FollowRedirects bool          `mapstructure:"follow_redirects"  yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"     yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"     yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"      yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    yaml:"max_idle_conns"`
	BrowserEnabled  bool          `mapstructure:"browser_enabled"   yaml:"browser_enabled"`
	BrowserPages    int           `mapstructure:"browser_pages"     yaml:"browser_pages"`
}

// FilterConfig controls keyword and region filtering.
type FilterConfig struct {
	// ExtraMarkers extends the built-in Riau Islands marker list.
	ExtraMarkers []string `mapstructure:"extra_markers" yaml:"extra_markers"`
}

// StorageConfig controls export and archive backends.
type StorageConfig struct {
	Format     string      `mapstructure:"format"      yaml:"format"` // csv, json, jsonl
	OutputPath string      `mapstructure:"output_path" yaml:"output_path"`
	Mongo      MongoConfig `mapstructure:"mongo"       yaml:"mongo"`
}

// MongoConfig controls the optional MongoDB archive.
type MongoConfig struct {
	Enabled    bool   `mapstructure:"enabled"    yaml:"enabled"`
	URI        string `mapstructure:"uri"        yaml:"uri"`
	Database   string `mapstructure:"database"   yaml:"database"`
	Collection string `mapstructure:"collection" yaml:"collection"`
}

// ServerConfig controls the dashboard server.
type ServerConfig struct {
	Port       int           `mapstructure:"port"        yaml:"port"`
	RunTimeout time.Duration `mapstructure:"run_timeout" yaml:"run_timeout"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// MetricsConfig controls the metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Port    int    `mapstructure:"port"    yaml:"port"`
	Path    string `mapstructure:"path"    yaml:"path"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scrape: ScrapeConfig{
			Concurrency:     8,
			MaxPages:        10,
			RequestTimeout:  30 * time.Second,
			PolitenessDelay: 500 * time.Millisecond,
			MaxRetries:      3,
			RetryDelay:      2 * time.Second,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Fetcher: FetcherConfig{
			Type:            "http",
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			BrowserPages:    4,
		},
		Storage: StorageConfig{
			Format:     "csv",
			OutputPath: "./output",
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "newswatch",
				Collection: "articles",
			},
		},
		Server: ServerConfig{
			Port:       8080,
			RunTimeout: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}
