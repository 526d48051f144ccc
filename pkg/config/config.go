package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/newsdeck/pkg/domain"
	"github.com/umputun/newsdeck/pkg/feed"
	"github.com/umputun/newsdeck/pkg/scoring"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS export links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Store StoreConfig `yaml:"store" json:"store" jsonschema:"description=Storage of source overrides and visit history"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Content fetching configuration"`

	Scoring struct {
		RecentDomainsLimit int     `yaml:"recent_domains_limit" json:"recent_domains_limit" jsonschema:"default=25,minimum=1,description=Number of recently visited domains used for scoring"`
		RecencyPenalty     *float64 `yaml:"recency_penalty" json:"recency_penalty" jsonschema:"default=5,minimum=0,description=Score subtracted from items of recently visited domains"`
	} `yaml:"scoring" json:"scoring" jsonschema:"description=Scoring configuration"`

	Layout domain.Metrics `yaml:"layout" json:"layout" jsonschema:"description=Card height estimation metrics"`

	History struct {
		Retention     time.Duration `yaml:"retention" json:"retention" jsonschema:"default=720h,description=How long visits are kept"`
		PruneInterval time.Duration `yaml:"prune_interval" json:"prune_interval" jsonschema:"default=24h,description=How often old visits are removed"`
	} `yaml:"history" json:"history" jsonschema:"description=Visit history configuration"`
}

// StoreConfig holds database and redis settings
type StoreConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdeck.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	RedisURL        string `yaml:"redis_url" json:"redis_url" jsonschema:"description=Redis URL, keeps source overrides in redis when set"`
	RedisPrefix     string `yaml:"redis_prefix" json:"redis_prefix" jsonschema:"description=Prefix of redis keys"`
}

// FetchConfig holds content endpoints and RSS publishers
type FetchConfig struct {
	SourcesURL    string           `yaml:"sources_url" json:"sources_url" jsonschema:"description=URL of the publishers JSON endpoint"`
	ContentURL    string           `yaml:"content_url" json:"content_url" jsonschema:"description=URL of the content JSON endpoint"`
	Timeout       time.Duration    `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UserAgent     string           `yaml:"user_agent" json:"user_agent" jsonschema:"default=Newsdeck/1.0,description=User agent for HTTP requests"`
	RateLimit     time.Duration    `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=200ms,description=Minimal interval between RSS requests"`
	RetryInterval time.Duration    `yaml:"retry_interval" json:"retry_interval" jsonschema:"default=1m,description=Delay before retrying a failed feed load"`
	MaxConcurrent int              `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,minimum=1,description=Maximum concurrent RSS requests"`
	Publishers    []feed.Publisher `yaml:"publishers" json:"publishers" jsonschema:"description=RSS/Atom publishers"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// store
	if c.Store.DSN == "" {
		c.Store.DSN = "file:newsdeck.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Store.MaxOpenConns == 0 {
		c.Store.MaxOpenConns = 10
	}
	if c.Store.MaxIdleConns == 0 {
		c.Store.MaxIdleConns = 5
	}
	if c.Store.ConnMaxLifetime == 0 {
		c.Store.ConnMaxLifetime = 3600
	}

	// fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Newsdeck/1.0"
	}
	if c.Fetch.RateLimit == 0 {
		c.Fetch.RateLimit = 200 * time.Millisecond
	}
	if c.Fetch.RetryInterval == 0 {
		c.Fetch.RetryInterval = time.Minute
	}
	if c.Fetch.MaxConcurrent == 0 {
		c.Fetch.MaxConcurrent = 4
	}

	// scoring, explicit zero penalty is kept
	if c.Scoring.RecentDomainsLimit == 0 {
		c.Scoring.RecentDomainsLimit = 25
	}
	if c.Scoring.RecencyPenalty == nil {
		penalty := scoring.DefaultRecencyPenalty
		c.Scoring.RecencyPenalty = &penalty
	}

	// layout, each unset metric takes its default
	def := domain.DefaultMetrics()
	fill := func(v *float64, d float64) {
		if *v == 0 {
			*v = d
		}
	}
	fill(&c.Layout.ImageRatio, def.ImageRatio)
	fill(&c.Layout.HeadlineText, def.HeadlineText)
	fill(&c.Layout.SponsorText, def.SponsorText)
	fill(&c.Layout.PairText, def.PairText)
	fill(&c.Layout.GroupRow, def.GroupRow)
	fill(&c.Layout.NumberedRow, def.NumberedRow)
	fill(&c.Layout.DealsHeight, def.DealsHeight)
	fill(&c.Layout.TitleHeight, def.TitleHeight)
	fill(&c.Layout.HorizontalGroup, def.HorizontalGroup)

	// history
	if c.History.Retention == 0 {
		c.History.Retention = 30 * 24 * time.Hour
	}
	if c.History.PruneInterval == 0 {
		c.History.PruneInterval = 24 * time.Hour
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}

	// validate fetch config
	if (cfg.Fetch.SourcesURL == "") != (cfg.Fetch.ContentURL == "") {
		return errors.New("fetch.sources_url and fetch.content_url must be set together")
	}
	if cfg.Fetch.ContentURL == "" && len(cfg.Fetch.Publishers) == 0 {
		return errors.New("either fetch.content_url or fetch.publishers is required")
	}
	if cfg.Fetch.Timeout < time.Second {
		return errors.New("fetch timeout must be at least 1 second")
	}
	if cfg.Fetch.MaxConcurrent < 1 {
		return errors.New("fetch.max_concurrent must be at least 1")
	}
	seen := make(map[string]bool, len(cfg.Fetch.Publishers))
	for i, p := range cfg.Fetch.Publishers {
		if p.ID == "" || p.URL == "" {
			return fmt.Errorf("fetch.publishers[%d]: id and url are required", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("fetch.publishers[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true
	}

	// validate scoring config
	if cfg.Scoring.RecentDomainsLimit < 1 {
		return errors.New("scoring.recent_domains_limit must be at least 1")
	}
	if cfg.Scoring.RecencyPenalty != nil && *cfg.Scoring.RecencyPenalty < 0 {
		return errors.New("scoring.recency_penalty must be non-negative")
	}

	// validate layout config
	m := cfg.Layout
	for name, v := range map[string]float64{
		"image_ratio": m.ImageRatio, "headline_text": m.HeadlineText, "sponsor_text": m.SponsorText,
		"pair_text": m.PairText, "group_row": m.GroupRow, "numbered_row": m.NumberedRow,
		"deals_height": m.DealsHeight, "title_height": m.TitleHeight, "horizontal_group": m.HorizontalGroup,
	} {
		if v < 0 {
			return fmt.Errorf("layout.%s must be non-negative", name)
		}
	}

	if cfg.History.Retention < time.Minute {
		return errors.New("history.retention must be at least 1 minute")
	}

	return nil
}

// Publishers returns RSS publishers
func (c *Config) Publishers() []feed.Publisher {
	return c.Fetch.Publishers
}

// GetRecencyPenalty returns the score penalty of recently visited domains
func (c *Config) GetRecencyPenalty() float64 {
	if c.Scoring.RecencyPenalty == nil {
		return scoring.DefaultRecencyPenalty
	}
	return *c.Scoring.RecencyPenalty
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the external base URL of the server
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetLayout returns card height metrics
func (c *Config) GetLayout() domain.Metrics {
	return c.Layout
}
