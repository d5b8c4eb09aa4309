package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:oddscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sources  SourcesConfig  `yaml:"sources" json:"sources" jsonschema:"description=Content source configuration"`
	AI       AIConfig       `yaml:"ai" json:"ai" jsonschema:"description=AI enhancement configuration"`
	Pipeline PipelineConfig `yaml:"pipeline" json:"pipeline" jsonschema:"description=Ingestion pipeline configuration"`
}

// SourcesConfig holds per-source adapter settings. An adapter is registered
// only when its Enabled flag is set; adapters requiring credentials yield no
// candidates without them.
type SourcesConfig struct {
	Reddit struct {
		Enabled    bool     `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable Reddit scraping"`
		Subreddits []string `yaml:"subreddits" json:"subreddits" jsonschema:"description=Subreddits to scrape (defaults to a built-in set)"`
	} `yaml:"reddit" json:"reddit"`

	RSS struct {
		Enabled bool     `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable RSS scraping"`
		Feeds   []string `yaml:"feeds" json:"feeds" jsonschema:"description=Feed URLs (defaults to a built-in set)"`
	} `yaml:"rss" json:"rss"`

	Twitter struct {
		Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable Twitter scraping"`
		APIKey  string `yaml:"api_key" json:"api_key" jsonschema:"description=Twitter API bearer token"`
	} `yaml:"twitter" json:"twitter"`

	YouTube struct {
		Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable YouTube scraping"`
		APIKey  string `yaml:"api_key" json:"api_key" jsonschema:"description=YouTube Data API key"`
	} `yaml:"youtube" json:"youtube"`

	Freesound struct {
		Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable Freesound scraping"`
		APIKey  string `yaml:"api_key" json:"api_key" jsonschema:"description=Freesound API token"`
	} `yaml:"freesound" json:"freesound"`

	Archive struct {
		Enabled bool `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable Archive.org scraping"`
	} `yaml:"archive" json:"archive"`
}

// AIConfig holds settings for the AI enhancer
type AIConfig struct {
	Endpoint    string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey      string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable); empty disables enhancement"`
	Model       string        `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Default temperature for response generation"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=200,description=Maximum tokens in response"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
}

// PipelineConfig holds ingestion and relationship tuning. The strength weights
// and thresholds are deliberately configurable; the defaults are monotonic in
// similarity but the specific constants carry no deeper meaning.
type PipelineConfig struct {
	MaxPerSource      int           `yaml:"max_per_source" json:"max_per_source" jsonschema:"default=15,description=Maximum candidates fetched per source"`
	BatchSize         int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=5,minimum=1,description=Items enhanced/persisted per batch"`
	MaxWorkers        int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent workers"`
	RateLimit         time.Duration `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=250ms,description=Pause between enhancement batches"`
	MinStrength       float64       `yaml:"min_strength" json:"min_strength" jsonschema:"default=0.3,description=Minimum strength for a relationship to persist"`
	SimilarThreshold  float64       `yaml:"similar_threshold" json:"similar_threshold" jsonschema:"default=0.7,description=Strength above which a pair is classified similar"`
	FollowUpThreshold float64       `yaml:"follow_up_threshold" json:"follow_up_threshold" jsonschema:"default=0.4,description=Same-source strength above which a pair is classified follow_up"`
	TagWeight         float64       `yaml:"tag_weight" json:"tag_weight" jsonschema:"default=0.2,description=Strength contribution per shared tag"`
	SourceBonus       float64       `yaml:"source_bonus" json:"source_bonus" jsonschema:"default=0.3,description=Strength bonus for same-source pairs"`
	TitleWordWeight   float64       `yaml:"title_word_weight" json:"title_word_weight" jsonschema:"default=0.1,description=Strength contribution per shared significant title word"`
	MaxRelationships  int           `yaml:"max_relationships" json:"max_relationships" jsonschema:"default=500,description=Cap on relationships created per run"`
	MaxRelateItems    int           `yaml:"max_relate_items" json:"max_relate_items" jsonschema:"default=100,description=Recent stored items considered alongside the current run when rebuilding relationships"`
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

	// validate configuration
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

// Default returns a config with all defaults applied, used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.Sources.Reddit.Enabled = true
	cfg.Sources.RSS.Enabled = true
	cfg.Sources.Archive.Enabled = true
	cfg.setDefaults()
	return cfg
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:oddscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// ai
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
	if c.AI.Temperature == 0 {
		c.AI.Temperature = 0.3
	}
	if c.AI.MaxTokens == 0 {
		c.AI.MaxTokens = 200
	}
	if c.AI.Timeout == 0 {
		c.AI.Timeout = 30 * time.Second
	}

	// pipeline
	if c.Pipeline.MaxPerSource == 0 {
		c.Pipeline.MaxPerSource = 15
	}
	if c.Pipeline.BatchSize == 0 {
		c.Pipeline.BatchSize = 5
	}
	if c.Pipeline.MaxWorkers == 0 {
		c.Pipeline.MaxWorkers = 5
	}
	if c.Pipeline.RateLimit == 0 {
		c.Pipeline.RateLimit = 250 * time.Millisecond
	}
	if c.Pipeline.MinStrength == 0 {
		c.Pipeline.MinStrength = 0.3
	}
	if c.Pipeline.SimilarThreshold == 0 {
		c.Pipeline.SimilarThreshold = 0.7
	}
	if c.Pipeline.FollowUpThreshold == 0 {
		c.Pipeline.FollowUpThreshold = 0.4
	}
	if c.Pipeline.TagWeight == 0 {
		c.Pipeline.TagWeight = 0.2
	}
	if c.Pipeline.SourceBonus == 0 {
		c.Pipeline.SourceBonus = 0.3
	}
	if c.Pipeline.TitleWordWeight == 0 {
		c.Pipeline.TitleWordWeight = 0.1
	}
	if c.Pipeline.MaxRelationships == 0 {
		c.Pipeline.MaxRelationships = 500
	}
	if c.Pipeline.MaxRelateItems == 0 {
		c.Pipeline.MaxRelateItems = 100
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate ai config
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2")
	}

	// validate pipeline config
	if cfg.Pipeline.BatchSize < 1 {
		return fmt.Errorf("pipeline.batch_size must be at least 1")
	}
	if cfg.Pipeline.MinStrength < 0 || cfg.Pipeline.MinStrength > 1 {
		return fmt.Errorf("pipeline.min_strength must be between 0 and 1")
	}
	if cfg.Pipeline.SimilarThreshold < cfg.Pipeline.FollowUpThreshold {
		return fmt.Errorf("pipeline.similar_threshold must not be below follow_up_threshold")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetAIConfig returns AI enhancement configuration
func (c *Config) GetAIConfig() AIConfig {
	return c.AI
}

// GetPipelineConfig returns pipeline configuration
func (c *Config) GetPipelineConfig() PipelineConfig {
	return c.Pipeline
}
