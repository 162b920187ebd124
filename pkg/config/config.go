package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		RequestBudget   time.Duration `yaml:"request_budget"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Providers struct {
		LookbackDays   int           `yaml:"lookback_days"`
		AttemptTimeout time.Duration `yaml:"attempt_timeout"`
		Retry          struct {
			MaxAttempts int           `yaml:"max_attempts"`
			BaseDelay   time.Duration `yaml:"base_delay"`
			MaxDelay    time.Duration `yaml:"max_delay"`
		} `yaml:"retry"`
		TwelveData struct {
			APIKey  string `yaml:"api_key"`
			BaseURL string `yaml:"base_url"`
		} `yaml:"twelvedata"`
		Yahoo struct {
			BaseURL string `yaml:"base_url"`
		} `yaml:"yahoo"`
	} `yaml:"providers"`
	Cache struct {
		Backend string `yaml:"backend"` // file, redis, clickhouse
		Dir     string `yaml:"dir"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		ClickHouse struct {
			Host         string        `yaml:"host"`
			Port         int           `yaml:"port"`
			Database     string        `yaml:"database"`
			User         string        `yaml:"user"`
			Password     string        `yaml:"password"`
			UseHTTP      bool          `yaml:"use_http"`
			DialTimeout  time.Duration `yaml:"dial_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
		} `yaml:"clickhouse"`
	} `yaml:"cache"`
	Sentiment struct {
		MaxHeadlines int           `yaml:"max_headlines"`
		Timeout      time.Duration `yaml:"timeout"`
		FeedURL      string        `yaml:"feed_url"`
	} `yaml:"sentiment"`
	Model struct {
		MinSamples  int           `yaml:"min_samples"`
		LowerBound  int           `yaml:"lower_bound"`
		TestRatio   float64       `yaml:"test_ratio"`
		RidgeLambda float64       `yaml:"ridge_lambda"`
		CacheTTL    time.Duration `yaml:"cache_ttl"`
	} `yaml:"model"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("TWELVE_DATA_KEY"); v != "" {
		c.Providers.TwelveData.APIKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("CACHE_DIR"); v != "" {
		c.Cache.Dir = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.RequestBudget <= 0 {
		c.Server.RequestBudget = 30 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Providers.LookbackDays <= 0 {
		c.Providers.LookbackDays = 180
	}
	if c.Providers.AttemptTimeout <= 0 {
		c.Providers.AttemptTimeout = 15 * time.Second
	}
	if c.Providers.Retry.MaxAttempts <= 0 {
		c.Providers.Retry.MaxAttempts = 3
	}
	if c.Providers.Retry.BaseDelay <= 0 {
		c.Providers.Retry.BaseDelay = 500 * time.Millisecond
	}
	if c.Providers.Retry.MaxDelay <= 0 {
		c.Providers.Retry.MaxDelay = 8 * time.Second
	}
	if c.Providers.TwelveData.BaseURL == "" {
		c.Providers.TwelveData.BaseURL = "https://api.twelvedata.com"
	}
	if c.Providers.Yahoo.BaseURL == "" {
		c.Providers.Yahoo.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "file"
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = ".cache/quotes"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "stockmind"
	}
	if c.Sentiment.MaxHeadlines <= 0 {
		c.Sentiment.MaxHeadlines = 5
	}
	if c.Sentiment.Timeout <= 0 {
		c.Sentiment.Timeout = 10 * time.Second
	}
	if c.Sentiment.FeedURL == "" {
		c.Sentiment.FeedURL = "https://news.google.com/rss/search"
	}
	if c.Model.MinSamples <= 0 {
		c.Model.MinSamples = 50
	}
	if c.Model.LowerBound <= 0 {
		c.Model.LowerBound = 20
	}
	if c.Model.TestRatio <= 0 || c.Model.TestRatio >= 1 {
		c.Model.TestRatio = 0.2
	}
	if c.Model.RidgeLambda <= 0 {
		c.Model.RidgeLambda = 1.0
	}
	if c.Model.CacheTTL <= 0 {
		c.Model.CacheTTL = 10 * time.Minute
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Cache.Backend {
	case "file", "redis", "clickhouse":
	default:
		return fmt.Errorf("cache.backend must be 'file', 'redis' or 'clickhouse', got '%s'", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required for redis backend")
	}
	if c.Cache.Backend == "clickhouse" && c.Cache.ClickHouse.Host == "" {
		return fmt.Errorf("cache.clickhouse.host is required for clickhouse backend")
	}
	if c.Model.LowerBound >= c.Model.MinSamples {
		return fmt.Errorf("model.lower_bound must be below model.min_samples")
	}
	return nil
}
