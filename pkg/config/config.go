package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	xutil "StockLens/pkg/util"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"90s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	MarketData struct {
		BaseURL     string        `yaml:"base_url" default:"https://www.alphavantage.co/query" validate:"required,url"`
		APIKey      string        `yaml:"api_key"`
		Timeout     time.Duration `yaml:"timeout"` // 0 means no client timeout
		CacheTTL    time.Duration `yaml:"cache_ttl" default:"5m" validate:"gt=0"`
		RateWindow  time.Duration `yaml:"rate_window" default:"60s" validate:"gt=0"`
		RateCeiling int           `yaml:"rate_ceiling" default:"5" validate:"gte=1"`
	} `yaml:"market_data"`
	AI struct {
		BaseURL     string        `yaml:"base_url" default:"https://api.openai.com/v1" validate:"required,url"`
		Timeout     time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
		MaxAttempts int           `yaml:"max_attempts" default:"3" validate:"gte=1,lte=10"`
		Backoff     time.Duration `yaml:"backoff" default:"200ms"`
		Temperature float64       `yaml:"temperature" default:"0.7" validate:"gte=0,lte=2"`
		MaxTokens   int           `yaml:"max_tokens" default:"2000" validate:"gte=1"`
	} `yaml:"ai"`
	Session struct {
		TTL       time.Duration `yaml:"ttl" default:"30m" validate:"gt=0"`
		AdminCode string        `yaml:"admin_code"`
	} `yaml:"session"`
	Events struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string        `yaml:"topic" default:"analysis.completed"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Compression  string        `yaml:"compression" default:"snappy" validate:"oneof=gzip snappy lz4 zstd"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		Async        bool          `yaml:"async" default:"true"`
	} `yaml:"events"`
}

var validate = validator.New()

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	return c, nil
}

// LoadWithEnv loads config from YAML, overrides with environment variables,
// then validates.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	ApplyEnv(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides select fields from the environment, mostly secrets.
func ApplyEnv(c *Config) {
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.MarketData.APIKey = v
	}
	if v := os.Getenv("MARKET_DATA_BASE_URL"); v != "" {
		c.MarketData.BaseURL = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.AI.BaseURL = v
	}
	if v := os.Getenv("ADMIN_CODE"); v != "" {
		c.Session.AdminCode = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		c.Server.Port = xutil.ParseIntDefault(v, c.Server.Port)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("EVENTS_ENABLED"); v != "" {
		c.Events.Enabled = xutil.ParseBoolDefault(v, c.Events.Enabled)
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Events.Brokers = xutil.SplitCSV(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Events.Topic = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.MarketData.APIKey == "" {
		return fmt.Errorf("market_data.api_key is required")
	}
	return nil
}
