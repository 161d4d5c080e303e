package config

import (
	"fmt"
	"os"
	"strconv"
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
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"log"`
	Wiki struct {
		BaseURL   string        `yaml:"base_url"`
		UserAgent string        `yaml:"user_agent"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"wiki"`
	Cache struct {
		Enabled bool `yaml:"enabled"`
		TTL     struct {
			Mapping time.Duration `yaml:"mapping"`
			Prices  time.Duration `yaml:"prices"`
			Volumes time.Duration `yaml:"volumes"`
		} `yaml:"ttl"`
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Refresh struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"refresh"`
	Flip struct {
		Bank           int64         `yaml:"bank"`
		Slots          int           `yaml:"slots"`
		Top            int           `yaml:"top"`
		MinVolume24h   int64         `yaml:"min_vol_24h"`
		Aggressiveness float64       `yaml:"aggressiveness"`
		MinProfitUnit  int64         `yaml:"min_profit_unit"`
		TaxModel       string        `yaml:"tax_model"`
		RuneCost       int64         `yaml:"ha_rune_cost"`
		RequireHAFloor bool          `yaml:"require_ha_floor"`
		MaxAge         time.Duration `yaml:"max_age"`
		MaxDeviation   float64       `yaml:"max_deviation"`
	} `yaml:"flip"`
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

	// Validate required fields
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

	// Override with environment variables
	if v := os.Getenv("FLIPPULSE_USER_AGENT"); v != "" {
		c.Wiki.UserAgent = v
	}
	if v := os.Getenv("FLIPPULSE_BASE_URL"); v != "" {
		c.Wiki.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Cache.Redis.Addr = v
		c.Cache.Redis.Enabled = true
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}

	return c, nil
}

// applyDefaults fills unset fields with working defaults.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Wiki.BaseURL == "" {
		c.Wiki.BaseURL = "https://prices.runescape.wiki/api/v1/osrs"
	}
	if c.Wiki.Timeout == 0 {
		c.Wiki.Timeout = 30 * time.Second
	}
	if c.Cache.TTL.Mapping == 0 {
		c.Cache.TTL.Mapping = 6 * time.Hour
	}
	if c.Cache.TTL.Prices == 0 {
		c.Cache.TTL.Prices = time.Minute
	}
	if c.Cache.TTL.Volumes == 0 {
		c.Cache.TTL.Volumes = 10 * time.Minute
	}
	if c.Refresh.Interval == 0 {
		c.Refresh.Interval = 5 * time.Minute
	}
	if c.Flip.Bank == 0 {
		c.Flip.Bank = 10_000_000
	}
	if c.Flip.Slots == 0 {
		c.Flip.Slots = 5
	}
	if c.Flip.Top == 0 {
		c.Flip.Top = 25
	}
	if c.Flip.MinVolume24h == 0 {
		c.Flip.MinVolume24h = 20_000
	}
	if c.Flip.Aggressiveness == 0 {
		c.Flip.Aggressiveness = 0.15
	}
	if c.Flip.MinProfitUnit == 0 {
		c.Flip.MinProfitUnit = 5
	}
	if c.Flip.TaxModel == "" {
		c.Flip.TaxModel = "standard"
	}
	if c.Flip.RuneCost == 0 {
		c.Flip.RuneCost = 180
	}
	if c.Flip.MaxAge == 0 {
		c.Flip.MaxAge = 30 * time.Minute
	}
	if c.Flip.MaxDeviation == 0 {
		c.Flip.MaxDeviation = 0.20
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Wiki.UserAgent == "" {
		return fmt.Errorf("wiki.user_agent is required (the price API asks for a descriptive User-Agent)")
	}
	if c.Flip.Bank <= 0 {
		return fmt.Errorf("flip.bank must be positive")
	}
	if c.Flip.Slots < 1 {
		return fmt.Errorf("flip.slots must be at least 1")
	}
	if c.Flip.Aggressiveness < 0 || c.Flip.Aggressiveness > 0.5 {
		return fmt.Errorf("flip.aggressiveness must be in [0, 0.5], got %v", c.Flip.Aggressiveness)
	}
	switch c.Flip.TaxModel {
	case "standard", "legacy", "none":
	default:
		return fmt.Errorf("flip.tax_model must be 'standard', 'legacy' or 'none', got '%s'", c.Flip.TaxModel)
	}
	if c.Flip.MaxDeviation <= 0 || c.Flip.MaxDeviation > 1 {
		return fmt.Errorf("flip.max_deviation must be in (0, 1], got %v", c.Flip.MaxDeviation)
	}
	if c.Cache.Redis.Enabled && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("cache.redis.addr is required when redis is enabled")
	}
	return nil
}
