package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bounds for the user-adjustable controls.
const (
	MinDays    = 1
	MaxDays    = 50
	PriceFloor = 0.0
	PriceCeil  = 3500.0
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Listen string `yaml:"listen"`
	} `yaml:"server"`
	Tickers  map[string]string `yaml:"tickers"` // display name -> exchange symbol
	Defaults struct {
		Days     int      `yaml:"days"`
		Selected []string `yaml:"selected"`
		PriceMin float64  `yaml:"price_min"`
		PriceMax float64  `yaml:"price_max"`
	} `yaml:"defaults"`
	Fetch struct {
		LookbackIncrement int `yaml:"lookback_increment"`
		MaxWidenings      int `yaml:"max_widenings"`
	} `yaml:"fetch"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Cache struct {
		Backend   string `yaml:"backend"` // "memory" or "sqlite"
		SQLiteDSN string `yaml:"sqlite_dsn"`
	} `yaml:"cache"`
	Refresh struct {
		Cron string `yaml:"cron"` // empty disables the prewarmer
	} `yaml:"refresh"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("SQLITE_DSN"); v != "" {
		cfg.Cache.SQLiteDSN = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Refresh.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = map[string]string{
			"apple":     "AAPL",
			"meta":      "META",
			"google":    "GOOGL",
			"microsoft": "MSFT",
			"netflix":   "NFLX",
			"amazon":    "AMZN",
		}
	}
	if cfg.Defaults.Days == 0 {
		cfg.Defaults.Days = 20
	}
	if len(cfg.Defaults.Selected) == 0 {
		cfg.Defaults.Selected = []string{"google", "amazon", "meta", "apple"}
	}
	if cfg.Defaults.PriceMax == 0 {
		cfg.Defaults.PriceMax = PriceCeil
	}
	if cfg.Fetch.LookbackIncrement == 0 {
		cfg.Fetch.LookbackIncrement = 30
	}
	if cfg.Fetch.MaxWidenings == 0 {
		cfg.Fetch.MaxWidenings = 12
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}

	return cfg, nil
}

// Validate checks that all fields are consistent.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	if c.Defaults.Days < MinDays || c.Defaults.Days > MaxDays {
		return fmt.Errorf("defaults.days must be in [%d,%d], got %d", MinDays, MaxDays, c.Defaults.Days)
	}
	if c.Defaults.PriceMin < PriceFloor || c.Defaults.PriceMax > PriceCeil {
		return fmt.Errorf("price range must stay within [%.1f,%.1f]", PriceFloor, PriceCeil)
	}
	if c.Defaults.PriceMin > c.Defaults.PriceMax {
		return fmt.Errorf("defaults.price_min must not exceed defaults.price_max")
	}
	for _, name := range c.Defaults.Selected {
		if _, ok := c.Tickers[name]; !ok {
			return fmt.Errorf("defaults.selected contains unknown company %q", name)
		}
	}
	if c.Fetch.LookbackIncrement <= 0 {
		return fmt.Errorf("fetch.lookback_increment must be positive")
	}
	if c.Fetch.MaxWidenings <= 0 {
		return fmt.Errorf("fetch.max_widenings must be positive")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "sqlite" {
		return fmt.Errorf("cache.backend must be \"memory\" or \"sqlite\", got %q", c.Cache.Backend)
	}
	return nil
}
