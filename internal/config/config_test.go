package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load with missing file should use defaults: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("listen = %q, want :8080", cfg.Server.Listen)
	}
	if cfg.Defaults.Days != 20 {
		t.Errorf("days = %d, want 20", cfg.Defaults.Days)
	}
	if cfg.Defaults.PriceMax != PriceCeil {
		t.Errorf("price_max = %v, want %v", cfg.Defaults.PriceMax, PriceCeil)
	}
	if cfg.Tickers["apple"] != "AAPL" || cfg.Tickers["amazon"] != "AMZN" {
		t.Errorf("default tickers missing: %v", cfg.Tickers)
	}
	if len(cfg.Defaults.Selected) != 4 {
		t.Errorf("default selection = %v", cfg.Defaults.Selected)
	}
	if cfg.Cache.Backend != "memory" {
		t.Errorf("cache backend = %q, want memory", cfg.Cache.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  listen: ":9090"
tickers:
  apple: AAPL
defaults:
  days: 5
  selected: [apple]
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Listen != ":9090" {
		t.Errorf("listen = %q, want :9090", cfg.Server.Listen)
	}
	if cfg.Defaults.Days != 5 {
		t.Errorf("days = %d, want 5", cfg.Defaults.Days)
	}
	if len(cfg.Tickers) != 1 {
		t.Errorf("tickers = %v, want only apple", cfg.Tickers)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("config should validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		cfg, _ := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"days too large", func(c *Config) { c.Defaults.Days = 51 }},
		{"days too small", func(c *Config) { c.Defaults.Days = -1 }},
		{"range above ceiling", func(c *Config) { c.Defaults.PriceMax = 4000 }},
		{"min above max", func(c *Config) { c.Defaults.PriceMin = 100; c.Defaults.PriceMax = 50 }},
		{"unknown selected", func(c *Config) { c.Defaults.Selected = []string{"tesla"} }},
		{"bad backend", func(c *Config) { c.Cache.Backend = "redis" }},
		{"no tickers", func(c *Config) { c.Tickers = nil }},
		{"bad increment", func(c *Config) { c.Fetch.LookbackIncrement = -30 }},
	}
	for _, tt := range tests {
		cfg := base()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}
