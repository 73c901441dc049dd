package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/adpulse/ingestor/internal/ratelimit"
)

// ProviderConfig configures one external ad-archive provider.
type ProviderConfig struct {
	BaseURL   string           `yaml:"base_url"`
	APIKey    string           `yaml:"api_key"`
	RateLimit ratelimit.Config `yaml:"rate_limit"`
}

// Config is the service configuration, loaded from YAML with env overrides.
type Config struct {
	Database struct {
		DSN   string `yaml:"dsn"`
		Debug bool   `yaml:"debug"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Ingest struct {
		BatchSize int `yaml:"batch_size"`
	} `yaml:"ingest"`
	Providers map[string]ProviderConfig `yaml:"providers"`
	LogLevel  string                    `yaml:"log_level"`
}

// Default returns a runnable local configuration.
func Default() Config {
	var cfg Config
	cfg.Database.DSN = "file:adpulse.db"
	cfg.Server.Addr = ":8080"
	cfg.Ingest.BatchSize = 0 // ingestor applies its own default
	cfg.Providers = map[string]ProviderConfig{
		"scrapecreators": {BaseURL: "https://api.scrapecreators.com"},
		"meta_api":       {BaseURL: "https://graph.facebook.com/v18.0"},
	}
	cfg.LogLevel = "info"
	return cfg
}

// Load reads YAML config from path (optional) and applies env overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADPULSE_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("ADPULSE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ADPULSE_BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Ingest.BatchSize = n
		}
	}
	if v := os.Getenv("ADPULSE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCRAPECREATORS_API_KEY"); v != "" {
		p := cfg.Providers["scrapecreators"]
		p.APIKey = v
		cfg.Providers["scrapecreators"] = p
	}
	if v := os.Getenv("META_ACCESS_TOKEN"); v != "" {
		p := cfg.Providers["meta_api"]
		p.APIKey = v
		cfg.Providers["meta_api"] = p
	}
}

// Provider returns config for a named provider, falling back to defaults.
func (c Config) Provider(name string) ProviderConfig {
	if p, ok := c.Providers[name]; ok {
		if p.BaseURL == "" {
			p.BaseURL = Default().Providers[name].BaseURL
		}
		return p
	}
	return Default().Providers[name]
}

// SlogLevel maps the configured log level string to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
