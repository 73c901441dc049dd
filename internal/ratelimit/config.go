package ratelimit

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds rate limiter configuration. It is embedded per provider in the
// service config file.
type Config struct {
	Strategy       Strategy      `yaml:"strategy" json:"strategy"`
	RequestsPerSec float64       `yaml:"requests_per_second" json:"requests_per_second"`
	Burst          int           `yaml:"burst" json:"burst"`
	FixedDelay     time.Duration `yaml:"fixed_delay" json:"fixed_delay"`
}

// UnmarshalYAML decodes the config, accepting duration strings ("500ms") for
// fixed_delay.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Strategy       Strategy `yaml:"strategy"`
		RequestsPerSec float64  `yaml:"requests_per_second"`
		Burst          int      `yaml:"burst"`
		FixedDelay     string   `yaml:"fixed_delay"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Strategy = raw.Strategy
	c.RequestsPerSec = raw.RequestsPerSec
	c.Burst = raw.Burst
	if raw.FixedDelay != "" {
		d, err := time.ParseDuration(raw.FixedDelay)
		if err != nil {
			return fmt.Errorf("parse fixed_delay: %w", err)
		}
		c.FixedDelay = d
	}
	return nil
}

// DefaultConfig returns sensible defaults for a scraping-API quota.
func DefaultConfig() Config {
	return Config{
		Strategy:       StrategyTokenBucket,
		RequestsPerSec: 2.0,
		Burst:          4,
		FixedDelay:     time.Second,
	}
}

func applyDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Strategy == "" {
		cfg.Strategy = def.Strategy
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = def.RequestsPerSec
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.FixedDelay <= 0 {
		cfg.FixedDelay = def.FixedDelay
	}
	return cfg
}
