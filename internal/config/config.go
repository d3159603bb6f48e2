package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Events   EventsConfig   `yaml:"events"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Engine   EngineConfig   `yaml:"engine"`
	Weights  WeightsConfig  `yaml:"weights"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type CatalogConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

type EngineConfig struct {
	TickIntervalMs int `yaml:"tick_interval_ms"`
	BatchSize      int `yaml:"batch_size"`
}

type WeightsConfig struct {
	// DefaultMethod is used when a job does not name a redistribution
	// method: "evenly" or "proportional".
	DefaultMethod string `yaml:"default_method"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickIntervalMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		Events: EventsConfig{
			URL: "nats://localhost:4222",
		},
		Catalog: CatalogConfig{
			URL: "http://localhost:9100",
		},
		Engine: EngineConfig{
			TickIntervalMs: 5000,
			BatchSize:      20,
		},
		Weights: WeightsConfig{
			DefaultMethod: "evenly",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BLEND_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("BLEND_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("BLEND_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("BLEND_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("BLEND_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("BLEND_CATALOG_URL"); v != "" {
		cfg.Catalog.URL = v
	}
	if v := os.Getenv("BLEND_CATALOG_TOKEN"); v != "" {
		cfg.Catalog.Token = v
	}
	if v := os.Getenv("BLEND_TICK_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.TickIntervalMs = n
		}
	}
	if v := os.Getenv("BLEND_DEFAULT_METHOD"); v != "" {
		cfg.Weights.DefaultMethod = v
	}
	if v := os.Getenv("BLEND_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
