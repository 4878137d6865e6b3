package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

const envPrefix = "AFFINITY_"

// Config represents the top-level application config.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Ingestion IngestionConfig `koanf:"ingestion"`
	Profile   ProfileConfig   `koanf:"profile"`
	Backfill  BackfillConfig  `koanf:"backfill"`
	Kafka     KafkaConfig     `koanf:"kafka"`
	Retention RetentionConfig `koanf:"retention"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres | sqlite
	DSN          string `koanf:"dsn"`    // connection string, or file path for sqlite
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
}

type IngestionConfig struct {
	TopicThreshold string `koanf:"topic_threshold"` // silence that opens a new topic
	Timezone       string `koanf:"timezone"`        // IANA name or "Local"; decides the metric day
}

type ProfileConfig struct {
	Cooldown    string `koanf:"cooldown"`
	MinMessages int64  `koanf:"min_messages"`
}

type BackfillConfig struct {
	MaxPoolSize int `koanf:"max_pool_size"`
}

type KafkaConfig struct {
	Enabled bool     `koanf:"enabled"`
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
	GroupID string   `koanf:"group_id"`
	Format  string   `koanf:"format"` // json | protobuf
}

type RetentionConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Schedule string `koanf:"schedule"` // cron expression with seconds
	KeepDays int    `koanf:"keep_days"`
}

// TopicThresholdDuration returns the parsed topic threshold. Call after Validate.
func (c IngestionConfig) TopicThresholdDuration() time.Duration {
	d, _ := time.ParseDuration(c.TopicThreshold)
	return d
}

// Location resolves the configured timezone.
func (c IngestionConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// CooldownDuration returns the parsed profile cooldown. Call after Validate.
func (c ProfileConfig) CooldownDuration() time.Duration {
	d, _ := time.ParseDuration(c.Cooldown)
	return d
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database.driver %q (must be postgres or sqlite)", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required")
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be > 0")
	}
	if c.Database.MaxIdleConns <= 0 {
		return fmt.Errorf("database.max_idle_conns must be > 0")
	}

	threshold, err := time.ParseDuration(c.Ingestion.TopicThreshold)
	if err != nil {
		return fmt.Errorf("invalid ingestion.topic_threshold %q: %w", c.Ingestion.TopicThreshold, err)
	}
	if threshold <= 0 {
		return fmt.Errorf("ingestion.topic_threshold must be > 0")
	}
	if _, err := c.Ingestion.Location(); err != nil {
		return fmt.Errorf("invalid ingestion.timezone %q: %w", c.Ingestion.Timezone, err)
	}

	cooldown, err := time.ParseDuration(c.Profile.Cooldown)
	if err != nil {
		return fmt.Errorf("invalid profile.cooldown %q: %w", c.Profile.Cooldown, err)
	}
	if cooldown < 0 {
		return fmt.Errorf("profile.cooldown must be >= 0")
	}
	if c.Profile.MinMessages < 0 {
		return fmt.Errorf("profile.min_messages must be >= 0")
	}

	if c.Backfill.MaxPoolSize <= 0 {
		return fmt.Errorf("backfill.max_pool_size must be > 0")
	}

	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required when kafka is enabled")
		}
		if strings.TrimSpace(c.Kafka.Topic) == "" {
			return fmt.Errorf("kafka.topic is required when kafka is enabled")
		}
		if strings.TrimSpace(c.Kafka.GroupID) == "" {
			return fmt.Errorf("kafka.group_id is required when kafka is enabled")
		}
	}
	if c.Kafka.Format != "json" && c.Kafka.Format != "protobuf" {
		return fmt.Errorf("invalid kafka.format %q (must be json or protobuf)", c.Kafka.Format)
	}

	if c.Retention.Enabled {
		if _, err := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor).Parse(c.Retention.Schedule); err != nil {
			return fmt.Errorf("invalid retention.schedule %q: %w", c.Retention.Schedule, err)
		}
		if c.Retention.KeepDays <= 0 {
			return fmt.Errorf("retention.keep_days must be > 0")
		}
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and AFFINITY_ env
// vars (AFFINITY_DATABASE__DSN -> database.dsn), then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":               8080,
		"server.host":               "0.0.0.0",
		"server.max_body_size_mb":   4,
		"server.mode":               "release",
		"database.driver":           "sqlite",
		"database.dsn":              "data/affinity.db",
		"database.max_open_conns":   25,
		"database.max_idle_conns":   25,
		"database.auto_migrate":     true,
		"ingestion.topic_threshold": "30m",
		"ingestion.timezone":        "Local",
		"profile.cooldown":          "60s",
		"profile.min_messages":      3,
		"backfill.max_pool_size":    5000,
		"kafka.enabled":             false,
		"kafka.brokers":             []string{},
		"kafka.topic":               "chat-events",
		"kafka.group_id":            "affinity",
		"kafka.format":              "json",
		"retention.enabled":         false,
		"retention.schedule":        "0 30 3 * * *",
		"retention.keep_days":       30,
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
