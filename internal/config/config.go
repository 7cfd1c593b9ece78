// Package config loads the membersearch CLI configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	paging "github.com/nrfta/filterpage-go"
	"github.com/nrfta/filterpage-go/internal/logger"
)

// EnvPrefix prefixes environment overrides, e.g. APP_DATABASE_DSN.
const EnvPrefix = "APP"

// Config is the full CLI configuration.
type Config struct {
	Database Database          `mapstructure:"database"`
	Search   Search            `mapstructure:"search"`
	Paging   paging.PageConfig `mapstructure:"paging"`
	Logger   logger.Config     `mapstructure:"logger"`
}

// Database is the PostgreSQL connection.
type Database struct {
	DSN          string `mapstructure:"dsn" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// Search tunes paged searches.
type Search struct {
	// CountMode is "full" (count with every join) or "elide" (drop joins
	// that cannot change the row count).
	CountMode       string `mapstructure:"count_mode" validate:"oneof=full elide"`
	ConcurrentCount bool   `mapstructure:"concurrent_count"`
	Metrics         bool   `mapstructure:"metrics"`
}

// New returns a viper instance with defaults and APP_ env overrides.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("search.count_mode", "full")
	v.SetDefault("search.concurrent_count", false)
	v.SetDefault("search.metrics", false)
	v.SetDefault("paging.default_size", paging.DefaultPageSize)
	v.SetDefault("paging.max_size", paging.DefaultMaxPageSize)
	v.SetDefault("logger.env", "prod")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	return v
}

// Load reads path (optional) into v, unmarshals and validates the result.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{"database.dsn", "logger.level", "logger.format"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Logger.SetDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}
