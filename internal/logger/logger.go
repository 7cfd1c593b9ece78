// Package logger builds the zerolog logger used by the membersearch CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config describes the logger.
type Config struct {
	Level       string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format      string `mapstructure:"format" validate:"oneof=json console"`
	Env         string `mapstructure:"env" validate:"oneof=dev staging prod"`
	ServiceName string `mapstructure:"service_name"`
	WithCaller  bool   `mapstructure:"with_caller"`
}

// SetDefaults fills unset fields. Dev defaults to debug on a console writer,
// everything else to info as JSON.
func (c *Config) SetDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.ServiceName == "" {
		c.ServiceName = "membersearch"
	}
}

// New validates cfg and builds a logger writing to w (stderr when nil).
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	cfg.SetDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	if w == nil {
		w = os.Stderr
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	ctx := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("env", cfg.Env)
	if cfg.WithCaller {
		ctx = ctx.Caller()
	}

	return ctx.Logger(), nil
}
