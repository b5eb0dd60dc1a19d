// Package logger builds the application zerolog logger from config.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Config controls logger construction. Zero values are filled with
// sane defaults before validation.
type Config struct {
	Level          string `json:"level,omitempty" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string `json:"format,omitempty" mapstructure:"format" validate:"oneof=json console"`
	Env            string `json:"env,omitempty" mapstructure:"env" validate:"oneof=dev prod"`
	ServiceName    string `json:"serviceName,omitempty" mapstructure:"service_name"`
	ServiceVersion string `json:"serviceVersion,omitempty" mapstructure:"service_version"`
	WithCaller     bool   `json:"withCaller,omitempty" mapstructure:"with_caller"`
}

// New returns a configured logger writing to out. A nil out falls back
// to stderr for console format and stdout for JSON.
func New(cfg *Config, out io.Writer) (zerolog.Logger, error) {
	cfg.setDefaults()

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return zerolog.Nop(), fmt.Errorf("logger config validation error: %w", err)
	}

	var w io.Writer
	switch cfg.Format {
	case "console":
		if out == nil {
			out = os.Stderr
		}
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: zerolog.TimeFormatUnix}
	default:
		if out == nil {
			out = os.Stdout
		}
		w = out
	}

	logger := zerolog.New(w).
		With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("env", cfg.Env).
		Logger()

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *Config) setDefaults() {
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
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "matchday"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
}
