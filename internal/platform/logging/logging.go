// Package logging constructs the shared zerolog logger for bookhold processes.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls logger construction.
type Config struct {
	Level  string `env:"BOOKHOLD_LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"BOOKHOLD_LOG_PRETTY" envDefault:"false"`
}

// New builds a logger for the named service with sane defaults.
func New(service string) zerolog.Logger {
	return NewWithConfig(service, Config{Level: "info"})
}

// NewWithConfig builds a logger honoring the provided configuration.
func NewWithConfig(service string, cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	} else {
		logger = zerolog.New(os.Stdout)
	}

	logger = logger.Level(level).With().
		Timestamp().
		Str("service", service).
		Logger()
	return logger
}
