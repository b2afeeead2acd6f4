// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logging configuration.
type Config struct {
	// Level is a zerolog level name. Unknown names fall back to info.
	Level string
	// Format is "json" or "console".
	Format string
}

// Setup installs the global logger and returns it.
func Setup(cfg Config) zerolog.Logger {
	return SetupWithWriter(cfg, os.Stderr)
}

// SetupWithWriter installs the global logger writing to w.
func SetupWithWriter(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if strings.EqualFold(cfg.Format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(w).With().Timestamp().Str("service", "admin-gateway").Logger()
	log.Logger = logger
	return logger
}
