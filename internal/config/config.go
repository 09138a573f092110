// Package config resolves runtime settings from flags, the environment and
// an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/studydesk/studydesk/internal/store"
)

// Environment variable names.
const (
	EnvDB       = "STUDYDESK_DB"
	EnvCorpus   = "STUDYDESK_CORPUS"
	EnvLogLevel = "STUDYDESK_LOG_LEVEL"
)

// DefaultCorpusPath is used when neither flag nor environment names a corpus.
const DefaultCorpusPath = "data.json"

// Config holds resolved settings.
type Config struct {
	DBPath     string
	CorpusPath string
	LogLevel   slog.Level
}

// Overrides are values given explicitly (usually command-line flags). Empty
// fields fall through to the environment and then to defaults.
type Overrides struct {
	DBPath     string
	CorpusPath string
	LogLevel   string
}

// Load resolves the configuration. A .env file in the working directory is
// read first if present; variables already set in the environment win.
func Load(o Overrides) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		CorpusPath: firstNonEmpty(o.CorpusPath, os.Getenv(EnvCorpus), DefaultCorpusPath),
	}

	level, err := ParseLevel(firstNonEmpty(o.LogLevel, os.Getenv(EnvLogLevel), "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if o.DBPath != "" {
		cfg.DBPath = o.DBPath
		if err := store.EnsureDir(o.DBPath); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		cfg.DBPath = p
	}
	return cfg, nil
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("config: invalid log level %q", s)
	}
	return l, nil
}

// NewLogger returns a text logger on stderr at the configured level.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
