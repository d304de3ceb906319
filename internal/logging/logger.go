// Lineup - Content Provider Aggregation and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lineup

package logging

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error,
	// fatal, panic or disabled. Unknown values fall back to info.
	Level string

	// Format is json or console. Default: json
	Format string

	// Caller adds file:line to every entry.
	Caller bool

	// Fields are attached to every entry, e.g. service and version.
	Fields map[string]string

	// Output defaults to os.Stderr.
	Output io.Writer
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

//nolint:gochecknoinits // logging must work before Init is called
func init() {
	initLogger(Config{})
}

// Init reconfigures the global logger. Safe to call more than once.
func Init(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	initLogger(cfg)
}

// initLogger must be called with mu held.
func initLogger(cfg Config) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level, _ := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	zerolog.MessageFieldName = "message"

	output := cfg.Output
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: "15:04:05"}
	}

	lc := zerolog.New(output).With().Timestamp()
	if cfg.Caller {
		lc = lc.Caller()
	}
	keys := make([]string, 0, len(cfg.Fields))
	for k := range cfg.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		lc = lc.Str(k, cfg.Fields[k])
	}
	log = lc.Logger()
}

// ParseLevel resolves a configured level name. "warning" is accepted for
// warn. The second result is false for an unknown or empty name, in which
// case the level is info.
func ParseLevel(name string) (zerolog.Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	if name == "" {
		return zerolog.InfoLevel, false
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return lvl, true
}

// ValidLevel reports whether name is a level ParseLevel understands.
func ValidLevel(name string) bool {
	_, ok := ParseLevel(name)
	return ok
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// SetLogger replaces the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// With creates a child logger context.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return log.With()
}

func Debug() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Debug()
}

func Info() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Info()
}

func Warn() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Warn()
}

func Error() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Error()
}

// Fatal logs and then calls os.Exit(1).
func Fatal() *zerolog.Event {
	mu.RLock()
	defer mu.RUnlock()
	return log.Fatal()
}
