// Package logging routes zerolog output to a file; the terminal belongs to the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FileName is the log file created in the log directory
const FileName = "dongne.log"

// Config controls where and how verbosely to log
type Config struct {
	Dir   string
	Debug bool
}

// Setup points the global zerolog logger at Dir/dongne.log and returns a
// cleanup func closing the file. On error logging is discarded, so callers
// may ignore the error and keep running.
func Setup(cfg Config) (func() error, error) {
	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Logger = zerolog.New(io.Discard)
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.Logger = New(f)
	log.Info().Str("path", path).Bool("debug", cfg.Debug).Msg("logger initialized")

	return func() error {
		log.Logger = zerolog.New(io.Discard)
		return f.Close()
	}, nil
}

// New builds a timestamped logger writing JSON lines to w
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// DefaultDir is the directory logs go to when none is configured
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "dongne")
	}
	return "."
}
