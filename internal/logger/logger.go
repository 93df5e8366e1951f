// SPDX-License-Identifier: EPL-2.0

// Package logger builds the slog.Logger shared by the CLI and the sinks.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	Level   string   `mapstructure:"level"`   // debug/info/warn/error
	Outputs []string `mapstructure:"outputs"` // stdout/stderr/file path
	Format  string   `mapstructure:"format"`  // text/json
}

// ParseLevel maps a level name to a slog.Level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// New builds a logger writing to every configured output. File outputs are
// created (with their directory) and appended to; the returned closer
// closes them.
func New(cfg Config) (*slog.Logger, io.Closer, error) {
	var (
		writers []io.Writer
		files   multiCloser
	)

	for _, output := range cfg.Outputs {
		switch output {
		case "", "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				_ = files.Close()
				return nil, nil, fmt.Errorf("logger: %w", err)
			}

			f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				_ = files.Close()
				return nil, nil, fmt.Errorf("logger: %w", err)
			}
			writers = append(writers, f)
			files = append(files, f)
		}
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	return NewWithWriter(cfg, io.MultiWriter(writers...)), files, nil
}

// NewWithWriter builds a logger over w, ignoring cfg.Outputs.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
