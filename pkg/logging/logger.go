// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for DebugBuddy components.
//
// The package is built on Go's standard library slog:
//
//   - Default: stderr output for CLI compatibility (follows Unix conventions)
//   - Optional: JSON file logging with automatic directory creation
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("starting analyze", "request_id", reqID)
//	logger.Error("request failed", "error", err)
//
// To make the configured logger the process default for plain slog
// calls, use Install:
//
//	logger, err := logging.Install(logging.Config{
//	    Level:   logging.LevelFromEnv(),
//	    Service: "debugger",
//	    LogDir:  os.Getenv("LOG_DIR"),
//	})
//	defer logger.Close()
//
// # Security Considerations
//
// This package does NOT automatically redact sensitive data. Callers
// must ensure API keys and user source code are not logged verbatim.
package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level emitted.
	Level slog.Level

	// Service tags every record with a service name.
	Service string

	// LogDir, when non-empty, additionally writes JSON records to
	// {service}_{date}.log inside this directory.
	LogDir string
}

// Logger wraps slog.Logger with ownership of the optional log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// LevelFromEnv reads LOG_LEVEL (debug, info, warn, error). Unset or
// unrecognized values mean info.
func LevelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns a stderr logger at info level with no service tag.
func Default() *Logger {
	l, _ := New(Config{Level: slog.LevelInfo})
	return l
}

// New builds a logger from the config.
//
// Outputs:
//   - *Logger: Never nil; on file-open failure a stderr-only logger is
//     still returned alongside the error.
//   - error: Non-nil if LogDir was set but the log file could not be opened.
func New(cfg Config) (*Logger, error) {
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level})

	var handler slog.Handler = stderrHandler
	var file *os.File

	if cfg.LogDir != "" {
		f, err := openLogFile(cfg.LogDir, cfg.Service)
		if err != nil {
			logger := slog.New(stderrHandler)
			if cfg.Service != "" {
				logger = logger.With("service", cfg.Service)
			}
			return &Logger{Logger: logger}, err
		}
		file = f
		handler = &teeHandler{
			primary:   stderrHandler,
			secondary: slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.Level}),
		}
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return &Logger{Logger: logger, file: file}, nil
}

// Install builds a logger and makes it the process-wide slog default.
func Install(cfg Config) (*Logger, error) {
	logger, err := New(cfg)
	slog.SetDefault(logger.Logger)
	return logger, err
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// openLogFile creates the log directory (with ~ expansion) and opens
// the dated log file for appending.
func openLogFile(dir, service string) (*os.File, error) {
	if strings.HasPrefix(dir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("expanding log dir: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	if service == "" {
		service = "debugbuddy"
	}
	name := fmt.Sprintf("%s_%s.log", service, time.Now().Format("2006-01-02"))

	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// teeHandler fans records out to two handlers. Errors from either side
// are joined so neither destination silently drops records.
type teeHandler struct {
	primary   slog.Handler
	secondary slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.primary.Enabled(ctx, level) || t.secondary.Enabled(ctx, level)
}

func (t *teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	if t.primary.Enabled(ctx, record.Level) {
		firstErr = t.primary.Handle(ctx, record.Clone())
	}
	if t.secondary.Enabled(ctx, record.Level) {
		if err := t.secondary.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &teeHandler{
		primary:   t.primary.WithAttrs(attrs),
		secondary: t.secondary.WithAttrs(attrs),
	}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	return &teeHandler{
		primary:   t.primary.WithGroup(name),
		secondary: t.secondary.WithGroup(name),
	}
}
