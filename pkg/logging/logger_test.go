// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLevelFromEnv(t *testing.T) {
	cases := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		t.Run("value_"+tc.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tc.value)
			if got := LevelFromEnv(); got != tc.want {
				t.Errorf("LevelFromEnv() with %q = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default returned nil")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close on file-less logger: %v", err)
	}
}

func TestNewWithLogDir(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(Config{
		Level:   slog.LevelDebug,
		Service: "test-service",
		LogDir:  dir,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("hello from test", "key", "value")
	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	wantName := "test-service_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, wantName))
	if err != nil {
		t.Fatalf("expected log file %s: %v", wantName, err)
	}

	// The file side is JSON, one record per line.
	line := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("log file is not JSON: %v", err)
	}
	if record["msg"] != "hello from test" {
		t.Errorf("unexpected message: %v", record["msg"])
	}
	if record["service"] != "test-service" {
		t.Errorf("expected service tag, got %v", record["service"])
	}
}

func TestNewBadLogDirStillLogs(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	// LogDir points at a regular file, so the file handler cannot open.
	logger, err := New(Config{Level: slog.LevelInfo, LogDir: file})
	if err == nil {
		t.Error("expected an error for an unusable log dir")
	}
	if logger == nil {
		t.Fatal("expected a usable stderr logger despite the error")
	}
	logger.Info("still works")
}
