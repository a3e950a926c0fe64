// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("debugbuddy.lint")

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes the external linter and parses its output.
//
// Description:
//
//	Manages linter execution over stdin. Probes the system PATH for the
//	linter binary and degrades gracefully when it is not installed.
//
// Thread Safety: Safe for concurrent use.
type Runner struct {
	config    Config
	available bool
	availMu   sync.RWMutex
}

// Option configures the Runner.
type Option func(*Runner)

// WithConfig sets a custom linter configuration.
func WithConfig(config Config) Option {
	return func(r *Runner) {
		r.config = config
	}
}

// NewRunner creates a lint runner with the default Ruff configuration.
//
// The binary is probed immediately; call DetectAvailable again if PATH
// changes at runtime.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{config: DefaultRuffConfig}
	for _, opt := range opts {
		opt(r)
	}
	r.DetectAvailable()
	return r
}

// DetectAvailable probes the system PATH for the linter binary.
//
// Outputs:
//
//	bool - True if the linter is installed
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) DetectAvailable() bool {
	_, err := exec.LookPath(r.config.Command)
	available := err == nil

	r.availMu.Lock()
	r.available = available
	r.availMu.Unlock()

	if available {
		slog.Info("Linter available", slog.String("command", r.config.Command))
	} else {
		slog.Warn("Linter not installed", slog.String("command", r.config.Command))
	}
	return available
}

// IsAvailable returns whether the linter binary was found.
func (r *Runner) IsAvailable() bool {
	r.availMu.RLock()
	defer r.availMu.RUnlock()
	return r.available
}

// Check lints Python source.
//
// Description:
//
//	Pipes the source to the linter over stdin and parses its JSON
//	output. When the linter is not installed the result is empty with
//	LinterAvailable=false; a missing linter never fails the request.
//
// Inputs:
//
//	ctx - Context for cancellation and timeout
//	source - The Python source to lint
//
// Outputs:
//
//	*Result - The lint result
//	error - Non-nil if the linter itself failed to execute
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) Check(ctx context.Context, source []byte) (*Result, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: ctx must not be nil", ErrInvalidInput)
	}

	ctx, span := tracer.Start(ctx, "lint.Check")
	defer span.End()
	start := time.Now()

	if !r.IsAvailable() {
		return &Result{
			Issues:          make([]Issue, 0),
			Duration:        time.Since(start),
			Linter:          r.config.Command,
			LinterAvailable: false,
		}, nil
	}

	if len(bytes.TrimSpace(source)) == 0 {
		return &Result{
			Issues:          make([]Issue, 0),
			Duration:        time.Since(start),
			Linter:          r.config.Command,
			LinterAvailable: true,
		}, nil
	}

	output, err := r.execute(ctx, r.config.CheckArgs, source)
	if err != nil {
		return nil, err
	}

	issues, err := parseRuffOutput(output)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseOutput, err)
	}
	if issues == nil {
		issues = make([]Issue, 0)
	}

	result := &Result{
		Issues:          issues,
		Duration:        time.Since(start),
		Linter:          r.config.Command,
		LinterAvailable: true,
	}

	span.SetAttributes(attribute.Int("lint.issues", len(issues)))
	slog.Debug("Lint completed",
		slog.String("linter", r.config.Command),
		slog.Duration("duration", result.Duration),
		slog.Int("issues", len(issues)),
	)

	return result, nil
}

// Format formats Python source.
//
// Description:
//
//	Runs the linter's formatter over stdin and returns the formatted
//	source. When the formatter is unavailable or fails (which it does
//	on syntactically invalid input), the original source is returned
//	unchanged: formatting is best-effort.
//
// Thread Safety: Safe for concurrent use.
func (r *Runner) Format(ctx context.Context, source []byte) string {
	if ctx == nil || !r.IsAvailable() || len(bytes.TrimSpace(source)) == 0 {
		return string(source)
	}

	ctx, span := tracer.Start(ctx, "lint.Format")
	defer span.End()

	output, err := r.execute(ctx, r.config.FormatArgs, source)
	if err != nil {
		slog.Debug("Format failed, returning source unchanged", "error", err)
		return string(source)
	}
	return string(output)
}

// execute runs one linter subprocess with the source on stdin.
func (r *Runner) execute(ctx context.Context, args []string, source []byte) ([]byte, error) {
	timeout := r.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, r.config.Command, args...)
	cmd.Stdin = bytes.NewReader(source)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) {
			return nil, &RunError{Command: r.config.Command, Err: ErrLinterTimeout}
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, &RunError{Command: r.config.Command, Err: ErrLinterNotInstalled}
		}
		return nil, &RunError{
			Command: r.config.Command,
			Err:     fmt.Errorf("%w: %v", ErrLinterFailed, err),
			Stderr:  stderr.String(),
		}
	}

	return stdout.Bytes(), nil
}
