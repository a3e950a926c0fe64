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
	"encoding/json"
	"time"
)

// =============================================================================
// SEVERITY
// =============================================================================

// Severity represents the severity level of a lint issue.
type Severity int

const (
	// SeverityInfo represents informational/style issues.
	SeverityInfo Severity = iota

	// SeverityWarning represents issues worth noting.
	SeverityWarning

	// SeverityError represents issues that are almost certainly bugs.
	SeverityError
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as its string form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// =============================================================================
// ISSUES AND RESULTS
// =============================================================================

// Issue is a single diagnostic reported by the linter.
//
// Thread Safety: Treat as immutable after creation.
type Issue struct {
	// Line is the 1-based line the issue starts on.
	Line int `json:"line"`

	// Column is the 1-based column the issue starts on.
	Column int `json:"column"`

	// Rule is the linter rule code (e.g. "F401").
	Rule string `json:"rule"`

	// RuleURL links to the rule's documentation, when the linter provides one.
	RuleURL string `json:"rule_url,omitempty"`

	// Severity is the mapped severity of the rule.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Fixable indicates the linter offers a safe automatic fix.
	Fixable bool `json:"fixable,omitempty"`
}

// Result is the outcome of one lint run.
type Result struct {
	// Issues are the diagnostics, in linter output order.
	Issues []Issue `json:"issues"`

	// Duration is how long the linter subprocess took.
	Duration time.Duration `json:"-"`

	// Linter is the binary that produced the issues.
	Linter string `json:"linter"`

	// LinterAvailable is false when the linter binary was not found; the
	// issue list is then empty and means "not checked", not "clean".
	LinterAvailable bool `json:"linter_available"`
}

// =============================================================================
// LINTER CONFIG
// =============================================================================

// Config describes how to invoke one external linter.
//
// Thread Safety: Treat as immutable after creation.
type Config struct {
	// Command is the binary name looked up in PATH.
	Command string

	// CheckArgs are the arguments for a lint run reading from stdin.
	CheckArgs []string

	// FormatArgs are the arguments for a format run reading from stdin.
	FormatArgs []string

	// Timeout bounds one subprocess invocation.
	Timeout time.Duration
}

// DefaultRuffConfig is the configuration for Ruff.
//
// Description:
//
//	Ruff covers pyflakes, pycodestyle, and more in one fast binary, and
//	doubles as the code formatter. --exit-zero keeps lint findings from
//	being reported as process failures; the stdin filename only gives
//	diagnostics a stable display name.
var DefaultRuffConfig = Config{
	Command: "ruff",
	CheckArgs: []string{
		"check",
		"--output-format=json",
		"--exit-zero",
		"--stdin-filename", "submission.py",
		"-",
	},
	FormatArgs: []string{
		"format",
		"--stdin-filename", "submission.py",
		"-",
	},
	Timeout: 10 * time.Second,
}
