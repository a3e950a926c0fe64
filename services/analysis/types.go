// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package analysis provides static analysis of Python source code.
//
// The package has three independent passes, all built on tree-sitter:
//
//   - Scanner: heuristic performance findings (nested loops, list append
//     inside loops)
//   - CheckSyntax: fast-fail syntax validation
//   - Complexity: approximate cyclomatic complexity and function counts
//
// Each pass is a pure function of its input: no pass mutates the parse
// tree, holds state across calls, or performs I/O. All passes are safe
// for concurrent use on independent inputs.
package analysis

// Category identifies the kind of a performance finding.
//
// Values are wire-stable: API consumers match on them, so they must not
// change. IneffientListOperation is misspelled on the wire; clients
// already match on it, so it stays.
type Category string

const (
	// CategoryNestedLoop flags a loop construct lexically nested inside
	// another loop.
	CategoryNestedLoop Category = "NestedLoop"

	// CategoryInefficientListOperation flags a list append performed
	// inside a loop body.
	CategoryInefficientListOperation Category = "IneffientListOperation"

	// CategoryAnalysisError indicates the scan could not complete. A
	// result containing only this finding means "scan failed", not "no
	// issues found".
	CategoryAnalysisError Category = "AnalysisError"
)

// Finding is one reported performance issue.
//
// Findings are immutable once created and are collected in tree-walk
// discovery order (pre-order). Line numbers are 1-based; an
// AnalysisError finding carries line 0.
type Finding struct {
	Category   Category `json:"type"`
	Line       int      `json:"line"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion"`
}

// Diagnostic is a syntax- or lint-level problem in the submitted source.
//
// The field set mirrors Finding but carries a free-form Type and a
// Severity instead of a fixed category, matching the shape the linter
// produces.
type Diagnostic struct {
	Type     string `json:"type"`
	Line     int    `json:"line"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Complexity summarizes decision points in a piece of source code.
//
// Cyclomatic is an approximation: it counts branching constructs
// (conditionals, loops, exception handlers) rather than building a
// control-flow graph.
type Complexity struct {
	Cyclomatic    int `json:"cyclomatic"`
	FunctionCount int `json:"number_of_functions"`
	LineCount     int `json:"lines_of_code"`
}
