// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes holds the wire types of the debugger API.
package datatypes

import (
	"github.com/AleutianAI/DebugBuddy/services/analysis"
	"github.com/AleutianAI/DebugBuddy/services/llm"
	"github.com/AleutianAI/DebugBuddy/services/suggest"
)

// CodeRequest is the body of POST /v1/analyze.
type CodeRequest struct {
	Code     string `json:"code" binding:"required"`
	Filename string `json:"filename"`
}

// DebugResponse is the full analysis pipeline output.
//
// Errors carries the syntax check and linter diagnostics, Suggestions
// the LLM advice for each of them, and PerformanceTips the heuristic
// scanner findings. Optimization is present only when the scanner
// found something to rewrite. FormattedCode is best-effort: it equals
// the input when the formatter is unavailable or the source does not
// parse.
type DebugResponse struct {
	Errors          []analysis.Diagnostic `json:"errors"`
	Suggestions     []suggest.Suggestion  `json:"suggestions"`
	PerformanceTips []analysis.Finding    `json:"performance_tips"`
	Complexity      *analysis.Complexity  `json:"complexity,omitempty"`
	Optimization    *suggest.Optimization `json:"optimization,omitempty"`
	FormattedCode   string                `json:"formatted_code"`
}

// ChatRequest is the body of POST /v1/chat/direct.
type ChatRequest struct {
	Message     string        `json:"message" binding:"required"`
	CodeContext string        `json:"code_context"`
	History     []llm.Message `json:"history"`
}

// ChatResponse is the reply to a chat request.
type ChatResponse struct {
	Response string `json:"response"`
}
