// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package suggest turns analysis output into natural-language advice by
// prompting an LLM backend.
package suggest

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/DebugBuddy/services/analysis"
	"github.com/AleutianAI/DebugBuddy/services/llm"
)

// defaultMaxConcurrent bounds parallel LLM calls per request.
const defaultMaxConcurrent = 4

// Suggestion is the LLM's advice for one diagnostic.
type Suggestion struct {
	ErrorType  string `json:"error_type"`
	Line       int    `json:"line"`
	Suggestion string `json:"suggestion"`
}

// Optimization is the LLM's rewrite advice for the heuristic findings.
type Optimization struct {
	OptimizedCode string `json:"optimized_code"`
	Success       bool   `json:"success"`
}

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithMaxConcurrent bounds the number of in-flight LLM calls.
func WithMaxConcurrent(n int) SuggesterOption {
	return func(s *Suggester) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// Suggester fans analysis results out to the LLM.
//
// Description:
//
//	One LLM call is made per diagnostic, with bounded concurrency. A
//	failed call degrades to a fallback suggestion for that diagnostic
//	only; Suggester never fails the surrounding request.
//
// Thread Safety: Safe for concurrent use.
type Suggester struct {
	client        llm.Client
	maxConcurrent int
}

// NewSuggester creates a Suggester on top of the given LLM client.
func NewSuggester(client llm.Client, opts ...SuggesterOption) *Suggester {
	s := &Suggester{
		client:        client,
		maxConcurrent: defaultMaxConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForDiagnostics generates one suggestion per diagnostic.
//
// Results come back in diagnostic order regardless of which LLM call
// finishes first. The slice is never nil and always has one entry per
// input diagnostic.
func (s *Suggester) ForDiagnostics(ctx context.Context, code string, diags []analysis.Diagnostic) []Suggestion {
	suggestions := make([]Suggestion, len(diags))

	temp := float32(0.7)
	maxTokens := 500
	params := llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for i, d := range diags {
		g.Go(func() error {
			answer, err := s.client.Generate(gctx, debugPersona, errorPrompt(code, d), params)
			if err != nil {
				slog.Error("Failed to get suggestion", "type", d.Type, "line", d.Line, "error", err)
				answer = fmt.Sprintf("Failed to get AI suggestion: %v", err)
			}
			suggestions[i] = Suggestion{
				ErrorType:  d.Type,
				Line:       d.Line,
				Suggestion: answer,
			}
			return nil
		})
	}

	// Goroutines only write disjoint slice slots and never return errors.
	_ = g.Wait()

	return suggestions
}

// ForFindings asks the LLM to rewrite the code given the heuristic
// performance findings.
//
// An empty findings list short-circuits without an LLM call. A failed
// call returns Success=false with the failure text in OptimizedCode,
// mirroring per-diagnostic degradation.
func (s *Suggester) ForFindings(ctx context.Context, code string, findings []analysis.Finding) Optimization {
	if len(findings) == 0 {
		return Optimization{OptimizedCode: code, Success: true}
	}

	temp := float32(0.7)
	maxTokens := 1000
	params := llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}

	answer, err := s.client.Generate(ctx, optimizePersona, performancePrompt(code, findings), params)
	if err != nil {
		slog.Error("Failed to get optimization", "findings", len(findings), "error", err)
		return Optimization{
			OptimizedCode: fmt.Sprintf("Failed to get AI suggestion: %v", err),
			Success:       false,
		}
	}
	return Optimization{OptimizedCode: answer, Success: true}
}
