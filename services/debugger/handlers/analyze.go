// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers contains the gin handlers of the debugger API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/DebugBuddy/services/analysis"
	"github.com/AleutianAI/DebugBuddy/services/debugger/datatypes"
	"github.com/AleutianAI/DebugBuddy/services/lint"
	"github.com/AleutianAI/DebugBuddy/services/suggest"
)

var tracer = otel.Tracer("debugbuddy.handlers")

// Pipeline bundles the collaborators the analyze pipeline needs.
type Pipeline struct {
	Scanner   *analysis.Scanner
	Linter    *lint.Runner
	Suggester *suggest.Suggester
}

// HandleAnalyze serves POST /v1/analyze.
//
// The pipeline runs the syntax check first, then
// linter diagnostics, LLM suggestions for every diagnostic, the
// heuristic performance scan, an LLM rewrite when the scan found
// something, a complexity summary, and a formatted copy of the source.
func HandleAnalyze(p *Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleAnalyze")
		defer span.End()

		var req datatypes.CodeRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the analyze request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		resp := p.run(ctx, req.Code)
		c.JSON(http.StatusOK, resp)
	}
}

// run executes the full debug pipeline over one source blob.
func (p *Pipeline) run(ctx context.Context, code string) datatypes.DebugResponse {
	source := []byte(code)

	diags := p.Scanner.CheckSyntax(ctx, source)
	syntaxOK := len(diags) == 0

	if syntaxOK {
		lintResult, err := p.Linter.Check(ctx, source)
		if err != nil {
			// A broken linter install must not sink the request; the
			// syntax check and scanner still carry it.
			slog.Error("Linter failed, continuing without lint diagnostics", "error", err)
		} else {
			diags = append(diags, lintDiagnostics(lintResult)...)
		}
	}

	suggestions := p.Suggester.ForDiagnostics(ctx, code, diags)

	// The scanner handles invalid source itself, reporting a single
	// AnalysisError finding, so it runs unconditionally.
	tips := p.Scanner.Scan(ctx, source)

	resp := datatypes.DebugResponse{
		Errors:          diags,
		Suggestions:     suggestions,
		PerformanceTips: tips,
		FormattedCode:   code,
	}

	if syntaxOK {
		if cx, err := p.Scanner.Summarize(ctx, source); err == nil {
			resp.Complexity = &cx
		}
		if len(tips) > 0 {
			opt := p.Suggester.ForFindings(ctx, code, tips)
			resp.Optimization = &opt
		}
		resp.FormattedCode = p.Linter.Format(ctx, source)
	}

	return resp
}

// lintDiagnostics converts linter issues to the response diagnostic shape.
func lintDiagnostics(result *lint.Result) []analysis.Diagnostic {
	diags := make([]analysis.Diagnostic, 0, len(result.Issues))
	for _, issue := range result.Issues {
		diags = append(diags, analysis.Diagnostic{
			Type:     issue.Rule,
			Line:     issue.Line,
			Message:  issue.Message,
			Severity: issue.Severity.String(),
		})
	}
	return diags
}
