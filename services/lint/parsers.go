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
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// RUFF PARSER
// =============================================================================

// ruffIssue represents a single issue from Ruff JSON output.
type ruffIssue struct {
	Code        string       `json:"code"`
	EndLocation ruffLocation `json:"end_location"`
	Filename    string       `json:"filename"`
	Fix         *ruffFix     `json:"fix"`
	Location    ruffLocation `json:"location"`
	Message     string       `json:"message"`
	NoqaRow     int          `json:"noqa_row"`
	URL         string       `json:"url"`
}

type ruffLocation struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

type ruffFix struct {
	Applicability string `json:"applicability"`
	Message       string `json:"message"`
}

// parseRuffOutput parses JSON output from `ruff check --output-format=json`.
//
// Description:
//
//	Ruff produces a JSON array of issues. Each issue carries a rule
//	code, location, message, and optional fix information.
//
// Inputs:
//
//	data - Raw JSON output from ruff
//
// Outputs:
//
//	[]Issue - Parsed issues
//	error - Non-nil if JSON parsing fails
func parseRuffOutput(data []byte) ([]Issue, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var ruffIssues []ruffIssue
	if err := json.Unmarshal(data, &ruffIssues); err != nil {
		return nil, fmt.Errorf("parsing ruff output: %w", err)
	}

	if len(ruffIssues) == 0 {
		return nil, nil
	}

	issues := make([]Issue, 0, len(ruffIssues))
	for _, ri := range ruffIssues {
		issue := Issue{
			Line:     ri.Location.Row,
			Column:   ri.Location.Column,
			Rule:     ri.Code,
			RuleURL:  ri.URL,
			Severity: mapRuffSeverity(ri.Code),
			Message:  ri.Message,
		}
		if ri.Fix != nil {
			issue.Fixable = ri.Fix.Applicability == "safe" || ri.Fix.Applicability == "always"
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// mapRuffSeverity maps Ruff rule codes to our Severity.
//
// Ruff uses letter prefixes for rule categories: E9xx and Fxxx are
// genuine errors (syntax, undefined names), everything else is stylistic
// or advisory.
func mapRuffSeverity(code string) Severity {
	if code == "" {
		return SeverityWarning
	}

	switch {
	case strings.HasPrefix(code, "E9"):
		return SeverityError
	case strings.HasPrefix(code, "F8"), strings.HasPrefix(code, "F7"):
		return SeverityError
	case strings.HasPrefix(code, "F"):
		return SeverityWarning
	case strings.HasPrefix(code, "E"), strings.HasPrefix(code, "W"):
		return SeverityInfo
	default:
		return SeverityWarning
	}
}
