// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package suggest

import (
	"fmt"
	"strings"

	"github.com/AleutianAI/DebugBuddy/services/analysis"
)

// System personas for the two suggestion flows.
const (
	debugPersona    = "You are an expert Python developer helping to debug code."
	optimizePersona = "You are an expert Python developer focusing on code optimization."
)

// errorPromptTemplate asks for an explanation and fix for one diagnostic.
const errorPromptTemplate = `Analyze this Python code error and provide a detailed explanation and solution:

Code Context:
%s

Error:
%s

Please provide:
1. A clear explanation of what's causing the error
2. A specific solution to fix it
3. Best practices to avoid this issue in the future`

// performancePromptTemplate asks for optimizations given the heuristic findings.
const performancePromptTemplate = `Analyze this Python code for performance optimization:

%s

Current Issues:
%s

Please provide:
1. Specific optimization suggestions
2. Example of optimized code
3. Explanation of why the optimization helps`

// errorPrompt renders the prompt for one diagnostic.
func errorPrompt(code string, d analysis.Diagnostic) string {
	errText := fmt.Sprintf("%s: %s at line %d", d.Type, d.Message, d.Line)
	return fmt.Sprintf(errorPromptTemplate, code, errText)
}

// performancePrompt renders the prompt for a batch of findings.
func performancePrompt(code string, findings []analysis.Finding) string {
	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf("- %s: %s at line %d", f.Category, f.Message, f.Line))
	}
	return fmt.Sprintf(performancePromptTemplate, code, strings.Join(lines, "\n"))
}
