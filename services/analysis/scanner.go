// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analysis

import (
	"context"
	"fmt"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// Fixed finding text. These strings are part of the API response and
// must match what downstream consumers display.
const (
	nestedLoopMessage    = "Nested loop detected"
	nestedLoopSuggestion = "Consider using alternative approaches like list comprehension or vectorized operations."

	appendInLoopMessage    = "List append in loop"
	appendInLoopSuggestion = "Consider using list comprehension or pre-allocating the list."

	scanFailedMessage = "Failed to analyze performance"
)

// Python grammar node types the scanner cares about.
const (
	nodeForStatement   = "for_statement"
	nodeWhileStatement = "while_statement"
	nodeCall           = "call"
	nodeAttribute      = "attribute"
	nodeIdentifier     = "identifier"
)

// Scanner detects shallow performance anti-patterns in Python source.
//
// Description:
//
//	Scanner walks the syntax tree depth-first in pre-order, threading a
//	loop-nesting depth through the walk. Two rules fire:
//
//	  - A for/while loop entered at depth > 0 yields a NestedLoop finding.
//	  - A `<name>.append(...)` call at depth > 0 yields an
//	    IneffientListOperation finding.
//
//	This is a syntax-shape detector, not a dataflow analysis: it cannot
//	tell a list append from any other .append method, and does not try to.
//
// Thread Safety:
//
//	Scanner instances are safe for concurrent use; each Scan call is a
//	pure function of its input.
type Scanner struct {
	parser *Parser
}

// NewScanner creates a Scanner backed by the given parser. A nil parser
// gets the default configuration.
func NewScanner(parser *Parser) *Scanner {
	if parser == nil {
		parser = NewParser()
	}
	return &Scanner{parser: parser}
}

// Scan analyzes Python source and returns performance findings.
//
// Description:
//
//	Parses the source and walks the tree. Findings come back in
//	pre-order discovery order, not sorted by line, and duplicates are
//	not merged: a triply nested loop yields one NestedLoop finding per
//	loop entered at depth > 0.
//
//	Scan never returns an error and never panics across its boundary.
//	If the source does not parse, or any fault occurs during the walk,
//	the result is exactly one AnalysisError finding at line 0 whose
//	suggestion carries the fault description. Findings collected before
//	a fault are discarded; callers must treat an AnalysisError-only
//	result as "scan could not complete", not "no issues found".
//
// Inputs:
//   - ctx: Context for parse cancellation.
//   - source: Raw Python source bytes.
//
// Outputs:
//   - []Finding: Never nil. Empty for clean input.
//
// Thread Safety: Safe for concurrent use.
func (s *Scanner) Scan(ctx context.Context, source []byte) (findings []Finding) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			findings = []Finding{analysisErrorFinding(fmt.Sprintf("%v", r))}
			recordScanMetrics(ctx, time.Since(start), len(findings), true)
		}
	}()

	tree, err := s.parser.Parse(ctx, source)
	if err != nil {
		findings = []Finding{analysisErrorFinding(err.Error())}
		recordScanMetrics(ctx, time.Since(start), len(findings), true)
		return findings
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		_, msg, _ := firstSyntaxError(root, source)
		if msg == "" {
			msg = "source contains syntax errors"
		}
		findings = []Finding{analysisErrorFinding(msg)}
		recordScanMetrics(ctx, time.Since(start), len(findings), true)
		return findings
	}

	findings = walkForFindings(root, source)
	recordScanMetrics(ctx, time.Since(start), len(findings), false)
	return findings
}

// walkItem is one pending node in the explicit work stack, paired with
// the loop-nesting depth it is visited at.
type walkItem struct {
	node  *sitter.Node
	depth int
}

// walkForFindings runs the pre-order walk over the tree.
//
// The explicit stack avoids call-stack limits on deeply nested input.
// Children are pushed in reverse index order so they pop in source order,
// preserving pre-order discovery for the findings list.
func walkForFindings(root *sitter.Node, source []byte) []Finding {
	findings := make([]Finding, 0)
	stack := []walkItem{{node: root, depth: 0}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, depth := item.node, item.depth

		childDepth := depth
		switch node.Type() {
		case nodeForStatement, nodeWhileStatement:
			if depth > 0 {
				findings = append(findings, Finding{
					Category:   CategoryNestedLoop,
					Line:       int(node.StartPoint().Row) + 1,
					Message:    nestedLoopMessage,
					Suggestion: nestedLoopSuggestion,
				})
			}
			childDepth = depth + 1

		case nodeCall:
			// The depth threaded through the walk already answers "is
			// this call inside a loop", so no parent pointers are needed.
			if depth > 0 && isNamedAppendCall(node, source) {
				findings = append(findings, Finding{
					Category:   CategoryInefficientListOperation,
					Line:       int(node.StartPoint().Row) + 1,
					Message:    appendInLoopMessage,
					Suggestion: appendInLoopSuggestion,
				})
			}
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, walkItem{node: node.NamedChild(i), depth: childDepth})
		}
	}

	return findings
}

// isNamedAppendCall reports whether the call node is `<identifier>.append(...)`.
//
// Only appends on a plain named target count: `result.append(x)`
// fires, `obj.attr.append(x)` does not.
func isNamedAppendCall(node *sitter.Node, source []byte) bool {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != nodeAttribute {
		return false
	}

	attr := fn.ChildByFieldName("attribute")
	if attr == nil || string(source[attr.StartByte():attr.EndByte()]) != "append" {
		return false
	}

	obj := fn.ChildByFieldName("object")
	return obj != nil && obj.Type() == nodeIdentifier
}

// analysisErrorFinding builds the single finding returned for a failed scan.
func analysisErrorFinding(detail string) Finding {
	return Finding{
		Category:   CategoryAnalysisError,
		Line:       0,
		Message:    scanFailedMessage,
		Suggestion: detail,
	}
}
