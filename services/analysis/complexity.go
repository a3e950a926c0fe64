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
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Node types counted as decision points for the cyclomatic approximation.
const (
	nodeIfStatement        = "if_statement"
	nodeElifClause         = "elif_clause"
	nodeExceptClause       = "except_clause"
	nodeFunctionDefinition = "function_definition"
)

// Summarize walks the full tree once and counts decision points and
// function definitions.
//
// Description:
//
//	Conditionals (if/elif), loops, and exception handlers each add one
//	to the cyclomatic approximation. This is an independent read-only
//	pass with no failure mode beyond "parse succeeded or not": invalid
//	source returns ErrSyntax.
//
// Inputs:
//   - ctx: Context for parse cancellation.
//   - source: Raw Python source bytes.
//
// Outputs:
//   - Complexity: Counts plus the source line count.
//   - error: ErrSyntax for invalid source, or a parse/validation error.
//
// Thread Safety: Safe for concurrent use.
func (s *Scanner) Summarize(ctx context.Context, source []byte) (Complexity, error) {
	tree, err := s.parser.Parse(ctx, source)
	if err != nil {
		return Complexity{}, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return Complexity{}, ErrSyntax
	}

	c := Complexity{LineCount: countLines(source)}

	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node.Type() {
		case nodeIfStatement, nodeElifClause, nodeForStatement, nodeWhileStatement, nodeExceptClause:
			c.Cyclomatic++
		case nodeFunctionDefinition:
			c.FunctionCount++
		}

		for i := int(node.NamedChildCount()) - 1; i >= 0; i-- {
			stack = append(stack, node.NamedChild(i))
		}
	}

	return c, nil
}

// countLines counts source lines the way Python's splitlines does: a
// trailing newline does not start an extra empty line.
func countLines(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	n := strings.Count(string(source), "\n")
	if source[len(source)-1] != '\n' {
		n++
	}
	return n
}
