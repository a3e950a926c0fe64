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

import "context"

// CheckSyntax runs the fast-fail syntax check over Python source.
//
// Description:
//
//	Parses the source and reports the first syntax error, if any, as a
//	single SyntaxError diagnostic. The request pipeline short-circuits
//	on a non-empty result: linting and complexity assume valid syntax.
//
// Inputs:
//   - ctx: Context for parse cancellation.
//   - source: Raw Python source bytes.
//
// Outputs:
//   - []Diagnostic: Empty for valid source. One SyntaxError entry
//     otherwise (an unreadable input reports at line 0).
//
// Thread Safety: Safe for concurrent use.
func (s *Scanner) CheckSyntax(ctx context.Context, source []byte) []Diagnostic {
	tree, err := s.parser.Parse(ctx, source)
	if err != nil {
		return []Diagnostic{{
			Type:     "SyntaxError",
			Line:     0,
			Message:  err.Error(),
			Severity: "error",
		}}
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return []Diagnostic{}
	}

	line, msg, ok := firstSyntaxError(root, source)
	if !ok {
		line, msg = 0, "source contains syntax errors"
	}
	return []Diagnostic{{
		Type:     "SyntaxError",
		Line:     line,
		Message:  msg,
		Severity: "error",
	}}
}
