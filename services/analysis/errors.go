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

import "errors"

// Sentinel errors for the analysis package.
var (
	// ErrSourceTooLarge indicates the source exceeds the configured size limit.
	ErrSourceTooLarge = errors.New("source too large")

	// ErrInvalidEncoding indicates the source is not valid UTF-8.
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")

	// ErrParseFailed indicates tree-sitter could not produce a parse tree.
	ErrParseFailed = errors.New("parse failed")

	// ErrSyntax indicates the source contains syntax errors.
	ErrSyntax = errors.New("syntax error")
)
