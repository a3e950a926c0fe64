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
	"log/slog"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const (
	// DefaultMaxSourceSize is the largest source blob a Parser accepts (10MB).
	DefaultMaxSourceSize = 10 * 1024 * 1024

	// warnSourceSize is the threshold above which a parse logs a warning (1MB).
	warnSourceSize = 1 * 1024 * 1024
)

// ParserOption configures a Parser instance.
type ParserOption func(*Parser)

// WithMaxSourceSize sets the maximum source size the parser will accept.
func WithMaxSourceSize(bytes int64) ParserOption {
	return func(p *Parser) {
		if bytes > 0 {
			p.maxSourceSize = bytes
		}
	}
}

// Parser parses Python source into tree-sitter syntax trees.
//
// Description:
//
//	Parser wraps tree-sitter with input validation (size and encoding
//	guards). Each Parse call creates its own tree-sitter parser instance
//	internally, so a single Parser may be shared freely.
//
// Thread Safety:
//
//	Parser instances are safe for concurrent use. The returned trees are
//	not: each caller must Close its own tree and must not share it across
//	goroutines without synchronization.
type Parser struct {
	maxSourceSize int64
}

// NewParser creates a Parser with the given options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxSourceSize: DefaultMaxSourceSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses Python source into a syntax tree.
//
// Description:
//
//	Validates the input, then parses it with tree-sitter's Python
//	grammar. Tree-sitter is error-tolerant: syntactically invalid input
//	still yields a tree, with ERROR and MISSING nodes marking the bad
//	regions. Callers that need a validity verdict should check
//	tree.RootNode().HasError() or use CheckSyntax.
//
// Inputs:
//   - ctx: Context for cancellation. Checked before and after parsing;
//     tree-sitter cannot be interrupted mid-parse.
//   - source: Raw Python source bytes. Must be valid UTF-8.
//
// Outputs:
//   - *sitter.Tree: The parse tree. The caller owns it and must call Close.
//   - error: ErrSourceTooLarge, ErrInvalidEncoding, ErrParseFailed, or a
//     context error.
//
// Thread Safety: Safe for concurrent use.
func (p *Parser) Parse(ctx context.Context, source []byte) (*sitter.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if int64(len(source)) > p.maxSourceSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrSourceTooLarge, len(source), p.maxSourceSize)
	}

	if len(source) > warnSourceSize {
		slog.Warn("parsing large source blob", slog.Int("size_bytes", len(source)))
	}

	if !utf8.Valid(source) {
		return nil, ErrInvalidEncoding
	}

	// New parser instance per call for thread safety.
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("%w: tree-sitter returned no root node", ErrParseFailed)
	}

	if err := ctx.Err(); err != nil {
		tree.Close()
		return nil, fmt.Errorf("parse canceled after tree-sitter: %w", err)
	}

	return tree, nil
}

// firstSyntaxError locates the first ERROR or MISSING node in pre-order.
//
// Returns a 1-based line number, a human-readable message, and whether an
// error node was found. Tree-sitter has no exception path for bad input,
// so this is how a "parse failure" is surfaced to callers.
func firstSyntaxError(root *sitter.Node, source []byte) (int, string, bool) {
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.IsError() || node.IsMissing() {
			line := int(node.StartPoint().Row) + 1
			msg := describeSyntaxError(node, source)
			return line, msg, true
		}

		// Walk all children, not just named ones: MISSING nodes for
		// dropped punctuation are anonymous.
		for i := int(node.ChildCount()) - 1; i >= 0; i-- {
			if child := node.Child(i); child != nil && child.HasError() {
				stack = append(stack, child)
			}
		}
	}
	return 0, "", false
}

// describeSyntaxError builds a short message for an ERROR or MISSING node.
func describeSyntaxError(node *sitter.Node, source []byte) string {
	if node.IsMissing() {
		return fmt.Sprintf("invalid syntax: missing %q", node.Type())
	}

	start, end := node.StartByte(), node.EndByte()
	if int(end) > len(source) {
		end = uint32(len(source))
	}
	snippet := string(source[start:end])
	if len(snippet) > 40 {
		// Back off to a rune boundary so the message stays valid UTF-8.
		cut := 40
		for cut > 0 && !utf8.RuneStart(snippet[cut]) {
			cut--
		}
		snippet = snippet[:cut] + "..."
	}
	if snippet == "" {
		return "invalid syntax"
	}
	return fmt.Sprintf("invalid syntax near %q", snippet)
}
