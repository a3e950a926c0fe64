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
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestParseValidSource(t *testing.T) {
	parser := NewParser()

	tree, err := parser.Parse(context.Background(), []byte(cleanSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.Type() != "module" {
		t.Errorf("expected module root, got %q", root.Type())
	}
	if root.HasError() {
		t.Error("clean source should parse without error nodes")
	}
}

func TestParseInvalidSourceStillYieldsTree(t *testing.T) {
	parser := NewParser()

	tree, err := parser.Parse(context.Background(), []byte(brokenSource))
	if err != nil {
		t.Fatalf("tree-sitter is error-tolerant, got error: %v", err)
	}
	defer tree.Close()

	if !tree.RootNode().HasError() {
		t.Error("expected error nodes in tree for broken source")
	}
}

func TestParseSourceTooLarge(t *testing.T) {
	parser := NewParser(WithMaxSourceSize(8))

	_, err := parser.Parse(context.Background(), []byte("x = 1234567890\n"))
	if !errors.Is(err, ErrSourceTooLarge) {
		t.Fatalf("expected ErrSourceTooLarge, got %v", err)
	}
}

func TestParseInvalidEncoding(t *testing.T) {
	parser := NewParser()

	_, err := parser.Parse(context.Background(), []byte{0xff, 0xfe, 0xfd})
	if !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected ErrInvalidEncoding, got %v", err)
	}
}

func TestParseCanceledContext(t *testing.T) {
	parser := NewParser()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, []byte(cleanSource))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFirstSyntaxError(t *testing.T) {
	parser := NewParser()

	source := []byte("x = 1\ndef broken(:\n    return 1\n")
	tree, err := parser.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	line, msg, ok := firstSyntaxError(tree.RootNode(), source)
	if !ok {
		t.Fatal("expected a syntax error to be located")
	}
	if line < 2 {
		t.Errorf("expected error reported at or after line 2, got %d", line)
	}
	if msg == "" {
		t.Error("expected a non-empty error description")
	}
}

func TestSyntaxErrorMessageValidUTF8(t *testing.T) {
	parser := NewParser()

	// A long run of multi-byte identifiers inside an unclosed call, so
	// the snippet truncation lands inside the error region. The message
	// must never be cut mid-rune.
	source := []byte("f(" + strings.Repeat("é", 60) + "\n")
	tree, err := parser.Parse(context.Background(), source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		t.Fatal("expected error nodes in tree")
	}

	_, msg, ok := firstSyntaxError(root, source)
	if !ok {
		t.Fatal("expected a syntax error to be located")
	}
	if !utf8.ValidString(msg) {
		t.Fatalf("syntax error message is not valid UTF-8: %q", msg)
	}
}
