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
	"testing"
)

func TestCheckSyntaxValidSource(t *testing.T) {
	scanner := NewScanner(nil)

	diags := scanner.CheckSyntax(context.Background(), []byte(cleanSource))
	if diags == nil {
		t.Fatal("expected non-nil diagnostics slice")
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics for valid source, got %+v", diags)
	}
}

func TestCheckSyntaxBrokenSource(t *testing.T) {
	scanner := NewScanner(nil)

	diags := scanner.CheckSyntax(context.Background(), []byte(brokenSource))
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	d := diags[0]
	if d.Type != "SyntaxError" {
		t.Errorf("expected SyntaxError type, got %q", d.Type)
	}
	if d.Severity != "error" {
		t.Errorf("expected error severity, got %q", d.Severity)
	}
	if d.Line < 1 {
		t.Errorf("expected a positive line number, got %d", d.Line)
	}
	if d.Message == "" {
		t.Error("expected a non-empty message")
	}
}

func TestCheckSyntaxUnreadableInput(t *testing.T) {
	scanner := NewScanner(nil)

	diags := scanner.CheckSyntax(context.Background(), []byte{0xff, 0xfe})
	if len(diags) != 1 {
		t.Fatalf("expected exactly 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	if diags[0].Line != 0 {
		t.Errorf("unreadable input reports at line 0, got %d", diags[0].Line)
	}
}
