// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package llm

import (
	"context"
	"errors"
	"testing"
)

func TestMockClientSequencing(t *testing.T) {
	mock := &MockClient{Responses: []string{"one", "two"}}
	ctx := context.Background()

	got, err := mock.Generate(ctx, "", "first prompt", GenerationParams{})
	if err != nil || got != "one" {
		t.Fatalf("expected (one, nil), got (%q, %v)", got, err)
	}

	got, _ = mock.Generate(ctx, "", "second prompt", GenerationParams{})
	if got != "two" {
		t.Fatalf("expected two, got %q", got)
	}

	// Exhausted responses repeat the last one.
	got, _ = mock.Generate(ctx, "", "third prompt", GenerationParams{})
	if got != "two" {
		t.Fatalf("expected last response to repeat, got %q", got)
	}

	if len(mock.Calls) != 3 {
		t.Fatalf("expected 3 recorded calls, got %d", len(mock.Calls))
	}
}

func TestMockClientError(t *testing.T) {
	wantErr := errors.New("backend down")
	mock := &MockClient{Err: wantErr}

	_, err := mock.Chat(context.Background(), []Message{{Role: "user", Content: "hi"}}, GenerationParams{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected configured error, got %v", err)
	}
}

func TestMockClientChatRecordsLastMessage(t *testing.T) {
	mock := &MockClient{Responses: []string{"ok"}}

	messages := []Message{
		{Role: "system", Content: "persona"},
		{Role: "user", Content: "the actual question"},
	}
	if _, err := mock.Chat(context.Background(), messages, GenerationParams{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(mock.Calls) != 1 || mock.Calls[0] != "the actual question" {
		t.Fatalf("expected the final user message recorded, got %v", mock.Calls)
	}
}

func TestNewOpenAIClientFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("OPENAI_RPS", "5")

	client, err := NewOpenAIClient()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model != "gpt-4o" {
		t.Errorf("expected model from env, got %q", client.model)
	}
}
