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
	"sync"
)

// MockClient is a scripted Client for tests.
//
// Responses are returned in order; once exhausted, the last response
// repeats. Set Err to make every call fail.
//
// Thread Safety: Safe for concurrent use.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error

	// Calls records every prompt or final user message received.
	Calls []string

	next int
}

// Generate implements the Client interface.
func (m *MockClient) Generate(ctx context.Context, system, prompt string, params GenerationParams) (string, error) {
	return m.reply(prompt)
}

// Chat implements the Client interface.
func (m *MockClient) Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error) {
	last := ""
	if len(messages) > 0 {
		last = messages[len(messages)-1].Content
	}
	return m.reply(last)
}

func (m *MockClient) reply(input string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, input)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	if m.next < len(m.Responses)-1 {
		m.next++
		return m.Responses[m.next-1], nil
	}
	return m.Responses[len(m.Responses)-1], nil
}

// Compile-time interface compliance check.
var _ Client = (*MockClient)(nil)
