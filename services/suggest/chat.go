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
	"context"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/DebugBuddy/services/llm"
)

const chatPersona = "You are an expert Python developer helping users debug their code."

// chatPromptTemplate grounds a free-form question in the submitted code.
const chatPromptTemplate = `User Question: %s

Code Context:
%s

Please provide a helpful response that:
1. Addresses the specific question
2. Explains any relevant concepts
3. Provides practical solutions if applicable`

// ChatReply answers a follow-up question about previously submitted code.
//
// Description:
//
//	Builds the conversation as persona, prior history, then the new
//	question wrapped with the code context, and asks the LLM for the
//	next turn. Failures degrade to an error-text reply rather than
//	propagating: the chat surface always answers.
//
// Thread Safety: Safe for concurrent use.
func (s *Suggester) ChatReply(ctx context.Context, message, codeContext string, history []llm.Message) string {
	temp := float32(0.7)
	maxTokens := 1000
	params := llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: chatPersona})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{
		Role:    "user",
		Content: fmt.Sprintf(chatPromptTemplate, message, codeContext),
	})

	answer, err := s.client.Chat(ctx, messages, params)
	if err != nil {
		slog.Error("Failed to get chat response", "error", err)
		return fmt.Sprintf("Failed to get AI response: %v", err)
	}
	return answer
}
