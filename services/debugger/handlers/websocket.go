// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/DebugBuddy/services/llm"
	"github.com/AleutianAI/DebugBuddy/services/suggest"
)

// maxChatHistory caps the turns re-sent to the LLM per session; older
// turns fall off the front.
const maxChatHistory = 20

// WSRequest is one inbound chat frame.
type WSRequest struct {
	Message     string `json:"message"`
	CodeContext string `json:"code_context,omitempty"`
}

// WSResponse is one outbound chat frame.
type WSResponse struct {
	Answer string `json:"answer,omitempty"`
	Error  string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The API is CORS-open; the websocket matches.
		return true
	},
	ReadBufferSize:  1024 * 1024,
	WriteBufferSize: 1024 * 1024,
}

func sendJSON(ws *websocket.Conn, v any) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("Failed to write WebSocket JSON", "error", err)
	}
	return err
}

// HandleChatWebSocket serves GET /v1/chat/ws.
//
// Each connection is one chat session: the server assigns a session id
// on connect, keeps the conversation history for the lifetime of the
// connection, and answers each frame with the LLM's next turn. The code
// context may change per frame (the user edits their code mid-chat).
func HandleChatWebSocket(suggester *suggest.Suggester) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()

		sessionID := uuid.New().String()
		slog.Info("New websocket chat session started", "sessionID", sessionID)

		if err := sendJSON(ws, map[string]any{"session_id": sessionID}); err != nil {
			return
		}

		var history []llm.Message
		ctx := c.Request.Context()

		for {
			var req WSRequest
			if err := ws.ReadJSON(&req); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Warn("Websocket read failed", "sessionID", sessionID, "error", err)
				} else {
					slog.Info("Websocket session closed", "sessionID", sessionID)
				}
				return
			}

			if req.Message == "" {
				if err := sendJSON(ws, WSResponse{Error: "no message provided"}); err != nil {
					return
				}
				continue
			}

			answer := suggester.ChatReply(ctx, req.Message, req.CodeContext, history)

			history = append(history,
				llm.Message{Role: "user", Content: req.Message},
				llm.Message{Role: "assistant", Content: answer},
			)
			if len(history) > maxChatHistory {
				history = history[len(history)-maxChatHistory:]
			}

			if err := sendJSON(ws, WSResponse{Answer: answer}); err != nil {
				return
			}
		}
	}
}
