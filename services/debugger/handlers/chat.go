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
	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/DebugBuddy/services/debugger/datatypes"
	"github.com/AleutianAI/DebugBuddy/services/suggest"
)

// HandleDirectChat serves POST /v1/chat/direct.
//
// One-shot follow-up questions about submitted code. Callers that want
// server-side conversation state use the websocket endpoint instead;
// here any prior turns ride along in the request's history field.
func HandleDirectChat(suggester *suggest.Suggester) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleDirectChat")
		defer span.End()

		var req datatypes.ChatRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the chat request", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		reply := suggester.ChatReply(ctx, req.Message, req.CodeContext, req.History)
		c.JSON(http.StatusOK, datatypes.ChatResponse{Response: reply})
	}
}
