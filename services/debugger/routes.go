// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package debugger wires the debugger API routes.
package debugger

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/DebugBuddy/services/debugger/handlers"
)

// SetupRoutes registers every route of the debugger API on the router.
//
// uiDir, when non-empty, is mounted at /ui so the browser frontend can
// be served from the same process.
func SetupRoutes(router *gin.Engine, pipeline *handlers.Pipeline, uiDir string) {
	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if uiDir != "" {
		router.StaticFS("/ui", http.Dir(uiDir))
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/ui/index.html")
		})
	}

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/analyze", handlers.HandleAnalyze(pipeline))
		v1.POST("/upload", handlers.HandleUpload(pipeline))
		v1.POST("/chat/direct", handlers.HandleDirectChat(pipeline.Suggester))
		v1.GET("/chat/ws", handlers.HandleChatWebSocket(pipeline.Suggester))
	}
}
