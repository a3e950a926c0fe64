// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides gin middleware for the debugger service.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS allows browser UIs on any origin to call the API.
//
// The service is designed to sit behind a local or trusted reverse
// proxy, so the policy is wide open.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		// No Allow-Credentials: browsers reject it combined with a
		// wildcard origin, and the API has no cookie or auth surface.
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
