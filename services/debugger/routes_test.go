// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package debugger

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/DebugBuddy/services/analysis"
	"github.com/AleutianAI/DebugBuddy/services/debugger/handlers"
	"github.com/AleutianAI/DebugBuddy/services/lint"
	"github.com/AleutianAI/DebugBuddy/services/llm"
	"github.com/AleutianAI/DebugBuddy/services/suggest"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, uiDir string) *gin.Engine {
	t.Helper()

	pipeline := &handlers.Pipeline{
		Scanner: analysis.NewScanner(nil),
		Linter: lint.NewRunner(lint.WithConfig(lint.Config{
			Command:   "definitely-not-a-real-linter",
			CheckArgs: []string{"check", "-"},
			Timeout:   time.Second,
		})),
		Suggester: suggest.NewSuggester(&llm.MockClient{Responses: []string{"ok"}}),
	}

	router := gin.New()
	SetupRoutes(router, pipeline, uiDir)
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRoutesHealth(t *testing.T) {
	router := newTestRouter(t, "")

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRoutesMetrics(t *testing.T) {
	router := newTestRouter(t, "")

	w := get(router, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutesAnalyze(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze",
		strings.NewReader(`{"code": "x = 1\n"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "performance_tips")
}

func TestRoutesRootWithoutUI(t *testing.T) {
	router := newTestRouter(t, "")

	w := get(router, "/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutesUIRedirect(t *testing.T) {
	uiDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(uiDir, "index.html"), []byte("<html></html>"), 0o644))

	router := newTestRouter(t, uiDir)

	w := get(router, "/")
	require.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/ui/index.html", w.Header().Get("Location"))

	w = get(router, "/ui/index.html")
	assert.Equal(t, http.StatusOK, w.Code)
}
