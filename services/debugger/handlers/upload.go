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
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
)

// maxUploadSize bounds uploaded files (2MB). Pasted source goes through
// /v1/analyze; this limit only guards the multipart path.
const maxUploadSize = 2 * 1024 * 1024

// HandleUpload serves POST /v1/upload.
//
// Accepts a multipart form with a "file" field, decodes it as UTF-8
// Python source, and runs the same pipeline as HandleAnalyze.
func HandleUpload(p *Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleUpload")
		defer span.End()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
			return
		}
		if fileHeader.Size > maxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to open uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		defer file.Close()

		contents, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to read uploaded file", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
			return
		}
		if !utf8.Valid(contents) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is not valid UTF-8"})
			return
		}

		slog.Info("Analyzing uploaded file",
			"filename", fileHeader.Filename,
			"size_bytes", len(contents))

		resp := p.run(ctx, string(contents))
		c.JSON(http.StatusOK, resp)
	}
}
