// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lint executes an established external linter (Ruff) against
// submitted Python source and parses its JSON output.
//
// The package deliberately does not implement any lint rules of its own:
// full diagnostics come from Ruff, and the heuristic performance rules
// live in services/analysis. Source is piped to the linter over stdin,
// so nothing submitted by a client touches the filesystem.
//
// When the linter binary is not installed the runner degrades gracefully:
// lint results come back empty with LinterAvailable=false, and formatting
// returns the input unchanged. Missing tooling must never fail a request.
package lint
