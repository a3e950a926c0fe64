// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRuffOutput is real-shaped output from `ruff check --output-format=json`.
const sampleRuffOutput = `[
  {
    "code": "F401",
    "end_location": {"column": 11, "row": 1},
    "filename": "submission.py",
    "fix": {
      "applicability": "safe",
      "message": "Remove unused import: os"
    },
    "location": {"column": 8, "row": 1},
    "message": "os imported but unused",
    "noqa_row": 1,
    "url": "https://docs.astral.sh/ruff/rules/unused-import"
  },
  {
    "code": "E741",
    "end_location": {"column": 2, "row": 3},
    "filename": "submission.py",
    "fix": null,
    "location": {"column": 1, "row": 3},
    "message": "Ambiguous variable name: l",
    "noqa_row": 3,
    "url": "https://docs.astral.sh/ruff/rules/ambiguous-variable-name"
  }
]`

func TestParseRuffOutput(t *testing.T) {
	issues, err := parseRuffOutput([]byte(sampleRuffOutput))
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, 1, issues[0].Line)
	assert.Equal(t, 8, issues[0].Column)
	assert.Equal(t, "F401", issues[0].Rule)
	assert.Equal(t, SeverityWarning, issues[0].Severity)
	assert.Equal(t, "os imported but unused", issues[0].Message)
	assert.True(t, issues[0].Fixable)
	assert.Equal(t, "https://docs.astral.sh/ruff/rules/unused-import", issues[0].RuleURL)

	assert.Equal(t, 3, issues[1].Line)
	assert.Equal(t, "E741", issues[1].Rule)
	assert.Equal(t, SeverityInfo, issues[1].Severity)
	assert.False(t, issues[1].Fixable)
}

func TestParseRuffOutputEmpty(t *testing.T) {
	issues, err := parseRuffOutput([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = parseRuffOutput([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestParseRuffOutputMalformed(t *testing.T) {
	_, err := parseRuffOutput([]byte("not json"))
	assert.Error(t, err)
}

func TestMapRuffSeverity(t *testing.T) {
	cases := []struct {
		code string
		want Severity
	}{
		{"E999", SeverityError},
		{"F821", SeverityError},
		{"F701", SeverityError},
		{"F401", SeverityWarning},
		{"E501", SeverityInfo},
		{"W291", SeverityInfo},
		{"B008", SeverityWarning},
		{"", SeverityWarning},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.Equal(t, tc.want, mapRuffSeverity(tc.code))
		})
	}
}
