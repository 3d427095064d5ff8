// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table{}.Render(&buf, makeTestSummary()))
	out := buf.String()

	assert.Contains(t, out, "OpenVAS scan report")
	assert.Contains(t, out, "Total: 2 (CRITICAL: 1, HIGH: 0, MEDIUM: 0, LOW: 0, NONE: 1)")
	assert.Contains(t, out, "Remote code execution")
	assert.Contains(t, out, "TLS weak cipher suites")
	assert.Contains(t, out, "No CVSS")
	assert.Contains(t, out, "CVE-2020-9999")
	assert.Contains(t, out, "Web application abuses")
	assert.Contains(t, out, "Affected hosts")

	// Non-terminal output carries no ANSI escape codes.
	assert.NotContains(t, out, "\x1b[")
}

func TestTable_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	sum := makeTestSummary()
	sum.Findings = nil
	for level := range sum.LevelCounts {
		sum.LevelCounts[level] = 0
		sum.HostsByLevel[level] = 0
	}
	sum.Families = nil

	require.NoError(t, Table{}.Render(&buf, sum))
	assert.Contains(t, buf.String(), "Total: 0")
}

func TestLevelSummary(t *testing.T) {
	assert.Equal(t,
		"Total: 2 (CRITICAL: 1, HIGH: 0, MEDIUM: 0, LOW: 0, NONE: 1)",
		levelSummary(makeTestSummary()))
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "a b", truncateWords("a b", 12))
	assert.Equal(t, "a b c...", truncateWords("a b c d", 3))
}
