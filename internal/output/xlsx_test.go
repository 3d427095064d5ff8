// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX{}.Render(&buf, makeTestSummary()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// One sheet per finding plus Summary and TOC.
	sheets := f.GetSheetList()
	require.Len(t, sheets, 4)
	assert.Equal(t, "Summary", sheets[0])
	assert.Contains(t, sheets, "TOC")

	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "VULNERABILITY SUMMARY", cell("Summary", "B2"))
	assert.Equal(t, "Threat", cell("Summary", "B3"))
	assert.Equal(t, "Critical", cell("Summary", "B4"))
	assert.Equal(t, "1", cell("Summary", "C4"))
	assert.Equal(t, "1", cell("Summary", "D4"))
	assert.Equal(t, "None", cell("Summary", "B8"))
	assert.Equal(t, "2", cell("Summary", "D8"))

	assert.Equal(t, "VULNERABILITIES BY FAMILY", cell("Summary", "B19"))
	assert.Equal(t, "Web application abuses", cell("Summary", "B21"))
	assert.Equal(t, "SSL and TLS", cell("Summary", "B22"))

	assert.Equal(t, "TABLE OF CONTENTS", cell("TOC", "B2"))
	assert.Equal(t, "001", cell("TOC", "B4"))
	assert.Equal(t, "Remote code execution", cell("TOC", "C4"))
	assert.Equal(t, "9.8 (Critical)", cell("TOC", "D4"))
	assert.Equal(t, "10.0.1.12", cell("TOC", "E4"))
	assert.Equal(t, "No CVSS (None)", cell("TOC", "D5"))

	vulnSheet := "001_Remote code execution"
	assert.Equal(t, "Title", cell(vulnSheet, "B2"))
	assert.Equal(t, "Remote code execution", cell(vulnSheet, "C2"))
	assert.Equal(t, "CVE-2020-9999", cell(vulnSheet, "C7"))
	assert.Equal(t, "10.0.1.12", cell(vulnSheet, "C14"))
	assert.Equal(t, "8080", cell(vulnSheet, "E14"))

	// The portless occurrence of the second finding.
	weakSheet := "002_TLS weak cipher suites"
	assert.Equal(t, "No CVE", cell(weakSheet, "C7"))
	assert.Equal(t, "No port info", cell(weakSheet, "E14"))
	assert.Equal(t, "443", cell(weakSheet, "E15"))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "001_Short name", sheetName(1, "Short name"))
	// Forbidden characters stripped.
	assert.Equal(t, "00A_name", sheetName(10, `na[m]e:*?/`))
	// Long names collapse to head..tail within the 31-character limit.
	long := sheetName(2, "An extremely long vulnerability title that will not fit")
	assert.LessOrEqual(t, len(long), 31)
	assert.Contains(t, long, "..")
}
