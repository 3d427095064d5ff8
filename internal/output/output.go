// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

// Package output renders an aggregated report summary into one of the
// supported formats.
package output

import (
	"fmt"
	"io"

	"github.com/secreporting/openvas-report/internal/aggregate"
)

// Renderer writes a report summary to w. The summary is the entire input;
// renderers hold no other state about the scan.
type Renderer interface {
	Render(w io.Writer, sum *aggregate.Summary) error
}

// ForFormat returns the renderer for an explicitly selected format name.
// The set of formats is closed; unknown names are an error, not a lookup
// miss.
func ForFormat(format string, isTerminal bool) (Renderer, error) {
	switch format {
	case "xlsx":
		return XLSX{}, nil
	case "csv":
		return CSV{}, nil
	case "json":
		return JSON{}, nil
	case "table":
		return Table{IsTerminal: isTerminal}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// DefaultFilename returns the conventional output filename for file-bound
// formats, or "" for formats that default to stdout.
func DefaultFilename(format string) string {
	switch format {
	case "xlsx":
		return "openvas_report.xlsx"
	case "csv":
		return "openvas_report.csv"
	default:
		return ""
	}
}

// formatScore renders a CVSS score with one decimal, or "No CVSS" when the
// finding carried no usable severity value.
func formatScore(score float64) string {
	if score < 0 {
		return "No CVSS"
	}
	return fmt.Sprintf("%.1f", score)
}
