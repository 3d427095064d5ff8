// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/secreporting/openvas-report/internal/aggregate"
	"github.com/secreporting/openvas-report/internal/config"
)

const maxNameWords = 12

// Table renders the summary as terminal tables: the ordered finding list,
// the per-level count table and the per-family count table.
type Table struct {
	IsTerminal bool // enables ANSI styling
}

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY).
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

func (t Table) Render(w io.Writer, sum *aggregate.Summary) error {
	t.writeHeader(w, sum)
	t.writeFindings(w, sum)
	fmt.Fprintln(w)
	t.writeLevelTable(w, sum)
	fmt.Fprintln(w)
	t.writeFamilyTable(w, sum)
	return nil
}

// writeHeader prints the title and the per-level total line.
func (t Table) writeHeader(w io.Writer, sum *aggregate.Summary) {
	title := "OpenVAS scan report"
	if t.IsTerminal {
		_ = tml.Fprintf(w, "<underline><bold>%s</bold></underline>\n", title)
	} else {
		fmt.Fprintln(w, title)
		fmt.Fprintln(w, strings.Repeat("=", len(title)))
	}
	fmt.Fprintln(w, levelSummary(sum))
	fmt.Fprintln(w)
}

// levelSummary returns a line like:
// Total: 5 (CRITICAL: 1, HIGH: 1, MEDIUM: 1, LOW: 2, NONE: 0)
func levelSummary(sum *aggregate.Summary) string {
	parts := make([]string, 0, len(config.Levels()))
	for _, level := range config.Levels() {
		parts = append(parts, fmt.Sprintf("%s: %d", strings.ToUpper(string(level)), sum.LevelCounts[level]))
	}
	return fmt.Sprintf("Total: %d (%s)", sum.Total(), strings.Join(parts, ", "))
}

// newTableWriter creates a table writer with borders and row separators.
// When isTerminal is true, header and line styles use ANSI formatting.
func newTableWriter(w io.Writer, isTerminal bool) *aqtable.Table {
	tw := aqtable.New(w)
	if isTerminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetRowLines(true)
	return tw
}

func (t Table) writeFindings(w io.Writer, sum *aggregate.Summary) {
	tw := newTableWriter(w, t.IsTerminal)
	tw.SetHeaders("Vulnerability", "Level", "CVSS", "Family", "Hosts", "CVEs")
	for _, vuln := range sum.Findings {
		level := vuln.Level.Display()
		if t.IsTerminal {
			level = colorizeLevel(vuln.Level)
		}
		tw.AddRow(
			truncateWords(vuln.Name, maxNameWords),
			level,
			formatScore(vuln.Score),
			vuln.Family,
			strconv.Itoa(len(vuln.Hosts)),
			strings.ToUpper(strings.Join(vuln.CVEs, ", ")),
		)
	}
	tw.Render()
}

func (t Table) writeLevelTable(w io.Writer, sum *aggregate.Summary) {
	tw := newTableWriter(w, t.IsTerminal)
	tw.SetHeaders("Level", "Findings", "Affected hosts")
	for _, level := range config.Levels() {
		name := level.Display()
		if t.IsTerminal {
			name = colorizeLevel(level)
		}
		tw.AddRow(name, strconv.Itoa(sum.LevelCounts[level]), strconv.Itoa(sum.HostsByLevel[level]))
	}
	tw.Render()
}

func (t Table) writeFamilyTable(w io.Writer, sum *aggregate.Summary) {
	tw := newTableWriter(w, t.IsTerminal)
	tw.SetHeaders("Family", "Findings")
	for _, fc := range sum.Families {
		tw.AddRow(fc.Family, strconv.Itoa(fc.Count))
	}
	tw.Render()
}

// levelColors maps risk levels to color functions.
var levelColors = map[config.Level]func(a ...any) string{
	config.LevelCritical: color.New(color.FgRed).SprintFunc(),
	config.LevelHigh:     color.New(color.FgHiRed).SprintFunc(),
	config.LevelMedium:   color.New(color.FgYellow).SprintFunc(),
	config.LevelLow:      color.New(color.FgBlue).SprintFunc(),
	config.LevelNone:     color.New(color.FgCyan).SprintFunc(),
}

// colorizeLevel returns the display name wrapped in ANSI color codes.
func colorizeLevel(level config.Level) string {
	if fn, ok := levelColors[level]; ok {
		return fn(level.Display())
	}
	return level.Display()
}

// truncateWords limits text to maxWords words, appending "..." if truncated.
func truncateWords(text string, maxWords int) string {
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
