// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/secreporting/openvas-report/internal/aggregate"
	"github.com/secreporting/openvas-report/internal/config"
	"github.com/secreporting/openvas-report/internal/types"
)

// Workbook color palette. Tab and cell colors follow the level of the
// finding a sheet describes.
const headerBlue = "183868"

var levelHexColors = map[config.Level]string{
	config.LevelCritical: "702DA0",
	config.LevelHigh:     "C80000",
	config.LevelMedium:   "FFC000",
	config.LevelLow:      "00B050",
	config.LevelNone:     "45B9EB",
}

// XLSX renders the summary as a workbook: a Summary sheet with the level
// and family tables plus pie charts, a table of contents, and one sheet per
// finding listing the affected hosts.
type XLSX struct{}

func (XLSX) Render(w io.Writer, sum *aggregate.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	b := &workbookBuilder{f: f}
	if err := b.styles(); err != nil {
		return fmt.Errorf("creating workbook styles: %w", err)
	}
	if err := b.summarySheet(sum); err != nil {
		return fmt.Errorf("building summary sheet: %w", err)
	}
	if err := b.findingSheets(sum); err != nil {
		return fmt.Errorf("building finding sheets: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

type workbookBuilder struct {
	f          *excelize.File
	titleStyle int
	headStyle  int
	cellStyle  int
}

func (b *workbookBuilder) styles() error {
	var err error
	b.titleStyle, err = b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: headerBlue},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    boxBorder(),
	})
	if err != nil {
		return err
	}
	b.headStyle, err = b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerBlue}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    boxBorder(),
	})
	if err != nil {
		return err
	}
	b.cellStyle, err = b.f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "top", WrapText: true},
		Border:    boxBorder(),
	})
	return err
}

func boxBorder() []excelize.Border {
	sides := []string{"left", "right", "top", "bottom"}
	borders := make([]excelize.Border, 0, len(sides))
	for _, side := range sides {
		borders = append(borders, excelize.Border{Type: side, Style: 1, Color: "000000"})
	}
	return borders
}

func (b *workbookBuilder) summarySheet(sum *aggregate.Summary) error {
	const sheet = "Summary"
	if err := b.f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	blue := headerBlue
	if err := b.f.SetSheetProps(sheet, &excelize.SheetPropsOptions{TabColorRGB: &blue}); err != nil {
		return err
	}
	_ = b.f.SetColWidth(sheet, "B", "D", 24)

	// Per-level table.
	if err := b.f.MergeCell(sheet, "B2", "D2"); err != nil {
		return err
	}
	b.setCell(sheet, "B2", "VULNERABILITY SUMMARY", b.titleStyle)
	b.setCell(sheet, "B3", "Threat", b.headStyle)
	b.setCell(sheet, "C3", "Vulns number", b.headStyle)
	b.setCell(sheet, "D3", "Affected hosts", b.headStyle)

	for i, level := range config.Levels() {
		row := i + 4
		b.setCell(sheet, fmt.Sprintf("B%d", row), level.Display(), b.titleStyle)
		b.setCell(sheet, fmt.Sprintf("C%d", row), sum.LevelCounts[level], b.cellStyle)
		b.setCell(sheet, fmt.Sprintf("D%d", row), sum.HostsByLevel[level], b.cellStyle)
	}
	b.setCell(sheet, "B9", "Total", b.headStyle)
	if err := b.f.SetCellFormula(sheet, "C9", "SUM($C$4:$C$8)"); err != nil {
		return err
	}
	if err := b.f.SetCellFormula(sheet, "D9", "SUM($D$4:$D$8)"); err != nil {
		return err
	}

	if err := b.f.AddChart(sheet, "F2", &excelize.Chart{
		Type:  excelize.Pie,
		Title: []excelize.RichTextRun{{Text: "Vulnerability summary"}},
		Series: []excelize.ChartSeries{{
			Name:       "vulnerability summary by affected hosts",
			Categories: "Summary!$B$4:$B$8",
			Values:     "Summary!$D$4:$D$8",
		}},
	}); err != nil {
		return err
	}

	// Per-family table.
	if err := b.f.MergeCell(sheet, "B19", "C19"); err != nil {
		return err
	}
	b.setCell(sheet, "B19", "VULNERABILITIES BY FAMILY", b.titleStyle)
	b.setCell(sheet, "B20", "family", b.headStyle)
	b.setCell(sheet, "C20", "vulns number", b.headStyle)

	row := 21
	for _, fc := range sum.Families {
		b.setCell(sheet, fmt.Sprintf("B%d", row), fc.Family, b.cellStyle)
		b.setCell(sheet, fmt.Sprintf("C%d", row), fc.Count, b.cellStyle)
		row++
	}
	b.setCell(sheet, fmt.Sprintf("B%d", row), "Total", b.headStyle)
	if err := b.f.SetCellFormula(sheet, fmt.Sprintf("C%d", row),
		fmt.Sprintf("SUM($C$21:$C$%d)", row-1)); err != nil {
		return err
	}

	if len(sum.Families) > 0 {
		if err := b.f.AddChart(sheet, "F19", &excelize.Chart{
			Type:  excelize.Pie,
			Title: []excelize.RichTextRun{{Text: "Vulnerability by family"}},
			Series: []excelize.ChartSeries{{
				Name:       "vulnerability summary by family",
				Categories: fmt.Sprintf("Summary!$B$21:$B$%d", row-1),
				Values:     fmt.Sprintf("Summary!$C$21:$C$%d", row-1),
			}},
		}); err != nil {
			return err
		}
	}
	return nil
}

func (b *workbookBuilder) findingSheets(sum *aggregate.Summary) error {
	const toc = "TOC"
	if _, err := b.f.NewSheet(toc); err != nil {
		return err
	}
	blue := headerBlue
	_ = b.f.SetSheetProps(toc, &excelize.SheetPropsOptions{TabColorRGB: &blue})
	_ = b.f.SetColWidth(toc, "C", "C", 90)
	_ = b.f.SetColWidth(toc, "D", "E", 24)

	if err := b.f.MergeCell(toc, "B2", "E2"); err != nil {
		return err
	}
	b.setCell(toc, "B2", "TABLE OF CONTENTS", b.titleStyle)
	b.setCell(toc, "B3", "No.", b.headStyle)
	b.setCell(toc, "C3", "Vuln Title", b.headStyle)
	b.setCell(toc, "D3", "Level", b.headStyle)
	b.setCell(toc, "E3", "Hosts", b.headStyle)

	for i, vuln := range sum.Findings {
		sheet := sheetName(i+1, vuln.Name)
		if _, err := b.f.NewSheet(sheet); err != nil {
			return err
		}
		if hex, ok := levelHexColors[vuln.Level]; ok {
			color := hex
			_ = b.f.SetSheetProps(sheet, &excelize.SheetPropsOptions{TabColorRGB: &color})
		}

		row := i + 4
		b.setCell(toc, fmt.Sprintf("B%d", row), fmt.Sprintf("%03X", i+1), b.cellStyle)
		b.setCell(toc, fmt.Sprintf("C%d", row), vuln.Name, b.cellStyle)
		_ = b.f.SetCellHyperLink(toc, fmt.Sprintf("C%d", row), fmt.Sprintf("'%s'!A1", sheet), "Location")
		b.setCell(toc, fmt.Sprintf("D%d", row),
			fmt.Sprintf("%s (%s)", formatScore(vuln.Score), vuln.Level.Display()), b.cellStyle)
		b.setCell(toc, fmt.Sprintf("E%d", row), hostList(vuln), b.cellStyle)

		if err := b.fillFindingSheet(sheet, vuln); err != nil {
			return err
		}
	}
	return nil
}

func (b *workbookBuilder) fillFindingSheet(sheet string, vuln *types.Vulnerability) error {
	_ = b.f.SetColWidth(sheet, "B", "B", 20)
	_ = b.f.SetColWidth(sheet, "C", "G", 26)

	cves := strings.ToUpper(strings.Join(vuln.CVEs, ", "))
	if cves == "" {
		cves = "No CVE"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Title", vuln.Name},
		{"Description", vuln.Description},
		{"Impact", vuln.Impact},
		{"Recommendation", vuln.Solution},
		{"Details", vuln.Insight},
		{"CVEs", cves},
		{"CVSS", formatScore(vuln.Score)},
		{"Level", vuln.Level.Display()},
		{"Family", vuln.Family},
		{"References", strings.Join(vuln.References, "\n")},
	}
	for i, r := range rows {
		row := i + 2
		b.setCell(sheet, fmt.Sprintf("B%d", row), r.label, b.headStyle)
		if err := b.f.MergeCell(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("G%d", row)); err != nil {
			return err
		}
		b.setCell(sheet, fmt.Sprintf("C%d", row), r.value, b.cellStyle)
	}

	b.setCell(sheet, "C13", "IP", b.headStyle)
	b.setCell(sheet, "D13", "Host name", b.headStyle)
	b.setCell(sheet, "E13", "Port number", b.headStyle)
	b.setCell(sheet, "F13", "Port protocol", b.headStyle)
	b.setCell(sheet, "G13", "Port Result", b.headStyle)

	for j, occ := range vuln.Hosts {
		row := j + 14
		b.setCell(sheet, fmt.Sprintf("C%d", row), occ.Host.IP, b.cellStyle)
		b.setCell(sheet, fmt.Sprintf("D%d", row), occ.Host.Hostname, b.cellStyle)
		if occ.Port != nil {
			if occ.Port.Number != 0 {
				b.setCell(sheet, fmt.Sprintf("E%d", row), occ.Port.Number, b.cellStyle)
			}
			b.setCell(sheet, fmt.Sprintf("F%d", row), occ.Port.Protocol, b.cellStyle)
			b.setCell(sheet, fmt.Sprintf("G%d", row), occ.Port.Result, b.cellStyle)
		} else {
			b.setCell(sheet, fmt.Sprintf("E%d", row), "No port info", b.cellStyle)
		}
	}
	return nil
}

func (b *workbookBuilder) setCell(sheet, cell string, value any, style int) {
	_ = b.f.SetCellValue(sheet, cell, value)
	_ = b.f.SetCellStyle(sheet, cell, cell, style)
}

// hostList joins the IPs of every occurrence for the TOC hosts column.
func hostList(vuln *types.Vulnerability) string {
	ips := make([]string, 0, len(vuln.Hosts))
	for _, occ := range vuln.Hosts {
		ips = append(ips, occ.Host.IP)
	}
	return strings.Join(ips, ", ")
}

var sheetNameForbidden = regexp.MustCompile(`[\[\]\\'"&@#():*?/]`)

// sheetName builds a worksheet name that satisfies Excel's 31-character
// limit: forbidden characters stripped, long names collapsed to a
// head..tail form, and a hex ordinal prefix keeping names unique.
func sheetName(ordinal int, title string) string {
	name := sheetNameForbidden.ReplaceAllString(title, "")
	if len(name) > 27 {
		name = name[:15] + ".." + name[len(name)-10:]
	}
	return fmt.Sprintf("%03X_%s", ordinal, name)
}
