// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/secreporting/openvas-report/internal/aggregate"
)

// csvHeader is the fixed column layout, one row per (finding, occurrence)
// pair.
var csvHeader = []string{
	"hostname", "ip", "port", "protocol",
	"vulnerability", "cvss", "threat", "family",
	"description", "detection", "insight", "impact", "affected", "solution", "solution_type",
	"vuln_id", "cve", "references",
}

// CSV renders every occurrence of every finding as one delimited row, in
// the summary's canonical order.
type CSV struct{}

func (CSV) Render(w io.Writer, sum *aggregate.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, vuln := range sum.Findings {
		score := ""
		if vuln.HasScore() {
			score = strconv.FormatFloat(vuln.Score, 'f', 1, 64)
		}
		for _, occ := range vuln.Hosts {
			portNumber, protocol := "", ""
			if occ.Port != nil {
				portNumber = strconv.Itoa(occ.Port.Number)
				protocol = occ.Port.Protocol
			}
			row := []string{
				occ.Host.Hostname,
				occ.Host.IP,
				portNumber,
				protocol,
				vuln.Name,
				score,
				string(vuln.Level),
				vuln.Family,
				vuln.Description,
				vuln.Detection,
				vuln.Insight,
				vuln.Impact,
				vuln.Affected,
				vuln.Solution,
				vuln.SolutionType,
				vuln.OID,
				strings.Join(vuln.CVEs, " - "),
				strings.Join(vuln.References, " - "),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
