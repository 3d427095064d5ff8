// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

// Package aggregate orders the deduplicated finding set and derives the
// summary tables handed to every renderer.
package aggregate

import (
	"sort"

	"github.com/secreporting/openvas-report/internal/config"
	"github.com/secreporting/openvas-report/internal/types"
)

// FamilyCount is one entry of the per-family finding table.
type FamilyCount struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

// Summary is the complete contract with downstream renderers: the ordered
// finding list plus the three summary tables. Renderers consume nothing
// else.
type Summary struct {
	Findings     []*types.Vulnerability `json:"findings"`
	LevelCounts  map[config.Level]int   `json:"level_counts"`
	HostsByLevel map[config.Level]int   `json:"hosts_by_level"`
	Families     []FamilyCount          `json:"families"`
}

// Total returns the number of findings in the summary.
func (s *Summary) Total() int { return len(s.Findings) }

// Build sorts the findings and computes the summary tables.
//
// Ordering is score descending with ties broken by name ascending, the
// canonical presentation order. LevelCounts carries all five levels, zero
// included, and sums to the total finding count. HostsByLevel counts
// distinct host IPs per level: a host hit by several findings, or on
// several ports, at the same level counts once. Families are listed in
// first-seen order over the sorted findings so downstream tables and
// legends stay stable.
func Build(findings []*types.Vulnerability) *Summary {
	sorted := make([]*types.Vulnerability, len(findings))
	copy(sorted, findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Name < sorted[j].Name
	})

	levelCounts := make(map[config.Level]int, len(config.Levels()))
	hostSets := make(map[config.Level]map[string]struct{}, len(config.Levels()))
	for _, level := range config.Levels() {
		levelCounts[level] = 0
		hostSets[level] = make(map[string]struct{})
	}

	familyIndex := make(map[string]int)
	var families []FamilyCount

	for _, vuln := range sorted {
		levelCounts[vuln.Level]++

		for _, occ := range vuln.Hosts {
			hostSets[vuln.Level][occ.Host.IP] = struct{}{}
		}

		if i, ok := familyIndex[vuln.Family]; ok {
			families[i].Count++
		} else {
			familyIndex[vuln.Family] = len(families)
			families = append(families, FamilyCount{Family: vuln.Family, Count: 1})
		}
	}

	hostsByLevel := make(map[config.Level]int, len(hostSets))
	for level, set := range hostSets {
		hostsByLevel[level] = len(set)
	}

	return &Summary{
		Findings:     sorted,
		LevelCounts:  levelCounts,
		HostsByLevel: hostsByLevel,
		Families:     families,
	}
}
