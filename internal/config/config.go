// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"strings"
)

// Level is a discrete risk category derived from a CVSS score.
type Level string

const (
	LevelCritical Level = "critical"
	LevelHigh     Level = "high"
	LevelMedium   Level = "medium"
	LevelLow      Level = "low"
	LevelNone     Level = "none"
)

// Levels returns all risk levels ordered from most to least severe.
func Levels() []Level {
	return []Level{LevelCritical, LevelHigh, LevelMedium, LevelLow, LevelNone}
}

func (l Level) String() string { return string(l) }

// Rank returns a numeric rank for sorting and filtering (higher = more severe).
func (l Level) Rank() int {
	switch l {
	case LevelCritical:
		return 5
	case LevelHigh:
		return 4
	case LevelMedium:
		return 3
	case LevelLow:
		return 2
	case LevelNone:
		return 1
	default:
		return 0
	}
}

// Display returns the level name capitalized for report output.
func (l Level) Display() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[0])) + string(l[1:])
}

// ParseLevel resolves a user-supplied level name. Both full names and the
// single-letter shorthands (c, h, m, l, n) are accepted.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical", "c":
		return LevelCritical, nil
	case "high", "h":
		return LevelHigh, nil
	case "medium", "m":
		return LevelMedium, nil
	case "low", "l":
		return LevelLow, nil
	case "none", "n":
		return LevelNone, nil
	default:
		return "", fmt.Errorf("unknown level %q (expected critical, high, medium, low or none)", s)
	}
}

// defaultThresholds maps each level to the minimum CVSS score that
// classifies a finding at that level.
var defaultThresholds = map[Level]float64{
	LevelCritical: 9.0,
	LevelHigh:     7.0,
	LevelMedium:   4.0,
	LevelLow:      0.1,
	LevelNone:     0.0,
}

// Config holds the score-to-level threshold table and the minimum level a
// finding must reach to enter the report. It is constructed once and passed
// explicitly to the components that classify or filter.
type Config struct {
	thresholds map[Level]float64
	minLevel   Level
}

// New returns a Config with the default threshold table and the given
// minimum level filter.
func New(minLevel Level) Config {
	return Config{
		thresholds: defaultThresholds,
		minLevel:   minLevel,
	}
}

// MinLevel returns the configured minimum level filter.
func (c Config) MinLevel() Level { return c.minLevel }

// Threshold returns the minimum score for the given level.
func (c Config) Threshold(l Level) float64 { return c.thresholds[l] }

// Classify maps a CVSS score to a risk level. The threshold table is walked
// from the most severe level down and the first level whose minimum score is
// reached wins. Every score maps to exactly one level; scores below all
// thresholds, including the negative no-score sentinel, classify as
// LevelNone.
func (c Config) Classify(score float64) Level {
	for _, level := range Levels() {
		if score >= c.thresholds[level] {
			return level
		}
	}
	return LevelNone
}

// Accepts reports whether a finding at the given level satisfies the
// minimum level filter. The acceptance set is inclusive of the minimum
// level and everything above it.
func (c Config) Accepts(l Level) bool {
	return l.Rank() >= c.minLevel.Rank()
}
