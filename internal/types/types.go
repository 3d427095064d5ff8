// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

// Package types holds the parsed report model: hosts, ports and
// deduplicated vulnerabilities.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/secreporting/openvas-report/internal/config"
)

// NoScore marks a finding whose report carried no usable severity value.
// It keeps "no score" distinguishable from a legitimate score of 0.0.
const NoScore = -1.0

// Host identifies one scanned target by IP address. Hostname is "-" when
// the report carries none.
type Host struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
}

// Port is one service endpoint a finding was observed on. Number 0 means
// the finding is not tied to a specific port ("general" in OpenVAS terms).
// Result carries the per-occurrence detail text, so the same finding on the
// same host but a different port stays a separate occurrence.
type Port struct {
	Number   int    `json:"number"`
	Protocol string `json:"protocol"`
	Result   string `json:"result,omitempty"`
}

// ParsePort builds a Port from a raw "number/protocol" token such as
// "443/tcp" or "general/tcp". A token that does not follow that shape is an
// error; callers record the occurrence without port detail in that case.
func ParsePort(token, result string) (*Port, error) {
	number, protocol, ok := strings.Cut(strings.TrimSpace(token), "/")
	if !ok {
		return nil, fmt.Errorf("port token %q: missing protocol separator", token)
	}
	if number == "general" {
		return &Port{Number: 0, Protocol: protocol, Result: result}, nil
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return nil, fmt.Errorf("port token %q: %w", token, err)
	}
	if n < 0 {
		return nil, fmt.Errorf("port token %q: negative port number", token)
	}
	return &Port{Number: n, Protocol: protocol, Result: result}, nil
}

// Occurrence records one place a vulnerability was observed. Port is nil
// when the port token was absent or malformed.
type Occurrence struct {
	Host Host  `json:"host"`
	Port *Port `json:"port,omitempty"`
}

// Vulnerability is one deduplicated finding, aggregated across every host
// and port it was observed on. All fields except Hosts are fixed when the
// finding is first seen; later records with the same OID only extend the
// occurrence list.
type Vulnerability struct {
	OID    string       `json:"oid"`
	Name   string       `json:"name"`
	Score  float64      `json:"cvss"`
	Level  config.Level `json:"level"`
	Threat string       `json:"threat"`
	Family string       `json:"family"`

	Description  string `json:"description"`
	Detection    string `json:"detection"`
	Insight      string `json:"insight"`
	Impact       string `json:"impact"`
	Affected     string `json:"affected"`
	Solution     string `json:"solution"`
	SolutionType string `json:"solution_type"`

	CVEs       []string     `json:"cves"`
	References []string     `json:"references"`
	Hosts      []Occurrence `json:"hosts"`
}

// AddHost appends one (host, port) occurrence to the finding.
func (v *Vulnerability) AddHost(host Host, port *Port) {
	v.Hosts = append(v.Hosts, Occurrence{Host: host, Port: port})
}

// HasScore reports whether the finding carries a real severity score.
func (v *Vulnerability) HasScore() bool {
	return v.Score >= 0
}
