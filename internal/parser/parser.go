// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

// Package parser extracts findings from OpenVAS XML report documents and
// folds them, normalized and deduplicated, into a finding store.
package parser

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/secreporting/openvas-report/internal/config"
	"github.com/secreporting/openvas-report/internal/store"
	"github.com/secreporting/openvas-report/internal/types"
)

// reportAttrs are the attributes the opening <report> marker must carry for
// a document to be accepted as an OpenVAS report export.
var reportAttrs = []string{"extension", "format_id", "content_type"}

// documentXML mirrors the parts of the report document the parser reads.
// Exports wrap the actual report in a container <report> element, so the
// structure nests one level.
type documentXML struct {
	XMLName xml.Name     `xml:"report"`
	Inner   *documentXML `xml:"report"`
	Results []resultXML  `xml:"results>result"`
}

type resultXML struct {
	NVT struct {
		OID    string `xml:"oid,attr"`
		Name   string `xml:"name"`
		Family string `xml:"family"`
		CVE    string `xml:"cve"`
		XRef   string `xml:"xref"`
		Tags   string `xml:"tags"`
	} `xml:"nvt"`
	Severity string `xml:"severity"`
	Threat   string `xml:"threat"`
	Host     struct {
		IP       string `xml:",chardata"`
		Hostname string `xml:"hostname"`
	} `xml:"host"`
	Port        string `xml:"port"`
	Description string `xml:"description"`
}

// Parser folds one or more report documents into a shared finding store.
// Documents are processed sequentially in caller order; records from later
// documents extend the occurrence lists of findings seen earlier.
type Parser struct {
	cfg   config.Config
	store *store.Store
}

// New returns a Parser filtering at the minimum level carried by cfg.
func New(cfg config.Config) *Parser {
	return &Parser{cfg: cfg, store: store.New()}
}

// ParseFile reads and parses one report document from disk.
func (p *Parser) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading report: %w", err)
	}
	if err := p.Parse(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Parse folds one report document into the store. A document whose opening
// marker is not an OpenVAS report aborts with a format error; individual
// malformed records never do.
func (p *Parser) Parse(data []byte) error {
	if err := sniff(data); err != nil {
		return err
	}

	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing report XML: %w", err)
	}

	for d := &doc; d != nil; d = d.Inner {
		for i := range d.Results {
			p.ingest(&d.Results[i])
		}
	}
	return nil
}

// Findings returns the deduplicated findings accumulated so far, in
// first-seen order.
func (p *Parser) Findings() []*types.Vulnerability {
	return p.store.Findings()
}

// sniff checks the opening structural marker without parsing the whole
// document: the root element must be <report> and carry the attributes of
// an OpenVAS report export.
func sniff(data []byte) error {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	s := strings.TrimLeft(string(head), " \t\r\n\uFEFF")
	if rest, ok := strings.CutPrefix(s, "<?xml"); ok {
		if _, after, found := strings.Cut(rest, "?>"); found {
			s = strings.TrimLeft(after, " \t\r\n")
		}
	}
	if !strings.HasPrefix(s, "<report") {
		return fmt.Errorf("invalid report format: document does not start with a <report> element")
	}
	opening, _, _ := strings.Cut(s, ">")
	for _, attr := range reportAttrs {
		if !strings.Contains(opening, attr) {
			return fmt.Errorf("invalid report format: <report> element is missing the %q attribute", attr)
		}
	}
	return nil
}

// ingest normalizes one raw result and merges it into the store. Records
// without a usable OID and records below the minimum level are dropped
// here, before they ever reach the store.
func (p *Parser) ingest(res *resultXML) {
	oid := res.NVT.OID
	if oid == "" || oid == "0" {
		slog.Debug("skipping record without usable OID", "name", res.NVT.Name)
		return
	}

	name := fieldText(oid, "nvt/name", res.NVT.Name, "")
	score := p.parseScore(oid, res)
	level := p.cfg.Classify(score)
	if !p.cfg.Accepts(level) {
		slog.Debug("skipping record below minimum level",
			"oid", oid, "level", level, "min_level", p.cfg.MinLevel())
		return
	}

	threat := strings.ToLower(fieldText(oid, "threat", res.Threat, string(config.LevelNone)))
	family := fieldText(oid, "nvt/family", res.NVT.Family, "")
	tags := parseTags(oid, res.NVT.Tags)

	host := types.Host{
		IP:       strings.TrimSpace(res.Host.IP),
		Hostname: fieldText(oid, "host/hostname", strings.TrimSpace(res.Host.Hostname), "-"),
	}

	port, err := types.ParsePort(res.Port, res.Description)
	if err != nil {
		slog.Debug("recording occurrence without port detail", "oid", oid, "error", err)
		port = nil
	}

	vuln := &types.Vulnerability{
		OID:          oid,
		Name:         name,
		Score:        score,
		Level:        level,
		Threat:       threat,
		Family:       family,
		Description:  tags["summary"],
		Detection:    tags["vuldetect"],
		Insight:      tags["insight"],
		Impact:       tags["impact"],
		Affected:     tags["affected"],
		Solution:     tags["solution"],
		SolutionType: tags["solution_type"],
		CVEs:         parseCVEs(res.NVT.CVE),
		References:   parseReferences(res.NVT.XRef),
	}
	p.store.Upsert(vuln, host, port)
}

// parseScore extracts the severity score, falling back to the CVSS base
// vector tag when the severity field is absent or unparseable, and to the
// NoScore sentinel when neither yields a value.
func (p *Parser) parseScore(oid string, res *resultXML) float64 {
	raw := strings.TrimSpace(res.Severity)
	if raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return score
		}
		slog.Warn("unparseable severity value", "oid", oid, "severity", raw, "error", err)
	} else {
		slog.Debug("field missing, using default", "field", "severity", "oid", oid)
	}

	if vector := tagValue(res.NVT.Tags, "cvss_base_vector"); vector != "" {
		score, err := vectorBaseScore(vector)
		if err != nil {
			slog.Warn("unparseable CVSS base vector", "oid", oid, "vector", vector, "error", err)
			return types.NoScore
		}
		slog.Debug("severity derived from CVSS base vector", "oid", oid, "score", score)
		return score
	}
	return types.NoScore
}

// fieldText returns the extracted text of a field, or the default when the
// field resolved to nothing. Absence is expected and logged, never an error.
func fieldText(oid, field, raw, def string) string {
	if raw == "" {
		slog.Debug("field missing, using default", "field", field, "oid", oid)
		return def
	}
	return raw
}

var (
	crlfRuns    = regexp.MustCompile(`(\r\n)+`)
	newlineRuns = regexp.MustCompile(`\n+`)
	spaceRuns   = regexp.MustCompile(`[^\S\r\n]+`)
)

// collapseWhitespace folds consecutive newline sequences into one newline
// and runs of other whitespace into one space. Applied before any
// newline-delimited key=value splitting.
func collapseWhitespace(s string) string {
	s = crlfRuns.ReplaceAllString(s, "\r\n")
	s = newlineRuns.ReplaceAllString(s, "\n")
	return spaceRuns.ReplaceAllString(s, " ")
}

// parseTags splits the nvt tag text into key/value pairs. Entries are
// separated by "|" and split on the first "=". A malformed entry costs only
// itself, not the finding.
func parseTags(oid, text string) map[string]string {
	tags := make(map[string]string)
	if text == "" {
		return tags
	}
	for _, entry := range strings.Split(collapseWhitespace(text), "|") {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			slog.Warn("skipping malformed tag entry", "oid", oid, "entry", entry)
			continue
		}
		tags[key] = value
	}
	return tags
}

// tagValue extracts a single tag value without the full normalization pass.
func tagValue(text, key string) string {
	for _, entry := range strings.Split(text, "|") {
		if k, v, ok := strings.Cut(entry, "="); ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// noneSentinel reports whether a cve/xref value is one of the markers
// OpenVAS emits when a test has no external references.
func noneSentinel(s string) bool {
	return strings.EqualFold(s, "NOCVE") || strings.EqualFold(s, "NOXREF")
}

// parseCVEs normalizes the nvt cve text into a list of CVE identifiers.
func parseCVEs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || noneSentinel(text) {
		return nil
	}
	return []string{strings.ToLower(text)}
}

// parseReferences splits the nvt xref text into individual references. The
// "url:" marker separates entries; order is preserved.
func parseReferences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || noneSentinel(text) {
		return nil
	}
	var refs []string
	for _, part := range strings.Split(strings.ToLower(text), "url:") {
		if ref := strings.Trim(part, " \t\r\n,"); ref != "" {
			refs = append(refs, ref)
		}
	}
	return refs
}
