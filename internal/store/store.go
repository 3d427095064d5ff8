// SPDX-FileCopyrightText: 2026 The openvas-report authors
// SPDX-License-Identifier: Apache-2.0

// Package store deduplicates findings by OID while records are folded in
// from one or more report documents.
package store

import (
	"github.com/secreporting/openvas-report/internal/types"
)

// Store keys findings by OID. The merge rule is first-seen-wins for every
// descriptive field; only the occurrence list grows on later records.
// Access is single-threaded, matching the batch ingestion pipeline.
type Store struct {
	findings map[string]*types.Vulnerability
	order    []string
}

// New returns an empty Store.
func New() *Store {
	return &Store{findings: make(map[string]*types.Vulnerability)}
}

// Upsert folds one normalized record into the store. The first record for
// an OID creates the finding; every record, first or not, appends its
// (host, port) occurrence. The returned finding is the stored one.
func (s *Store) Upsert(v *types.Vulnerability, host types.Host, port *types.Port) *types.Vulnerability {
	existing, ok := s.findings[v.OID]
	if !ok {
		existing = v
		s.findings[v.OID] = v
		s.order = append(s.order, v.OID)
	}
	existing.AddHost(host, port)
	return existing
}

// Get returns the finding for the given OID, or nil.
func (s *Store) Get(oid string) *types.Vulnerability {
	return s.findings[oid]
}

// Len returns the number of distinct findings.
func (s *Store) Len() int { return len(s.findings) }

// Findings returns all findings in first-seen order. Presentation ordering
// is the aggregator's job.
func (s *Store) Findings() []*types.Vulnerability {
	out := make([]*types.Vulnerability, 0, len(s.order))
	for _, oid := range s.order {
		out = append(out, s.findings[oid])
	}
	return out
}
