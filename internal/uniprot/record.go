// Package uniprot models UniProt annotation records and parses their
// feature/modification data into a normalized position model.
package uniprot

import (
	"strings"
	"sync"

	"github.com/proteovis/proteovis/internal/data"
)

// Record wraps a loosely-structured UniProt entry. Upstream payloads
// differ between API versions, so field access goes through
// accessors that try each known encoding.
type Record struct {
	Accession string
	raw       data.Value
}

// NewRecord wraps a decoded UniProt payload.
func NewRecord(accession string, raw data.Value) Record {
	return Record{Accession: accession, raw: raw}
}

// Raw returns the underlying value.
func (r Record) Raw() data.Value { return r.raw }

// GeneName returns the primary gene name, or "" when the record
// carries none. The flattened tab-separated API uses a "Gene Names"
// column (space-separated, first name is primary); the structured
// API nests it under genes[0].geneName.value.
func (r Record) GeneName() string {
	for _, field := range []string{"Gene Names", "Gene names"} {
		if names := strings.Fields(r.raw.Field(field).Str()); len(names) > 0 {
			return names[0]
		}
	}

	genes := r.raw.Field("genes").Items()
	if len(genes) > 0 {
		if name := genes[0].Field("geneName").Field("value").Str(); name != "" {
			return name
		}
	}
	return ""
}

// Sequence returns the canonical sequence, or "".
func (r Record) Sequence() string {
	if seq := r.raw.Field("Sequence").Str(); seq != "" {
		return seq
	}
	return r.raw.Field("sequence").Field("value").Str()
}

// Features parses the record's modification features, trying the
// structured encoding first and the flattened string second.
func (r Record) Features() []Feature {
	if features := r.raw.Field("features"); !features.IsNull() {
		return ParseFeatures(features)
	}
	for _, field := range []string{"Modified residue", "Modified residues"} {
		if v := r.raw.Field(field); !v.IsNull() {
			return ParseFeatures(v)
		}
	}
	return nil
}

// Store is an in-memory accession-to-record map. It implements the
// classification engine's gene-name lookup; composite primary IDs
// resolve through their first accession-shaped part.
type Store struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{records: map[string]Record{}}
}

// Put adds a record under its accession.
func (s *Store) Put(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Accession] = rec
}

// Get returns the record for an accession.
func (s *Store) Get(accession string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[accession]
	return rec, ok
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// GeneName resolves a primary ID to a gene name via the stored
// records. Composite IDs ("P04637;Q00987") are tried part by part;
// the first record with a non-empty gene name wins. Returns "" when
// nothing matches, which callers treat as "no data available".
func (s *Store) GeneName(primaryID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, part := range strings.Split(primaryID, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "-"); idx > 0 {
			part = part[:idx]
		}
		if rec, ok := s.records[part]; ok {
			if name := rec.GeneName(); name != "" {
				return name
			}
		}
	}
	return ""
}
