// =============================================================================
// internal/audit/index.go - Normalized record lookup
// =============================================================================
package audit

import "strings"

// Normalize converts a DNS name to its canonical comparison form: exactly
// one trailing dot stripped, then lower-cased. Every lookup and comparison
// in the engine goes through this, never the raw record name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// Index maps normalized names to the zone's authoritative record for that
// name. Built once per run, read-only afterwards.
type Index struct {
	records map[string]Record
}

// BuildIndex indexes records by normalized name. When the same normalized
// name appears more than once, the first occurrence wins.
func BuildIndex(records []Record) *Index {
	idx := &Index{records: make(map[string]Record, len(records))}
	for _, rec := range records {
		key := Normalize(rec.Name)
		if _, ok := idx.records[key]; !ok {
			idx.records[key] = rec
		}
	}
	return idx
}

// Lookup returns the record for an already-normalized name.
func (ix *Index) Lookup(name string) (Record, bool) {
	rec, ok := ix.records[name]
	return rec, ok
}

// Len returns the number of distinct normalized names indexed.
func (ix *Index) Len() int { return len(ix.records) }
