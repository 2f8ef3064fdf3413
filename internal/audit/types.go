// =============================================================================
// internal/audit/types.go - Core audit data structures
// =============================================================================
package audit

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// RecordType is the DNS record set type as the zone provider reports it.
// The engine only resolves A and CNAME records; every other type is carried
// verbatim so it can be named in diagnostics.
type RecordType string

const (
	RecordTypeA     RecordType = "A"
	RecordTypeCNAME RecordType = "CNAME"
)

// Record is one resource record set pulled from a hosted zone.
// For CNAME records Values[0] is the target name; for A records the values
// are literal addresses, which the engine ignores and re-resolves live.
type Record struct {
	Name   string     `json:"name"`
	Type   RecordType `json:"type"`
	Values []string   `json:"values"`
}

// Status classifies the terminal state of resolving a single name. The
// string values are part of the export contract and must match the CSV
// output of earlier releases.
type Status string

const (
	StatusExternallyResolvableA Status = "Externally resolvable A record"
	StatusANotResolving         Status = "A record does not resolve externally"
	StatusResolvedExternally    Status = "Resolved externally"
	StatusNoExternalMatch       Status = "Does not have an IP match"
	StatusLoopDetected          Status = "CNAME loop detected"
	StatusMalformed             Status = "Malformed record (no value)"
)

// UnsupportedStatus names the record type that stopped a chain.
func UnsupportedStatus(t RecordType) Status {
	return Status(fmt.Sprintf("Unsupported record type: %s", t))
}

// Outcome is the terminal state of one chain resolution.
type Outcome struct {
	FinalName string
	Status    Status
	Addrs     []string
}

// NoResolution is the exported placeholder for records without addresses.
const NoResolution = "No DNS resolution"

// Result is the per-record report row consumed by reporting and export.
type Result struct {
	Source      string   `json:"source"`
	FinalDomain string   `json:"final_domain"`
	Status      string   `json:"status"`
	Addrs       []string `json:"ips,omitempty"`
}

// AllIPs renders the address list for export. Records without addresses get
// the NoResolution placeholder, which downstream consumers key on.
func (r Result) AllIPs() string {
	if len(r.Addrs) == 0 {
		return NoResolution
	}
	return strings.Join(r.Addrs, ", ")
}

// Oracle performs live A-record lookups. Implementations return the sorted
// addresses for a name, or nil when the name does not resolve for any
// reason; the engine never distinguishes failure causes.
type Oracle interface {
	LookupA(ctx context.Context, name string) []string
}

// Options controls one audit run.
type Options struct {
	// IgnorePatterns drop records whose source (or CNAME target) matches.
	IgnorePatterns []*regexp.Regexp
	// Limit caps the number of classified records; zero or negative means
	// no limit.
	Limit int
	// NoFollow resolves only the source and its immediate target instead of
	// walking CNAME indirection to its terminus. The zero value follows
	// chains, which is the primary mode.
	NoFollow bool
}

func matchesAny(patterns []*regexp.Regexp, name string) bool {
	for _, pat := range patterns {
		if pat.MatchString(name) {
			return true
		}
	}
	return false
}
