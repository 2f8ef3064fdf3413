// =============================================================================
// internal/audit/auditor.go - Full record set audit runs
// =============================================================================
package audit

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Summary holds the partitioned results of one audit run. All three slices
// preserve the zone's input record order; export-time sorting is the
// reporting layer's concern.
type Summary struct {
	All        []Result
	Resolved   []Result
	Unresolved []Result
}

// Auditor drives classification across a zone's full record set.
type Auditor struct {
	oracle Oracle
	log    *logrus.Entry
}

// NewAuditor creates an auditor. A nil log falls back to the standard logger.
func NewAuditor(oracle Oracle, log *logrus.Entry) *Auditor {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Auditor{oracle: oracle, log: log}
}

// Run classifies every eligible record in input order. Records whose name
// matches an ignore pattern are left out of the index entirely so chains
// cannot route through them. The limit counts classified records only and
// is checked before each classification, so ignored and duplicate records
// never consume it. Cancellation is honored between records.
func (a *Auditor) Run(ctx context.Context, records []Record, opts Options) (*Summary, error) {
	indexed := records
	if len(opts.IgnorePatterns) > 0 {
		indexed = make([]Record, 0, len(records))
		for _, rec := range records {
			if matchesAny(opts.IgnorePatterns, Normalize(rec.Name)) {
				continue
			}
			indexed = append(indexed, rec)
		}
	}
	index := BuildIndex(indexed)
	classifier := NewClassifier(index, a.oracle, opts, a.log)

	summary := &Summary{}
	classified := 0

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Limit > 0 && classified >= opts.Limit {
			break
		}

		result, ok := classifier.Classify(ctx, rec)
		if !ok {
			continue
		}
		classified++

		summary.All = append(summary.All, result)
		if len(result.Addrs) > 0 {
			summary.Resolved = append(summary.Resolved, result)
		} else {
			summary.Unresolved = append(summary.Unresolved, result)
		}
	}

	a.log.WithFields(logrus.Fields{
		"classified": classified,
		"resolved":   len(summary.Resolved),
		"unresolved": len(summary.Unresolved),
	}).Debug("audit run complete")

	return summary, nil
}
