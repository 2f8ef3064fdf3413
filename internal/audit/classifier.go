// =============================================================================
// internal/audit/classifier.go - Per-record classification
// =============================================================================
package audit

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

// Classifier resolves one record at a time against a fixed index and oracle,
// applying the run's ignore patterns and source dedup. One classifier serves
// exactly one run; the dedup set is its only mutable state.
type Classifier struct {
	index  *Index
	oracle Oracle
	opts   Options
	log    *logrus.Entry
	seen   map[string]struct{}
}

// NewClassifier builds a classifier for a single run.
func NewClassifier(index *Index, oracle Oracle, opts Options, log *logrus.Entry) *Classifier {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Classifier{
		index:  index,
		oracle: oracle,
		opts:   opts,
		log:    log,
		seen:   make(map[string]struct{}),
	}
}

// Classify resolves one record. The bool reports whether the record was
// classified; ignored records, duplicate sources and record types other than
// A/CNAME come back false and must not count toward any processing limit.
func (c *Classifier) Classify(ctx context.Context, rec Record) (Result, bool) {
	source := Normalize(rec.Name)

	var target string
	if rec.Type == RecordTypeCNAME && len(rec.Values) > 0 {
		target = Normalize(rec.Values[0])
	}

	if matchesAny(c.opts.IgnorePatterns, source) || (target != "" && matchesAny(c.opts.IgnorePatterns, target)) {
		c.log.WithField("record", source).Info("⚠️ ignored: name or CNAME target matches ignore pattern")
		return Result{}, false
	}

	if _, dup := c.seen[source]; dup {
		return Result{}, false
	}

	switch rec.Type {
	case RecordTypeCNAME:
		c.seen[source] = struct{}{}
		if len(rec.Values) == 0 {
			c.log.WithField("record", source).Warn("CNAME record carries no target value")
			return Result{Source: source, FinalDomain: source, Status: string(StatusMalformed)}, true
		}
		if c.opts.NoFollow {
			return c.classifyDirect(ctx, source, target), true
		}
		out := ResolveChain(ctx, target, c.index, c.oracle)
		return Result{Source: source, FinalDomain: out.FinalName, Status: string(out.Status), Addrs: out.Addrs}, true
	case RecordTypeA:
		c.seen[source] = struct{}{}
		if c.opts.NoFollow {
			return c.classifyDirect(ctx, source, ""), true
		}
		// The source itself is the terminus; the record is checked against
		// live resolution directly, not through the index, so another record
		// set sharing the name cannot shadow it.
		if addrs := c.oracle.LookupA(ctx, source); len(addrs) > 0 {
			return Result{Source: source, FinalDomain: source, Status: string(StatusExternallyResolvableA), Addrs: addrs}, true
		}
		return Result{Source: source, FinalDomain: source, Status: string(StatusANotResolving)}, true
	default:
		return Result{}, false
	}
}

// classifyDirect implements the source+target traversal mode: the source is
// resolved live as-is, and for CNAMEs the immediate target is resolved too,
// without walking the rest of the chain. An empty target means an A record.
func (c *Classifier) classifyDirect(ctx context.Context, source, target string) Result {
	srcAddrs := c.oracle.LookupA(ctx, source)

	parts := []string{"Source does not resolve"}
	if len(srcAddrs) > 0 {
		parts[0] = "Source resolves"
	}

	finalDomain := source
	if target != "" {
		finalDomain = target
		if len(srcAddrs) > 0 {
			if tgtAddrs := c.oracle.LookupA(ctx, target); len(tgtAddrs) > 0 {
				parts = append(parts, "Target resolves")
			} else {
				parts = append(parts, "Target does not resolve")
			}
		}
	}

	return Result{
		Source:      source,
		FinalDomain: finalDomain,
		Status:      strings.Join(parts, "; "),
		Addrs:       srcAddrs,
	}
}
