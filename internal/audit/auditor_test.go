package audit

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sources(results []Result) []string {
	var names []string
	for _, r := range results {
		names = append(names, r.Source)
	}
	return names
}

func TestRunPartitionsResults(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "live.example.com", Type: RecordTypeA, Values: []string{"1.1.1.1"}},
		{Name: "dead.example.com", Type: RecordTypeA, Values: []string{"2.2.2.2"}},
		{Name: "chain.example.com", Type: RecordTypeCNAME, Values: []string{"live.example.com"}},
	}
	oracle := &stubOracle{addrs: map[string][]string{"live.example.com": {"9.9.9.9"}}}
	auditor := NewAuditor(oracle, testLogger())

	summary, err := auditor.Run(context.Background(), records, Options{})
	if err != nil {
		t.Fatal(err)
	}

	wantAll := []string{"live.example.com", "dead.example.com", "chain.example.com"}
	if diff := cmp.Diff(wantAll, sources(summary.All)); diff != "" {
		t.Errorf("All order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"live.example.com", "chain.example.com"}, sources(summary.Resolved)); diff != "" {
		t.Errorf("Resolved mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dead.example.com"}, sources(summary.Unresolved)); diff != "" {
		t.Errorf("Unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDedupKeepsFirst(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "dup.example.com", Type: RecordTypeA, Values: []string{"1.1.1.1"}},
		{Name: "dup.example.com.", Type: RecordTypeA, Values: []string{"2.2.2.2"}},
	}
	auditor := NewAuditor(&stubOracle{}, testLogger())

	summary, err := auditor.Run(context.Background(), records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"dup.example.com"}, sources(summary.All)); diff != "" {
		t.Errorf("All mismatch (-want +got):\n%s", diff)
	}
}

func TestRunLimitCountsClassifiedOnly(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "test-skip.example.com", Type: RecordTypeA, Values: []string{"1.1.1.1"}},
		{Name: "mail.example.com", Type: "MX", Values: []string{"10 mx.example.com"}},
		{Name: "first.example.com", Type: RecordTypeA, Values: []string{"2.2.2.2"}},
		{Name: "second.example.com", Type: RecordTypeA, Values: []string{"3.3.3.3"}},
	}
	opts := Options{
		Limit:          1,
		IgnorePatterns: []*regexp.Regexp{regexp.MustCompile(`^test-`)},
	}
	auditor := NewAuditor(&stubOracle{}, testLogger())

	summary, err := auditor.Run(context.Background(), records, opts)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"first.example.com"}, sources(summary.All)); diff != "" {
		t.Errorf("limit did not land on the first eligible record (-want +got):\n%s", diff)
	}
}

func TestRunLimitBeyondEligibleCount(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "one.example.com", Type: RecordTypeA, Values: []string{"1.1.1.1"}},
		{Name: "two.example.com", Type: RecordTypeA, Values: []string{"2.2.2.2"}},
	}
	auditor := NewAuditor(&stubOracle{}, testLogger())

	summary, err := auditor.Run(context.Background(), records, Options{Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.All) != 2 {
		t.Errorf("classified %d records, want 2", len(summary.All))
	}
}

func TestRunIgnoredNamesLeftOutOfIndex(t *testing.T) {
	t.Parallel()

	// ignored.example.com exists in the zone as an A record, but the ignore
	// pattern keeps it out of the index, so a chain reaching it treats it as
	// an external name and asks the oracle instead.
	records := []Record{
		{Name: "entry.example.com", Type: RecordTypeCNAME, Values: []string{"mid.example.com"}},
		{Name: "mid.example.com", Type: RecordTypeCNAME, Values: []string{"ignored.example.com"}},
		{Name: "ignored.example.com", Type: RecordTypeA, Values: []string{"1.1.1.1"}},
	}
	oracle := &stubOracle{addrs: map[string][]string{"ignored.example.com": {"7.7.7.7"}}}
	opts := Options{
		IgnorePatterns: []*regexp.Regexp{regexp.MustCompile(`^ignored\.`)},
	}
	auditor := NewAuditor(oracle, testLogger())

	summary, err := auditor.Run(context.Background(), records, opts)
	if err != nil {
		t.Fatal(err)
	}

	// mid.example.com is skipped outright because its own target matches the
	// pattern; entry.example.com chains through it and terminates at the
	// oracle's answer for the ignored name.
	if diff := cmp.Diff([]string{"entry.example.com"}, sources(summary.All)); diff != "" {
		t.Fatalf("All mismatch (-want +got):\n%s", diff)
	}
	got := summary.All[0]
	want := Result{
		Source:      "entry.example.com",
		FinalDomain: "ignored.example.com",
		Status:      string(StatusResolvedExternally),
		Addrs:       []string{"7.7.7.7"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRunChainThroughExternalTarget(t *testing.T) {
	t.Parallel()

	records := []Record{
		{Name: "entry.example.com", Type: RecordTypeCNAME, Values: []string{"external.cdn.net"}},
	}
	oracle := &stubOracle{addrs: map[string][]string{"external.cdn.net": {"7.7.7.7"}}}
	auditor := NewAuditor(oracle, testLogger())

	summary, err := auditor.Run(context.Background(), records, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.All) != 1 {
		t.Fatalf("classified %d records, want 1", len(summary.All))
	}
	got := summary.All[0]
	want := Result{
		Source:      "entry.example.com",
		FinalDomain: "external.cdn.net",
		Status:      string(StatusResolvedExternally),
		Addrs:       []string{"7.7.7.7"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	auditor := NewAuditor(&stubOracle{}, testLogger())
	if _, err := auditor.Run(ctx, []Record{{Name: "a", Type: RecordTypeA}}, Options{}); err == nil {
		t.Error("Run returned nil error on a canceled context")
	}
}
