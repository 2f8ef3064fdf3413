// =============================================================================
// internal/output/formatter.go - Audit reporting and CSV export
// =============================================================================
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bryanCE/zoneaudit/internal/audit"
	"github.com/bryanCE/zoneaudit/internal/route53"
)

// PrintResults writes one line per classified record in run order.
func PrintResults(writer io.Writer, results []audit.Result) {
	for _, result := range results {
		if len(result.Addrs) > 0 {
			fmt.Fprintf(writer, "✅ %s resolves to %s with IP(s): %v (%s)\n",
				result.Source, result.FinalDomain, result.Addrs, result.Status)
		} else {
			fmt.Fprintf(writer, "❌ %s does NOT resolve to an IP (%s)\n",
				result.Source, result.Status)
		}
	}
}

// PrintSummary writes the unresolved-record summary after a run.
func PrintSummary(writer io.Writer, summary *audit.Summary) {
	if len(summary.Unresolved) == 0 {
		fmt.Fprintf(writer, "\n✅ All applicable records resolved to IPs.\n")
		return
	}

	fmt.Fprintf(writer, "\n❗ Summary: Unresolved Records\n")
	for _, result := range summary.Unresolved {
		fmt.Fprintf(writer, "  - %s → %s (%s)\n", result.Source, result.FinalDomain, result.Status)
	}
}

// WriteCSV writes results in the export format: a fixed header and rows
// sorted by source name, independent of the engine's run order.
func WriteCSV(writer io.Writer, results []audit.Result) error {
	rows := make([]audit.Result, len(results))
	copy(rows, results)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Source < rows[j].Source })

	csvWriter := csv.NewWriter(writer)
	defer csvWriter.Flush()

	if err := csvWriter.Write([]string{"source", "final_domain", "status", "all_ips"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := csvWriter.Write([]string{row.Source, row.FinalDomain, row.Status, row.AllIPs()}); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// ExportCSV writes results to a file at path.
func ExportCSV(path string, results []audit.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	return WriteCSV(file, results)
}

// PrintZones renders the hosted zone listing as a table.
func PrintZones(writer io.Writer, zones []route53.Zone) error {
	if len(zones) == 0 {
		fmt.Fprintf(writer, "No hosted zones found.\n")
		return nil
	}

	table := NewTable([]string{"Name", "Zone ID", "Private", "Records"})
	for _, zone := range zones {
		table.AddRow([]string{
			truncateString(zone.Name, 50),
			zone.ID,
			fmt.Sprintf("%t", zone.Private),
			fmt.Sprintf("%d", zone.RecordCount),
		})
	}

	return table.Render(writer)
}
