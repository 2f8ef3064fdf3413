// =============================================================================
// internal/output/table.go - Table formatting utilities
// =============================================================================
package output

import (
	"fmt"
	"io"
	"strings"
)

// Table renders rows with columns padded to the widest cell.
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a table with the given headers.
func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	return &Table{headers: headers, widths: widths}
}

// AddRow appends a row; short rows are padded to the header count.
func (t *Table) AddRow(row []string) {
	if len(row) < len(t.headers) {
		padded := make([]string, len(t.headers))
		copy(padded, row)
		row = padded
	}
	for i, cell := range row[:len(t.headers)] {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}
	t.rows = append(t.rows, row[:len(t.headers)])
}

// Render writes the table to the writer.
func (t *Table) Render(writer io.Writer) error {
	if len(t.headers) == 0 {
		return nil
	}

	totalWidth := 0
	for _, width := range t.widths {
		totalWidth += width + 3
	}
	totalWidth -= 3

	fmt.Fprintf(writer, "┌%s┐\n", strings.Repeat("─", totalWidth))
	t.renderRow(writer, t.headers)
	fmt.Fprintf(writer, "├%s┤\n", strings.Repeat("─", totalWidth))
	for _, row := range t.rows {
		t.renderRow(writer, row)
	}
	fmt.Fprintf(writer, "└%s┘\n", strings.Repeat("─", totalWidth))

	return nil
}

func (t *Table) renderRow(writer io.Writer, row []string) {
	fmt.Fprint(writer, "│")
	for i, cell := range row {
		fmt.Fprintf(writer, " %-*s ", t.widths[i], cell)
		if i < len(row)-1 {
			fmt.Fprint(writer, "│")
		}
	}
	fmt.Fprintf(writer, "│\n")
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
