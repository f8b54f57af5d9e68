// Package render formats a processing report for terminal display.
// The output is informational only and not part of the programmatic
// contract.
package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/shiftmerge/internal/ingest"
	"github.com/dbsmedya/shiftmerge/internal/table"
)

// RenderReport renders the batch report as an aligned ASCII summary
// with a per-failure table and, when data was produced, the combined
// dataset statistics.
func RenderReport(report *ingest.Report) string {
	var b strings.Builder

	b.WriteString("=== Processing Report ===\n")
	fmt.Fprintf(&b, "Discovered: %d\n", report.Discovered)
	fmt.Fprintf(&b, "Processed:  %d\n", report.Processed)
	fmt.Fprintf(&b, "Succeeded:  %s\n", color.Green.Sprintf("%d", report.Succeeded))
	fmt.Fprintf(&b, "Failed:     %s\n", color.Red.Sprintf("%d", report.Failed))
	fmt.Fprintf(&b, "Duration:   %s\n", report.Duration)

	if len(report.FailedFiles) > 0 {
		b.WriteString("\nFailed files:\n")
		b.WriteString(renderFailures(report.FailedFiles))
	}

	if s := report.Summary; s != nil {
		b.WriteString("\n=== Combined Dataset ===\n")
		fmt.Fprintf(&b, "Total rows:        %d\n", s.TotalRows)
		fmt.Fprintf(&b, "Date range:        %s - %s\n",
			table.Format(s.MinDate), table.Format(s.MaxDate))
		fmt.Fprintf(&b, "Distinct machines: %d\n", s.DistinctMachines)
		fmt.Fprintf(&b, "Shifts:            %s\n", strings.Join(s.Shifts, ", "))
	} else {
		b.WriteString("\nNo data: no file passed validation.\n")
	}

	return b.String()
}

// renderFailures draws the rejected files as an aligned three-column
// table. Widths are display widths, so file names with wide runes
// still line up.
func renderFailures(failures []ingest.FileFailure) string {
	headers := []string{"FILE", "KIND", "DETAIL"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}

	rows := make([][]string, 0, len(failures))
	for _, f := range failures {
		row := []string{f.Name, f.Kind, f.Detail}
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	writeRow := func(cells []string, colorize bool) {
		for i, cell := range cells {
			padded := runewidth.FillRight(cell, widths[i])
			if colorize && i == 1 {
				padded = color.Red.Sprint(padded)
			}
			b.WriteString(padded)
			if i < len(cells)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, false)
	for _, row := range rows {
		writeRow(row, true)
	}
	return b.String()
}
