package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"

	"github.com/dbsmedya/shiftmerge/internal/ingest"
	"github.com/dbsmedya/shiftmerge/internal/table"
)

func init() {
	// Keep assertions on plain text.
	color.Disable()
}

func TestRenderReportWithData(t *testing.T) {
	rep := &ingest.Report{
		Discovered: 2,
		Processed:  2,
		Succeeded:  1,
		Failed:     1,
		FailedFiles: []ingest.FileFailure{
			{Name: "b.csv", Kind: "schema_violation", Detail: "required columns missing"},
		},
		Summary: &ingest.Summary{
			TotalRows:        10,
			MinDate:          table.NewDate(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)),
			MaxDate:          table.NewDate(time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)),
			DistinctMachines: 2,
			Shifts:           []string{"day", "night"},
		},
	}

	out := RenderReport(rep)

	for _, want := range []string{
		"Processing Report",
		"Discovered: 2",
		"b.csv",
		"schema_violation",
		"required columns missing",
		"Total rows:        10",
		"2025-09-01 - 2025-09-03",
		"Distinct machines: 2",
		"day, night",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportNoData(t *testing.T) {
	rep := &ingest.Report{Discovered: 0, Processed: 0}

	out := RenderReport(rep)

	if !strings.Contains(out, "No data") {
		t.Errorf("output should mention no data:\n%s", out)
	}
	if strings.Contains(out, "Combined Dataset") {
		t.Errorf("no-data report should not show dataset statistics:\n%s", out)
	}
}

func TestRenderFailuresAlignment(t *testing.T) {
	failures := []ingest.FileFailure{
		{Name: "short.csv", Kind: "empty_input", Detail: "no header row"},
		{Name: "a_much_longer_name.csv", Kind: "malformed_input", Detail: "bare quote"},
	}

	out := renderFailures(failures)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}

	// The kind column starts at the same offset on every line.
	offset := strings.Index(lines[0], "KIND")
	if offset < 0 {
		t.Fatal("header is missing the KIND column")
	}
	if idx := strings.Index(lines[1], "empty_input"); idx != offset {
		t.Errorf("row 1 kind at offset %d, expected %d", idx, offset)
	}
	if idx := strings.Index(lines[2], "malformed_input"); idx != offset {
		t.Errorf("row 2 kind at offset %d, expected %d", idx, offset)
	}
}
