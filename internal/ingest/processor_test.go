package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dbsmedya/shiftmerge/internal/logger"
	"github.com/dbsmedya/shiftmerge/internal/table"
)

// recordingObserver captures pipeline events for assertions.
type recordingObserver struct {
	started []string
	parsed  []string
	failed  map[string]string // file -> kind
	summary *Report
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{failed: make(map[string]string)}
}

func (o *recordingObserver) FileStarted(name string) {
	o.started = append(o.started, name)
}

func (o *recordingObserver) FileParsed(name string, rows, cols, missingDates int) {
	o.parsed = append(o.parsed, name)
}

func (o *recordingObserver) FileFailed(name, kind, detail string) {
	o.failed[name] = kind
}

func (o *recordingObserver) BatchSummary(report *Report) {
	o.summary = report
}

const validHeader = "date,shift,machine,production_units,operator\n"

func writeDataFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func validRows(n int) string {
	var b strings.Builder
	b.WriteString(validHeader)
	for i := 0; i < n; i++ {
		b.WriteString("2025-09-01,day,M1,120,Ana\n")
	}
	return b.String()
}

func newTestProcessor(dir string, opts ...Option) *Processor {
	return NewProcessor(dir, logger.NewDefault(), opts...)
}

func sourceFiles(t *testing.T, dataset *table.Table) []string {
	t.Helper()
	col, ok := dataset.Column(SourceFileColumn)
	if !ok {
		t.Fatal("combined dataset is missing the source_file column")
	}
	names := make([]string, 0, len(col.Values))
	for _, v := range col.Values {
		names = append(names, v.(string))
	}
	return names
}

func TestProcessAllFilesMixedValidity(t *testing.T) {
	dir := t.TempDir()

	// a.csv: valid, 10 rows, all 5 required columns.
	writeDataFile(t, dir, "a.csv", validRows(10))

	// b.csv: 9 rows but missing the operator column.
	var b strings.Builder
	b.WriteString("date,shift,machine,production_units\n")
	for i := 0; i < 9; i++ {
		b.WriteString("2025-09-02,night,M2,95\n")
	}
	writeDataFile(t, dir, "b.csv", b.String())

	obs := newRecordingObserver()
	p := newTestProcessor(dir, WithObserver(obs))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("ProcessAllFiles failed: %v", err)
	}

	if result.NoData() {
		t.Fatal("expected a combined dataset")
	}
	if result.Dataset.Len() != 10 {
		t.Errorf("expected exactly 10 rows, got %d", result.Dataset.Len())
	}

	// Every merged row traces back to the single valid file.
	for _, name := range sourceFiles(t, result.Dataset) {
		if name != "a.csv" {
			t.Errorf("unexpected source_file %q", name)
		}
	}

	rep := result.Report
	if rep.Discovered != 2 || rep.Processed != 2 || rep.Succeeded != 1 || rep.Failed != 1 {
		t.Errorf("report counts = %+v", rep)
	}
	if !reflect.DeepEqual(rep.FailedFileNames(), []string{"b.csv"}) {
		t.Errorf("failed files = %v, expected [b.csv]", rep.FailedFileNames())
	}
	if rep.FailedFiles[0].Kind != "schema_violation" {
		t.Errorf("failure kind = %q, expected schema_violation", rep.FailedFiles[0].Kind)
	}
	if !strings.Contains(rep.FailedFiles[0].Detail, "operator") {
		t.Errorf("failure detail %q should name the missing column", rep.FailedFiles[0].Detail)
	}

	// Observer saw the full event sequence.
	if !reflect.DeepEqual(obs.started, []string{"a.csv", "b.csv"}) {
		t.Errorf("started events = %v", obs.started)
	}
	if obs.failed["b.csv"] != "schema_violation" {
		t.Errorf("failed events = %v", obs.failed)
	}
	if obs.summary == nil {
		t.Error("expected a batch summary event")
	}
}

func TestProcessAllFilesEmptyDirectory(t *testing.T) {
	p := newTestProcessor(t.TempDir(), WithObserver(NopObserver{}))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("empty directory must not be an error, got %v", err)
	}
	if !result.NoData() {
		t.Error("expected a no-data result")
	}
	if result.Report.Discovered != 0 {
		t.Errorf("discovered = %d, expected 0", result.Report.Discovered)
	}
	if result.Report.Summary != nil {
		t.Error("no-data run should carry no summary statistics")
	}
}

func TestProcessAllFilesDirectoryNotFound(t *testing.T) {
	p := newTestProcessor(filepath.Join(t.TempDir(), "missing"), WithObserver(NopObserver{}))

	_, err := p.ProcessAllFiles(context.Background())
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("expected ErrDirectoryNotFound, got %v", err)
	}
}

func TestProcessAllFilesAllInvalid(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "empty.csv", "")
	writeDataFile(t, dir, "header_only.csv", validHeader)

	p := newTestProcessor(dir, WithObserver(NopObserver{}))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("per-file failures must not abort the batch, got %v", err)
	}
	if !result.NoData() {
		t.Error("expected a no-data result")
	}

	rep := result.Report
	if rep.Failed != 2 || rep.Succeeded != 0 {
		t.Errorf("report counts = %+v", rep)
	}
	for _, f := range rep.FailedFiles {
		if f.Kind != "empty_input" {
			t.Errorf("%s: kind = %q, expected empty_input", f.Name, f.Kind)
		}
	}
}

func TestProcessAllFilesFailureContainment(t *testing.T) {
	dir := t.TempDir()
	// Listing order is alphabetical: the corrupt file comes first and
	// must not block the valid one behind it.
	writeDataFile(t, dir, "a_corrupt.csv", validHeader+"2025-09-01,\"day,M1\n")
	writeDataFile(t, dir, "b_valid.csv", validRows(3))

	p := newTestProcessor(dir, WithObserver(NopObserver{}))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("ProcessAllFiles failed: %v", err)
	}

	if result.Dataset.Len() != 3 {
		t.Errorf("expected 3 rows from the valid file, got %d", result.Dataset.Len())
	}
	if result.Report.FailedFiles[0].Kind != "malformed_input" {
		t.Errorf("kind = %q, expected malformed_input", result.Report.FailedFiles[0].Kind)
	}
}

func TestProcessAllFilesUnparseableDateAccepted(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "a.csv", validHeader+
		"2025-09-01,day,M1,120,Ana\n"+
		"not-a-date,night,M2,95,Luis\n")

	p := newTestProcessor(dir, WithObserver(NopObserver{}))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("ProcessAllFiles failed: %v", err)
	}

	// Schema-valid file with a bad date is accepted; the bad cell is
	// the missing marker, not a rejection.
	if result.Dataset.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", result.Dataset.Len())
	}
	v, err := result.Dataset.Cell("date", 1)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if d, ok := v.(table.Date); !ok || !d.IsMissing() {
		t.Errorf("expected missing-date marker, got %v", v)
	}
}

func TestProcessAllFilesProvenance(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "a.csv", validRows(2))

	stamp := time.Date(2025, 9, 15, 8, 0, 0, 0, time.UTC)
	p := newTestProcessor(dir,
		WithObserver(NopObserver{}),
		WithClock(func() time.Time { return stamp }))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("ProcessAllFiles failed: %v", err)
	}

	v, err := result.Dataset.Cell(ProcessedAtColumn, 0)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	d, ok := v.(table.Date)
	if !ok {
		t.Fatalf("expected table.Date, got %T", v)
	}
	if !d.Time.Equal(stamp) {
		t.Errorf("processed_at = %v, expected %v", d.Time, stamp)
	}
}

func TestProcessAllFilesIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "a.csv", validRows(4))
	writeDataFile(t, dir, "b.csv", validRows(2))

	p := newTestProcessor(dir, WithObserver(NopObserver{}))

	first, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first.Dataset.Len() != second.Dataset.Len() {
		t.Fatalf("row counts differ: %d vs %d", first.Dataset.Len(), second.Dataset.Len())
	}

	// Identical row content modulo the processing timestamp.
	for _, name := range first.Dataset.Columns() {
		if name == ProcessedAtColumn {
			continue
		}
		a, _ := first.Dataset.Column(name)
		b, ok := second.Dataset.Column(name)
		if !ok {
			t.Fatalf("second run is missing column %q", name)
		}
		if !reflect.DeepEqual(a.Values, b.Values) {
			t.Errorf("column %q differs between runs", name)
		}
	}
}

func TestProcessAllFilesSummary(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "a.csv", validHeader+
		"2025-09-01,day,M1,120,Ana\n"+
		"2025-09-03,night,M2,95,Luis\n"+
		"2025-09-02,day,M1,101,Eva\n")

	p := newTestProcessor(dir, WithObserver(NopObserver{}))

	result, err := p.ProcessAllFiles(context.Background())
	if err != nil {
		t.Fatalf("ProcessAllFiles failed: %v", err)
	}

	s := result.Report.Summary
	if s == nil {
		t.Fatal("expected summary statistics")
	}
	if s.TotalRows != 3 {
		t.Errorf("total rows = %d, expected 3", s.TotalRows)
	}
	if got := table.Format(s.MinDate); got != "2025-09-01" {
		t.Errorf("min date = %s, expected 2025-09-01", got)
	}
	if got := table.Format(s.MaxDate); got != "2025-09-03" {
		t.Errorf("max date = %s, expected 2025-09-03", got)
	}
	if s.DistinctMachines != 2 {
		t.Errorf("distinct machines = %d, expected 2", s.DistinctMachines)
	}
	if !reflect.DeepEqual(s.Shifts, []string{"day", "night"}) {
		t.Errorf("shifts = %v, expected [day night]", s.Shifts)
	}
}

func TestProcessAllFilesContextCancelled(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir, "a.csv", validRows(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProcessor(dir, WithObserver(NopObserver{}))
	if _, err := p.ProcessAllFiles(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
