// Package ingest orchestrates one batch run over the input directory:
// discovery, per-file parse and validation with isolated failure
// handling, provenance stamping, and the final merge.
package ingest

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/dbsmedya/shiftmerge/internal/logger"
	"github.com/dbsmedya/shiftmerge/internal/parser"
	"github.com/dbsmedya/shiftmerge/internal/schema"
	"github.com/dbsmedya/shiftmerge/internal/table"
)

// Provenance columns appended to every valid table before the merge.
const (
	SourceFileColumn  = "source_file"
	ProcessedAtColumn = "processed_at"
)

// DefaultExtension is the file extension discovery matches when none
// is configured.
const DefaultExtension = ".csv"

// Processor runs batches over a fixed input directory. It is stateless
// across invocations: each ProcessAllFiles call is an independent,
// idempotent run over the current directory contents.
type Processor struct {
	inputDir string
	ext      string
	log      *logger.Logger
	observer Observer
	now      func() time.Time
}

// Option customizes a Processor.
type Option func(*Processor)

// WithExtension overrides the matched file extension.
func WithExtension(ext string) Option {
	return func(p *Processor) {
		p.ext = ext
	}
}

// WithObserver replaces the default log-backed observer.
func WithObserver(o Observer) Option {
	return func(p *Processor) {
		p.observer = o
	}
}

// WithClock overrides the processing-timestamp source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) {
		p.now = now
	}
}

// NewProcessor creates a batch processor over inputDir.
func NewProcessor(inputDir string, log *logger.Logger, opts ...Option) *Processor {
	if log == nil {
		log = logger.NewDefault()
	}
	p := &Processor{
		inputDir: inputDir,
		ext:      DefaultExtension,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.observer == nil {
		p.observer = NewLogObserver(p.log)
	}
	return p
}

// InputDir returns the directory the processor reads from.
func (p *Processor) InputDir() string {
	return p.inputDir
}

// ProcessAllFiles runs one batch over the current directory contents.
// Only directory-level failures return an error; every per-file
// failure is contained, recorded in the report, and skipped, so the
// batch always completes. A run with zero valid files returns a Result
// with a nil Dataset rather than an error.
func (p *Processor) ProcessAllFiles(ctx context.Context) (*Result, error) {
	report := &Report{StartedAt: p.now()}

	files, err := ListDataFiles(p.inputDir, p.ext)
	if err != nil {
		return nil, err
	}
	report.Discovered = len(files)

	p.log.Infow("Discovery complete", "dir", p.inputDir, "matched", len(files))

	if len(files) == 0 {
		p.log.Warnw("No data files found to process",
			"dir", p.inputDir,
			"hint", "copy input files into the directory",
		)
		p.finish(report, nil)
		return &Result{Report: report}, nil
	}

	var valid []*table.Table
	for _, name := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		report.Processed++
		p.observer.FileStarted(name)

		t, ok := p.processFile(name, report)
		if !ok {
			continue
		}
		valid = append(valid, t)
		report.Succeeded++
	}

	if len(valid) == 0 {
		p.log.Warn("No file could be processed successfully")
		p.finish(report, nil)
		return &Result{Report: report}, nil
	}

	dataset, err := table.Concat(valid)
	if err != nil {
		return nil, err
	}

	p.finish(report, dataset)
	return &Result{Dataset: dataset, Report: report}, nil
}

// processFile parses, validates and stamps one file. Every failure is
// recorded in the report and contained; the batch moves on.
func (p *Processor) processFile(name string, report *Report) (*table.Table, bool) {
	path := filepath.Join(p.inputDir, name)

	res, err := parser.ReadFile(path)
	if err != nil {
		kind, detail := failureInfo(err)
		report.FailedFiles = append(report.FailedFiles, FileFailure{Name: name, Kind: kind, Detail: detail})
		report.Failed++
		p.observer.FileFailed(name, kind, detail)
		return nil, false
	}

	p.observer.FileParsed(name, res.Table.Len(), res.Table.Width(), res.MissingDates)

	if verr := schema.Validate(res.Table); verr != nil {
		report.FailedFiles = append(report.FailedFiles, FileFailure{Name: name, Kind: "schema_violation", Detail: verr.Error()})
		report.Failed++
		p.observer.FileFailed(name, "schema_violation", verr.Error())
		return nil, false
	}

	if err := p.stampProvenance(res.Table, name); err != nil {
		// Cannot happen for a freshly parsed table unless the input
		// already carries a provenance column; treat as a contained
		// per-file failure like any other.
		kind, detail := failureInfo(err)
		report.FailedFiles = append(report.FailedFiles, FileFailure{Name: name, Kind: kind, Detail: detail})
		report.Failed++
		p.observer.FileFailed(name, kind, detail)
		return nil, false
	}

	return res.Table, true
}

// stampProvenance appends the source-file and processing-timestamp
// columns to a validated table.
func (p *Processor) stampProvenance(t *table.Table, name string) error {
	if err := t.AddConstColumn(SourceFileColumn, name); err != nil {
		return err
	}
	return t.AddConstColumn(ProcessedAtColumn, table.NewDate(p.now()))
}

// finish closes out the report, computes summary statistics over the
// combined dataset, and notifies the observer.
func (p *Processor) finish(report *Report, dataset *table.Table) {
	report.CompletedAt = p.now()
	report.Duration = report.CompletedAt.Sub(report.StartedAt)
	if dataset != nil {
		report.Summary = summarize(dataset)
	}
	p.observer.BatchSummary(report)
}

// failureInfo maps a contained error onto its report kind and detail.
func failureInfo(err error) (kind, detail string) {
	var perr *parser.Error
	if errors.As(err, &perr) {
		return perr.Kind.String(), perr.Error()
	}
	return "unexpected_failure", err.Error()
}
