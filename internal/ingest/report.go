package ingest

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/shiftmerge/internal/table"
)

// FileFailure records one rejected file with enough context to
// diagnose without re-running the batch.
type FileFailure struct {
	Name   string
	Kind   string
	Detail string
}

// Report contains the structured outcome of one batch run. It is
// returned to the caller alongside the combined dataset; logging it is
// informational only, never the contract.
type Report struct {
	Discovered  int
	Processed   int
	Succeeded   int
	Failed      int
	FailedFiles []FileFailure
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration

	// Summary holds combined-dataset statistics; nil when the run
	// produced no data.
	Summary *Summary
}

// FailedFileNames returns just the names of the rejected files.
func (r *Report) FailedFileNames() []string {
	names := make([]string, 0, len(r.FailedFiles))
	for _, f := range r.FailedFiles {
		names = append(names, f.Name)
	}
	return names
}

// Summary holds the aggregate statistics computed over the combined
// dataset after the merge.
type Summary struct {
	TotalRows        int
	MinDate          table.Date
	MaxDate          table.Date
	DistinctMachines int
	Shifts           []string
}

// Result pairs the combined dataset with the processing report.
// Dataset is nil when no file passed validation ("no data").
type Result struct {
	Dataset *table.Table
	Report  *Report
}

// NoData reports whether the run yielded an empty result.
func (r *Result) NoData() bool {
	return r.Dataset == nil
}

// summarize computes the batch statistics over the combined dataset:
// total row count, min/max normalized date, distinct machine count and
// the distinct shift set in first-seen order.
func summarize(dataset *table.Table) *Summary {
	s := &Summary{TotalRows: dataset.Len()}

	if col, ok := dataset.Column("date"); ok {
		for _, v := range col.Values {
			d, ok := v.(table.Date)
			if !ok || d.IsMissing() {
				continue
			}
			if s.MinDate.IsMissing() || d.Before(s.MinDate.Time) {
				s.MinDate = d
			}
			if s.MaxDate.IsMissing() || d.After(s.MaxDate.Time) {
				s.MaxDate = d
			}
		}
	}

	if col, ok := dataset.Column("machine"); ok {
		s.DistinctMachines = distinct(col.Values).Len()
	}

	if col, ok := dataset.Column("shift"); ok {
		shifts := distinct(col.Values)
		for el := shifts.Front(); el != nil; el = el.Next() {
			s.Shifts = append(s.Shifts, el.Key)
		}
	}

	return s
}

// distinct collects the unique string forms of values, preserving
// first-seen order.
func distinct(values []table.Value) *orderedmap.OrderedMap[string, struct{}] {
	seen := orderedmap.NewOrderedMap[string, struct{}]()
	for _, v := range values {
		seen.Set(table.Format(v), struct{}{})
	}
	return seen
}
