// Package schema defines the required shift-record columns and checks
// parsed tables against them before merging.
package schema

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/shiftmerge/internal/table"
)

// Required is the fixed set of columns a table must carry to be
// merged. Names are case-sensitive and never mutated.
var Required = []string{"date", "shift", "machine", "production_units", "operator"}

// ValidationError explains why a table may not be merged. For missing
// columns it carries both the exact missing set and the full set of
// columns actually present, to aid diagnosis.
type ValidationError struct {
	Reason  string
	Missing []string
	Present []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: missing columns [%s], present columns [%s]",
			e.Reason,
			strings.Join(e.Missing, ", "),
			strings.Join(e.Present, ", "))
	}
	return e.Reason
}

// Validate decides whether a table may be merged. Rules are checked in
// order, short-circuiting at the first failure: a nil table is
// invalid, an empty table is invalid, and a table missing any required
// column is invalid. The table itself is never modified.
func Validate(t *table.Table) *ValidationError {
	if t == nil {
		return &ValidationError{Reason: "table is nil"}
	}
	if t.Len() == 0 {
		return &ValidationError{Reason: "table has no rows"}
	}

	var missing []string
	for _, name := range Required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{
			Reason:  "required columns missing",
			Missing: missing,
			Present: t.Columns(),
		}
	}
	return nil
}
