// Package table contains the in-memory tabular dataset shared by the
// parser, validator and batch processor.
package table

import (
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"
)

// Value is a single cell. Cells hold string, float64 or Date.
type Value interface{}

// Date is a normalized temporal cell value. The zero Date marks a value
// that could not be parsed (a "missing date") rather than a fatal error.
type Date struct {
	time.Time
}

// NewDate wraps a parsed timestamp.
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// MissingDate returns the explicit missing-date marker.
func MissingDate() Date {
	return Date{}
}

// IsMissing reports whether the value is the missing-date marker.
func (d Date) IsMissing() bool {
	return d.Time.IsZero()
}

// Column holds one named, homogeneous sequence of values.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered sequence of named columns, one value per row.
// Column names are unique within a table. A table is append-only:
// existing data is never mutated, metadata enrichment adds columns.
type Table struct {
	cols *orderedmap.OrderedMap[string, *Column]
	rows int
}

// New creates an empty table.
func New() *Table {
	return &Table{
		cols: orderedmap.NewOrderedMap[string, *Column](),
	}
}

// AddColumn appends a named column. The first column fixes the row
// count; every later column must match it.
func (t *Table) AddColumn(name string, values []Value) error {
	if name == "" {
		return fmt.Errorf("column name is empty")
	}
	if _, exists := t.cols.Get(name); exists {
		return fmt.Errorf("column %q already exists", name)
	}
	if t.cols.Len() > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	if t.cols.Len() == 0 {
		t.rows = len(values)
	}
	t.cols.Set(name, &Column{Name: name, Values: values})
	return nil
}

// AddConstColumn appends a column holding the same value in every row.
// Used for provenance stamping (source file, processing timestamp).
func (t *Table) AddConstColumn(name string, v Value) error {
	values := make([]Value, t.rows)
	for i := range values {
		values[i] = v
	}
	return t.AddColumn(name, values)
}

// Column returns the named column, if present.
func (t *Table) Column(name string) (*Column, bool) {
	return t.cols.Get(name)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols.Get(name)
	return ok
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	names := make([]string, 0, t.cols.Len())
	for el := t.cols.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.cols.Len()
}

// Cell returns the value at the given column and row index.
func (t *Table) Cell(name string, row int) (Value, error) {
	col, ok := t.cols.Get(name)
	if !ok {
		return nil, fmt.Errorf("column %q not found", name)
	}
	if row < 0 || row >= len(col.Values) {
		return nil, fmt.Errorf("row %d out of range (table has %d rows)", row, len(col.Values))
	}
	return col.Values[row], nil
}
