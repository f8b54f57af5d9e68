package table

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

// Concat concatenates tables row-wise into a new table with a fresh,
// contiguous row index. Columns are unioned in first-seen order; a
// table that lacks a column contributes nil cells for it, so tables
// with identical schemas produce a uniform combined shape. The inputs
// are not modified.
func Concat(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("no tables to concatenate")
	}

	union := orderedmap.NewOrderedMap[string, struct{}]()
	totalRows := 0
	for _, t := range tables {
		if t == nil {
			return nil, fmt.Errorf("cannot concatenate a nil table")
		}
		for _, name := range t.Columns() {
			union.Set(name, struct{}{})
		}
		totalRows += t.Len()
	}

	out := New()
	for el := union.Front(); el != nil; el = el.Next() {
		name := el.Key
		values := make([]Value, 0, totalRows)
		for _, t := range tables {
			if col, ok := t.Column(name); ok {
				values = append(values, col.Values...)
				continue
			}
			values = append(values, make([]Value, t.Len())...)
		}
		if err := out.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
