// Package parser reads one delimited shift-record file into a table.
// All failures are typed and contained here; nothing escapes this
// boundary as an unhandled fault.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dbsmedya/shiftmerge/internal/table"
)

// DateColumn is the optional column that receives temporal
// normalization when present.
const DateColumn = "date"

// ParseResult pairs a parsed table with per-file warnings.
type ParseResult struct {
	Table *table.Table
	// MissingDates counts date cells that could not be normalized and
	// were replaced with the missing-date marker. A warning, not an
	// error.
	MissingDates int
}

// ReadFile parses the file at path into a table using the fixed
// dialect: comma-delimited UTF-8 text with a header row, leading
// whitespace after the delimiter stripped.
func ReadFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, newError(path, KindFileNotFound, err)
		}
		return nil, newError(path, KindUnexpected, err)
	}
	defer f.Close()

	return Read(f, path)
}

// Read parses delimited content from r. The name is used only for
// diagnostics.
func Read(r io.Reader, name string) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, newError(name, KindEmptyInput, fmt.Errorf("no header row"))
	}
	if err != nil {
		return nil, classify(name, err)
	}

	rows := make([][]string, 0, 64)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, classify(name, err)
		}
		rows = append(rows, record)
	}

	if len(rows) == 0 {
		return nil, newError(name, KindEmptyInput, fmt.Errorf("header row only, no data rows"))
	}

	return buildTable(name, header, rows)
}

// classify maps a csv decode error onto the failure taxonomy, keeping
// the underlying diagnostic for the failure report.
func classify(name string, err error) *Error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return newError(name, KindMalformedInput, err)
	}
	return newError(name, KindUnexpected, err)
}

// buildTable converts raw records into typed columns. Cells that parse
// as numbers become float64, the date column is normalized, everything
// else passes through as raw text.
func buildTable(name string, header []string, rows [][]string) (*ParseResult, error) {
	t := table.New()
	result := &ParseResult{Table: t}

	for i, colName := range header {
		values := make([]table.Value, len(rows))
		isDate := colName == DateColumn
		for j, row := range rows {
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			if isDate {
				d := NormalizeDate(raw)
				if d.IsMissing() {
					result.MissingDates++
				}
				values[j] = d
				continue
			}
			values[j] = convertCell(raw)
		}
		if err := t.AddColumn(colName, values); err != nil {
			return nil, newError(name, KindMalformedInput, err)
		}
	}

	return result, nil
}

// convertCell keeps numeric-looking cells as float64 and everything
// else as raw text.
func convertCell(raw string) table.Value {
	if raw == "" {
		return raw
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}
