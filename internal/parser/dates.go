package parser

import (
	"strings"
	"time"

	"github.com/dbsmedya/shiftmerge/internal/table"
)

// dateLayouts are tried in order when normalizing a date cell.
// ISO forms first, then the slash-separated forms seen in shift
// records exported from spreadsheets.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"02/01/2006",
}

// NormalizeDate converts a raw cell into a normalized Date. Values
// that match no known layout become the explicit missing-date marker,
// never an error.
func NormalizeDate(raw string) table.Date {
	s := strings.TrimSpace(raw)
	if s == "" {
		return table.MissingDate()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.NewDate(t)
		}
	}
	return table.MissingDate()
}
