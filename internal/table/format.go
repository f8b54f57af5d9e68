package table

import (
	"fmt"
	"strconv"
)

// Format renders a cell value for display and distinct-value grouping.
func Format(v Value) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case Date:
		if x.IsMissing() {
			return "missing"
		}
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Time.Format("2006-01-02")
		}
		return x.Time.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
