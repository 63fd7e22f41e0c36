package performance

import (
	"fmt"
	"strings"
	"time"
)

// monthKeyLayout is the canonical month bucket: two-digit year plus
// three-letter month, e.g. "18-Apr". It matches the key format of the
// target table, but it is not lexicographically sortable across year
// boundaries; sorting re-parses it via ParseMonthKey.
const monthKeyLayout = "06-Jan"

// DateParseError reports a date string matching none of the recognized
// formats. Unparseable dates surface instead of being coerced to null,
// because silently dropping rows would skew the monthly totals.
type DateParseError struct {
	Value string
}

// Error implements the error interface
func (e *DateParseError) Error() string {
	return fmt.Sprintf("unrecognized date format: %q", e.Value)
}

// dateLayouts are attempted in priority order: the month-first reading
// is preferred, and day-first only applies when month-first cannot
// (e.g. "13-04-2018", where 13 is no month). A dash-separated date with
// day <= 12 therefore resolves month-first even if the writer meant
// day-first. The ambiguity is inherent to the inputs and is preserved
// here rather than guessed away.
var dateLayouts = []string{
	"1/2/2006",   // M/D/YYYY
	"1-2-2006",   // M-D-YYYY, month-first reading of dashed dates
	"02-01-2006", // DD-MM-YYYY, reached when month-first fails
}

// NormalizeDate parses a raw order date into its canonical month bucket.
func NormalizeDate(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(monthKeyLayout), nil
		}
	}
	return "", &DateParseError{Value: value}
}

// ParseMonthKey converts a month bucket back into a time for
// chronological ordering.
func ParseMonthKey(key string) (time.Time, error) {
	t, err := time.Parse(monthKeyLayout, strings.TrimSpace(key))
	if err != nil {
		return time.Time{}, &DateParseError{Value: key}
	}
	return t, nil
}
