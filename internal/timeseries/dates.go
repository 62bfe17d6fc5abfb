package timeseries

import (
	"fmt"
	"strings"
	"time"
)

// columnLayouts are tried in priority order against the entire column.
// The first layout that parses every token wins; mixed layouts within a
// single column are not supported.
var columnLayouts = []string{
	"Jan 2006",   // "Jul 2024"
	"Jan 06",     // "Jul 24"
	"02/01/2006", // day-first
	"2006-01-02", // ISO
}

// fallbackLayouts are tried per token when no single column layout fits.
var fallbackLayouts = []string{
	"Jan 2006",
	"Jan 06",
	"02/01/2006",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01",
	"January 2006",
	"Jan-06",
	"02-01-2006",
}

// ParseError reports that no date interpretation succeeded for a column.
// It is fatal: without valid month keys there is no time axis to join on.
type ParseError struct {
	Column string
	Token  string
	Line   int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("no date layout matches column %s (first failing token %q, line %d)", e.Column, e.Token, e.Line)
}

// DuplicateMonthError reports two observations mapping to the same month
// key within one series. Duplicate months are rejected rather than merged
// so the downstream join cannot fan out.
type DuplicateMonthError struct {
	Column string
	Month  time.Time
}

func (e *DuplicateMonthError) Error() string {
	return fmt.Sprintf("duplicate month %s in column %s", e.Month.Format("2006-01"), e.Column)
}

// MonthStart truncates a date to the first day of its calendar month in UTC.
// Applying it to a date already at month start is a no-op.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NormalizeDates parses a whole column of raw date tokens and snaps each
// result to its month start. Layout detection is column-wide: each
// candidate layout must parse every token, and the first that does wins.
// When none fits, a lenient per-token pass over an extended layout list
// runs as a last resort before failing with a ParseError.
func NormalizeDates(column string, tokens []string) ([]time.Time, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("column %s: empty date column", column)
	}

	for _, layout := range columnLayouts {
		if dates, ok := parseAll(layout, tokens); ok {
			return dates, nil
		}
	}

	// Lenient fallback: any layout may match any individual token.
	dates := make([]time.Time, len(tokens))
	for i, tok := range tokens {
		d, ok := parseAny(tok)
		if !ok {
			return nil, &ParseError{Column: column, Token: tok, Line: i + 1}
		}
		dates[i] = d
	}
	return dates, nil
}

// parseAll parses every token with a single layout, or reports failure.
func parseAll(layout string, tokens []string) ([]time.Time, bool) {
	dates := make([]time.Time, len(tokens))
	for i, tok := range tokens {
		d, err := time.Parse(layout, strings.TrimSpace(tok))
		if err != nil {
			return nil, false
		}
		dates[i] = MonthStart(d)
	}
	return dates, true
}

// parseAny tries every fallback layout against one token.
func parseAny(tok string) (time.Time, bool) {
	tok = strings.TrimSpace(tok)
	for _, layout := range fallbackLayouts {
		if d, err := time.Parse(layout, tok); err == nil {
			return MonthStart(d), true
		}
	}
	return time.Time{}, false
}
