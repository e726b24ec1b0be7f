package ingest

import (
	"fmt"
	"time"
)

// Accepted date layouts, tried in order. Exported spreadsheets are wildly
// inconsistent about this.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	"02-01-2006",
	"Jan 2, 2006",
}

// ParseDate parses a date string against the accepted layouts and
// normalizes the result to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, lastErr)
}
