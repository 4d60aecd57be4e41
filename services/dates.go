package services

import (
	"time"
)

const dayLayout = "2006-01-02"

// ResolveDate canonicalizes an optional caller-supplied date into the
// YYYY-MM-DD day string every entry point buckets by. Days are always
// evaluated in UTC so client/server clock skew cannot shift an entry
// into a neighbouring bucket.
func ResolveDate(raw string) (string, error) {
	if raw == "" {
		return time.Now().UTC().Format(dayLayout), nil
	}
	t, err := time.Parse(dayLayout, raw)
	if err != nil {
		return "", invalidf("date", "must be YYYY-MM-DD, got %q", raw)
	}
	return t.Format(dayLayout), nil
}

// weekWindow returns the 7 day strings ending at anchor inclusive,
// ascending.
func weekWindow(anchor string) ([]string, error) {
	end, err := time.Parse(dayLayout, anchor)
	if err != nil {
		return nil, invalidf("date", "must be YYYY-MM-DD, got %q", anchor)
	}
	days := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		days = append(days, end.AddDate(0, 0, -i).Format(dayLayout))
	}
	return days, nil
}

// monthBounds returns the first day of (year, month) and the first day
// of the following month, as day strings. Date columns are plain
// YYYY-MM-DD strings so the pair works with >= / < range queries.
func monthBounds(year int, month time.Month) (from, to string) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start.Format(dayLayout), start.AddDate(0, 1, 0).Format(dayLayout)
}
