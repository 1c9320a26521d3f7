package ledger

import "time"

// FilterMonth returns the entries whose Date falls in the given calendar
// year and month, preserving the input order. An empty result is the
// caller's signal to short-circuit rendering or export.
func FilterMonth(entries []Entry, year int, month time.Month) []Entry {
	out := make([]Entry, 0)
	for _, e := range entries {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}
	return out
}
