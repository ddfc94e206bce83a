package week

import (
	"fmt"
	"time"
)

// Layout is the MM/DD/YYYY format used for reference dates in query strings and output.
const Layout = "01/02/2006"

// Series returns Jan 1 of year followed by every Saturday after it that falls strictly
// before the day of now. A run on a Saturday does not include that Saturday. Dates are
// midnight in now's location.
func Series(year int, now time.Time) []time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	offset := (int(time.Saturday) - int(start.Weekday())) % 7
	if offset < 0 {
		offset += 7
	}
	// Jan 1 is already emitted, so a Saturday Jan 1 moves on to the next week
	if offset == 0 {
		offset = 7
	}

	dates := []time.Time{start}
	for sat := start.AddDate(0, 0, offset); sat.Before(today); sat = sat.AddDate(0, 0, 7) {
		dates = append(dates, sat)
	}

	return dates
}

// Saturdays returns Series formatted with Layout.
func Saturdays(year int, now time.Time) []string {
	series := Series(year, now)
	out := make([]string, len(series))
	for i, d := range series {
		out[i] = d.Format(Layout)
	}
	return out
}

// Parse parses a reference date in Layout.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing reference date %q: %w", s, err)
	}
	return t, nil
}
