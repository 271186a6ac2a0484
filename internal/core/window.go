package core

import "time"

// YearWindow is the inclusive Jan 1 through Dec 31 span of one calendar year.
// The year is configuration, not a constant: the same pipeline serves any
// reporting period.
type YearWindow struct {
	Year int
}

// NewYearWindow returns the window for year.
func NewYearWindow(year int) YearWindow {
	return YearWindow{Year: year}
}

// Start returns Jan 1 00:00:00 UTC of the window year.
func (w YearWindow) Start() time.Time {
	return time.Date(w.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last instant before Jan 1 of the following year.
func (w YearWindow) End() time.Time {
	return time.Date(w.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
}

// Contains reports whether t falls inside the window. The whole of Dec 31 is
// in range.
func (w YearWindow) Contains(t time.Time) bool {
	return t.Year() == w.Year
}

// Months returns the 12 MonthKeys of the window in calendar order.
func (w YearWindow) Months() []MonthKey {
	keys := make([]MonthKey, 12)
	for i := 0; i < 12; i++ {
		keys[i] = MonthKey{Year: w.Year, Month: time.Month(i + 1)}
	}
	return keys
}

// FilterWindow returns a new ledger holding only records whose timestamp
// falls inside w. Records without a parseable timestamp are excluded. The
// input ledger is not modified.
func FilterWindow(l Ledger, w YearWindow) Ledger {
	out := Ledger{Columns: l.Columns}
	for _, rec := range l.Records {
		if rec.Time == nil || !w.Contains(*rec.Time) {
			continue
		}
		out.Records = append(out.Records, rec)
	}
	return out
}
