package payroll

import (
	"fmt"
	"time"
)

// Period identifies one calendar month of payroll data
type Period struct {
	Year  int
	Month time.Month
}

// PreviousMonth derives the period immediately preceding the reference
// date's month. A batch run on any day of November targets October.
func PreviousMonth(ref time.Time) Period {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastOfPrevious := firstOfMonth.AddDate(0, 0, -1)
	return Period{Year: lastOfPrevious.Year(), Month: lastOfPrevious.Month()}
}

// ParsePeriod parses a period in "YYYY-MM" form
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}
	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Start returns the first day of the period, midnight UTC
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the period, midnight UTC
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// String formats the period as "YYYY-MM"
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero reports whether the period is unset
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}
