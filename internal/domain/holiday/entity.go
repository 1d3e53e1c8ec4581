package holiday

import (
	"time"
)

type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	Recurring bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchesExactly reports whether the holiday falls on date, year included.
func (h Holiday) MatchesExactly(date time.Time) bool {
	return h.Date.Year() == date.Year() && h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
}

// MatchesRecurring reports whether a recurring holiday falls on date's month and day.
// Non-recurring holidays never match this way.
func (h Holiday) MatchesRecurring(date time.Time) bool {
	return h.Recurring && h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
}

// Matches reports whether the holiday applies to date.
func (h Holiday) Matches(date time.Time) bool {
	return h.MatchesExactly(date) || h.MatchesRecurring(date)
}
