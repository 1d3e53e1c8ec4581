package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
)

// DayClassification describes whether a date is open for attendance. It is derived on demand
// and never stored.
type DayClassification struct {
	Date        time.Time
	IsWeekend   bool
	IsHoliday   bool
	IsWorking   bool
	HolidayName string
}

// IsWeekend reports whether date is a Saturday or a Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsHoliday reports whether any holiday matches date, either on the exact date or, for
// recurring holidays, on the same month and day of any year.
func IsHoliday(date time.Time, holidays []holiday.Holiday) bool {
	for _, h := range holidays {
		if h.Matches(date) {
			return true
		}
	}
	return false
}

// HolidayName returns the name to display for date. A holiday dated exactly on date wins over
// a recurring one; within each group the first in holidays wins.
func HolidayName(date time.Time, holidays []holiday.Holiday) (string, bool) {
	for _, h := range holidays {
		if h.MatchesExactly(date) {
			return h.Name, true
		}
	}
	for _, h := range holidays {
		if h.MatchesRecurring(date) {
			return h.Name, true
		}
	}
	return "", false
}

// IsWorkingDay reports whether date is neither a weekend nor a holiday.
func IsWorkingDay(date time.Time, holidays []holiday.Holiday) bool {
	return !IsWeekend(date) && !IsHoliday(date, holidays)
}

// Classify computes the working-day classification of date.
func Classify(date time.Time, holidays []holiday.Holiday) DayClassification {
	name, isHoliday := HolidayName(date, holidays)
	weekend := IsWeekend(date)
	return DayClassification{
		Date:        date,
		IsWeekend:   weekend,
		IsHoliday:   isHoliday,
		IsWorking:   !weekend && !isHoliday,
		HolidayName: name,
	}
}
