package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth normalizes month overflow into the year, so month 13 of 2024 is January 2025.
func NewYearMonth(year, month int) YearMonth {
	idx := year*12 + month - 1
	y, m := idx/12, idx%12
	if m < 0 {
		y--
		m += 12
	}
	return YearMonth{Year: y, Month: time.Month(m + 1)}
}

// Of returns the month containing d.
func Of(d time.Time) YearMonth {
	return YearMonth{Year: d.Year(), Month: d.Month()}
}

// String formats as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// Bounds returns the first and last date of the month.
func (ym YearMonth) Bounds() (time.Time, time.Time) {
	return MonthBounds(int(ym.Month), ym.Year)
}

// MonthBounds returns the first and the last day of month/year. The last day is found by
// stepping to the first of the following month and going back one day.
func MonthBounds(month, year int) (time.Time, time.Time) {
	ym := NewYearMonth(year, month)
	first := Date(ym.Year, ym.Month, 1)

	var next time.Time
	if ym.Month == time.December {
		next = Date(ym.Year+1, time.January, 1)
	} else {
		next = Date(ym.Year, ym.Month+1, 1)
	}
	return first, next.AddDate(0, 0, -1)
}

// MonthWindow returns count consecutive months with the given month near the middle
// (the window starts count/2 months earlier).
func MonthWindow(month, year, count int) []YearMonth {
	if count <= 0 {
		return []YearMonth{}
	}
	offset := -(count / 2)
	months := make([]YearMonth, 0, count)
	for i := 0; i < count; i++ {
		months = append(months, NewYearMonth(year, month+offset+i))
	}
	return months
}

// ParseYearMonth reads month and year query values. A missing or malformed value falls back
// to the corresponding part of today.
func ParseYearMonth(monthStr, yearStr string, today time.Time) YearMonth {
	ym := Of(today)

	if m, err := strconv.Atoi(strings.TrimSpace(monthStr)); err == nil && m >= 1 && m <= 12 {
		ym.Month = time.Month(m)
	}
	if y, err := strconv.Atoi(strings.TrimSpace(yearStr)); err == nil && y >= 1 && y <= 9999 {
		ym.Year = y
	}
	return ym
}

// Week holds seven Monday-first slots; nil slots are padding outside the month.
type Week [7]*time.Time

// Grid is the month view used by the attendance calendar.
type Grid struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// BuildGrid lays out month/year as Monday-first weeks. Day 1 is preceded by as many empty
// slots as its weekday index and the final week is padded to seven slots.
func BuildGrid(month, year int) Grid {
	first, last := MonthBounds(month, year)
	grid := Grid{Year: first.Year(), Month: first.Month()}

	var week Week
	pos := WeekdayIndex(first)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		day := d
		week[pos] = &day
		pos++
		if pos == len(week) {
			grid.Weeks = append(grid.Weeks, week)
			week = Week{}
			pos = 0
		}
	}
	if pos > 0 {
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}

// Dates returns every non-padding date of the grid in order.
func (g Grid) Dates() []time.Time {
	var dates []time.Time
	for _, w := range g.Weeks {
		for _, d := range w {
			if d != nil {
				dates = append(dates, *d)
			}
		}
	}
	return dates
}
