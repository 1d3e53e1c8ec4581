package calendar

import (
	"strings"
	"time"
)

// MaxRangeDays is the widest span (end - start, in days) a submitted range may cover.
const MaxRangeDays = 730

// DateRange is an inclusive pair of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewRange builds a range from two dates, dropping any clock part.
func NewRange(start, end time.Time) DateRange {
	return DateRange{Start: Truncate(start), End: Truncate(end)}
}

// Days returns the number of dates in the range, 0 when start is after end.
func (r DateRange) Days() int {
	n := DaysBetween(r.Start, r.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

// Contains reports whether d falls within the range.
func (r DateRange) Contains(d time.Time) bool {
	d = Truncate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates lists every date of the range in ascending order.
func (r DateRange) Dates() []time.Time {
	dates := make([]time.Time, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Equal reports whether both endpoints match.
func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

// Preset is a named range shortcut.
type Preset string

const (
	PresetToday      Preset = "today"
	PresetYesterday  Preset = "yesterday"
	PresetLast7Days  Preset = "last7days"
	PresetLast30Days Preset = "last30days"
	PresetLast90Days Preset = "last90days"
	PresetThisWeek   Preset = "thisweek"
	PresetLastWeek   Preset = "lastweek"
	PresetThisMonth  Preset = "thismonth"
	PresetLastMonth  Preset = "lastmonth"
	PresetThisYear   Preset = "thisyear"
	PresetLastYear   Preset = "lastyear"
)

// DefaultPreset is used for unknown preset keys.
const DefaultPreset = PresetLast7Days

var presets = []Preset{
	PresetToday,
	PresetYesterday,
	PresetLast7Days,
	PresetLast30Days,
	PresetLast90Days,
	PresetThisWeek,
	PresetLastWeek,
	PresetThisMonth,
	PresetLastMonth,
	PresetThisYear,
	PresetLastYear,
}

var presetLabels = map[Preset]string{
	PresetToday:      "Today",
	PresetYesterday:  "Yesterday",
	PresetLast7Days:  "Last 7 days",
	PresetLast30Days: "Last 30 days",
	PresetLast90Days: "Last 90 days",
	PresetThisWeek:   "This week",
	PresetLastWeek:   "Last week",
	PresetThisMonth:  "This month",
	PresetLastMonth:  "Last month",
	PresetThisYear:   "This year",
	PresetLastYear:   "Last year",
}

// Label is the display name of the preset.
func (p Preset) Label() string {
	if l, ok := presetLabels[p]; ok {
		return l
	}
	return string(p)
}

// Presets returns every supported preset in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Valid reports whether p is one of the supported presets.
func (p Preset) Valid() bool {
	for _, known := range presets {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePreset maps a user supplied key to a preset. Unknown keys map to DefaultPreset.
func ParsePreset(s string) Preset {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return DefaultPreset
	}
	return p
}

// PredefinedRange resolves a preset relative to today. Unknown presets resolve like last7days.
func PredefinedRange(p Preset, today time.Time) DateRange {
	today = Truncate(today)

	switch p {
	case PresetToday:
		return DateRange{Start: today, End: today}
	case PresetYesterday:
		y := today.AddDate(0, 0, -1)
		return DateRange{Start: y, End: y}
	case PresetLast30Days:
		return DateRange{Start: today.AddDate(0, 0, -29), End: today}
	case PresetLast90Days:
		return DateRange{Start: today.AddDate(0, 0, -89), End: today}
	case PresetThisWeek:
		return DateRange{Start: today.AddDate(0, 0, -WeekdayIndex(today)), End: today}
	case PresetLastWeek:
		sunday := today.AddDate(0, 0, -(WeekdayIndex(today) + 1))
		return DateRange{Start: sunday.AddDate(0, 0, -6), End: sunday}
	case PresetThisMonth:
		return DateRange{Start: Date(today.Year(), today.Month(), 1), End: today}
	case PresetLastMonth:
		last := Date(today.Year(), today.Month(), 1).AddDate(0, 0, -1)
		return DateRange{Start: Date(last.Year(), last.Month(), 1), End: last}
	case PresetThisYear:
		return DateRange{Start: Date(today.Year(), time.January, 1), End: today}
	case PresetLastYear:
		y := today.Year() - 1
		return DateRange{Start: Date(y, time.January, 1), End: Date(y, time.December, 31)}
	default: // last7days
		return DateRange{Start: today.AddDate(0, 0, -6), End: today}
	}
}

// ValidateRange checks a user submitted range against today.
func ValidateRange(r DateRange, today time.Time) error {
	start, end := Truncate(r.Start), Truncate(r.End)

	if start.After(end) {
		return ErrInvalidRange
	}
	if end.After(Truncate(today)) {
		return ErrFutureEndDate
	}
	if DaysBetween(start, end) > MaxRangeDays {
		return ErrRangeTooLarge
	}
	return nil
}

// DetectPreset finds the first preset (in display order) that resolves to exactly r.
func DetectPreset(r DateRange, today time.Time) (Preset, bool) {
	r = NewRange(r.Start, r.End)
	for _, p := range presets {
		if PredefinedRange(p, today).Equal(r) {
			return p, true
		}
	}
	return "", false
}
