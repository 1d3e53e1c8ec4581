package attendance_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time { return calendar.Date(y, m, day) }

func TestIsWeekend(t *testing.T) {
	assert.True(t, attendance.IsWeekend(d(2024, time.March, 16)))  // Saturday
	assert.True(t, attendance.IsWeekend(d(2024, time.March, 17)))  // Sunday
	assert.False(t, attendance.IsWeekend(d(2024, time.March, 15))) // Friday
	assert.False(t, attendance.IsWeekend(d(2024, time.March, 18))) // Monday
}

func TestIsHoliday(t *testing.T) {
	christmas := holiday.Holiday{ID: "h1", Date: d(2020, time.December, 25), Name: "Christmas", Recurring: true}
	oneOff := holiday.Holiday{ID: "h2", Date: d(2024, time.May, 10), Name: "Company Day"}
	holidays := []holiday.Holiday{christmas, oneOff}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"recurring on its own year", d(2020, time.December, 25), true},
		{"recurring in a later year", d(2024, time.December, 25), true},
		{"recurring in an earlier year", d(1999, time.December, 25), true},
		{"day before recurring", d(2020, time.December, 24), false},
		{"one-off on its date", d(2024, time.May, 10), true},
		{"one-off in another year", d(2025, time.May, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, attendance.IsHoliday(tt.date, holidays))
		})
	}

	assert.False(t, attendance.IsHoliday(d(2024, time.December, 25), nil))
}

func TestHolidayName_ExactWinsOverRecurring(t *testing.T) {
	holidays := []holiday.Holiday{
		{ID: "r", Date: d(2000, time.January, 1), Name: "New Year", Recurring: true},
		{ID: "e", Date: d(2024, time.January, 1), Name: "Millennium Party"},
	}

	name, ok := attendance.HolidayName(d(2024, time.January, 1), holidays)
	assert.True(t, ok)
	assert.Equal(t, "Millennium Party", name)

	name, ok = attendance.HolidayName(d(2025, time.January, 1), holidays)
	assert.True(t, ok)
	assert.Equal(t, "New Year", name)

	_, ok = attendance.HolidayName(d(2025, time.January, 2), holidays)
	assert.False(t, ok)
}

func TestIsWorkingDay(t *testing.T) {
	holidays := []holiday.Holiday{{ID: "h", Date: d(2024, time.March, 13), Name: "Founders Day"}}

	assert.True(t, attendance.IsWorkingDay(d(2024, time.March, 12), holidays))
	assert.False(t, attendance.IsWorkingDay(d(2024, time.March, 13), holidays))
	assert.False(t, attendance.IsWorkingDay(d(2024, time.March, 16), holidays))
}

func TestClassify(t *testing.T) {
	holidays := []holiday.Holiday{{ID: "h", Date: d(2024, time.March, 16), Name: "Saturday Fair"}}

	c := attendance.Classify(d(2024, time.March, 16), holidays)
	assert.True(t, c.IsWeekend)
	assert.True(t, c.IsHoliday)
	assert.False(t, c.IsWorking)
	assert.Equal(t, "Saturday Fair", c.HolidayName)

	c = attendance.Classify(d(2024, time.March, 15), holidays)
	assert.True(t, c.IsWorking)
	assert.Empty(t, c.HolidayName)
}
