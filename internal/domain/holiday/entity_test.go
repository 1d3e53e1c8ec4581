package holiday_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHoliday_Matches(t *testing.T) {
	christmas := holiday.Holiday{ID: "1", Name: "Christmas", Date: date(2020, 12, 25), Recurring: true}
	oneOff := holiday.Holiday{ID: "2", Name: "Election Day", Date: date(2024, 11, 5)}

	tests := []struct {
		name string
		h    holiday.Holiday
		date time.Time
		want bool
	}{
		{"recurring on its own date", christmas, date(2020, 12, 25), true},
		{"recurring in a later year", christmas, date(2024, 12, 25), true},
		{"recurring in an earlier year", christmas, date(1999, 12, 25), true},
		{"recurring day before", christmas, date(2020, 12, 24), false},
		{"one-off on its date", oneOff, date(2024, 11, 5), true},
		{"one-off in another year", oneOff, date(2025, 11, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.h.Matches(tt.date); got != tt.want {
				t.Errorf("Holiday.Matches(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	holidays := []holiday.Holiday{
		{ID: "1", Name: "Christmas", Date: date(2020, 12, 25), Recurring: true},
		{ID: "2", Name: "New Year", Date: date(2021, 1, 1), Recurring: true},
		{ID: "3", Name: "Company Retreat", Date: date(2024, 12, 27)},
		{ID: "4", Name: "Old Retreat", Date: date(2023, 12, 27)},
	}

	got := holiday.Upcoming(holidays, date(2024, 12, 20), 14)
	require.Len(t, got, 3)

	assert.Equal(t, "Christmas", got[0].Name)
	assert.Equal(t, "2024-12-25", got[0].Date)
	assert.Equal(t, 5, got[0].DaysAway)

	assert.Equal(t, "Company Retreat", got[1].Name)
	assert.Equal(t, "New Year", got[2].Name)
	assert.Equal(t, "2025-01-01", got[2].Date)

	assert.Empty(t, holiday.Upcoming(holidays, date(2024, 6, 1), 10))
}

func TestCreateHolidayRequest_Validate(t *testing.T) {
	req := holiday.CreateHolidayRequest{Name: "Christmas", Date: "2024-12-25", Recurring: true}
	require.NoError(t, req.Validate())
	assert.Equal(t, date(2024, 12, 25), req.ParsedDate)

	bad := holiday.CreateHolidayRequest{Name: " ", Date: "25-12-2024"}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "date")
}
