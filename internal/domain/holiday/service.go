package holiday

import (
	"context"
	"time"
)

// HolidayService defines business logic for holiday management
type HolidayService interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	GetHoliday(ctx context.Context, id string) (HolidayResponse, error)

	// ListHolidays returns holidays, optionally restricted to a year (recurring ones always included)
	ListHolidays(ctx context.Context, year *int) ([]HolidayResponse, error)

	UpdateHoliday(ctx context.Context, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error

	// Upcoming resolves holidays that fall within days after from (inclusive), soonest first
	Upcoming(ctx context.Context, from time.Time, days int) ([]NextOccurrence, error)
}
