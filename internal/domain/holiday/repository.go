package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	Create(ctx context.Context, newHoliday Holiday) (Holiday, error)
	GetByID(ctx context.Context, id string) (Holiday, error)
	Update(ctx context.Context, h Holiday) (Holiday, error)
	Delete(ctx context.Context, id string) error

	// List returns holidays ordered by date then name. A non-nil year limits the result to
	// holidays dated in that year plus every recurring holiday.
	List(ctx context.Context, year *int) ([]Holiday, error)

	// ListForRange returns every holiday that can match a date in [start, end]: exact ones dated
	// inside the range and all recurring ones.
	ListForRange(ctx context.Context, start, end time.Time) ([]Holiday, error)
}
