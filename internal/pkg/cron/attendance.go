package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/calendar"
)

const MarkAbsenteesJob = "mark_absentees"

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	location          *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, location *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		location:          location,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(MarkAbsenteesJob, interval, j.MarkAbsentees)
}

// MarkAbsentees marks every employee without a mark for yesterday as absent. Running it more
// than once a day is harmless since already-marked employees are skipped.
func (j *AttendanceJobs) MarkAbsentees(ctx context.Context) error {
	yesterday := calendar.Today(j.now(), j.location).AddDate(0, 0, -1)

	count, err := j.attendanceService.MarkAbsentees(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to mark absentees for %s: %w", calendar.Format(yesterday), err)
	}

	if count > 0 {
		slog.Info("Cron: Marked absent employees", "date", calendar.Format(yesterday), "count", count)
	}
	return nil
}
