package attendance

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-desk/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordAttendanceRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD
	Status     string `json:"status"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if !validator.IsInSlice(r.Status, StatusValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DayEntry struct {
	EmployeeID string `json:"employee_id"`
	Status     string `json:"status"`
}

type RecordDayRequest struct {
	Date    string     `json:"date"` // YYYY-MM-DD
	Entries []DayEntry `json:"entries"`
}

func (r *RecordDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Entries) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entries",
			Message: "at least one entry is required",
		})
	}

	for i := range r.Entries {
		e := &r.Entries[i]
		e.Status = strings.ToLower(strings.TrimSpace(e.Status))
		if validator.IsEmpty(e.EmployeeID) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("entries[%d].employee_id", i),
				Message: "employee_id is required",
			})
		}
		if !validator.IsInSlice(e.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("entries[%d].status", i),
				Message: "status must be one of: present, absent",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RangeRequest selects a date range either by preset key or by explicit dates. Explicit dates
// take precedence when both are given; an unknown preset key means last7days.
type RangeRequest struct {
	Range     string  `json:"range,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

// HasExplicitDates reports whether both start and end were supplied.
func (r RangeRequest) HasExplicitDates() bool {
	return r.StartDate != nil && *r.StartDate != "" && r.EndDate != nil && *r.EndDate != ""
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil && *r.StartDate != "" {
		if _, valid := validator.IsValidDate(*r.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if _, valid := validator.IsValidDate(*r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	RangeRequest

	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, employee_name, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if err := f.RangeRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id must be a valid UUID",
		})
	}

	// Status validation
	if f.Status != nil {
		if !validator.IsInSlice(*f.Status, StatusValues) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, absent",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "employee_name", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, employee_name, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CalendarRequest struct {
	Month  string `json:"month"`  // 1-12, defaults to the current month
	Year   string `json:"year"`   // defaults to the current year
	Window int    `json:"window"` // number of months offered for navigation, default 6
}

// ========================================
// RESPONSES
// ========================================

type AttendanceResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type RangeResponse struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Preset    *string `json:"preset,omitempty"` // set when the range equals a preset
	Days      int     `json:"days"`
}

// PresetRangeResponse is a preset resolved against today, for range pickers.
type PresetRangeResponse struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Default   bool   `json:"default"`
}

type ListAttendanceResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Showing    string               `json:"showing"`
	Range      RangeResponse        `json:"range"`
	Attendance []AttendanceResponse `json:"attendance"`
}

type DayResponse struct {
	Date        string  `json:"date"`
	Weekday     string  `json:"weekday"`
	IsWeekend   bool    `json:"is_weekend"`
	IsHoliday   bool    `json:"is_holiday"`
	IsWorking   bool    `json:"is_working"`
	HolidayName *string `json:"holiday_name,omitempty"`
}

type AggregateResponse struct {
	Total   int `json:"total"`
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

type DaySheetEntry struct {
	EmployeeID     string  `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	DepartmentName *string `json:"department_name,omitempty"`
	AttendanceID   *string `json:"attendance_id,omitempty"`
	Status         *string `json:"status,omitempty"`
}

type DaySheetResponse struct {
	Day       DayResponse       `json:"day"`
	Markable  bool              `json:"markable"`
	Reason    *string           `json:"reason,omitempty"` // why the day cannot be marked
	Aggregate AggregateResponse `json:"aggregate"`
	Employees []DaySheetEntry   `json:"employees"`
}

type MonthOption struct {
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Label    string `json:"label"` // YYYY-MM
	Selected bool   `json:"selected"`
}

type CalendarDay struct {
	DayResponse
	Day       int               `json:"day"`
	IsToday   bool              `json:"is_today"`
	IsFuture  bool              `json:"is_future"`
	Markable  bool              `json:"markable"`
	Aggregate AggregateResponse `json:"aggregate"`
}

type CalendarResponse struct {
	Year   int              `json:"year"`
	Month  int              `json:"month"`
	Label  string           `json:"label"` // YYYY-MM
	Months []MonthOption    `json:"months"`
	Weeks  [][]*CalendarDay `json:"weeks"` // Monday-first, null for padding
}

type MatrixCellResponse struct {
	Date         string  `json:"date"`
	AttendanceID *string `json:"attendance_id,omitempty"`
	Status       *string `json:"status,omitempty"`
	IsWorking    bool    `json:"is_working"`
}

type MatrixRowResponse struct {
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Present      int                  `json:"present"`
	Absent       int                  `json:"absent"`
	Cells        []MatrixCellResponse `json:"cells"`
}

type MatrixResponse struct {
	Range RangeResponse       `json:"range"`
	Days  []DayResponse       `json:"days"`
	Rows  []MatrixRowResponse `json:"rows"`
}
