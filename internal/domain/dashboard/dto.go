package dashboard

import (
	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/domain/holiday"
)

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Summary          SummaryResponse          `json:"summary"`
	Today            TodayResponse            `json:"today"`
	Trend            []TrendItem              `json:"trend"`
	UpcomingHolidays []holiday.NextOccurrence `json:"upcoming_holidays"`
	LatestRecords    []AttendanceRecordItem   `json:"latest_records"`
}

// ========== SUMMARY ==========

// SummaryResponse contains the record counts
type SummaryResponse struct {
	TotalEmployee   int64 `json:"total_employee"`
	TotalDepartment int64 `json:"total_department"`
	TotalHoliday    int64 `json:"total_holiday"`
	NewEmployee     int64 `json:"new_employee"` // hired within 30 days
}

// ========== TODAY (pie chart) ==========

// TodayResponse represents attendance statistics for today
type TodayResponse struct {
	Day            attendance.DayResponse `json:"day"`
	Present        int64                  `json:"present"`
	Absent         int64                  `json:"absent"`
	Unmarked       int64                  `json:"unmarked"`
	Total          int64                  `json:"total"`
	PresentPercent float64                `json:"present_percent"`
	AbsentPercent  float64                `json:"absent_percent"`
}

// ========== TREND ==========

// TrendItem is one day of the last-7-days bar chart
type TrendItem struct {
	Date      string `json:"date"` // Format: "YYYY-MM-DD"
	IsWorking bool   `json:"is_working"`
	Present   int64  `json:"present"`
	Absent    int64  `json:"absent"`
}

// AttendanceRecordItem represents a single attendance record in the list
type AttendanceRecordItem struct {
	No           int    `json:"no"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
	Status       string `json:"status"`
}
