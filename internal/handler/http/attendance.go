package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-desk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-desk/internal/handler/http/response"
)

type AttendanceHandler interface {
	// Ranges returns every range preset resolved against today
	Ranges(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	// Record marks one employee on one date
	Record(w http.ResponseWriter, r *http.Request)
	// GetDay returns the marking sheet for a date
	GetDay(w http.ResponseWriter, r *http.Request)
	// RecordDay marks several employees on one date
	RecordDay(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Matrix(w http.ResponseWriter, r *http.Request)
	MatrixPDF(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// rangeFromQuery reads ?range= or ?start_date=&end_date=
func rangeFromQuery(r *http.Request) attendance.RangeRequest {
	query := r.URL.Query()
	req := attendance.RangeRequest{Range: query.Get("range")}

	if startDate := query.Get("start_date"); startDate != "" {
		req.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		req.EndDate = &endDate
	}
	return req
}

// Ranges handles GET /calendar/ranges
func (h *attendanceHandlerImpl) Ranges(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetRanges(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List handles GET /attendance
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.AttendanceFilter{RangeRequest: rangeFromQuery(r)}

	// Employee ID filter
	if employeeID := query.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	// Status filter
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}

	// Pagination
	filter.Page = queryInt(r, "page", 1)
	filter.Limit = queryInt(r, "limit", 20)

	// Sorting
	filter.SortBy = query.Get("sort_by")
	filter.SortOrder = query.Get("sort_order")

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /attendance/{id}
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	result, err := h.attendanceService.GetAttendance(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete handles DELETE /attendance/{id}
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, attendance.ErrAttendanceNotFound)
	if !ok {
		return
	}

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// Record handles POST /attendance
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", result)
}

// GetDay handles GET /attendance/day?date=
func (h *attendanceHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetDaySheet(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecordDay handles POST /attendance/day
func (h *attendanceHandlerImpl) RecordDay(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Attendance recorded for %d employees", len(req.Entries)), result)
}

// Calendar handles GET /attendance/calendar?month=&year=&window=
func (h *attendanceHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := attendance.CalendarRequest{
		Month: query.Get("month"),
		Year:  query.Get("year"),
	}
	if window, err := strconv.Atoi(query.Get("window")); err == nil {
		req.Window = window
	}

	result, err := h.attendanceService.GetCalendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Matrix handles GET /attendance/matrix
func (h *attendanceHandlerImpl) Matrix(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetMatrix(r.Context(), rangeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MatrixPDF handles GET /attendance/matrix.pdf
func (h *attendanceHandlerImpl) MatrixPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := h.attendanceService.ExportMatrixPDF(r.Context(), rangeFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.PDF(w, "attendance-matrix.pdf", pdf)
}
