package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// recordFilterFromQuery reads the ledger filters shared by listing and export.
func recordFilterFromQuery(r *http.Request) attendance.RecordFilter {
	filter := attendance.RecordFilter{}
	q := r.URL.Query()

	// Date range filters
	if startDate := q.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := q.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	if employeeID := q.Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}
	if recordType := q.Get("type"); recordType != "" {
		filter.Type = &recordType
	}

	filter.SortOrder = q.Get("sort_order")
	return filter
}

// recordID parses the {id} path parameter.
func recordID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.attendanceService.GetRecords(r.Context(), recordFilterFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	result, err := h.attendanceService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update implements AttendanceHandler.
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	var req attendance.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.attendanceService.UpdateRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record updated successfully", result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(r)
	if !ok {
		response.BadRequest(w, "Invalid record ID", nil)
		return
	}

	if err := h.attendanceService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted successfully", nil)
}
