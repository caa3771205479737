package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/handler/http/response"
)

// KioskHandler serves the self-service terminal. None of its routes are gated.
type KioskHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
}

type kioskHandlerImpl struct {
	attendanceService attendance.AttendanceService
	employeeService   employee.EmployeeService
}

func NewKioskHandler(attendanceService attendance.AttendanceService, employeeService employee.EmployeeService) KioskHandler {
	return &kioskHandlerImpl{
		attendanceService: attendanceService,
		employeeService:   employeeService,
	}
}

// CheckIn implements KioskHandler.
func (h *kioskHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.KioskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", result)
}

// CheckOut implements KioskHandler.
func (h *kioskHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.KioskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CheckOut decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked out successfully", result)
}

// ListEmployees implements KioskHandler. Only active employees are offered.
func (h *kioskHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	results, err := h.employeeService.ListEmployees(r.Context(), true)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
