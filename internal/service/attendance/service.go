package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
)

// EventPublisher receives ledger change notifications. *sse.Hub implements it.
type EventPublisher interface {
	Publish(topic string, name string, data interface{})
}

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	events         EventPublisher
	now            func() time.Time
}

// NewAttendanceService builds the ledger service. Calendar dates in filters
// and zone-less timestamps are interpreted in loc. events may be nil.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
	events EventPublisher,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		events:         events,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for default timestamps.
func (a *AttendanceServiceImpl) WithClock(now func() time.Time) *AttendanceServiceImpl {
	a.now = now
	return a
}

func (a *AttendanceServiceImpl) publish(name string, data interface{}) {
	if a.events != nil {
		a.events.Publish(sse.TopicAdmin, name, data)
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.KioskRequest) (attendance.RecordResponse, error) {
	return a.kioskEvent(ctx, req, attendance.TypeEntry)
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.KioskRequest) (attendance.RecordResponse, error) {
	return a.kioskEvent(ctx, req, attendance.TypeExit)
}

func (a *AttendanceServiceImpl) kioskEvent(ctx context.Context, req attendance.KioskRequest, recordType attendance.RecordType) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	name := req.EmployeeName
	if name == nil || strings.TrimSpace(*name) == "" {
		resolved, err := a.resolveName(ctx, req.EmployeeID)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		name = resolved
	}

	return a.RecordEvent(ctx, attendance.RecordEventRequest{
		EmployeeID:   req.EmployeeID,
		Type:         recordType,
		EmployeeName: name,
	})
}

// resolveName returns the current roster name, or nil for an unknown employee.
func (a *AttendanceServiceImpl) resolveName(ctx context.Context, employeeID string) (*string, error) {
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve employee name: %w", err)
	}
	return &emp.Name, nil
}

// RecordEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	timestamp := a.now()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	notes := req.Notes
	if notes != nil && *notes == "" {
		notes = nil
	}

	created, err := a.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID:   strings.TrimSpace(req.EmployeeID),
		EmployeeName: req.EmployeeName,
		Timestamp:    timestamp,
		Type:         req.Type,
		Notes:        notes,
	})
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record attendance event: %w", err)
	}

	slog.Info("attendance recorded", "record_id", created.ID, "employee_id", created.EmployeeID, "type", created.Type)
	resp := attendance.NewRecordResponse(created, a.loc)
	a.publish("record.created", resp)
	return resp, nil
}

// GetRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordResponse, error) {
	query, err := filter.ToQuery(a.loc)
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewRecordResponse(r, a.loc))
	}
	return responses, nil
}

// GetRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRecord(ctx context.Context, id int64) (attendance.RecordResponse, error) {
	record, err := a.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	return attendance.NewRecordResponse(record, a.loc), nil
}

// UpdateRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateRecord(ctx context.Context, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	updated, err := a.attendanceRepo.Update(ctx, req.Patch(a.loc))
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	slog.Info("attendance record corrected", "record_id", updated.ID)
	resp := attendance.NewRecordResponse(updated, a.loc)
	a.publish("record.updated", resp)
	return resp, nil
}

// DeleteRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DeleteRecord(ctx context.Context, id int64) error {
	if err := a.attendanceRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}

	slog.Info("attendance record deleted", "record_id", id)
	a.publish("record.deleted", map[string]int64{"id": id})
	return nil
}
