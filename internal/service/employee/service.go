package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
)

// EventPublisher receives roster change notifications. *sse.Hub implements it.
type EventPublisher interface {
	Publish(topic string, name string, data interface{})
}

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	events       EventPublisher
}

// NewEmployeeService builds the roster service. events may be nil.
func NewEmployeeService(employeeRepo employee.EmployeeRepository, events EventPublisher) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		events:       events,
	}
}

func (s *EmployeeServiceImpl) publish(name string, data interface{}) {
	if s.events != nil {
		s.events.Publish(sse.TopicAdmin, name, data)
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		ID:   req.ID,
		Name: req.Name,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID)
	resp := employee.NewEmployeeResponse(created)
	s.publish("employee.created", resp)
	return resp, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	resp := employee.NewEmployeeResponse(updated)
	s.publish("employee.updated", resp)
	return resp, nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("employee deleted", "employee_id", id)
	s.publish("employee.deleted", map[string]string{"id": id})
	return nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.NewEmployeeResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp))
	}
	return responses, nil
}
