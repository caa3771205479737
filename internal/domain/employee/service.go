package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee roster
type EmployeeService interface {
	// CreateEmployee registers a new employee, active by default
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee changes name and/or active status
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee row; attendance history is kept
	DeleteEmployee(ctx context.Context, id string) error

	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	ListEmployees(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)
}
