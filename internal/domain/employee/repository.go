package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// Create fails with ErrEmployeeIDExists when the id is taken.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	// Update applies only the fields set in req and returns the stored row.
	Update(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error

	// List returns employees in creation order.
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
}
