package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "employee name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ID = strings.TrimSpace(r.ID)
	r.Name = strings.TrimSpace(r.Name)
	return nil
}

// UpdateEmployeeRequest is a partial update: unset fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID     string                 `json:"-"`
	Name   optional.Field[string] `json:"name"`
	Active optional.Field[bool]   `json:"active"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "employee id is required",
		})
	}

	if r.Name.Set && validator.IsEmpty(r.Name.Value) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "employee name cannot be empty",
		})
	}

	if !r.Name.Set && !r.Active.Set {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "no fields to update",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.ID = strings.TrimSpace(r.ID)
	if r.Name.Set {
		r.Name.Value = strings.TrimSpace(r.Name.Value)
	}
	return nil
}

type EmployeeResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Active:    e.Active,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}
