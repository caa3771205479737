package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/database"
)

type employeeRepository struct {
	db *database.SQLiteDB
}

func NewEmployeeRepository(db *database.SQLiteDB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, name, active, created_at, updated_at`

func scanEmployee(row interface{ Scan(dest ...any) error }) (employee.Employee, error) {
	var (
		emp                  employee.Employee
		createdAt, updatedAt int64
	)
	if err := row.Scan(&emp.ID, &emp.Name, &emp.Active, &createdAt, &updatedAt); err != nil {
		return employee.Employee{}, err
	}
	emp.CreatedAt = fromMillis(createdAt)
	emp.UpdatedAt = fromMillis(updatedAt)
	return emp, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = ?`, id)
	emp, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	now := nowMillis()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO employees (id, name, active, seq, created_at, updated_at)
		VALUES (?, ?, 1, (SELECT COALESCE(MAX(seq), 0) + 1 FROM employees), ?, ?)
		ON CONFLICT (id) DO NOTHING
		RETURNING `+employeeColumns,
		newEmployee.ID, newEmployee.Name, now, now,
	)

	created, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeIDExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepository) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	var (
		sets []string
		args []interface{}
	)
	if name, ok := req.Name.Get(); ok {
		sets = append(sets, "name = ?")
		args = append(args, name)
	}
	if active, ok := req.Active.Get(); ok {
		sets = append(sets, "active = ?")
		args = append(args, active)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, nowMillis(), req.ID)

	query := `UPDATE employees SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + employeeColumns
	updated, err := scanEmployee(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

func nowMillis() int64 {
	return time.Now().UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
