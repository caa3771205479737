package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmployeeIDExists = errors.New("an employee with that ID already exists")
)
