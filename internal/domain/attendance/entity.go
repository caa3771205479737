package attendance

import (
	"time"
)

type RecordType string

const (
	TypeEntry RecordType = "entry"
	TypeExit  RecordType = "exit"
)

func (t RecordType) IsValid() bool {
	return t == TypeEntry || t == TypeExit
}

// Label is the human readable name used in exports.
func (t RecordType) Label() string {
	switch t {
	case TypeEntry:
		return "Entry"
	case TypeExit:
		return "Exit"
	default:
		return string(t)
	}
}

// Record is one attendance event. EmployeeID is a soft reference and
// EmployeeName is the name captured when the record was created.
type Record struct {
	ID           int64
	EmployeeID   string
	EmployeeName *string
	Timestamp    time.Time
	Type         RecordType
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
