package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/validator"
)

var validTypes = []string{string(TypeEntry), string(TypeExit)}

// ========================================
// KIOSK DTOs
// ========================================

// KioskRequest is a self-service check-in or check-out. When EmployeeName
// is omitted the current roster name is used.
type KioskRequest struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
}

func (r *KioskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	return nil
}

// ========================================
// LEDGER DTOs
// ========================================

type RecordEventRequest struct {
	EmployeeID   string
	Type         RecordType
	EmployeeName *string
	Timestamp    *time.Time // defaults to now
	Notes        *string
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !r.Type.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: entry, exit",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID           int64   `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name"`
	Timestamp    string  `json:"timestamp"`
	Type         string  `json:"type"`
	Notes        *string `json:"notes"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// NewRecordResponse renders r with timestamps expressed in loc.
func NewRecordResponse(r Record, loc *time.Location) RecordResponse {
	return RecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Timestamp:    r.Timestamp.In(loc).Format(time.RFC3339),
		Type:         string(r.Type),
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt.In(loc).Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.In(loc).Format(time.RFC3339),
	}
}

// RecordFilter holds the optional, conjunctive filters of the records list.
type RecordFilter struct {
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD, inclusive
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD, inclusive
	EmployeeID *string `json:"employee_id,omitempty"`
	Type       *string `json:"type,omitempty"`

	// Sorting by timestamp
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.Type != nil && *f.Type != "" {
		if !validator.IsInSlice(*f.Type, validTypes) {
			errs = append(errs, validator.ValidationError{
				Field:   "type",
				Message: "type must be one of: entry, exit",
			})
		}
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "asc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToQuery validates f and resolves its calendar dates to a time window in loc.
func (f *RecordFilter) ToQuery(loc *time.Location) (RecordQuery, error) {
	if err := f.Validate(); err != nil {
		return RecordQuery{}, err
	}

	var q RecordQuery
	if f.StartDate != nil && *f.StartDate != "" {
		from, _ := validator.ParseDateIn(*f.StartDate, loc)
		q.From = &from
	}
	if f.EndDate != nil && *f.EndDate != "" {
		end, _ := validator.ParseDateIn(*f.EndDate, loc)
		to := end.AddDate(0, 0, 1)
		q.To = &to
	}
	if f.EmployeeID != nil && *f.EmployeeID != "" {
		id := *f.EmployeeID
		q.EmployeeID = &id
	}
	if f.Type != nil && *f.Type != "" {
		t := RecordType(*f.Type)
		q.Type = &t
	}
	q.Descending = strings.ToLower(f.SortOrder) == "desc"

	return q, nil
}

// UpdateRecordRequest for admin corrections. Only timestamp, type and notes
// can change; each is applied only when present.
type UpdateRecordRequest struct {
	ID        int64                  `json:"-"`
	Timestamp optional.Field[string] `json:"timestamp"` // RFC3339 or "YYYY-MM-DD HH:MM:SS" local
	Type      optional.Field[string] `json:"type"`
	Notes     optional.Field[string] `json:"notes"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Timestamp.Set {
		if _, valid := validator.ParseDateTime(r.Timestamp.Value, time.UTC); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be RFC3339 or YYYY-MM-DD HH:MM:SS",
			})
		}
	}

	if r.Type.Set && !validator.IsInSlice(r.Type.Value, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: entry, exit",
		})
	}

	if !r.Timestamp.Set && !r.Type.Set && !r.Notes.Set {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "no fields to update",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Patch converts a validated request, reading zone-less timestamps in loc.
func (r *UpdateRecordRequest) Patch(loc *time.Location) RecordPatch {
	patch := RecordPatch{ID: r.ID, Notes: r.Notes}
	if r.Timestamp.Set {
		ts, _ := validator.ParseDateTime(r.Timestamp.Value, loc)
		patch.Timestamp = optional.Of(ts)
	}
	if r.Type.Set {
		patch.Type = optional.Of(RecordType(r.Type.Value))
	}
	return patch
}
