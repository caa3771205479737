package attendance

import (
	"context"
)

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// CheckIn records an entry for the kiosk, resolving the employee name
	CheckIn(ctx context.Context, req KioskRequest) (RecordResponse, error)

	// CheckOut records an exit for the kiosk, resolving the employee name
	CheckOut(ctx context.Context, req KioskRequest) (RecordResponse, error)

	// RecordEvent appends an event exactly as given
	RecordEvent(ctx context.Context, req RecordEventRequest) (RecordResponse, error)

	GetRecords(ctx context.Context, filter RecordFilter) ([]RecordResponse, error)

	GetRecord(ctx context.Context, id int64) (RecordResponse, error)

	// UpdateRecord corrects timestamp, type or notes (admin)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)

	DeleteRecord(ctx context.Context, id int64) error
}
