package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
)

// RecordQuery is a resolved filter. From is inclusive, To is exclusive.
type RecordQuery struct {
	From       *time.Time
	To         *time.Time
	EmployeeID *string
	Type       *RecordType
	Descending bool
}

// RecordPatch lists the mutable fields of a record. An empty Notes value
// clears the notes.
type RecordPatch struct {
	ID        int64
	Timestamp optional.Field[time.Time]
	Type      optional.Field[RecordType]
	Notes     optional.Field[string]
}

// AttendanceRepository defines data access methods for attendance records.
// Employee ids are never checked against the roster.
type AttendanceRepository interface {
	// Create assigns the next id and stamps created_at/updated_at.
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id int64) (Record, error)

	Update(ctx context.Context, patch RecordPatch) (Record, error)

	Delete(ctx context.Context, id int64) error

	// List orders by timestamp then id, ascending unless q.Descending.
	List(ctx context.Context, q RecordQuery) ([]Record, error)
}
