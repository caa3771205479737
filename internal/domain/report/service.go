package report

import (
	"context"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
)

// ReportService defines the interface for attendance exports
type ReportService interface {
	// Export writes records, in the given order, to a spreadsheet and returns its path
	Export(ctx context.Context, records []attendance.Record) (string, error)

	// ExportRecords queries the ledger with filter and exports the result
	ExportRecords(ctx context.Context, filter attendance.RecordFilter) (ExportResponse, error)
}
