package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/report"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/storage"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Attendance"

var (
	exportHeaders = []interface{}{"ID", "Employee ID", "Name", "Date", "Time", "Type", "Notes"}
	columnWidths  = []float64{8, 15, 25, 12, 10, 10, 30}
)

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	sink           storage.FileStorage
	loc            *time.Location
	now            func() time.Time
}

// NewReportService builds the exporter. Dates and times in the workbook and
// the file name are rendered in loc.
func NewReportService(attendanceRepo attendance.AttendanceRepository, sink storage.FileStorage, loc *time.Location) *ReportServiceImpl {
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		sink:           sink,
		loc:            loc,
		now:            time.Now,
	}
}

// WithClock replaces the time source used for file names.
func (s *ReportServiceImpl) WithClock(now func() time.Time) *ReportServiceImpl {
	s.now = now
	return s
}

// ExportRecords implements report.ReportService.
func (s *ReportServiceImpl) ExportRecords(ctx context.Context, filter attendance.RecordFilter) (report.ExportResponse, error) {
	query, err := filter.ToQuery(s.loc)
	if err != nil {
		return report.ExportResponse{}, err
	}

	records, err := s.attendanceRepo.List(ctx, query)
	if err != nil {
		return report.ExportResponse{}, fmt.Errorf("failed to query attendance records: %w", err)
	}

	path, err := s.Export(ctx, records)
	if err != nil {
		return report.ExportResponse{}, err
	}

	return report.ExportResponse{
		FilePath:    path,
		RecordCount: len(records),
	}, nil
}

// Export implements report.ReportService. Records are written in the order given.
func (s *ReportServiceImpl) Export(ctx context.Context, records []attendance.Record) (string, error) {
	f, err := s.buildWorkbook(records)
	if err != nil {
		return "", fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}

	name, err := s.fileName(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}

	path, err := s.sink.Save(ctx, buf, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", report.ErrExportFailed, err)
	}

	slog.Info("attendance exported", "path", path, "records", len(records))
	return path, nil
}

func (s *ReportServiceImpl) buildWorkbook(records []attendance.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &exportHeaders); err != nil {
		f.Close()
		return nil, err
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range records {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		ts := r.Timestamp.In(s.loc)
		row := []interface{}{
			r.ID,
			r.EmployeeID,
			derefOrEmpty(r.EmployeeName),
			ts.Format("2006-01-02"),
			ts.Format("15:04:05"),
			r.Type.Label(),
			derefOrEmpty(r.Notes),
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// fileName returns Attendance_<date>_<time>.xlsx, suffixed when an export
// from the same second already exists.
func (s *ReportServiceImpl) fileName(ctx context.Context) (string, error) {
	base := "Attendance_" + s.now().In(s.loc).Format("2006-01-02_150405")
	name := base + ".xlsx"
	for i := 2; ; i++ {
		exists, err := s.sink.Exists(ctx, name)
		if err != nil {
			return "", err
		}
		if !exists {
			return name, nil
		}
		name = fmt.Sprintf("%s_%d.xlsx", base, i)
	}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
