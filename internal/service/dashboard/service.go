package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewDashboardService(attendanceRepo attendance.AttendanceRepository, employeeRepo employee.EmployeeRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// startOfDay truncates t to local midnight in t's location
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetDailyStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetDailyStats(ctx context.Context, now time.Time) (dashboard.DailyStats, error) {
	from := startOfDay(now)
	to := from.AddDate(0, 0, 1)

	var (
		records []attendance.Record
		active  []employee.Employee
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Today's ledger window
	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.List(gCtx, attendance.RecordQuery{From: &from, To: &to})
		if err != nil {
			return fmt.Errorf("failed to load today's records: %w", err)
		}
		return nil
	})

	// 2. Active roster size
	g.Go(func() error {
		var err error
		active, err = s.employeeRepo.List(gCtx, true)
		if err != nil {
			return fmt.Errorf("failed to load active employees: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DailyStats{}, err
	}

	stats := Summarize(from, records)
	stats.ActiveEmployees = int64(len(active))
	return stats, nil
}

// Summarize aggregates the records of the day starting at day. Records are
// counted as given; the caller selects the window.
func Summarize(day time.Time, records []attendance.Record) dashboard.DailyStats {
	stats := dashboard.DailyStats{Date: day}
	present := make(map[string]struct{})

	for i := range records {
		r := &records[i]
		switch r.Type {
		case attendance.TypeEntry:
			stats.TotalEntries++
		case attendance.TypeExit:
			stats.TotalExits++
		}
		present[r.EmployeeID] = struct{}{}

		last := stats.LastActivity
		if last == nil || r.Timestamp.After(last.Timestamp) ||
			(r.Timestamp.Equal(last.Timestamp) && r.ID > last.ID) {
			stats.LastActivity = r
		}
	}

	stats.UniqueEmployeesPresent = int64(len(present))
	if stats.LastActivity != nil {
		last := *stats.LastActivity
		stats.LastActivity = &last
	}
	return stats
}
