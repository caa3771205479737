package attendance_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/sse"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/validator"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/attendance-kiosk/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc       *attendanceService.AttendanceServiceImpl
	employees employee.EmployeeRepository
	hub       *sse.Hub
}

func newFixture(t *testing.T, loc *time.Location) fixture {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	hub := sse.NewHub()
	employees := sqlite.NewEmployeeRepository(db)
	svc := attendanceService.NewAttendanceService(sqlite.NewAttendanceRepository(db), employees, loc, hub)
	return fixture{svc: svc, employees: employees, hub: hub}
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestCheckIn_ResolvesRosterName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.UTC)
	_, err := f.employees.Create(ctx, employee.Employee{ID: "E1", Name: "Alice"})
	require.NoError(t, err)

	now := time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC)
	f.svc.WithClock(func() time.Time { return now })

	rec, err := f.svc.CheckIn(ctx, attendance.KioskRequest{EmployeeID: " E1 "})
	require.NoError(t, err)
	assert.Equal(t, "E1", rec.EmployeeID)
	assert.Equal(t, "entry", rec.Type)
	require.NotNil(t, rec.EmployeeName)
	assert.Equal(t, "Alice", *rec.EmployeeName)
	assert.Equal(t, "2024-06-03T09:30:00Z", rec.Timestamp)

	out, err := f.svc.CheckOut(ctx, attendance.KioskRequest{EmployeeID: "E1", EmployeeName: strPtr("Alice B.")})
	require.NoError(t, err)
	assert.Equal(t, "exit", out.Type)
	assert.Equal(t, "Alice B.", *out.EmployeeName)
	assert.Greater(t, out.ID, rec.ID)
}

func TestCheckIn_UnknownEmployeeIsAccepted(t *testing.T) {
	f := newFixture(t, time.UTC)

	rec, err := f.svc.CheckIn(context.Background(), attendance.KioskRequest{EmployeeID: "ghost"})
	require.NoError(t, err)
	assert.Equal(t, "ghost", rec.EmployeeID)
	assert.Nil(t, rec.EmployeeName)
}

func TestCheckIn_BlankEmployeeID(t *testing.T) {
	f := newFixture(t, time.UTC)

	_, err := f.svc.CheckIn(context.Background(), attendance.KioskRequest{EmployeeID: "  "})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
}

func TestRecordEvent_PublishesToAdminTopic(t *testing.T) {
	f := newFixture(t, time.UTC)
	events, cleanup := f.hub.Subscribe(sse.TopicAdmin)
	defer cleanup()

	rec, err := f.svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		EmployeeID: "E1",
		Type:       attendance.TypeEntry,
		Timestamp:  timePtr(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
		Notes:      strPtr("manual"),
	})
	require.NoError(t, err)

	ev := <-events
	assert.Equal(t, "record.created", ev.Event)
	assert.Equal(t, rec, ev.Data)
}

func TestDeleteEmployee_KeepsHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.UTC)
	_, err := f.employees.Create(ctx, employee.Employee{ID: "E1", Name: "Alice"})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(ctx, attendance.KioskRequest{EmployeeID: "E1"})
	require.NoError(t, err)
	require.NoError(t, f.employees.Delete(ctx, "E1"))

	records, err := f.svc.GetRecords(ctx, attendance.RecordFilter{EmployeeID: strPtr("E1")})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].EmployeeName)
	assert.Equal(t, "Alice", *records[0].EmployeeName)
}

func TestUpdateRecord_ChangesOnlyMutableFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.UTC)

	created, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{
		EmployeeID:   "E1",
		Type:         attendance.TypeEntry,
		EmployeeName: strPtr("Alice"),
		Timestamp:    timePtr(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:        created.ID,
		Timestamp: optional.Of("2024-01-01T17:45:00Z"),
		Type:      optional.Of("exit"),
		Notes:     optional.Of("late"),
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.EmployeeID, updated.EmployeeID)
	assert.Equal(t, created.EmployeeName, updated.EmployeeName)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2024-01-01T17:45:00Z", updated.Timestamp)
	assert.Equal(t, "exit", updated.Type)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "late", *updated.Notes)

	_, err = f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{ID: 404, Notes: optional.Of("x")})
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	_, err = f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{ID: created.ID})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestUpdateRecord_ZonelessTimestampUsesServiceLocation(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC+7", 7*60*60)
	f := newFixture(t, loc)

	created, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{EmployeeID: "E1", Type: attendance.TypeEntry})
	require.NoError(t, err)

	updated, err := f.svc.UpdateRecord(ctx, attendance.UpdateRecordRequest{
		ID:        created.ID,
		Timestamp: optional.Of("2024-01-01 08:00:00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T08:00:00+07:00", updated.Timestamp)

	got, err := f.svc.GetRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestGetRecords_DateAndTypeFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.UTC)

	seed := []struct {
		at  time.Time
		typ attendance.RecordType
	}{
		{time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC), attendance.TypeEntry},
		{time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), attendance.TypeEntry},
		{time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), attendance.TypeExit},
		{time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC), attendance.TypeEntry},
		{time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), attendance.TypeEntry},
	}
	for _, s := range seed {
		_, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{EmployeeID: "E1", Type: s.typ, Timestamp: timePtr(s.at)})
		require.NoError(t, err)
	}

	records, err := f.svc.GetRecords(ctx, attendance.RecordFilter{
		StartDate: strPtr("2024-01-01"),
		EndDate:   strPtr("2024-01-01"),
		Type:      strPtr("entry"),
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-01-01T08:00:00Z", records[0].Timestamp)
	assert.Equal(t, "2024-01-01T17:00:00Z", records[1].Timestamp)

	all, err := f.svc.GetRecords(ctx, attendance.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	_, err = f.svc.GetRecords(ctx, attendance.RecordFilter{StartDate: strPtr("yesterday")})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDeleteRecord_IDsNeverReused(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.UTC)

	first, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{EmployeeID: "E1", Type: attendance.TypeEntry})
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteRecord(ctx, first.ID))
	assert.ErrorIs(t, f.svc.DeleteRecord(ctx, first.ID), attendance.ErrRecordNotFound)

	second, err := f.svc.RecordEvent(ctx, attendance.RecordEventRequest{EmployeeID: "E1", Type: attendance.TypeEntry})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	_, err = f.svc.GetRecord(ctx, first.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
