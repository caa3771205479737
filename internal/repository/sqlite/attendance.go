package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.SQLiteDB
}

func NewAttendanceRepository(db *database.SQLiteDB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `id, employee_id, employee_name, timestamp, type, notes, created_at, updated_at`

func scanRecord(row interface{ Scan(dest ...any) error }) (attendance.Record, error) {
	var (
		rec                             attendance.Record
		name, notes                     sql.NullString
		recType                         string
		timestamp, createdAt, updatedAt int64
	)
	if err := row.Scan(&rec.ID, &rec.EmployeeID, &name, &timestamp, &recType, &notes, &createdAt, &updatedAt); err != nil {
		return attendance.Record{}, err
	}
	if name.Valid {
		rec.EmployeeName = &name.String
	}
	if notes.Valid {
		rec.Notes = &notes.String
	}
	rec.Type = attendance.RecordType(recType)
	rec.Timestamp = fromMillis(timestamp)
	rec.CreatedAt = fromMillis(createdAt)
	rec.UpdatedAt = fromMillis(updatedAt)
	return rec, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	now := nowMillis()
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (employee_id, employee_name, timestamp, type, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+recordColumns,
		record.EmployeeID,
		record.EmployeeName,
		record.Timestamp.UnixMilli(),
		string(record.Type),
		record.Notes,
		now,
		now,
	)

	created, err := scanRecord(row)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM attendance_records WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, patch attendance.RecordPatch) (attendance.Record, error) {
	var (
		sets []string
		args []interface{}
	)
	if ts, ok := patch.Timestamp.Get(); ok {
		sets = append(sets, "timestamp = ?")
		args = append(args, ts.UnixMilli())
	}
	if recType, ok := patch.Type.Get(); ok {
		sets = append(sets, "type = ?")
		args = append(args, string(recType))
	}
	if notes, ok := patch.Notes.Get(); ok {
		sets = append(sets, "notes = ?")
		args = append(args, nullIfEmpty(notes))
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, nowMillis(), patch.ID)

	query := `UPDATE attendance_records SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + recordColumns
	updated, err := scanRecord(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if affected == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, q attendance.RecordQuery) ([]attendance.Record, error) {
	where := "1=1"
	var args []interface{}

	if q.From != nil {
		where += " AND timestamp >= ?"
		args = append(args, q.From.UnixMilli())
	}
	if q.To != nil {
		where += " AND timestamp < ?"
		args = append(args, q.To.UnixMilli())
	}
	if q.EmployeeID != nil {
		where += " AND employee_id = ?"
		args = append(args, *q.EmployeeID)
	}
	if q.Type != nil {
		where += " AND type = ?"
		args = append(args, string(*q.Type))
	}

	order := "ASC"
	if q.Descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM attendance_records WHERE %s ORDER BY timestamp %s, id %s`, recordColumns, where, order, order)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
