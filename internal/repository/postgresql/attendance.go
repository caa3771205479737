package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `id, employee_id, employee_name, "timestamp", type, notes, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var (
		rec     attendance.Record
		recType string
	)
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.EmployeeName, &rec.Timestamp,
		&recType, &rec.Notes, &rec.CreatedAt, &rec.UpdatedAt,
	)
	rec.Type = attendance.RecordType(recType)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newRecord attendance.Record) (attendance.Record, error) {
	query := `
		INSERT INTO attendance_records (employee_id, employee_name, "timestamp", type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + recordColumns

	created, err := scanRecord(a.db.QueryRow(ctx, query,
		newRecord.EmployeeID,
		newRecord.EmployeeName,
		newRecord.Timestamp.Truncate(time.Microsecond),
		string(newRecord.Type),
		newRecord.Notes,
	))
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id int64) (attendance.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanRecord(a.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record by ID: %w", err)
	}
	return rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, patch attendance.RecordPatch) (attendance.Record, error) {
	var (
		setClauses []string
		args       []interface{}
	)
	i := 1
	if ts, ok := patch.Timestamp.Get(); ok {
		setClauses = append(setClauses, fmt.Sprintf(`"timestamp" = $%d`, i))
		args = append(args, ts.Truncate(time.Microsecond))
		i++
	}
	if recType, ok := patch.Type.Get(); ok {
		setClauses = append(setClauses, fmt.Sprintf("type = $%d", i))
		args = append(args, string(recType))
		i++
	}
	if notes, ok := patch.Notes.Get(); ok {
		// empty notes clear the column
		setClauses = append(setClauses, fmt.Sprintf("notes = NULLIF($%d, '')", i))
		args = append(args, notes)
		i++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, patch.ID)

	query := fmt.Sprintf(`UPDATE attendance_records SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), i, recordColumns)

	updated, err := scanRecord(a.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to update attendance record: %w", err)
	}
	return updated, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := a.db.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.RecordQuery) ([]attendance.Record, error) {
	var (
		whereClauses []string
		args         []interface{}
	)
	argIdx := 1

	if filter.From != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(`"timestamp" >= $%d`, argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(`"timestamp" < $%d`, argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.EmployeeID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, string(*filter.Type))
		argIdx++
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	order := "ASC"
	if filter.Descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT %s FROM attendance_records %s ORDER BY "timestamp" %s, id %s`,
		recordColumns, whereSQL, order, order)

	rows, err := a.db.Query(ctx, query, args...)
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
