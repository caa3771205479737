package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-kiosk/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/optional"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	t.Run("create rejects duplicate id", func(t *testing.T) {
		created, err := repo.Create(ctx, employee.Employee{ID: "E1", Name: "Ana"})
		require.NoError(t, err)
		assert.True(t, created.Active)

		_, err = repo.Create(ctx, employee.Employee{ID: "E1", Name: "Other"})
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := repo.Update(ctx, employee.UpdateEmployeeRequest{ID: "E1", Active: optional.Of(false)})
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.Name)
		assert.False(t, updated.Active)

		_, err = repo.Update(ctx, employee.UpdateEmployeeRequest{ID: "nobody", Name: optional.Of("X")})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("list keeps creation order", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{ID: "A0", Name: "Bea"})
		require.NoError(t, err)

		all, err := repo.List(ctx, false)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "E1", all[0].ID)
		assert.Equal(t, "A0", all[1].ID)

		active, err := repo.List(ctx, true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, "A0", active[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "E1"))
		assert.ErrorIs(t, repo.Delete(ctx, "E1"), employee.ErrEmployeeNotFound)
		_, err := repo.GetByID(ctx, "E1")
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}

func TestAttendanceRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	name := "Ana"

	first, err := repo.Create(ctx, attendance.Record{EmployeeID: "E1", EmployeeName: &name, Timestamp: day.Add(9 * time.Hour), Type: attendance.TypeEntry})
	require.NoError(t, err)
	second, err := repo.Create(ctx, attendance.Record{EmployeeID: "E1", Timestamp: day.Add(9 * time.Hour), Type: attendance.TypeExit})
	require.NoError(t, err)
	third, err := repo.Create(ctx, attendance.Record{EmployeeID: "E2", Timestamp: day.Add(26 * time.Hour), Type: attendance.TypeEntry})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	records, err := repo.List(ctx, attendance.RecordQuery{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, []int64{records[0].ID, records[1].ID, records[2].ID})

	records, err = repo.List(ctx, attendance.RecordQuery{Descending: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{records[0].ID, records[1].ID, records[2].ID})

	from, to := day, day.AddDate(0, 0, 1)
	records, err = repo.List(ctx, attendance.RecordQuery{From: &from, To: &to})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	notes := "fixed"
	updated, err := repo.Update(ctx, attendance.RecordPatch{ID: first.ID, Notes: optional.Of(notes)})
	require.NoError(t, err)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, notes, *updated.Notes)
	assert.Equal(t, attendance.TypeEntry, updated.Type)

	updated, err = repo.Update(ctx, attendance.RecordPatch{ID: first.ID, Notes: optional.Of("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Notes)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}
