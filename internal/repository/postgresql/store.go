// Package postgresql implements the attendance repositories on PostgreSQL.
package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/postgresql/migrations"
)

// Open connects to dsn and brings the schema up to date.
func Open(ctx context.Context, dsn string) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := database.ApplyPostgresMigrations(ctx, db, migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return db, nil
}
