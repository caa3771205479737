// Package sqlite implements the attendance repositories on a local SQLite file.
package sqlite

import (
	"fmt"

	"github.com/cmlabs-hris/attendance-kiosk/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-kiosk/internal/repository/sqlite/migrations"
)

// Open opens the database at path and brings its schema up to date.
func Open(path string) (*database.SQLiteDB, error) {
	db, err := database.NewSQLiteDB(path)
	if err != nil {
		return nil, err
	}
	if err := database.ApplySQLiteMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite db: %w", err)
	}
	return db, nil
}
