package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempSQLite(t *testing.T) *SQLiteDB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "kiosk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestApplySQLiteMigrations_RunsOnce(t *testing.T) {
	db := openTempSQLite(t)
	migrations := fstest.MapFS{
		"001_widgets.sql": {Data: []byte(`
-- +migrate Up
CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
INSERT INTO widgets (name) VALUES ('first');
-- +migrate Down
DROP TABLE widgets;
`)},
		"README.md": {Data: []byte("ignored")},
	}

	require.NoError(t, ApplySQLiteMigrations(db, migrations))
	require.NoError(t, ApplySQLiteMigrations(db, migrations))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM widgets").Scan(&count))
	assert.Equal(t, 1, count, "seed row must be inserted exactly once")

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 1, applied)
}

func TestApplySQLiteMigrations_FailureRollsBack(t *testing.T) {
	db := openTempSQLite(t)
	migrations := fstest.MapFS{
		"001_broken.sql": {Data: []byte(`CREATE TABLE ok (id INTEGER); THIS IS NOT SQL;`)},
	}

	err := ApplySQLiteMigrations(db, migrations)
	require.Error(t, err)

	var applied int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied))
	assert.Equal(t, 0, applied)
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", ExtractUpMigration(content))
	assert.Equal(t, "SELECT 1;", ExtractUpMigration("SELECT 1;"))
}

func TestNewSQLiteDB_RequiresPath(t *testing.T) {
	_, err := NewSQLiteDB("  ")
	assert.Error(t, err)
}
