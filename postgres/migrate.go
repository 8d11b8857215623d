package postgres

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
)

const MigrationTable = "schema_migrations"

// Migrate applies at most max migrations from dir in the given direction.
// A max of 0 applies all pending migrations.
func Migrate(db *sql.DB, dir string, direction migrate.MigrationDirection, max int) (int, error) {
	migrate.SetTable(MigrationTable)
	source := &migrate.FileMigrationSource{Dir: dir}
	return migrate.ExecMax(db, "postgres", source, direction, max)
}
