package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns a migrated in-memory SQLite database that is closed when t ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open(DriverSQLite, "file::memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// every pooled connection to :memory: would be a separate database.
	conn.SetMaxOpenConns(1)

	t.Cleanup(func() {
		if err := conn.Close(); err != nil {
			t.Logf("failed to close database: %v", err)
		}
	})

	if err := Migrate(t.Context(), conn, DriverSQLite); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return conn
}
