package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/dreamforge-ai/dreamforge/internal/db"
)

// testDB opens an in-memory SQLite database with the real migrations applied.
// The pool is pinned to a single connection so ":memory:" stays one database.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	err = db.RunMigrations(database.DB, "sqlite")
	if err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}
