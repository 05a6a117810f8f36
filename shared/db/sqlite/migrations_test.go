package sqlite

import (
	"path/filepath"
	"testing"
)

func TestRunMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer database.Close()

	db := database.DB()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_migrations'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check schema_migrations table: %v", err)
	}
	if count != 1 {
		t.Errorf("schema_migrations table not created")
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to check kv table: %v", err)
	}
	if count != 1 {
		t.Errorf("kv table not created")
	}

	var version int
	err = db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version)
	if err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("schema version = %d, want %d", version, len(migrations))
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})
	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := database.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reconnecting re-runs the migration pass against an up-to-date schema
	if err := database.Connect(); err != nil {
		t.Fatalf("second Connect() error = %v", err)
	}
	defer database.Close()

	var count int
	err := database.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count applied migrations: %v", err)
	}
	if count != len(migrations) {
		t.Errorf("applied migrations = %d, want %d", count, len(migrations))
	}
}
