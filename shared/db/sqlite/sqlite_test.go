package sqlite

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSQLiteConfig(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		want     string
	}{
		{
			name:     "env variable",
			envValue: "/tmp/env.db",
			want:     "/tmp/env.db",
		},
		{
			name: "default path",
			want: "./scheduler.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv("SQLITE_DB_PATH", tt.envValue)
				defer os.Unsetenv("SQLITE_DB_PATH")
			} else {
				os.Unsetenv("SQLITE_DB_PATH")
			}

			cfg := NewSQLiteConfig()
			database := NewSQLiteDB(cfg)

			if database.dbPath != tt.want {
				t.Errorf("dbPath = %v, want %v", database.dbPath, tt.want)
			}
		})
	}
}

func TestConnectAndClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	database := NewSQLiteDB(&SQLiteConfig{Path: dbPath})

	if err := database.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}

	if database.DB() == nil {
		t.Error("DB() returned nil after Connect")
	}

	if err := database.Connect(); err == nil {
		t.Error("second Connect() should fail")
	}

	if err := database.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}

	if database.DB() != nil {
		t.Error("DB() should return nil after Close")
	}

	// Closing twice is a no-op
	if err := database.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
