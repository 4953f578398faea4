package database

import (
	"path/filepath"
	"testing"
)

// TestMigrate tests that the embedded migrations apply cleanly and are idempotent.
//
// WHY: The server migrates on every start; a second run must be a no-op.
func TestMigrate(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "nested", "tracker.db"))
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate() run %d returned unexpected error: %v", i+1, err)
		}
	}

	version, err := SchemaVersion(db)
	if err != nil {
		t.Fatalf("SchemaVersion() returned unexpected error: %v", err)
	}
	if version != 3 {
		t.Errorf("Expected schema version 3, got %d", version)
	}

	for _, table := range []string{"transaction", "price", "portfolio_snapshot"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	if err := HealthCheck(db); err != nil {
		t.Errorf("HealthCheck() returned unexpected error: %v", err)
	}
}
