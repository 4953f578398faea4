package testutil

import (
	"database/sql"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/fernet/fernet-go"
	_ "modernc.org/sqlite" // Test Package

	"github.com/ndewijer/Investment-Tracker-Backend/internal/database"
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The schema is created by running the embedded migrations, so tests always
// see the production schema. The database is automatically cleaned up when
// the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every new connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// SetupLocalStore creates an in-memory pebble store for testing.
//
// Example usage:
//
//	store := testutil.SetupLocalStore(t)
//	repo := repository.NewLocalTransactionRepository(store, nil)
func SetupLocalStore(t *testing.T) *pebble.DB {
	t.Helper()

	store, err := database.OpenLocalStore("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		t.Fatalf("Failed to open test local store: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

// NewFernetKey generates a random key for an encrypted local store.
func NewFernetKey(t *testing.T) *fernet.Key {
	t.Helper()

	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return &key
}
