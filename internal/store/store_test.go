// store_test.go provides shared test database helpers for all store
// tests. SQLite databases live in a temp directory; PostgreSQL tests are
// skipped if the server is not available.
package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"routegen/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "routegen")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "routegen")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable&connect_timeout=2"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a fresh migrated SQLite database. A cleanup function is
// registered to close the connection when the test finishes.
func testDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.DriverSQLite, filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testPostgres opens the PostgreSQL test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testPostgres(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Connect(context.Background(), database.DriverPostgres, testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
