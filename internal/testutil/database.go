package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the MySQL database used by integration tests.
// Expects a database named 'petiscaria_test' on localhost:3306 and skips the
// test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/petiscaria_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the given tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB, tables ...string) {
	if db == nil {
		return
	}

	CleanupTables(t, db, tables...)
	db.Close()
}

// CleanupTables empties the given tables without closing the connection.
func CleanupTables(t *testing.T, db *sql.DB, tables ...string) {
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
