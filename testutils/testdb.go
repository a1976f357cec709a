package testutils

import (
	"testing"

	"pagebinder-notes/pagebinder/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
// Cascade and ordering tests need real SQL semantics, so they run against
// this instead of sqlmock.
func SetupTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection, or every new pooled connection gets its own empty
	// in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &database.Database{DB: db}
	t.Cleanup(testDB.Close)

	return testDB
}

// OpenTestDB opens an existing SQLite file read-only for assertions, for
// example a backup snapshot produced during a test.
func OpenTestDB(t *testing.T, path string) *database.Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database %s: %v", path, err)
	}

	testDB := &database.Database{DB: db}
	t.Cleanup(testDB.Close)

	return testDB
}
