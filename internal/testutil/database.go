// Package testutil provides test helpers: in-memory databases, fixtures, and
// assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"paisa/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// allModels lists every GORM model to auto-migrate in tests.
var allModels = []interface{}{
	&models.User{},
	&models.Transaction{},
	&models.LedgerEntry{},
	&models.Holding{},
	&models.SweepRun{},
	&models.SweepOrder{},
	&models.AuditLog{},
}

// dbCounter gives each test DB a distinct name so shared-cache in-memory
// databases never leak between tests.
var dbCounter atomic.Int64

// SetupTestDB creates an isolated in-memory SQLite database with all models
// migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// TeardownTestDB closes the underlying connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}
