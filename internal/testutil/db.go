package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB creates a migrated in-memory SQLite database with foreign keys on.
// The pool is pinned to one connection so every statement sees the same memory database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(logger.Discard()))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}
