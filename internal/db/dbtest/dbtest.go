// Package dbtest opens throwaway databases for package tests.
package dbtest

import (
	"os"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/HarisNvr/test-case-shop/internal/db"
)

// NewSQLite returns a migrated in-memory database with foreign keys enforced.
// The pool is pinned to a single connection because every sqlite memory
// connection is a separate database.
func NewSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := db.GormConfig()
	cfg.PrepareStmt = false
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sqlite sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

// NewPostgres connects to CART_TEST_DATABASE_URL and skips the test when it is
// not set. Tables are truncated before and after the test.
func NewPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("CART_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("CART_TEST_DATABASE_URL is required for postgres tests")
	}

	cfg := db.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	gdb, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	truncate := func() {
		gdb.Exec("TRUNCATE TABLE cart_items, products RESTART IDENTITY CASCADE")
	}
	truncate()
	t.Cleanup(func() {
		truncate()
		_ = db.Close(gdb)
	})
	return gdb
}
