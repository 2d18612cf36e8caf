package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/model"
)

// NewTestConnection creates an isolated in-memory SQLite store with the
// ledger schema migrated. The pool is capped at a single connection so
// concurrent units of work serialize against each other the same way the
// postgres balance row lock serializes them in production.
func NewTestConnection(t *testing.T) *Connection {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.CreditsBalance{},
		&model.CreditsBatch{},
		&model.CreditsTransaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	conn := &Connection{
		DB:     db,
		Config: &Config{Driver: "sqlite", Database: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1},
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}
