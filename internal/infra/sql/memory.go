package sql

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewMemoryORM opens a private in-memory SQLite database. Every call gets
// its own named database so test suites never share tables.
func NewMemoryORM() (ORM, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return openSqlite(dsn)
}

// NewSqliteORM opens (or creates) a SQLite database file.
func NewSqliteORM(path string) (ORM, error) {
	return openSqlite(path)
}

func openSqlite(dsn string) (ORM, error) {
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	return &DB{DB: gormDB, autoMigrationEnabled: true}, nil
}
