package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported driver names for NewDB.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// NewDB wraps sqlDB with the bun dialect matching driver.
func NewDB(sqlDB *sql.DB, driver string) (*bun.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("storage: sql database is required")
	}
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite, "sqlite":
		sqlDB.SetMaxOpenConns(1)
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case DriverPostgres, "pg", "pgx":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", driver)
	}
}

// CreateSchema creates the entry table when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*EntryRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("storage: create accordion_entries: %w", err)
	}
	return nil
}
