// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package database handles connection management and migration execution
// using goose. The document store runs on PostgreSQL (pgx) or SQLite
// (modernc); both share one set of migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations
var embedMigrations embed.FS

// Driver names as registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

var positional = regexp.MustCompile(`\$(\d+)`)

// DB is a connection pool that remembers its driver, so stores can write
// PostgreSQL-style queries and run them on either backend.
type DB struct {
	*sql.DB
	Driver string
}

// Connect opens a connection pool for driver using the provided DSN (a file
// path for SQLite). It verifies the connection with a ping before returning.
func Connect(ctx context.Context, driver, dsn string) (*DB, error) {
	switch driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("database open: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database open: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer; serialise access through one conn.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	// Verify the connection is alive.
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	if driver == DriverSQLite && dsn != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("database pragma: %w", err)
		}
	}

	slog.Info("database connected", "driver", driver)
	return &DB{DB: db, Driver: driver}, nil
}

// Rebind rewrites $N placeholders into the form the driver expects.
func (d *DB) Rebind(query string) string {
	if d.Driver == DriverSQLite {
		return positional.ReplaceAllString(query, "?$1")
	}
	return query
}

// Dialect returns the goose dialect for the driver.
func (d *DB) Dialect() string {
	if d.Driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// Migrate runs all pending goose migrations from the embedded SQL files.
// Migrations are embedded at compile time so no external files are needed
// at runtime.
func Migrate(ctx context.Context, db *DB) error {
	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(db.Dialect()); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	slog.Info("database migrations applied", "driver", db.Driver)
	return nil
}
