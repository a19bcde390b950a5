// Copyright (c) 2025 Martin Koehler.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database type constants (cliparse.Config.DatabaseType)
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects using the driver matching dbType.
func Open(dbType, url string) (*sql.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if dbType == TypeSQLite {
		// One writer keeps SQLite happy under the upsert-heavy workload.
		conn.SetMaxOpenConns(1)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Portable across SQLite and Postgres: plain TEXT payload, no JSONB.
const schema = `
-- Answer records, one per (user, object)
CREATE TABLE IF NOT EXISTS answer_record (
    user_slug TEXT NOT NULL,
    object_id TEXT NOT NULL,
    schema_version TEXT NOT NULL,
    last_modified TIMESTAMP NOT NULL,
    payload TEXT NOT NULL,
    PRIMARY KEY (user_slug, object_id)
);

CREATE INDEX IF NOT EXISTS idx_answer_record_user ON answer_record(user_slug);
`
