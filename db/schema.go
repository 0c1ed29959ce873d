// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the response table for the given dialect.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case DialectSQLite:
		schema = sqliteSchema
	case DialectPostgres:
		schema = postgresSchema
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Survey responses (append-only)
CREATE TABLE IF NOT EXISTS survey_response (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    submit_time TEXT NOT NULL,
    answers TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_survey_response_created_at ON survey_response(created_at);
`

const postgresSchema = `
-- Survey responses (append-only)
CREATE TABLE IF NOT EXISTS survey_response (
    id BIGSERIAL PRIMARY KEY,
    submit_time TEXT NOT NULL,
    answers JSONB NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_survey_response_created_at ON survey_response(created_at);
`
