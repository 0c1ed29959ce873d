// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported SQL dialects (also the database/sql driver names)
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var ErrUnknownDialect = errors.New("unknown database dialect")

// Open connects to the database and verifies the connection.
// SQLite gets a single connection and a busy timeout so concurrent
// writers queue instead of failing with SQLITE_BUSY.
func Open(dialect, url string) (*sql.DB, error) {
	dsn := url
	switch dialect {
	case DialectSQLite:
		dsn = sqliteDSN(url)
	case DialectPostgres:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
	}

	conn, err := sql.Open(dialect, dsn)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return conn, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=") {
		return path
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}
