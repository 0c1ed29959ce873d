// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections and schema creation.

# Connecting

Open selects the driver by dialect and pings the connection:

	conn, err := db.Open(db.DialectSQLite, "survey.db")
	conn, err := db.Open(db.DialectPostgres, "postgres://...")

SQLite (modernc.org/sqlite, no cgo) is limited to one open connection with
a busy timeout, so concurrent submissions queue on the driver. PostgreSQL
uses github.com/lib/pq.

# Schema Creation

CreateSchema initializes the response table:

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for the table and index.

# Tables

	survey_response (
	    id           surrogate key, insertion order
	    submit_time  "YYYY-MM-DD HH:MM:SS" stamped at submission
	    answers      JSON object: question_id -> string | [string]
	    created_at   assigned on insert
	)

Rows are only ever inserted. Nothing in the service updates or deletes them.
*/
package db
