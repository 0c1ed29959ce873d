// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists submitted responses.

Two shapes implement Store:

  - CSVStore: one flat file, one column per question id, multi-choice
    selections joined with "; ". The file starts with a UTF-8 BOM.
  - SQLStore: table survey_response with the answers JSON-encoded, on
    SQLite (modernc.org/sqlite) or PostgreSQL (github.com/lib/pq).

Open picks the backend from cliparse.Config.DatabaseType and runs Init.
Rows are only ever appended. LoadAll returns the most recent row first.
*/
package store
