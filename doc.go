// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Survey server.

Quickly Survey serves a fixed questionnaire one question at a time to each
respondent, records finished responses in a durable store, and offers a
password-gated report with CSV and JSON export.

# Starting the Server

With no arguments the server listens on 3318 and stores responses in a
local SQLite file:

	go run .

Or with flags:

	go run . serve -p 8080 -t postgres -d "postgres://..." -c survey.yaml

A .env file in the working directory is loaded before flags are parsed.

# Commands

  - serve (default): run the HTTP API
  - export: write every stored response (-format csv|json, -o file)
  - hash-password: print a bcrypt hash to use as app_config.password

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or csv (default: sqlite)
  - DATABASE_URL (-d): file path or postgres connection string
  - SURVEY_CONFIG (-c): YAML survey document (default: config.yaml)
  - SESSION_TTL (-session-ttl): idle session lifetime (default: 2h)
  - LOG_LEVEL (-log-level): debug, info, warn, error
  - CORS_ORIGINS (-cors-origins): comma-separated browser origins (default: any, without credentials)

A missing or broken survey document falls back to the built-in
questionnaire.

# Architecture

  - catalog: survey document and built-in questions
  - survey: per-respondent state, validation and flow
  - session: in-memory sessions keyed by id
  - store: CSV and SQL response stores
  - report: admin summary and exports
  - handlers: HTTP request handlers (survey, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain and request/response types
  - auth: Admin password checks
  - db: SQL connections and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
