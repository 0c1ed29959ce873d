// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres or csv
  - DatabaseURL: file path for sqlite/csv, connection string for postgres
  - ConfigFile: survey YAML document (default: config.yaml)
  - SessionTTL: idle respondent session lifetime (default: 2h)
  - LogLevel: slog level (default: info)
  - ExportFormat, ExportOutput: used by the export command

# CLI Flags

	-p            Server port
	-t            Store type
	-d            Database URL / file
	-c            Survey config file
	-session-ttl  Idle session lifetime
	-log-level    debug, info, warn, error
	-format       Export format (csv, json)
	-o            Export output file

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_TYPE → -t
	DATABASE_URL  → -d
	SURVEY_CONFIG → -c
	SESSION_TTL   → -session-ttl
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables. The entry point
loads a .env file (github.com/joho/godotenv) before parsing.

# Validation

ParseFlags returns an error if:

  - the store type is not sqlite, postgres or csv
  - postgres is selected without a DATABASE_URL
  - PORT, SESSION_TTL or LOG_LEVEL cannot be parsed
*/
package cliparse
