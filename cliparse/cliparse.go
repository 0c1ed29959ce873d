package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store types
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreCSV      = "csv"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	ConfigFile   string
	SessionTTL   time.Duration
	LogLevel     slog.Level

	// AllowedOrigins lists the browser origins CORS echoes back. Empty
	// means any origin, without credentials.
	AllowedOrigins []string

	// export command only
	ExportFormat string
	ExportOutput string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var ttl, level, origins string

	fs := flag.NewFlagSet("quickly-survey", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Store type (sqlite, postgres or csv)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Survey config file (YAML)")
	fs.StringVar(&ttl, "session-ttl", "", "Idle session lifetime, e.g. 2h")
	fs.StringVar(&level, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&origins, "cors-origins", "", "Comma-separated allowed CORS origins")

	fs.StringVar(&cfg.ExportFormat, "format", FormatCSV, "Export format (csv or json)")
	fs.StringVar(&cfg.ExportOutput, "o", "", "Export file (default stdout)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = StoreSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	switch cfg.DatabaseType {
	case StoreSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "survey.db"
		}
	case StoreCSV:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = "survey_data.csv"
		}
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unsupported store type %q (use sqlite, postgres or csv)", cfg.DatabaseType)
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("SURVEY_CONFIG")
		if cfg.ConfigFile == "" {
			cfg.ConfigFile = "config.yaml"
		}
	}

	if ttl == "" {
		ttl = os.Getenv("SESSION_TTL")
	}
	cfg.SessionTTL = 2 * time.Hour
	if ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid session TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	if level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return Config{}, fmt.Errorf("invalid log level %q", level)
		}
	}

	if origins == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	cfg.ExportFormat = strings.ToLower(cfg.ExportFormat)
	if cfg.ExportFormat != FormatCSV && cfg.ExportFormat != FormatJSON {
		return Config{}, fmt.Errorf("unsupported export format %q (use csv or json)", cfg.ExportFormat)
	}

	return cfg, nil
}
