// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

var ErrUnsupportedType = errors.New("unsupported store type")

// Store persists finished survey responses. Rows are append-only.
type Store interface {
	// Init creates the backing table or file if it does not exist
	Init(ctx context.Context) error
	// Append records one response as a new row
	Append(ctx context.Context, submitTime string, answers models.Answers) error
	// LoadAll returns every response, most recently inserted first
	LoadAll(ctx context.Context) ([]models.StoredResponse, error)
	Close() error
}

// Open builds and initializes the store selected by cfg.DatabaseType
func Open(ctx context.Context, cfg cliparse.Config, questions []models.Question) (Store, error) {
	var s Store

	switch cfg.DatabaseType {
	case cliparse.StoreCSV:
		s = NewCSVStore(cfg.DatabaseURL, questions)
	case cliparse.StoreSQLite, cliparse.StorePostgres:
		conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		s = NewSQLStore(conn, cfg.DatabaseType)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, cfg.DatabaseType)
	}

	if err := s.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
