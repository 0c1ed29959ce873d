// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// SQLStore keeps each response as one row with the answers JSON-encoded,
// so multi-choice answers come back as ordered lists.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

func NewSQLStore(conn *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: conn, dialect: dialect}
}

func (s *SQLStore) Init(ctx context.Context) error {
	return db.CreateSchema(s.db, s.dialect)
}

func (s *SQLStore) Append(ctx context.Context, submitTime string, answers models.Answers) error {
	payload, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_response (submit_time, answers, created_at)
		VALUES ($1, $2, $3)
	`, submitTime, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert response: %w", err)
	}

	return nil
}

func (s *SQLStore) LoadAll(ctx context.Context) ([]models.StoredResponse, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, submit_time, answers, created_at
		FROM survey_response
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.StoredResponse{}
	for rows.Next() {
		var resp models.StoredResponse
		var payload []byte
		if err := rows.Scan(&resp.ID, &resp.SubmitTime, &payload, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		if err := json.Unmarshal(payload, &resp.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers of response %d: %w", resp.ID, err)
		}
		responses = append(responses, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	return responses, nil
}

// DB exposes the underlying connection
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
