// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/store"
)

// TestPassword is the admin password of TestCatalog
const TestPassword = "test-password"

// SetupTestDB creates a fresh SQLite database file with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, db.DialectSQLite); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// NewTestStore returns an SQL store over a fresh test database. It is
// closed when the test ends.
func NewTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	s := store.NewSQLStore(SetupTestDB(t), db.DialectSQLite)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestCatalog is a short three-question survey: a single, a multi and a
// final single question
func TestCatalog() catalog.Catalog {
	return catalog.Catalog{
		Settings: catalog.Settings{
			Title:    "Test Survey",
			Icon:     "📝",
			Password: TestPassword,
		},
		Questions: []models.Question{
			{ID: "role", Text: "What is your role?", Type: models.QuestionSingle, Options: []string{"teaching", "research", "both"}},
			{ID: "pain", Text: "What slows you down?", Type: models.QuestionMulti, Options: []string{"slides", "grading", "email"}},
			{ID: "budget", Text: "What would you pay?", Type: models.QuestionSingle, Options: []string{"nothing", "subscription"}},
		},
	}
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: cliparse.StoreSQLite,
		DatabaseURL:  "test.db",
		ConfigFile:   "config.yaml",
		SessionTTL:   time.Hour,
		ExportFormat: cliparse.FormatCSV,
	}
}

// FailingStore is a store whose writes and reads always fail
type FailingStore struct {
	Err error
}

func NewFailingStore() *FailingStore {
	return &FailingStore{Err: errors.New("disk full")}
}

func (s *FailingStore) Init(ctx context.Context) error { return nil }

func (s *FailingStore) Append(ctx context.Context, submitTime string, answers models.Answers) error {
	return s.Err
}

func (s *FailingStore) LoadAll(ctx context.Context) ([]models.StoredResponse, error) {
	return nil, s.Err
}

func (s *FailingStore) Close() error { return nil }

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
