// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/db"
	"github.com/danielhkuo/quickly-survey/models"
)

// newSQLiteStore opens a fresh SQLite file in a temp dir
func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	s := NewSQLStore(conn, db.DialectSQLite)
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newCSVStore(t *testing.T) *CSVStore {
	t.Helper()

	s := NewCSVStore(filepath.Join(t.TempDir(), "survey_data.csv"), catalog.DefaultQuestions())
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Failed to init store: %v", err)
	}
	return s
}

// fullAnswers answers every default question, with the given overrides
func fullAnswers(overrides models.Answers) models.Answers {
	answers := models.Answers{}
	for _, q := range catalog.DefaultQuestions() {
		if q.Type == models.QuestionSingle {
			answers[q.ID] = models.SingleAnswer(q.Options[0])
		} else {
			answers[q.ID] = models.MultiAnswer()
		}
	}
	for id, a := range overrides {
		answers[id] = a
	}
	return answers
}

func backends(t *testing.T) map[string]Store {
	return map[string]Store{
		"sqlite": newSQLiteStore(t),
		"csv":    newCSVStore(t),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			answers := fullAnswers(models.Answers{
				"role_focus":    models.SingleAnswer("教学任务为主"),
				"teaching_pain": models.MultiAnswer("PPT课件制作/美化", "出试卷/登分"),
			})

			if err := s.Append(ctx, "2026-10-19 10:00:00", answers); err != nil {
				t.Fatalf("Append() error = %v", err)
			}

			rows, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("Expected 1 row, got %d", len(rows))
			}

			got := rows[0]
			if got.SubmitTime != "2026-10-19 10:00:00" {
				t.Errorf("SubmitTime = %q", got.SubmitTime)
			}
			if got.ID == 0 {
				t.Error("Expected store-assigned id")
			}
			if got.CreatedAt.IsZero() {
				t.Error("Expected created_at to be set")
			}

			role := got.Answers["role_focus"]
			if role.Type != models.QuestionSingle || role.Choice != "教学任务为主" {
				t.Errorf("role_focus = %+v", role)
			}
			pain := got.Answers["teaching_pain"]
			if pain.Type != models.QuestionMulti {
				t.Fatalf("teaching_pain should be multi, got %+v", pain)
			}
			if !slices.Equal(pain.Choices, []string{"PPT课件制作/美化", "出试卷/登分"}) {
				t.Errorf("teaching_pain = %v", pain.Choices)
			}
			empty := got.Answers["paper_pain"]
			if empty.Type != models.QuestionMulti || len(empty.Choices) != 0 {
				t.Errorf("paper_pain should be an empty list, got %+v", empty)
			}
			if len(got.Answers) != len(catalog.DefaultQuestions()) {
				t.Errorf("Expected %d answers, got %d", len(catalog.DefaultQuestions()), len(got.Answers))
			}
		})
	}
}

func TestStore_AppendNeverOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			before, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}

			// Identical content still produces two rows
			answers := fullAnswers(nil)
			s.Append(ctx, "2026-10-19 10:00:00", answers)
			s.Append(ctx, "2026-10-19 10:00:00", answers)

			after, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if len(after)-len(before) != 2 {
				t.Errorf("Expected 2 new rows, got %d", len(after)-len(before))
			}
			if after[0].ID == after[1].ID {
				t.Error("Rows share an id")
			}
		})
	}
}

func TestStore_LoadAllMostRecentFirst(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Insertion order wins over submit_time order
			s.Append(ctx, "2026-10-19 12:00:00", fullAnswers(models.Answers{"budget": models.SingleAnswer("按单次服务付费")}))
			s.Append(ctx, "2026-10-19 08:00:00", fullAnswers(models.Answers{"budget": models.SingleAnswer("个人订阅（<30元/月）")}))

			rows, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if len(rows) != 2 {
				t.Fatalf("Expected 2 rows, got %d", len(rows))
			}
			if rows[0].SubmitTime != "2026-10-19 08:00:00" {
				t.Errorf("Expected last inserted row first, got %q", rows[0].SubmitTime)
			}
			if rows[0].ID <= rows[1].ID {
				t.Errorf("Expected descending ids, got %d then %d", rows[0].ID, rows[1].ID)
			}
		})
	}
}

func TestStore_InitIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			s.Append(ctx, "2026-10-19 10:00:00", fullAnswers(nil))
			if err := s.Init(ctx); err != nil {
				t.Fatalf("second Init() error = %v", err)
			}

			rows, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if len(rows) != 1 {
				t.Errorf("Init must not drop rows: got %d", len(rows))
			}
		})
	}
}

func TestStore_ConcurrentAppends(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			numWriters := 10

			var failures atomic.Int32
			var wg sync.WaitGroup
			for i := 0; i < numWriters; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					submitTime := fmt.Sprintf("2026-10-19 10:00:%02d", i)
					if err := s.Append(ctx, submitTime, fullAnswers(nil)); err != nil {
						failures.Add(1)
					}
				}(i)
			}
			wg.Wait()

			if failures.Load() != 0 {
				t.Fatalf("%d appends failed", failures.Load())
			}

			rows, err := s.LoadAll(ctx)
			if err != nil {
				t.Fatalf("LoadAll() error = %v", err)
			}
			if len(rows) != numWriters {
				t.Errorf("Expected %d rows, got %d", numWriters, len(rows))
			}
		})
	}
}

func TestCSVStore_FileShape(t *testing.T) {
	s := newCSVStore(t)
	ctx := context.Background()

	answers := fullAnswers(models.Answers{
		"teaching_pain": models.MultiAnswer("PPT课件制作/美化", "出试卷/登分"),
	})
	if err := s.Append(ctx, "2026-10-19 10:00:00", answers); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !strings.HasPrefix(string(data), string(utf8BOM)) {
		t.Error("Expected UTF-8 BOM at start of file")
	}

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(string(data), string(utf8BOM))), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "submit_time,role_focus,ai_freq,teaching_pain") {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "PPT课件制作/美化; 出试卷/登分") {
		t.Errorf("Expected '; '-joined multi value, got %s", lines[1])
	}
}

func TestCSVStore_ExistingHeaderDrivesColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.csv")
	if err := os.WriteFile(path, []byte("submit_time,role_focus,retired_question\n2026-01-01 09:00:00,科研任务为主,old\n"), 0644); err != nil {
		t.Fatalf("Failed to write legacy file: %v", err)
	}

	s := NewCSVStore(path, catalog.DefaultQuestions())
	ctx := context.Background()
	if err := s.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := s.Append(ctx, "2026-10-19 10:00:00", fullAnswers(nil)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rows, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	legacy := rows[1]
	if legacy.Answers["retired_question"].Choice != "old" {
		t.Errorf("Unknown column should be kept as an opaque value, got %+v", legacy.Answers["retired_question"])
	}
	if got := rows[0].Answers["ai_freq"]; got.Choice == "" {
		t.Errorf("Catalog column missing from the old header should be added, got %+v", got)
	}
	if got := legacy.Answers["ai_freq"]; got.Choice != "" {
		t.Errorf("Older rows should have an empty value for added columns, got %+v", got)
	}
	if legacy.Answers["role_focus"].Choice != "科研任务为主" {
		t.Errorf("Existing values should survive the rewrite, got %+v", legacy.Answers["role_focus"])
	}
}

func TestCSVStore_CatalogGrowsBetweenRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey_data.csv")
	ctx := context.Background()
	before := []models.Question{
		{ID: "a", Text: "A", Type: models.QuestionSingle, Options: []string{"x"}},
	}
	after := append(slices.Clone(before),
		models.Question{ID: "b", Text: "B", Type: models.QuestionMulti, Options: []string{"y", "z"}})

	first := NewCSVStore(path, before)
	if err := first.Init(ctx); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := first.Append(ctx, "2026-10-18 10:00:00", models.Answers{"a": models.SingleAnswer("x")}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	second := NewCSVStore(path, after)
	if err := second.Init(ctx); err != nil {
		t.Fatalf("Init() after catalog change error = %v", err)
	}
	if err := second.Append(ctx, "2026-10-19 10:00:00", models.Answers{
		"a": models.SingleAnswer("x"),
		"b": models.MultiAnswer("y", "z"),
	}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	rows, err := second.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if got := rows[0].Answers["b"].Choices; !slices.Equal(got, []string{"y", "z"}) {
		t.Errorf("Answer to the new question was lost: %v", got)
	}
	if got := rows[1].Answers["b"]; got.Type != models.QuestionMulti || len(got.Choices) != 0 {
		t.Errorf("Older row should read an empty selection for b, got %+v", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !strings.HasPrefix(string(data), string(utf8BOM)+"submit_time,a,b\n") {
		t.Errorf("Expected rewritten header with BOM, got %q", string(data))
	}
	if matches, _ := filepath.Glob(path + ".*.tmp"); len(matches) != 0 {
		t.Errorf("Temp files left behind: %v", matches)
	}
}

func TestCSVStore_AppendBeforeInit(t *testing.T) {
	s := NewCSVStore(filepath.Join(t.TempDir(), "x.csv"), catalog.DefaultQuestions())

	if err := s.Append(context.Background(), "2026-10-19 10:00:00", fullAnswers(nil)); err == nil {
		t.Error("Expected error appending to an uninitialized store")
	}
}

func TestCSVStore_UnreadableFile(t *testing.T) {
	s := newCSVStore(t)
	os.Remove(s.path)

	_, err := s.LoadAll(context.Background())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestSQLStore_MalformedRow(t *testing.T) {
	s := newSQLiteStore(t)

	_, err := s.DB().Exec(`INSERT INTO survey_response (submit_time, answers, created_at) VALUES ($1, $2, CURRENT_TIMESTAMP)`,
		"2026-10-19 10:00:00", `{"role_focus": 42}`)
	if err != nil {
		t.Fatalf("Failed to insert malformed row: %v", err)
	}

	if _, err := s.LoadAll(context.Background()); err == nil {
		t.Error("Expected decode error for malformed answers")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		name    string
		cfg     cliparse.Config
		wantErr bool
	}{
		{"sqlite", cliparse.Config{DatabaseType: cliparse.StoreSQLite, DatabaseURL: filepath.Join(dir, "open.db")}, false},
		{"csv", cliparse.Config{DatabaseType: cliparse.StoreCSV, DatabaseURL: filepath.Join(dir, "open.csv")}, false},
		{"unsupported", cliparse.Config{DatabaseType: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.cfg, catalog.DefaultQuestions())
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Errorf("Expected ErrUnsupportedType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer s.Close()

			rows, err := s.LoadAll(ctx)
			if err != nil || len(rows) != 0 {
				t.Errorf("Expected empty store, got %d rows, err %v", len(rows), err)
			}
		})
	}
}
