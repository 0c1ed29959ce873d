// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

const submitTimeColumn = "submit_time"

// utf8BOM lets spreadsheet tools detect the encoding
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVStore appends responses to a flat file with one column per question
// id. Multi-choice answers are joined with "; ".
type CSVStore struct {
	mu        sync.Mutex
	path      string
	questions []models.Question
	columns   []string
}

func NewCSVStore(path string, questions []models.Question) *CSVStore {
	return &CSVStore{path: path, questions: questions}
}

// Init creates the file with its header row if it does not exist. An
// existing file keeps its columns in order; catalog ids missing from its
// header are appended as new columns, left empty in older rows.
func (s *CSVStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := s.readHeader()
	flags := os.O_WRONLY | os.O_APPEND
	switch {
	case err == nil && header != nil:
		var missing []string
		for _, q := range s.questions {
			if !slices.Contains(header, q.ID) {
				missing = append(missing, q.ID)
			}
		}
		if len(missing) == 0 {
			s.columns = header
			return nil
		}
		columns := append(slices.Clip(header), missing...)
		if err := s.rewriteWithColumns(columns); err != nil {
			return err
		}
		slog.Info("csv header extended", "path", s.path, "added", missing)
		s.columns = columns
		return nil
	case err == nil:
		// empty file: write the header into it
	case errors.Is(err, fs.ErrNotExist):
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	default:
		return err
	}

	columns := make([]string, 0, len(s.questions)+1)
	columns = append(columns, submitTimeColumn)
	for _, q := range s.questions {
		columns = append(columns, q.ID)
	}

	f, err := os.OpenFile(s.path, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	s.columns = columns
	return nil
}

func (s *CSVStore) Append(ctx context.Context, submitTime string, answers models.Answers) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.columns == nil {
		return fmt.Errorf("csv store %s is not initialized", s.path)
	}

	record := make([]string, len(s.columns))
	for i, col := range s.columns {
		if col == submitTimeColumn {
			record[i] = submitTime
			continue
		}
		record[i] = answers[col].String()
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(record); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	w.Flush()

	// O_APPEND with a single write keeps the row in one piece
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("failed to append response: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to append response: %w", err)
	}

	return nil
}

// LoadAll reads every row back. Multi-choice columns are split on "; ";
// columns that are not in the catalog are returned as single values.
func (s *CSVStore) LoadAll(ctx context.Context) ([]models.StoredResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(skipBOM(f))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return []models.StoredResponse{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	types := make(map[string]models.QuestionType, len(s.questions))
	for _, q := range s.questions {
		types[q.ID] = q.Type
	}

	responses := []models.StoredResponse{}
	for row := int64(1); ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", row, len(record), len(header))
		}

		resp := models.StoredResponse{ID: row, Answers: models.Answers{}}
		for i, col := range header {
			value := record[i]
			if col == submitTimeColumn {
				resp.SubmitTime = value
				continue
			}
			resp.Answers[col] = decodeCell(types[col], value)
		}
		if t, err := time.ParseInLocation(models.SubmitTimeLayout, resp.SubmitTime, time.Local); err == nil {
			resp.CreatedAt = t
		}
		responses = append(responses, resp)
	}

	slices.Reverse(responses)
	return responses, nil
}

func (s *CSVStore) Close() error {
	return nil
}

// rewriteWithColumns replaces the file with one whose header is columns,
// padding every existing row with empty cells
func (s *CSVStore) rewriteWithColumns(columns []string) error {
	src, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.path, err)
	}
	defer src.Close()

	r := csv.NewReader(skipBOM(src))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(utf8BOM); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	w := csv.NewWriter(tmp)
	w.Write(columns)
	for _, record := range records[1:] {
		padded := make([]string, len(columns))
		copy(padded, record)
		w.Write(padded)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to rewrite %s: %w", s.path, err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *CSVStore) readHeader() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := csv.NewReader(skipBOM(f)).Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", s.path, err)
	}
	return header, nil
}

func decodeCell(t models.QuestionType, value string) models.Answer {
	if t != models.QuestionMulti {
		return models.SingleAnswer(value)
	}
	if value == "" {
		return models.MultiAnswer()
	}
	return models.MultiAnswer(strings.Split(value, models.MultiSeparator)...)
}

func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if b, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(b, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}
