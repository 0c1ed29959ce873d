// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes every response with one column per question id.
// Answers recorded under ids that are no longer in the catalog are skipped.
func WriteCSV(w io.Writer, questions []models.Question, responses []models.StoredResponse) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	cw := csv.NewWriter(w)

	header := make([]string, 0, len(questions)+3)
	header = append(header, "id", "submit_time")
	for _, q := range questions {
		header = append(header, q.ID)
	}
	header = append(header, "created_at")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	for _, r := range responses {
		record := make([]string, 0, len(header))
		record = append(record, fmt.Sprint(r.ID), r.SubmitTime)
		for _, q := range questions {
			record = append(record, r.Answers[q.ID].String())
		}
		record = append(record, formatCreatedAt(r.CreatedAt))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteJSON writes the responses as an indented JSON array
func WriteJSON(w io.Writer, responses []models.StoredResponse) error {
	if responses == nil {
		responses = []models.StoredResponse{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(responses); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Write dispatches on format
func Write(w io.Writer, format string, questions []models.Question, responses []models.StoredResponse) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, questions, responses)
	case FormatJSON:
		return WriteJSON(w, responses)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// ExportFilename is the suggested download name, e.g. survey_data_20261019.csv
func ExportFilename(now time.Time, format string) string {
	return fmt.Sprintf("survey_data_%s.%s", now.Format("20060102"), format)
}

// ContentType returns the MIME type for an export format
func ContentType(format string) string {
	if format == FormatJSON {
		return "application/json; charset=utf-8"
	}
	return "text/csv; charset=utf-8"
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
