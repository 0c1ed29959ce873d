// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

func testQuestions() []models.Question {
	return []models.Question{
		{ID: "role", Text: "Role?", Type: models.QuestionSingle, Options: []string{"teaching", "research"}},
		{ID: "pain", Text: "Pain points?", Type: models.QuestionMulti, Options: []string{"slides", "grading", "email"}},
		{ID: "freq", Text: "AI use?", Type: models.QuestionSingle, Options: []string{"daily", "never"}},
		{ID: "budget", Text: "Budget?", Type: models.QuestionSingle, Options: []string{"free", "paid"}},
		{ID: "contact", Text: "Contact?", Type: models.QuestionSingle, Options: []string{"yes", "no"}},
	}
}

func testResponses() []models.StoredResponse {
	return []models.StoredResponse{
		{ID: 3, SubmitTime: "2026-10-19 09:27:41", Answers: models.Answers{
			"role": models.SingleAnswer("research"), "pain": models.MultiAnswer("grading"),
			"freq": models.SingleAnswer("daily"), "budget": models.SingleAnswer("free"), "contact": models.SingleAnswer("no"),
		}},
		{ID: 2, SubmitTime: "2026-10-18 15:00:00", Answers: models.Answers{
			"role": models.SingleAnswer("teaching"), "pain": models.MultiAnswer("slides", "grading"),
			"freq": models.SingleAnswer("daily"), "budget": models.SingleAnswer("paid"), "contact": models.SingleAnswer("yes"),
		}},
		{ID: 1, SubmitTime: "2026-10-18 08:00:00", Answers: models.Answers{
			"role": models.SingleAnswer("teaching"), "pain": models.MultiAnswer(),
			"freq": models.SingleAnswer("never"), "budget": models.SingleAnswer("free"), "contact": models.SingleAnswer("yes"),
		}},
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(testQuestions(), nil, time.Now())

	if summary.Total != 0 {
		t.Errorf("Expected total 0, got %d", summary.Total)
	}
	if summary.Message != EmptyMessage {
		t.Errorf("Expected message %q, got %q", EmptyMessage, summary.Message)
	}
	if summary.LatestSubmitTime != "" {
		t.Errorf("Expected no latest time, got %q", summary.LatestSubmitTime)
	}
	if summary.SingleFrequencies == nil || summary.MultiFrequencies == nil {
		t.Error("Frequency lists should be empty, not nil")
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 41, 0, time.Local)
	summary := Summarize(testQuestions(), testResponses(), now)

	if summary.Total != 3 {
		t.Errorf("Expected total 3, got %d", summary.Total)
	}
	if summary.LatestSubmitTime != "2026-10-19 09:27" {
		t.Errorf("Expected latest time truncated to minutes, got %q", summary.LatestSubmitTime)
	}
	if summary.LatestAge != "3 minutes ago" {
		t.Errorf("Expected latest age '3 minutes ago', got %q", summary.LatestAge)
	}
	if summary.Message != "" {
		t.Errorf("Expected no message, got %q", summary.Message)
	}

	if len(summary.SingleFrequencies) != 3 {
		t.Fatalf("Expected 3 single tables, got %d", len(summary.SingleFrequencies))
	}
	ids := []string{}
	for _, f := range summary.SingleFrequencies {
		ids = append(ids, f.QuestionID)
	}
	if strings.Join(ids, ",") != "role,freq,budget" {
		t.Errorf("Expected first three single questions in catalog order, got %v", ids)
	}

	role := summary.SingleFrequencies[0].Counts
	if len(role) != 2 || role[0] != (models.ValueCount{Value: "teaching", Count: 2}) || role[1] != (models.ValueCount{Value: "research", Count: 1}) {
		t.Errorf("Unexpected role counts: %+v", role)
	}

	if len(summary.MultiFrequencies) != 1 {
		t.Fatalf("Expected 1 multi table, got %d", len(summary.MultiFrequencies))
	}
	pain := summary.MultiFrequencies[0].Counts
	if len(pain) != 2 || pain[0] != (models.ValueCount{Value: "grading", Count: 2}) || pain[1] != (models.ValueCount{Value: "slides", Count: 1}) {
		t.Errorf("Unexpected pain counts: %+v", pain)
	}
}

func TestSummarize_TiesSortByValue(t *testing.T) {
	responses := []models.StoredResponse{
		{ID: 2, SubmitTime: "2026-10-19 09:00:00", Answers: models.Answers{"role": models.SingleAnswer("research")}},
		{ID: 1, SubmitTime: "2026-10-19 08:00:00", Answers: models.Answers{"role": models.SingleAnswer("teaching")}},
	}

	summary := Summarize(testQuestions()[:1], responses, time.Now())
	counts := summary.SingleFrequencies[0].Counts
	if counts[0].Value != "research" || counts[1].Value != "teaching" {
		t.Errorf("Expected ties ordered by value, got %+v", counts)
	}
}

func TestSummarize_RetiredOption(t *testing.T) {
	responses := []models.StoredResponse{
		{ID: 1, SubmitTime: "2026-10-19 08:00:00", Answers: models.Answers{"role": models.SingleAnswer("admin")}},
	}

	summary := Summarize(testQuestions()[:1], responses, time.Now())
	counts := summary.SingleFrequencies[0].Counts
	if len(counts) != 1 || counts[0].Value != "admin" {
		t.Errorf("Values outside the current options should still be counted, got %+v", counts)
	}
}

func TestWriteCSV(t *testing.T) {
	responses := testResponses()
	responses[0].CreatedAt = time.Date(2026, 10, 19, 1, 27, 41, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, testQuestions(), responses); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "\ufeff") {
		t.Error("Expected UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(out, "\ufeff")), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "id,submit_time,role,pain,freq,budget,contact,created_at" {
		t.Errorf("Unexpected header: %s", lines[0])
	}
	if lines[1] != "3,2026-10-19 09:27:41,research,grading,daily,free,no,2026-10-19T01:27:41Z" {
		t.Errorf("Unexpected first row: %s", lines[1])
	}
	if !strings.Contains(lines[2], "slides; grading") {
		t.Errorf("Expected multi values joined with '; ', got %s", lines[2])
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, testResponses()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded []models.StoredResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if len(decoded) != 3 {
		t.Fatalf("Expected 3 responses, got %d", len(decoded))
	}
	if got := decoded[1].Answers["pain"].Choices; len(got) != 2 || got[0] != "slides" {
		t.Errorf("Multi answer lost in export: %v", got)
	}
	if !strings.Contains(buf.String(), "\n  {") {
		t.Error("Expected indented output")
	}
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("Expected empty array, got %q", buf.String())
	}
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, "xml", testQuestions(), nil); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)

	if got := ExportFilename(now, FormatCSV); got != "survey_data_20261019.csv" {
		t.Errorf("ExportFilename() = %q", got)
	}
	if got := ExportFilename(now, FormatJSON); got != "survey_data_20261019.json" {
		t.Errorf("ExportFilename() = %q", got)
	}
}
