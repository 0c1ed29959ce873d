package models

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"time"
)

// Question types
type QuestionType string

const (
	QuestionSingle QuestionType = "single"
	QuestionMulti  QuestionType = "multi"
)

// Survey phases
const (
	PhaseAnswering = "answering"
	PhaseSubmitted = "submitted"
)

// MultiSeparator joins multi-choice selections in flat exports
const MultiSeparator = "; "

// SubmitTimeLayout is the layout of StoredResponse.SubmitTime
const SubmitTimeLayout = "2006-01-02 15:04:05"

var ErrInvalidAnswer = errors.New("answer must be a string or a list of strings")

// Domain types

type Question struct {
	ID      string       `json:"id" yaml:"id"`
	Text    string       `json:"text" yaml:"text"`
	Type    QuestionType `json:"type" yaml:"type"`
	Options []string     `json:"options" yaml:"options"`
}

// HasOption reports whether opt is one of the question's options
func (q Question) HasOption(opt string) bool {
	return slices.Contains(q.Options, opt)
}

// Answer holds the value recorded for one question. Type selects which
// field is meaningful: Choice for single, Choices for multi.
type Answer struct {
	Type    QuestionType
	Choice  string
	Choices []string
}

func SingleAnswer(choice string) Answer {
	return Answer{Type: QuestionSingle, Choice: choice}
}

func MultiAnswer(choices ...string) Answer {
	if choices == nil {
		choices = []string{}
	}
	return Answer{Type: QuestionMulti, Choices: choices}
}

// String flattens the answer for delimited-text output
func (a Answer) String() string {
	if a.Type == QuestionMulti {
		return strings.Join(a.Choices, MultiSeparator)
	}
	return a.Choice
}

// Values returns the selected options as a list regardless of type
func (a Answer) Values() []string {
	if a.Type == QuestionMulti {
		return a.Choices
	}
	if a.Choice == "" {
		return nil
	}
	return []string{a.Choice}
}

func (a Answer) Clone() Answer {
	if a.Type == QuestionMulti {
		return MultiAnswer(slices.Clone(a.Choices)...)
	}
	return a
}

// MarshalJSON encodes single answers as a string and multi answers as an array
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Type == QuestionMulti {
		choices := a.Choices
		if choices == nil {
			choices = []string{}
		}
		return json.Marshal(choices)
	}
	return json.Marshal(a.Choice)
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var choice string
	if err := json.Unmarshal(data, &choice); err == nil {
		*a = SingleAnswer(choice)
		return nil
	}
	var choices []string
	if err := json.Unmarshal(data, &choices); err != nil {
		return ErrInvalidAnswer
	}
	*a = MultiAnswer(choices...)
	return nil
}

// question_id -> answer
type Answers map[string]Answer

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for id, ans := range a {
		out[id] = ans.Clone()
	}
	return out
}

type StoredResponse struct {
	ID         int64     `json:"id"`
	SubmitTime string    `json:"submit_time"`
	Answers    Answers   `json:"answers"`
	CreatedAt  time.Time `json:"created_at"`
}

// Request types

type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Option     string `json:"option"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

// Response types

type AppInfoResponse struct {
	Title         string `json:"title"`
	Icon          string `json:"icon"`
	QuestionCount int    `json:"question_count"`
}

// SurveyView is everything a front end needs to render the current step
type SurveyView struct {
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	Phase    string    `json:"phase"`
	Index    int       `json:"index"`
	Total    int       `json:"total"`
	Progress float64   `json:"progress"`
	IsLast   bool      `json:"is_last"`
	Question *Question `json:"question,omitempty"`
	Answer   *Answer   `json:"answer,omitempty"`
	Message  string    `json:"message,omitempty"`
}

type CreateSessionResponse struct {
	SessionID string     `json:"session_id"`
	View      SurveyView `json:"view"`
}

type LoginResponse struct {
	Authenticated bool `json:"authenticated"`
}

// Report types

type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type QuestionFrequency struct {
	QuestionID string       `json:"question_id"`
	Text       string       `json:"text"`
	Type       QuestionType `json:"type"`
	Counts     []ValueCount `json:"counts"`
}

type ReportSummary struct {
	Total             int                 `json:"total"`
	LatestSubmitTime  string              `json:"latest_submit_time,omitempty"`
	LatestAge         string              `json:"latest_age,omitempty"`
	SingleFrequencies []QuestionFrequency `json:"single_frequencies"`
	MultiFrequencies  []QuestionFrequency `json:"multi_frequencies"`
	Message           string              `json:"message,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
}
