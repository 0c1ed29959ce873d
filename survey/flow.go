// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/danielhkuo/quickly-survey/models"
)

var (
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidOption    = errors.New("option is not valid for this question")
	ErrAnswerRequired   = errors.New("please select an answer")
	ErrNotLastQuestion  = errors.New("submit is only available on the last question")
	ErrAlreadySubmitted = errors.New("survey already submitted")
	ErrNotSubmitted     = errors.New("survey has not been submitted")
)

// ValidationError is returned when single-choice questions are unanswered
// at submission time. Error() stays generic; Missing lists the questions.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "please answer all questions"
}

// PersistError wraps a store failure during submission. The state is left
// unsubmitted so the respondent can try again.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "failed to save response: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Recorder persists finished submissions
type Recorder interface {
	Append(ctx context.Context, submitTime string, answers models.Answers) error
}

// Flow drives a State through Answering -> Submitted -> (restart) Answering
type Flow struct {
	questions []models.Question
	recorder  Recorder
	now       func() time.Time
}

func NewFlow(questions []models.Question, recorder Recorder) *Flow {
	return &Flow{questions: questions, recorder: recorder, now: time.Now}
}

// WithClock replaces the submission clock
func (f *Flow) WithClock(now func() time.Time) *Flow {
	f.now = now
	return f
}

func (f *Flow) Questions() []models.Question {
	return f.questions
}

// NewState returns a fresh state for this flow's questions
func (f *Flow) NewState() *State {
	return NewState(f.questions)
}

// Answer records a selection for the given question
func (f *Flow) Answer(s *State, questionID, option string) error {
	if s.Submitted() {
		return ErrAlreadySubmitted
	}
	return s.SetAnswer(questionID, option)
}

// Previous moves back one question
func (f *Flow) Previous(s *State) error {
	if s.Submitted() {
		return ErrAlreadySubmitted
	}
	s.Retreat()
	return nil
}

// Next moves forward one question, or submits when on the last one
func (f *Flow) Next(ctx context.Context, s *State) error {
	if s.Submitted() {
		return ErrAlreadySubmitted
	}
	if s.IsLast() {
		return f.Submit(ctx, s)
	}
	if !CanAdvance(s.Current(), s.answers) {
		return ErrAnswerRequired
	}
	s.Advance()
	return nil
}

// Submit validates every question, stamps the submission time and
// appends the answers to the recorder.
func (f *Flow) Submit(ctx context.Context, s *State) error {
	if s.Submitted() {
		return ErrAlreadySubmitted
	}
	if !s.IsLast() {
		return ErrNotLastQuestion
	}

	if ok, missing := CanSubmit(f.questions, s.answers); !ok {
		return &ValidationError{Missing: missing}
	}

	submitTime := f.now().Format(models.SubmitTimeLayout)
	record := f.Record(s)

	if err := f.recorder.Append(ctx, submitTime, record); err != nil {
		return &PersistError{Err: err}
	}

	s.MarkSubmitted()
	slog.Info("response submitted", "submit_time", submitTime, "answers", len(record))
	return nil
}

// Record shapes the state's answers for storage: every question id is
// present, with unanswered multi-choice questions as empty lists.
func (f *Flow) Record(s *State) models.Answers {
	record := make(models.Answers, len(f.questions))
	for _, q := range f.questions {
		a, ok := s.answers[q.ID]
		switch {
		case ok:
			record[q.ID] = a.Clone()
		case q.Type == models.QuestionMulti:
			record[q.ID] = models.MultiAnswer()
		default:
			record[q.ID] = models.SingleAnswer("")
		}
	}
	return record
}

// Restart resets a submitted state for a new response
func (f *Flow) Restart(s *State) error {
	if !s.Submitted() {
		return ErrNotSubmitted
	}
	s.Reset()
	return nil
}

// Phase reports the state machine phase of s
func Phase(s *State) string {
	if s.Submitted() {
		return models.PhaseSubmitted
	}
	return models.PhaseAnswering
}
