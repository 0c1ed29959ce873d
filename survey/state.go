// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"fmt"
	"slices"

	"github.com/danielhkuo/quickly-survey/models"
)

// State is one respondent's progress through the questionnaire.
// Invariant: 0 <= index < len(questions), and answers only holds
// valid options of catalog questions.
type State struct {
	questions []models.Question
	index     int
	answers   models.Answers
	submitted bool
}

// NewState returns the initial state: first question, no answers
func NewState(questions []models.Question) *State {
	return &State{
		questions: questions,
		answers:   models.Answers{},
	}
}

func (s *State) CurrentIndex() int {
	return s.index
}

func (s *State) Current() models.Question {
	return s.questions[s.index]
}

func (s *State) Total() int {
	return len(s.questions)
}

func (s *State) IsLast() bool {
	return s.index == len(s.questions)-1
}

func (s *State) Submitted() bool {
	return s.submitted
}

// Answers returns a copy of the recorded answers
func (s *State) Answers() models.Answers {
	return s.answers.Clone()
}

// Answer returns the recorded answer for a question, if any
func (s *State) Answer(questionID string) (models.Answer, bool) {
	a, ok := s.answers[questionID]
	if !ok {
		return models.Answer{}, false
	}
	return a.Clone(), true
}

// SetAnswer records option for the question. Single-choice answers are
// overwritten; multi-choice options are toggled in or out of the selection.
func (s *State) SetAnswer(questionID, option string) error {
	i := slices.IndexFunc(s.questions, func(q models.Question) bool { return q.ID == questionID })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	q := s.questions[i]
	if !q.HasOption(option) {
		return fmt.Errorf("%w: %q", ErrInvalidOption, option)
	}

	if q.Type == models.QuestionSingle {
		s.answers[q.ID] = models.SingleAnswer(option)
		return nil
	}

	selected := slices.Clone(s.answers[q.ID].Choices)
	if pos := slices.Index(selected, option); pos >= 0 {
		selected = slices.Delete(selected, pos, pos+1)
	} else {
		selected = append(selected, option)
	}
	s.answers[q.ID] = models.MultiAnswer(selected...)
	return nil
}

// Advance moves to the next question, staying on the last one
func (s *State) Advance() {
	if s.index < len(s.questions)-1 {
		s.index++
	}
}

// Retreat moves to the previous question, staying on the first one
func (s *State) Retreat() {
	if s.index > 0 {
		s.index--
	}
}

func (s *State) MarkSubmitted() {
	s.submitted = true
}

// Reset returns the state to its initial values
func (s *State) Reset() {
	s.index = 0
	s.answers = models.Answers{}
	s.submitted = false
}
