// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import "github.com/danielhkuo/quickly-survey/models"

// CanAdvance is the navigation gate: only an unanswered single-choice
// question blocks. Multi-choice questions never block, even when empty.
func CanAdvance(q models.Question, answers models.Answers) bool {
	if q.Type != models.QuestionSingle {
		return true
	}
	a, ok := answers[q.ID]
	return ok && a.Choice != ""
}

// CanSubmit is the submission gate. It returns the texts of every
// unanswered single-choice question.
func CanSubmit(questions []models.Question, answers models.Answers) (bool, []string) {
	var missing []string
	for _, q := range questions {
		if !CanAdvance(q, answers) {
			missing = append(missing, q.Text)
		}
	}
	return len(missing) == 0, missing
}
