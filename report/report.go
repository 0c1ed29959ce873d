// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-survey/models"
)

// EmptyMessage is shown when no response has been stored yet
const EmptyMessage = "no responses submitted yet"

// maxSingleTables caps how many single-choice questions get a frequency table
const maxSingleTables = 3

// Summarize builds the admin overview. responses must be most recent first,
// as returned by store.LoadAll.
func Summarize(questions []models.Question, responses []models.StoredResponse, now time.Time) models.ReportSummary {
	summary := models.ReportSummary{
		Total:             len(responses),
		SingleFrequencies: []models.QuestionFrequency{},
		MultiFrequencies:  []models.QuestionFrequency{},
	}

	if len(responses) == 0 {
		summary.Message = EmptyMessage
		return summary
	}

	latest := responses[0]
	summary.LatestSubmitTime = truncateToMinute(latest.SubmitTime)
	if t, err := time.ParseInLocation(models.SubmitTimeLayout, latest.SubmitTime, now.Location()); err == nil {
		summary.LatestAge = humanize.RelTime(t, now, "ago", "from now")
	}

	singles := 0
	for _, q := range questions {
		switch q.Type {
		case models.QuestionSingle:
			if singles == maxSingleTables {
				continue
			}
			singles++
			summary.SingleFrequencies = append(summary.SingleFrequencies, frequency(q, responses))
		case models.QuestionMulti:
			summary.MultiFrequencies = append(summary.MultiFrequencies, frequency(q, responses))
		}
	}

	return summary
}

// frequency counts every value recorded for q. Values outside the current
// options are counted too so that older rows stay visible.
func frequency(q models.Question, responses []models.StoredResponse) models.QuestionFrequency {
	counts := map[string]int{}
	for _, r := range responses {
		for _, v := range r.Answers[q.ID].Values() {
			if v == "" {
				continue
			}
			counts[v]++
		}
	}

	values := make([]models.ValueCount, 0, len(counts))
	for v, n := range counts {
		values = append(values, models.ValueCount{Value: v, Count: n})
	}
	slices.SortFunc(values, func(a, b models.ValueCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})

	return models.QuestionFrequency{
		QuestionID: q.ID,
		Text:       q.Text,
		Type:       q.Type,
		Counts:     values,
	}
}

// truncateToMinute turns "YYYY-MM-DD HH:MM:SS" into "YYYY-MM-DD HH:MM"
func truncateToMinute(submitTime string) string {
	const minuteLen = len("2006-01-02 15:04")
	if len(submitTime) <= minuteLen {
		return submitTime
	}
	return submitTime[:minuteLen]
}
