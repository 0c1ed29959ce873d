// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Survey API.

# Handler Types

  - SurveyHandler: respondent sessions and the question-by-question flow
  - AdminHandler: password-gated report, raw responses and export

	surveyHandler := handlers.NewSurveyHandler(sessions, flow, cat)
	adminHandler := handlers.NewAdminHandler(store, cat)

# Survey Flow

A respondent starts a session and then sends the session id in the
X-Session-ID header:

	POST /sessions          → CreateSession (returns session_id and view)
	GET  /survey            → GetSurvey
	POST /survey/answers    → Answer (single overwrites, multi toggles)
	POST /survey/previous   → Previous
	POST /survey/next       → Next (submits on the last question)
	POST /survey/submit     → Submit
	POST /survey/restart    → Restart (only after submit)

Every successful call returns the current view. Flow errors map to status
codes:

	404  unknown or expired session
	400  malformed JSON, unknown question or invalid option
	409  answering after submit, restart before submit, submit off the last question
	422  unanswered single-choice question; submit lists them in details
	503  the store rejected the response; the session is unchanged

# Admin

	POST /admin/login       → Login
	GET  /admin/report      → Report
	GET  /admin/responses   → Responses
	GET  /admin/export      → Export (?format=csv|json)

Report endpoints require the X-Admin-Password header. An empty store
yields total 0 with a message; a store that cannot be read yields 500.
*/
package handlers
