// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Domain Types

  - Question: id, text, type (single or multi), ordered options
  - Answer: value recorded for one question, tagged by question type
  - Answers: question_id -> Answer
  - StoredResponse: one persisted submission

Answer encodes to JSON as a string for single-choice questions and as an
array of strings for multi-choice questions:

	{"role_focus": "教学任务为主", "teaching_pain": ["PPT课件制作/美化", "出试卷/登分"]}

Decoding accepts either shape and sets Type accordingly.

# Request Types

  - AnswerRequest: question_id, option
  - LoginRequest: password

# Response Types

  - AppInfoResponse: title, icon, question_count
  - SurveyView: phase, index, total, progress, question, answer, message
  - CreateSessionResponse: session_id, view
  - LoginResponse: authenticated
  - ReportSummary: totals and per-question frequency tables
  - ErrorResponse: error, message, details

# Constants

Question types:

	QuestionSingle = "single"
	QuestionMulti  = "multi"

Phases:

	PhaseAnswering = "answering"
	PhaseSubmitted = "submitted"
*/
package models
