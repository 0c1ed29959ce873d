// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package survey holds one respondent's progress and the rules for moving
through the questions.

State tracks the current question, the answers so far and whether the
response was submitted. Flow applies the navigation rules on top of it:

  - Next is refused on an unanswered single-choice question
  - Next on the last question submits
  - Submit requires every single-choice question to be answered
  - a failed store write leaves the state unsubmitted
  - Restart is only allowed after a submission

Multi-choice questions may be left empty.
*/
package survey
