// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/session"
	"github.com/danielhkuo/quickly-survey/survey"
)

// SessionHeader carries the respondent session id
const SessionHeader = "X-Session-ID"

// SubmittedMessage is shown once a response has been recorded
const SubmittedMessage = "✅ 提交成功，感谢您的填写！"

type SurveyHandler struct {
	sessions *session.Manager
	flow     *survey.Flow
	cat      catalog.Catalog
}

func NewSurveyHandler(sessions *session.Manager, flow *survey.Flow, cat catalog.Catalog) *SurveyHandler {
	return &SurveyHandler{sessions: sessions, flow: flow, cat: cat}
}

// Info handles GET /
func (h *SurveyHandler) Info(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.AppInfoResponse{
		Title:         h.cat.Settings.Title,
		Icon:          h.cat.Settings.Icon,
		QuestionCount: h.cat.Len(),
	})
}

// CreateSession handles POST /sessions
func (h *SurveyHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Create()

	var view models.SurveyView
	err := h.sessions.With(id, func(s *survey.State) error {
		view = h.view(s)
		return nil
	})
	if err != nil {
		slog.Error("failed to read new session", "session_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: id,
		View:      view,
	})
}

// GetSurvey handles GET /survey
func (h *SurveyHandler) GetSurvey(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *survey.State) error {
		return nil
	})
}

// Answer handles POST /survey/answers
func (h *SurveyHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req models.AnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	h.withSession(w, r, func(s *survey.State) error {
		return h.flow.Answer(s, req.QuestionID, req.Option)
	})
}

// Previous handles POST /survey/previous
func (h *SurveyHandler) Previous(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.flow.Previous)
}

// Next handles POST /survey/next. On the last question it submits.
func (h *SurveyHandler) Next(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *survey.State) error {
		return h.flow.Next(r.Context(), s)
	})
}

// Submit handles POST /survey/submit
func (h *SurveyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *survey.State) error {
		return h.flow.Submit(r.Context(), s)
	})
}

// Restart handles POST /survey/restart
func (h *SurveyHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.flow.Restart)
}

// withSession runs fn against the caller's session and writes the
// resulting view, or the error mapped to a status code
func (h *SurveyHandler) withSession(w http.ResponseWriter, r *http.Request, fn func(*survey.State) error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, SessionHeader+" header is required")
		return
	}

	var view models.SurveyView
	err := h.sessions.With(id, func(s *survey.State) error {
		if err := fn(s); err != nil {
			return err
		}
		view = h.view(s)
		return nil
	})
	if err != nil {
		writeFlowError(w, id, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

func (h *SurveyHandler) view(s *survey.State) models.SurveyView {
	total := s.Total()
	v := models.SurveyView{
		Title:  h.cat.Settings.Title,
		Icon:   h.cat.Settings.Icon,
		Phase:  survey.Phase(s),
		Index:  s.CurrentIndex(),
		Total:  total,
		IsLast: s.IsLast(),
	}

	if s.Submitted() {
		v.Progress = 1
		v.Message = SubmittedMessage
		return v
	}

	q := s.Current()
	v.Question = &q
	if total > 0 {
		v.Progress = float64(v.Index+1) / float64(total)
	}
	if a, ok := s.Answer(q.ID); ok {
		v.Answer = &a
	}
	return v
}

func writeFlowError(w http.ResponseWriter, sessionID string, err error) {
	var validationErr *survey.ValidationError
	var persistErr *survey.PersistError

	switch {
	case errors.Is(err, session.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	case errors.As(err, &validationErr):
		middleware.ValidationErrorResponse(w, validationErr.Error(), validationErr.Missing)
	case errors.Is(err, survey.ErrAnswerRequired):
		middleware.ValidationErrorResponse(w, err.Error(), nil)
	case errors.As(err, &persistErr):
		slog.Error("failed to save response", "session_id", sessionID, "error", persistErr.Err)
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "failed to save response, please try again")
	case errors.Is(err, survey.ErrAlreadySubmitted),
		errors.Is(err, survey.ErrNotSubmitted),
		errors.Is(err, survey.ErrNotLastQuestion):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, survey.ErrUnknownQuestion),
		errors.Is(err, survey.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("survey request failed", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
