// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-survey/auth"
	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/models"
	"github.com/danielhkuo/quickly-survey/report"
	"github.com/danielhkuo/quickly-survey/store"
)

// AdminPasswordHeader carries the admin password on report requests
const AdminPasswordHeader = "X-Admin-Password"

type AdminHandler struct {
	store store.Store
	cat   catalog.Catalog
	now   func() time.Time
}

func NewAdminHandler(st store.Store, cat catalog.Catalog) *AdminHandler {
	return &AdminHandler{store: st, cat: cat, now: time.Now}
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := auth.ValidatePassword(h.cat.Settings.Password, req.Password); err != nil {
		slog.Warn("admin login failed", "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Authenticated: true})
}

// Report handles GET /admin/report
func (h *AdminHandler) Report(w http.ResponseWriter, r *http.Request) {
	responses, ok := h.load(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report.Summarize(h.cat.Questions, responses, h.now()))
}

// Responses handles GET /admin/responses
func (h *AdminHandler) Responses(w http.ResponseWriter, r *http.Request) {
	responses, ok := h.load(w, r)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, responses)
}

// Export handles GET /admin/export?format=csv|json
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = report.FormatCSV
	}
	if format != report.FormatCSV && format != report.FormatJSON {
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be csv or json")
		return
	}

	responses, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, format, h.cat.Questions, responses); err != nil {
		slog.Error("failed to build export", "format", format, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build export")
		return
	}

	filename := report.ExportFilename(h.now(), format)
	w.Header().Set("Content-Type", report.ContentType(format))
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write export", "error", err)
		return
	}

	slog.Info("responses exported",
		"format", format,
		"rows", len(responses),
		"size", humanize.Bytes(uint64(buf.Len())),
	)
}

// load checks the admin password and reads every stored response.
// It writes the error response itself and reports whether to continue.
func (h *AdminHandler) load(w http.ResponseWriter, r *http.Request) ([]models.StoredResponse, bool) {
	if !auth.CheckPassword(h.cat.Settings.Password, r.Header.Get(AdminPasswordHeader)) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, auth.ErrInvalidPassword.Error())
		return nil, false
	}

	responses, err := h.store.LoadAll(r.Context())
	if err != nil {
		slog.Error("failed to load responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "failed to load responses")
		return nil, false
	}

	return responses, true
}
