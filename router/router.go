// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-survey/catalog"
	"github.com/danielhkuo/quickly-survey/cliparse"
	"github.com/danielhkuo/quickly-survey/handlers"
	"github.com/danielhkuo/quickly-survey/middleware"
	"github.com/danielhkuo/quickly-survey/session"
	"github.com/danielhkuo/quickly-survey/store"
	"github.com/danielhkuo/quickly-survey/survey"
)

func NewRouter(st store.Store, cat catalog.Catalog, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Survey state lives in memory per session; only submissions reach the store
	flow := survey.NewFlow(cat.Questions, st)
	sessions := session.NewManager(flow, cfg.SessionTTL)

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(sessions, flow, cat)
	adminHandler := handlers.NewAdminHandler(st, cat)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Root endpoint: survey title, icon and length
	mux.HandleFunc("GET /{$}", middleware.WithLogging(surveyHandler.Info))

	// Respondent flow (requires X-Session-ID after POST /sessions)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(surveyHandler.CreateSession))
	mux.HandleFunc("GET /survey", middleware.WithLogging(surveyHandler.GetSurvey))
	mux.HandleFunc("POST /survey/answers", middleware.WithLogging(surveyHandler.Answer))
	mux.HandleFunc("POST /survey/previous", middleware.WithLogging(surveyHandler.Previous))
	mux.HandleFunc("POST /survey/next", middleware.WithLogging(surveyHandler.Next))
	mux.HandleFunc("POST /survey/submit", middleware.WithLogging(surveyHandler.Submit))
	mux.HandleFunc("POST /survey/restart", middleware.WithLogging(surveyHandler.Restart))

	// Admin report (requires X-Admin-Password)
	mux.HandleFunc("POST /admin/login", middleware.WithLogging(adminHandler.Login))
	mux.HandleFunc("GET /admin/report", middleware.WithLogging(adminHandler.Report))
	mux.HandleFunc("GET /admin/responses", middleware.WithLogging(adminHandler.Responses))
	mux.HandleFunc("GET /admin/export", middleware.WithLogging(adminHandler.Export))

	return mux
}
