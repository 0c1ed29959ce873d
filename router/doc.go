// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Survey API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cat, cfg)

# Endpoints

Health and info:

	GET /health
	GET /                  - Title, icon and question count

Respondent flow (requires X-Session-ID):

	POST /sessions         - Start a session
	GET  /survey           - Current view
	POST /survey/answers   - Select an option
	POST /survey/previous  - Go back
	POST /survey/next      - Go forward, or submit on the last question
	POST /survey/submit    - Submit
	POST /survey/restart   - Start over after submitting

Admin (requires X-Admin-Password):

	POST /admin/login      - Check the password
	GET  /admin/report     - Totals and frequency tables
	GET  /admin/responses  - Every stored response
	GET  /admin/export     - CSV or JSON download

# Handler Initialization

The router builds the survey flow over the store and a session manager
whose sessions expire after cfg.SessionTTL of inactivity, then creates the
handlers with those dependencies.
*/
package router
