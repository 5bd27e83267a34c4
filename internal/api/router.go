// Package api serves the materialized classification outputs of one folder
// as a small read-only JSON API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the read-only endpoints.
func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)
	r.Get("/api/records", app.RecordsHandler)
	r.Get("/api/groups", app.GroupsHandler)
	r.Get("/api/activities", app.ActivitiesHandler)

	return r
}
