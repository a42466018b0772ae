// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain of the
// preview server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"routegen/internal/handlers"
	"routegen/internal/middleware"
)

// ManifestPath serves the static paths of the current snapshot.
const ManifestPath = "/_manifest"

// New creates the configured Chi router. metricsHandler may be nil, in
// which case /metrics is not mounted.
func New(preview *handlers.Preview, metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}
	r.Get(ManifestPath, preview.Manifest)

	// Everything else is a page request resolved against the snapshot.
	r.Get("/*", preview.Page)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
