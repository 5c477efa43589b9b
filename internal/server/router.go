package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lockreap/lockreapd/internal/api"
	"github.com/lockreap/lockreapd/internal/core"
	"github.com/lockreap/lockreapd/internal/reaper"
)

// NewRouter assembles the admin HTTP surface.
func NewRouter(store core.Store, orch *reaper.Orchestrator, keys core.Keys) http.Handler {
	h := api.NewHandler(store, orch, keys)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(api.Headers)
	r.Use(api.RequestLogger)
	r.Use(api.LimitBody)
	r.Use(api.ValidateContentType)

	r.Handle("/metrics", promhttp.Handler())
	r.Route("/v1", h.Register)

	return r
}
