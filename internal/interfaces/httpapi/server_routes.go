package httpapi

import (
	"net/http"

	"golang.org/x/time/rate"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, docs *apiDocs) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if docs == nil {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", docs.serveSpec)
	mux.HandleFunc("GET /docs", docs.serveUI)
}

func registerScheduleRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("POST /v1/gameweeks", handler.CreateGameweek)
	mux.HandleFunc("GET /v1/gameweeks/{id}", handler.GetGameweek)
	mux.HandleFunc("PUT /v1/gameweeks/{id}", handler.UpdateGameweek)
	mux.HandleFunc("DELETE /v1/gameweeks/{id}", handler.DeleteGameweek)

	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{id}", handler.GetTeam)
	mux.HandleFunc("PUT /v1/teams/{id}", handler.UpdateTeam)

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{id}", handler.GetMatch)
	mux.HandleFunc("PATCH /v1/matches/{id}", handler.UpdateMatch)
}

func registerPlayerStatsRoutes(mux *http.ServeMux, handler *Handler, importLimiter *rate.Limiter) {
	mux.HandleFunc("GET /v1/player-stats", handler.ListPlayerStats)
	mux.Handle("POST /v1/player-stats/import", RateLimit(importLimiter, http.HandlerFunc(handler.ImportPlayerStats)))
}
