package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports/{sport}/games", handler.ListGamesBySport)
	mux.HandleFunc("GET /v1/sports/{sport}/movements", handler.ListSportMovements)
	mux.HandleFunc("GET /v1/sports/{sport}/player-stats", handler.ListPlayerStats)
	mux.HandleFunc("GET /v1/games/{gameID}/movement", handler.GetGameMovement)
	mux.HandleFunc("GET /v1/games/{gameID}/history", handler.GetGameHistory)
}

func registerIngestionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/ingestion/odds", handler.IngestOdds)
	mux.HandleFunc("POST /v1/ingestion/schedule", handler.SyncSchedule)
	mux.HandleFunc("PUT /v1/sports/{sport}/player-stats", handler.ReplacePlayerStats)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRefreshJob)))
}
