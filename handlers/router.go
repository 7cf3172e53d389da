package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"nfl-pickem-go/metrics"
	"nfl-pickem-go/middleware"
)

// Router groups the handlers and middleware the HTTP surface is built from
type Router struct {
	Games       *GameHandler
	Picks       *PickHandler
	Leaderboard *LeaderboardHandler
	Auth        *AuthHandler
	Health      *HealthHandler
	AuthMW      *middleware.AuthMiddleware
	Metrics     *metrics.Metrics
	MetricsHTTP http.Handler
	BehindProxy bool
}

// Build returns the configured mux. Admin routes are wrapped in RequireAdmin.
func (rt Router) Build() *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware(rt.BehindProxy))
	r.Use(middleware.RequestLogger(rt.Metrics))

	r.HandleFunc("/health", rt.Health.Health).Methods("GET")
	if rt.MetricsHTTP != nil {
		r.Handle("/metrics", rt.MetricsHTTP).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", rt.Auth.Login).Methods("POST")
	api.HandleFunc("/auth/logout", rt.Auth.Logout).Methods("POST")

	api.HandleFunc("/games", rt.Games.GetGames).Methods("GET")
	api.HandleFunc("/game-results/{week:[0-9]+}", rt.Games.GetGameResults).Methods("GET")

	api.HandleFunc("/picks", rt.Picks.GetPicks).Methods("GET")
	api.HandleFunc("/picks", rt.Picks.SubmitPick).Methods("POST")
	api.HandleFunc("/results", rt.Picks.GetResults).Methods("GET")
	api.HandleFunc("/starters", rt.Picks.GetStarters).Methods("GET")
	api.HandleFunc("/week/lock/{week:[0-9]+}", rt.Picks.GetWeekLock).Methods("GET")

	api.HandleFunc("/leaderboard", rt.Leaderboard.GetLeaderboard).Methods("GET")

	// Admin
	admin := func(h http.HandlerFunc) http.Handler { return rt.AuthMW.RequireAdmin(h) }
	api.Handle("/games/refresh", admin(rt.Games.RefreshGames)).Methods("POST")
	api.Handle("/game-results/refresh/{week:[0-9]+}", admin(rt.Games.RefreshGameResults)).Methods("POST")
	api.Handle("/results", admin(rt.Picks.SaveResult)).Methods("POST")
	api.Handle("/results/calculate", admin(rt.Picks.CalculateResults)).Methods("POST")

	return r
}
