package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mindmatch/memoryledger/internal/api/handler"
	"github.com/mindmatch/memoryledger/internal/middleware"
	"github.com/mindmatch/memoryledger/internal/services/ledger"
	"github.com/mindmatch/memoryledger/internal/services/rank"
	"github.com/mindmatch/memoryledger/internal/services/registry"
	"github.com/mindmatch/memoryledger/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	RegistryService *registry.Service
	LedgerService   *ledger.Controller
	RankEngine      *rank.Engine
	Hub             *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.RegistryService, cfg.LedgerService, cfg.RankEngine)
	gameHandler := handler.NewGameHandler(cfg.LedgerService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.RankEngine, cfg.LedgerService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler))
	api.Use(middleware.RequestID())
	api.Use(middleware.Logging(cfg.Logger))
	api.Use(middleware.Metrics())

	// Player routes
	api.HandleFunc("/players", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/{identity}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{identity}/games", playerHandler.Games).Methods(http.MethodGet)
	api.HandleFunc("/players/{identity}/rank", playerHandler.Rank).Methods(http.MethodGet)
	api.HandleFunc("/players/{identity}/daily/{date_key}", playerHandler.Daily).Methods(http.MethodGet)

	// Game routes
	api.HandleFunc("/games", gameHandler.Record).Methods(http.MethodPost)
	api.HandleFunc("/games/{game_id}", gameHandler.Get).Methods(http.MethodGet)

	// Leaderboard routes
	api.HandleFunc("/leaderboard", leaderboardHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/stats", leaderboardHandler.Stats).Methods(http.MethodGet)

	// Fact stream
	api.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		sse.ServeSSE(w, r, cfg.Hub)
	}).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Prometheus scrape endpoint, outside the API middleware chain
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
