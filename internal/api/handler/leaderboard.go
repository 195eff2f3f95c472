package handler

import (
	"net/http"

	"github.com/mindmatch/memoryledger/internal/api/response"
	"github.com/mindmatch/memoryledger/internal/services/ledger"
	"github.com/mindmatch/memoryledger/internal/services/rank"
)

// DefaultLeaderboardSize is the leaderboard length when the request
// does not specify a limit.
const DefaultLeaderboardSize = 10

// LeaderboardHandler handles leaderboard and stats endpoints
type LeaderboardHandler struct {
	rank   *rank.Engine
	ledger *ledger.Controller
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(rnk *rank.Engine, led *ledger.Controller) *LeaderboardHandler {
	return &LeaderboardHandler{
		rank:   rnk,
		ledger: led,
	}
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := queryUint(r, "limit", DefaultLeaderboardSize)
	if err != nil {
		WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
		return
	}

	entries, err := h.rank.Leaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromEntries(entries))
}

// Stats handles GET /api/v1/stats
func (h *LeaderboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := h.ledger.TotalUsers(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	totalGames, err := h.ledger.TotalGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Stats{
		TotalUsers: totalUsers,
		TotalGames: totalGames,
	})
}
