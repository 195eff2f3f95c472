package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mindmatch/memoryledger/internal/api/request"
	"github.com/mindmatch/memoryledger/internal/api/response"
	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/services/ledger"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	ledger *ledger.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(led *ledger.Controller) *GameHandler {
	return &GameHandler{ledger: led}
}

// Record handles POST /api/v1/games
func (h *GameHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req request.RecordGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Identity == "" {
		WriteError(w, NewInvalidRequestError("identity is required"))
		return
	}
	difficulty, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.ledger.RecordGame(r.Context(), model.Identity(req.Identity), req.Won, difficulty, req.TimeSpent, req.DailyChallenge)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	rawID := mux.Vars(r)["game_id"]

	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		WriteError(w, NewInvalidRequestError("game_id must be a positive integer"))
		return
	}

	game, err := h.ledger.GetGame(r.Context(), model.GameID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}
