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
	"github.com/mindmatch/memoryledger/internal/services/rank"
	"github.com/mindmatch/memoryledger/internal/services/registry"
)

// DefaultGamePageSize is the page size for game history when the
// request does not specify a limit.
const DefaultGamePageSize = 10

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	registry *registry.Service
	ledger   *ledger.Controller
	rank     *rank.Engine
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(reg *registry.Service, led *ledger.Controller, rnk *rank.Engine) *PlayerHandler {
	return &PlayerHandler{
		registry: reg,
		ledger:   led,
		rank:     rnk,
	}
}

// Register handles POST /api/v1/players
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	user, created, err := h.registry.Register(r.Context(), model.Identity(req.Identity), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(w, status, response.UserFromModel(user))
}

// Get handles GET /api/v1/players/{identity}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	user, err := h.registry.Get(r.Context(), model.Identity(identity))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UserFromModel(user))
}

// Games handles GET /api/v1/players/{identity}/games
func (h *PlayerHandler) Games(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	offset, err := queryUint(r, "offset", 0)
	if err != nil {
		WriteError(w, NewInvalidRequestError("offset must be a non-negative integer"))
		return
	}
	limit, err := queryUint(r, "limit", DefaultGamePageSize)
	if err != nil {
		WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
		return
	}

	games, err := h.ledger.UserGames(r.Context(), model.Identity(identity), offset, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameListFromModels(games, offset, limit))
}

// Rank handles GET /api/v1/players/{identity}/rank
func (h *PlayerHandler) Rank(w http.ResponseWriter, r *http.Request) {
	identity := mux.Vars(r)["identity"]

	position, err := h.rank.UserRank(r.Context(), model.Identity(identity))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Rank{
		Identity: identity,
		Rank:     position,
	})
}

// Daily handles GET /api/v1/players/{identity}/daily/{date_key}
func (h *PlayerHandler) Daily(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	identity := vars["identity"]

	dateKey, err := strconv.ParseUint(vars["date_key"], 10, 64)
	if err != nil {
		WriteError(w, NewInvalidRequestError("date_key must be a non-negative integer"))
		return
	}

	completed, err := h.ledger.IsDailyChallengeCompleted(r.Context(), model.Identity(identity), model.DateKey(dateKey))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DailyStatus{
		Identity:  identity,
		DateKey:   dateKey,
		Completed: completed,
	})
}

func queryUint(r *http.Request, name string, fallback uint64) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
