package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindmatch/memoryledger/internal/api"
	"github.com/mindmatch/memoryledger/internal/api/apierr"
	"github.com/mindmatch/memoryledger/internal/api/response"
	"github.com/mindmatch/memoryledger/internal/factory"
	"github.com/mindmatch/memoryledger/internal/services/datekey"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with a real clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		RegistryService: app.RegistryService,
		LedgerService:   app.LedgerService,
		RankEngine:      app.RankEngine,
		Hub:             app.Hub,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) register(t *testing.T, identity, displayName string) response.User {
	t.Helper()

	body := map[string]string{"identity": identity, "display_name": displayName}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)
	require.Contains(t, []int{http.StatusOK, http.StatusCreated}, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	return user
}

func (ts *testServer) recordGame(t *testing.T, identity string, won bool, difficulty string, timeSpent uint64, daily bool) response.Game {
	t.Helper()

	body := map[string]any{
		"identity":        identity,
		"won":             won,
		"difficulty":      difficulty,
		"time_spent":      timeSpent,
		"daily_challenge": daily,
	}
	rr := ts.request(http.MethodPost, "/api/v1/games", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	return game
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"identity": "0xa", "display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "0xa", user.Identity)
	assert.Equal(t, "Alice", user.DisplayName)
	assert.Zero(t, user.TotalPoints)
}

func TestRegisterPlayerAgainRenames(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")

	body := map[string]string{"identity": "0xa", "display_name": "Alicia"}
	rr := ts.request(http.MethodPost, "/api/v1/players", body)

	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "Alicia", user.DisplayName)
}

func TestRegisterPlayerValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing identity", map[string]string{"display_name": "Alice"}},
		{"empty display name", map[string]string{"identity": "0xa"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/v1/players", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, apierr.CodeInvalidInput, errorCode(t, rr))
		})
	}
}

func TestGetPlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")

	rr := ts.request(http.MethodGet, "/api/v1/players/0xa", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, "Alice", user.DisplayName)
}

func TestGetPlayerNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/players/0xmissing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeUserNotFound, errorCode(t, rr))
}

func TestRecordGame(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")

	game := ts.recordGame(t, "0xa", true, "hard", 30, true)
	assert.Equal(t, uint64(1), game.ID)
	assert.Equal(t, uint64(300), game.Points)
	assert.Equal(t, uint64(30), game.TimeSpent)
	assert.True(t, game.DailyChallenge)

	rr := ts.request(http.MethodGet, "/api/v1/players/0xa", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var user response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &user))
	assert.Equal(t, uint64(300), user.TotalPoints)
	assert.Equal(t, uint64(1), user.GamesWon)
	assert.Equal(t, uint64(30), user.BestTime)
}

func TestRecordGameUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{"identity": "0xmissing", "won": true, "difficulty": "easy"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeUserNotFound, errorCode(t, rr))
}

func TestRecordGameBadDifficulty(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")

	body := map[string]any{"identity": "0xa", "won": true, "difficulty": "nightmare"}
	rr := ts.request(http.MethodPost, "/api/v1/games", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidInput, errorCode(t, rr))
}

func TestGetGame(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")
	recorded := ts.recordGame(t, "0xa", false, "easy", 999, false)

	rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/games/%d", recorded.ID), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var game response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &game))
	assert.Equal(t, recorded.ID, game.ID)
	// Losses persist zero time regardless of the submitted value
	assert.Zero(t, game.TimeSpent)
	assert.Zero(t, game.Points)
}

func TestGetGameNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/games/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, errorCode(t, rr))
}

func TestPlayerGamesPagination(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")
	for i := 0; i < 3; i++ {
		ts.recordGame(t, "0xa", true, "easy", uint64(10+i), false)
	}

	rr := ts.request(http.MethodGet, "/api/v1/players/0xa/games?offset=1&limit=10", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var list response.GameList
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Games, 2)
	assert.Equal(t, uint64(1), list.Offset)

	// Offset past the recorded history is rejected
	rr = ts.request(http.MethodGet, "/api/v1/players/0xa/games?offset=5&limit=10", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeOutOfRange, errorCode(t, rr))
}

func TestLeaderboardAndRank(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")
	ts.register(t, "0xb", "Bob")
	ts.register(t, "0xc", "Carol")

	ts.recordGame(t, "0xa", true, "medium", 40, false) // 100
	ts.recordGame(t, "0xb", true, "hard", 50, false)   // 150
	ts.recordGame(t, "0xc", true, "medium", 45, false) // 100, ties Alice

	rr := ts.request(http.MethodGet, "/api/v1/leaderboard?limit=2", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var board response.Leaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "0xb", board.Entries[0].Identity)
	assert.Equal(t, uint64(1), board.Entries[0].Rank)
	assert.Equal(t, "0xa", board.Entries[1].Identity)
	assert.Equal(t, uint64(2), board.Entries[1].Rank)

	rr = ts.request(http.MethodGet, "/api/v1/players/0xc/rank", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var rank response.Rank
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rank))
	assert.Equal(t, uint64(2), rank.Rank)
}

func TestLeaderboardLimitValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")

	for _, limit := range []string{"0", "101"} {
		rr := ts.request(http.MethodGet, "/api/v1/leaderboard?limit="+limit, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, apierr.CodeInvalidInput, errorCode(t, rr))
	}
}

func TestDailyStatus(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")
	ts.recordGame(t, "0xa", true, "easy", 20, true)

	today := datekey.Encode(time.Now())
	rr := ts.request(http.MethodGet, fmt.Sprintf("/api/v1/players/0xa/daily/%d", today), nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var status response.DailyStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.True(t, status.Completed)
	assert.Equal(t, uint64(today), status.DateKey)

	// A stale key reads back as not completed
	rr = ts.request(http.MethodGet, "/api/v1/players/0xa/daily/19700101", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.False(t, status.Completed)
}

func TestStats(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "0xa", "Alice")
	ts.register(t, "0xb", "Bob")
	ts.recordGame(t, "0xa", true, "easy", 20, false)

	rr := ts.request(http.MethodGet, "/api/v1/stats", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.Stats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, uint64(2), stats.TotalUsers)
	assert.Equal(t, uint64(1), stats.TotalGames)
}

func TestMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidInput, errorCode(t, rr))
}
