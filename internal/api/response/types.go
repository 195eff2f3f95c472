package response

import (
	"time"

	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/services/rank"
)

// User represents a registered player in API responses
type User struct {
	Identity    string    `json:"identity"`
	DisplayName string    `json:"display_name"`
	TotalPoints uint64    `json:"total_points"`
	GamesPlayed uint64    `json:"games_played"`
	GamesWon    uint64    `json:"games_won"`
	BestTime    uint64    `json:"best_time"`
	JoinedAt    time.Time `json:"joined_at"`
	LastGameAt  time.Time `json:"last_game_at,omitzero"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		Identity:    string(u.Identity),
		DisplayName: u.DisplayName,
		TotalPoints: u.TotalPoints,
		GamesPlayed: u.GamesPlayed,
		GamesWon:    u.GamesWon,
		BestTime:    u.BestTime,
		JoinedAt:    u.JoinedAt,
		LastGameAt:  u.LastGameAt,
	}
}

// Game represents a recorded game in API responses
type Game struct {
	ID             uint64    `json:"id"`
	Identity       string    `json:"identity"`
	Won            bool      `json:"won"`
	Difficulty     string    `json:"difficulty"`
	TimeSpent      uint64    `json:"time_spent"`
	Points         uint64    `json:"points"`
	DailyChallenge bool      `json:"daily_challenge"`
	CreatedAt      time.Time `json:"created_at"`
}

// GameFromModel converts a model.GameResult to a response Game
func GameFromModel(g *model.GameResult) Game {
	return Game{
		ID:             uint64(g.ID),
		Identity:       string(g.Player),
		Won:            g.Won,
		Difficulty:     g.Difficulty.String(),
		TimeSpent:      g.TimeSpent,
		Points:         g.Points,
		DailyChallenge: g.DailyChallenge,
		CreatedAt:      g.CreatedAt,
	}
}

// GameList is a paginated slice of a player's game history
type GameList struct {
	Games  []Game `json:"games"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// GameListFromModels converts a slice of game results to a GameList
func GameListFromModels(games []*model.GameResult, offset, limit uint64) GameList {
	out := GameList{
		Games:  make([]Game, 0, len(games)),
		Offset: offset,
		Limit:  limit,
	}
	for _, g := range games {
		out.Games = append(out.Games, GameFromModel(g))
	}
	return out
}

// LeaderboardEntry is one leaderboard row
type LeaderboardEntry struct {
	Rank        uint64 `json:"rank"`
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Points      uint64 `json:"points"`
}

// Leaderboard is the ordered top-N response
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromEntries converts rank entries, assigning each row the
// same rank the rank engine would report: 1 + the number of strictly
// higher scores. Tied scores share a rank.
func LeaderboardFromEntries(entries []rank.Entry) Leaderboard {
	out := Leaderboard{Entries: make([]LeaderboardEntry, 0, len(entries))}
	currentRank := uint64(1)
	var prevPoints uint64
	for i, e := range entries {
		if i > 0 && e.Points != prevPoints {
			currentRank = uint64(i) + 1
		}
		prevPoints = e.Points
		out.Entries = append(out.Entries, LeaderboardEntry{
			Rank:        currentRank,
			Identity:    string(e.Identity),
			DisplayName: e.DisplayName,
			Points:      e.Points,
		})
	}
	return out
}

// Rank is a single player's leaderboard position
type Rank struct {
	Identity string `json:"identity"`
	Rank     uint64 `json:"rank"`
}

// DailyStatus reports whether a player completed a daily challenge
type DailyStatus struct {
	Identity  string `json:"identity"`
	DateKey   uint64 `json:"date_key"`
	Completed bool   `json:"completed"`
}

// Stats is the global ledger counters response
type Stats struct {
	TotalUsers uint64 `json:"total_users"`
	TotalGames uint64 `json:"total_games"`
}
