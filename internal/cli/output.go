package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case Rank:
		o.printRank(v)
	case DailyStatus:
		o.printDailyStatus(v)
	case Stats:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	Identity    string    `json:"identity"`
	DisplayName string    `json:"display_name"`
	TotalPoints uint64    `json:"total_points"`
	GamesPlayed uint64    `json:"games_played"`
	GamesWon    uint64    `json:"games_won"`
	BestTime    uint64    `json:"best_time"`
	JoinedAt    time.Time `json:"joined_at"`
	LastGameAt  time.Time `json:"last_game_at"`
}

// Game response type
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

// GameList response type
type GameList struct {
	Games  []Game `json:"games"`
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        uint64 `json:"rank"`
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Points      uint64 `json:"points"`
}

// Leaderboard response type
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// Rank response type
type Rank struct {
	Identity string `json:"identity"`
	Rank     uint64 `json:"rank"`
}

// DailyStatus response type
type DailyStatus struct {
	Identity  string `json:"identity"`
	DateKey   uint64 `json:"date_key"`
	Completed bool   `json:"completed"`
}

// Stats response type
type Stats struct {
	TotalUsers uint64 `json:"total_users"`
	TotalGames uint64 `json:"total_games"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("Player: %s (%s)\n", u.DisplayName, u.Identity)
	fmt.Printf("Points: %d\n", u.TotalPoints)
	fmt.Printf("Games: %d played, %d won\n", u.GamesPlayed, u.GamesWon)
	if u.BestTime > 0 {
		fmt.Printf("Best Time: %ds\n", u.BestTime)
	}
	fmt.Printf("Joined: %s\n", u.JoinedAt.Format(time.RFC3339))
	if !u.LastGameAt.IsZero() {
		fmt.Printf("Last Game: %s\n", u.LastGameAt.Format(time.RFC3339))
	}
}

func (o *Output) printGame(g Game) {
	outcome := "lost"
	if g.Won {
		outcome = "won"
	}
	daily := ""
	if g.DailyChallenge {
		daily = " [daily]"
	}
	fmt.Printf("Game #%d: %s %s (%s)%s\n", g.ID, g.Identity, outcome, g.Difficulty, daily)
	fmt.Printf("Points: %d\n", g.Points)
	if g.TimeSpent > 0 {
		fmt.Printf("Time: %ds\n", g.TimeSpent)
	}
	fmt.Printf("Recorded: %s\n", g.CreatedAt.Format(time.RFC3339))
}

func (o *Output) printGameList(l GameList) {
	fmt.Printf("Games (offset %d):\n", l.Offset)
	for _, g := range l.Games {
		outcome := "lost"
		if g.Won {
			outcome = "won"
		}
		daily := ""
		if g.DailyChallenge {
			daily = " [daily]"
		}
		fmt.Printf("  #%d: %s (%s) - %d pts%s\n", g.ID, outcome, g.Difficulty, g.Points, daily)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard:\n")
	for _, e := range l.Entries {
		fmt.Printf("  %d. %s (%s) - %d pts\n", e.Rank, e.DisplayName, e.Identity, e.Points)
	}
}

func (o *Output) printRank(r Rank) {
	if r.Rank == 0 {
		fmt.Printf("%s is not registered\n", r.Identity)
		return
	}
	fmt.Printf("%s is ranked #%d\n", r.Identity, r.Rank)
}

func (o *Output) printDailyStatus(d DailyStatus) {
	state := "not completed"
	if d.Completed {
		state = "completed"
	}
	fmt.Printf("Daily challenge %d for %s: %s\n", d.DateKey, d.Identity, state)
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Players: %d\n", s.TotalUsers)
	fmt.Printf("Games: %d\n", s.TotalGames)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
