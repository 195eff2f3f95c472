package model

import (
	"fmt"
	"time"
)

// GameID is the globally unique, densely assigned sequence number of a
// recorded game. The first recorded game has ID 1.
type GameID uint64

// Difficulty of a memory-match game.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Valid reports whether d is one of the three defined difficulties.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty converts a difficulty name to its enum value.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return 0, fmt.Errorf("unknown difficulty %q: %w", s, ErrInvalidInput)
	}
}

// GameResult is the immutable record of one completed game.
// TimeSpent is always zero for a loss, regardless of the raw input.
type GameResult struct {
	ID             GameID
	Player         Identity
	Won            bool
	Difficulty     Difficulty
	TimeSpent      uint64
	Points         uint64
	CreatedAt      time.Time
	DailyChallenge bool
}
