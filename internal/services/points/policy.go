// Package points implements the points policy: a pure mapping from game
// outcome to the points awarded.
package points

import "github.com/mindmatch/memoryledger/internal/model"

// Base rewards per difficulty.
const (
	BaseEasy   uint64 = 50
	BaseMedium uint64 = 100
	BaseHard   uint64 = 150
)

// DailyMultiplier is applied to the base reward when the game was a
// daily challenge.
const DailyMultiplier uint64 = 2

// Base returns the base reward for a won game at the given difficulty.
// Unknown difficulties award nothing; validation happens upstream.
func Base(d model.Difficulty) uint64 {
	switch d {
	case model.DifficultyEasy:
		return BaseEasy
	case model.DifficultyMedium:
		return BaseMedium
	case model.DifficultyHard:
		return BaseHard
	default:
		return 0
	}
}

// Compute returns the points awarded for a completed game.
// A loss always awards zero.
func Compute(d model.Difficulty, won bool, isDailyChallenge bool) uint64 {
	if !won {
		return 0
	}
	reward := Base(d)
	if isDailyChallenge {
		reward *= DailyMultiplier
	}
	return reward
}
