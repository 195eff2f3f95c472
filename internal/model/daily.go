package model

import "time"

// DateKey is the integer day bucket produced by the date encoder,
// used to deduplicate daily-challenge completions.
type DateKey uint64

// DailyChallenge is a player's live completion record for one date key.
// A later completion of the same date key fully replaces the earlier one.
type DailyChallenge struct {
	Player      Identity
	DateKey     DateKey
	Difficulty  Difficulty
	Completed   bool
	Points      uint64
	CompletedAt time.Time
}
