package model

import "time"

// Identity uniquely identifies one registered player. In the on-chain
// deployment this is the player's address; the ledger treats it as opaque.
type Identity string

// MaxDisplayNameLen is the upper bound on display name length in runes.
const MaxDisplayNameLen = 50

// User is a registered player's profile and aggregate stats.
// Aggregates are mutated only by the game ledger, never by callers.
type User struct {
	Identity    Identity
	DisplayName string
	TotalPoints uint64
	GamesPlayed uint64
	GamesWon    uint64
	// BestTime is the fastest winning completion in seconds.
	// Zero means no timed win recorded yet; once set it only decreases.
	BestTime   uint64
	JoinedAt   time.Time
	LastGameAt time.Time
}
