package model

import "time"

// FactType identifies the type of an emitted fact.
type FactType string

const (
	FactUserRegistered          FactType = "user_registered"
	FactDisplayNameUpdated      FactType = "display_name_updated"
	FactGameCompleted           FactType = "game_completed"
	FactDailyChallengeCompleted FactType = "daily_challenge_completed"
)

// Fact is an immutable notification emitted alongside a committed state
// transition. Facts are published synchronously, in the same relative
// order as the transition steps that produced them.
type Fact struct {
	Type      FactType
	Timestamp time.Time
	Payload   any // Type-specific data
}

// UserRegisteredPayload contains data for user registered facts.
type UserRegisteredPayload struct {
	Identity    Identity
	DisplayName string
}

// DisplayNameUpdatedPayload contains data for display name updated facts.
type DisplayNameUpdatedPayload struct {
	Identity    Identity
	DisplayName string
}

// GameCompletedPayload contains data for game completed facts.
// TimeSpent carries the raw caller-supplied value, not the normalized
// value persisted in the GameResult.
type GameCompletedPayload struct {
	Identity   Identity
	GameID     GameID
	Won        bool
	Difficulty Difficulty
	TimeSpent  uint64
	Points     uint64
}

// DailyChallengeCompletedPayload contains data for daily challenge
// completed facts.
type DailyChallengeCompletedPayload struct {
	Identity   Identity
	DateKey    DateKey
	Difficulty Difficulty
	Points     uint64
}
