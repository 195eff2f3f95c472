package redis

import (
	"fmt"

	"github.com/mindmatch/memoryledger/internal/model"
)

// Key prefix for all ledger data
const keyPrefix = "mmledger"

// Key generation functions for each entity type

// userKey returns the Redis key for a User
func userKey(id model.Identity) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// userOrderKey returns the Redis key for the registration-order LIST of identities
func userOrderKey() string {
	return fmt.Sprintf("%s:idx:user_order", keyPrefix)
}

// gameKey returns the Redis key for a GameResult
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%d", keyPrefix, id)
}

// playerGamesKey returns the Redis key for a player's ordered LIST of game IDs
func playerGamesKey(id model.Identity) string {
	return fmt.Sprintf("%s:idx:player_games:%s", keyPrefix, id)
}

// dailyKey returns the Redis key for a player's daily challenge record.
// Flat composite key: one record per (identity, date key) pair.
func dailyKey(id model.Identity, key model.DateKey) string {
	return fmt.Sprintf("%s:daily:%s:%d", keyPrefix, id, key)
}

// totalGamesKey returns the Redis key for the global game counter
func totalGamesKey() string {
	return fmt.Sprintf("%s:counter:games", keyPrefix)
}
