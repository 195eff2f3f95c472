package storage

import (
	"context"

	"github.com/mindmatch/memoryledger/internal/model"
)

// Store defines the interface for ledger persistence.
//
// Mutating calls are made only by the registry and ledger services, which
// serialize them behind a single writer lock. A whole state transition is
// committed in one call (SaveUser or CommitGame) so concurrent readers
// never observe a partially applied transition.
type Store interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User, isNew bool) error
	GetUser(ctx context.Context, id model.Identity) (*model.User, error)
	// ListUsers returns all users in registration order.
	ListUsers(ctx context.Context) ([]*model.User, error)
	TotalUsers(ctx context.Context) (uint64, error)

	// Game operations. CommitGame atomically persists the updated user
	// aggregates, appends the immutable result to the global and
	// per-player indexes, bumps the game counter, and, when daily is
	// non-nil, overwrites the player's record for that date key.
	CommitGame(ctx context.Context, user *model.User, game *model.GameResult, daily *model.DailyChallenge) error
	GetGame(ctx context.Context, id model.GameID) (*model.GameResult, error)
	// PlayerGames returns up to limit of the player's results starting at
	// offset, in recording order. Bounds checking is the caller's job.
	PlayerGames(ctx context.Context, id model.Identity, offset, limit uint64) ([]*model.GameResult, error)
	PlayerGameCount(ctx context.Context, id model.Identity) (uint64, error)
	TotalGames(ctx context.Context) (uint64, error)

	// Daily challenge operations
	GetDailyChallenge(ctx context.Context, id model.Identity, key model.DateKey) (*model.DailyChallenge, error)
}
