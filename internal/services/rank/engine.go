// Package rank computes read-only leaderboard views over the registry.
package rank

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/storage"
)

// MaxLimit bounds a leaderboard request.
const MaxLimit = 100

// Entry is one leaderboard row.
type Entry struct {
	Identity    model.Identity
	DisplayName string
	Points      uint64
}

// Engine serves leaderboard and rank queries against the current
// registry snapshot.
type Engine struct {
	store storage.Store
}

// New creates a new rank engine
func New(store storage.Store) *Engine {
	return &Engine{store: store}
}

// Leaderboard returns the top min(limit, totalRegistered) identities by
// total points, descending. Ties keep the earlier-registered identity
// first.
//
// This is a stable insertion sort over the registration-order user list,
// bounded at limit entries: O(n*limit), not a full sort. The cost grows
// with the registered-user count, a scalability limit carried over from
// the reference contract.
func (e *Engine) Leaderboard(ctx context.Context, limit uint64) ([]Entry, error) {
	if limit == 0 || limit > MaxLimit {
		return nil, fmt.Errorf("limit must be 1-%d, got %d: %w", MaxLimit, limit, model.ErrInvalidInput)
	}

	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	top := make([]Entry, 0, limit)
	for _, user := range users {
		// Find the insertion point: after every entry with points >=
		// this user's. Earlier-registered users are inserted first, so
		// equal scores keep registration order.
		pos := len(top)
		for pos > 0 && top[pos-1].Points < user.TotalPoints {
			pos--
		}
		if pos >= int(limit) {
			continue
		}

		entry := Entry{
			Identity:    user.Identity,
			DisplayName: user.DisplayName,
			Points:      user.TotalPoints,
		}
		top = append(top, Entry{})
		copy(top[pos+1:], top[pos:])
		top[pos] = entry
		if len(top) > int(limit) {
			top = top[:limit]
		}
	}

	return top, nil
}

// UserRank returns the identity's 1-based dense rank: one plus the count
// of identities with strictly more points. Tied identities share a rank.
// Returns 0 for an unregistered identity.
func (e *Engine) UserRank(ctx context.Context, id model.Identity) (uint64, error) {
	user, err := e.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return 0, nil
		}
		return 0, err
	}

	users, err := e.store.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	var higher uint64
	for _, other := range users {
		if other.TotalPoints > user.TotalPoints {
			higher++
		}
	}
	return higher + 1, nil
}
