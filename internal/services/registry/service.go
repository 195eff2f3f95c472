// Package registry manages player profiles keyed by identity.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/mindmatch/memoryledger/internal/dependencies/clock"
	"github.com/mindmatch/memoryledger/internal/facts"
	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/observability"
	"github.com/mindmatch/memoryledger/internal/storage"
)

// Service handles user registration and profile reads. Aggregate stats
// on the profile are mutated only by the game ledger.
type Service struct {
	store  storage.Store
	clock  clock.Clock
	bus    *facts.Bus
	logger *slog.Logger

	// writeMu serializes every ledger mutation; shared with the game
	// ledger so register/recordGame transitions never interleave.
	writeMu *sync.Mutex
}

// New creates a new registry service
func New(store storage.Store, clk clock.Clock, bus *facts.Bus, writeMu *sync.Mutex, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		clock:   clk,
		bus:     bus,
		writeMu: writeMu,
		logger:  logger,
	}
}

// Register creates a profile for a new identity, or renames an existing
// one. Returns the stored user and whether a new identity was created.
func (s *Service) Register(ctx context.Context, id model.Identity, displayName string) (*model.User, bool, error) {
	if id == "" {
		return nil, false, fmt.Errorf("identity is required: %w", model.ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(displayName); n == 0 || n > model.MaxDisplayNameLen {
		return nil, false, fmt.Errorf("display name must be 1-%d characters: %w",
			model.MaxDisplayNameLen, model.ErrInvalidInput)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	now := s.clock.Now()

	existing, err := s.store.GetUser(ctx, id)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return nil, false, err
	}

	if existing != nil {
		// Re-registration only renames; aggregates and JoinedAt stay.
		existing.DisplayName = displayName
		if err := s.store.SaveUser(ctx, existing, false); err != nil {
			return nil, false, err
		}

		observability.DisplayNameUpdates.Inc()
		s.bus.Publish(model.FactDisplayNameUpdated, now, model.DisplayNameUpdatedPayload{
			Identity:    id,
			DisplayName: displayName,
		})
		s.logger.Info("display name updated",
			slog.String("identity", string(id)),
			slog.String("display_name", displayName),
		)
		return existing, false, nil
	}

	user := &model.User{
		Identity:    id,
		DisplayName: displayName,
		JoinedAt:    now,
	}
	if err := s.store.SaveUser(ctx, user, true); err != nil {
		return nil, false, err
	}

	observability.UsersRegistered.Inc()
	s.bus.Publish(model.FactUserRegistered, now, model.UserRegisteredPayload{
		Identity:    id,
		DisplayName: displayName,
	})
	s.logger.Info("user registered",
		slog.String("identity", string(id)),
		slog.String("display_name", displayName),
	)

	return user, true, nil
}

// Get retrieves a user profile by identity
func (s *Service) Get(ctx context.Context, id model.Identity) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}
