// Package ledger records completed games and maintains the points
// economy. It is the only component that mutates user aggregates.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mindmatch/memoryledger/internal/dependencies/clock"
	"github.com/mindmatch/memoryledger/internal/facts"
	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/observability"
	"github.com/mindmatch/memoryledger/internal/services/datekey"
	"github.com/mindmatch/memoryledger/internal/services/points"
	"github.com/mindmatch/memoryledger/internal/storage"
)

// Controller applies game-completion transitions to the ledger state.
type Controller struct {
	store  storage.Store
	clock  clock.Clock
	bus    *facts.Bus
	logger *slog.Logger

	// writeMu serializes every ledger mutation; shared with the registry.
	writeMu *sync.Mutex
}

// NewController creates a new ledger controller
func NewController(store storage.Store, clk clock.Clock, bus *facts.Bus, writeMu *sync.Mutex, logger *slog.Logger) *Controller {
	return &Controller{
		store:   store,
		clock:   clk,
		bus:     bus,
		writeMu: writeMu,
		logger:  logger,
	}
}

// RecordGame records one completed game for a registered identity and
// returns the assigned game ID and points awarded.
//
// The whole transition commits in a single storage call; a failed
// precondition aborts before any field is written. timeSpent is the raw
// elapsed seconds reported by the caller; it is persisted as zero when
// the game was lost, and the GameCompleted fact carries the raw value.
func (c *Controller) RecordGame(ctx context.Context, id model.Identity, won bool, difficulty model.Difficulty, timeSpent uint64, isDailyChallenge bool) (*model.GameResult, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	user, err := c.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("difficulty %d: %w", int(difficulty), model.ErrInvalidInput)
	}

	now := c.clock.Now()

	total, err := c.store.TotalGames(ctx)
	if err != nil {
		return nil, err
	}
	gameID := model.GameID(total + 1)

	awarded := points.Compute(difficulty, won, isDailyChallenge)

	user.GamesPlayed++
	user.LastGameAt = now
	if won {
		user.GamesWon++
		user.TotalPoints += awarded
		if timeSpent > 0 && (user.BestTime == 0 || timeSpent < user.BestTime) {
			user.BestTime = timeSpent
		}
	}

	// A loss never records elapsed time.
	recordedTime := timeSpent
	if !won {
		recordedTime = 0
	}

	game := &model.GameResult{
		ID:             gameID,
		Player:         id,
		Won:            won,
		Difficulty:     difficulty,
		TimeSpent:      recordedTime,
		Points:         awarded,
		CreatedAt:      now,
		DailyChallenge: isDailyChallenge,
	}

	var daily *model.DailyChallenge
	if won && isDailyChallenge {
		daily = &model.DailyChallenge{
			Player:      id,
			DateKey:     datekey.Encode(now),
			Difficulty:  difficulty,
			Completed:   true,
			Points:      awarded,
			CompletedAt: now,
		}
	}

	if err := c.store.CommitGame(ctx, user, game, daily); err != nil {
		c.logger.Error("failed to commit game",
			slog.Uint64("game_id", uint64(gameID)),
			slog.String("identity", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	outcome := "loss"
	if won {
		outcome = "win"
	}
	observability.GamesRecorded.WithLabelValues(difficulty.String(), outcome).Inc()
	observability.PointsAwarded.Add(float64(awarded))

	// Facts go out after the commit, in transition-step order.
	if daily != nil {
		observability.DailyChallengesCompleted.WithLabelValues(difficulty.String()).Inc()
		c.bus.Publish(model.FactDailyChallengeCompleted, now, model.DailyChallengeCompletedPayload{
			Identity:   id,
			DateKey:    daily.DateKey,
			Difficulty: difficulty,
			Points:     awarded,
		})
	}
	c.bus.Publish(model.FactGameCompleted, now, model.GameCompletedPayload{
		Identity:   id,
		GameID:     gameID,
		Won:        won,
		Difficulty: difficulty,
		TimeSpent:  timeSpent,
		Points:     awarded,
	})

	c.logger.Info("game recorded",
		slog.Uint64("game_id", uint64(gameID)),
		slog.String("identity", string(id)),
		slog.Bool("won", won),
		slog.String("difficulty", difficulty.String()),
		slog.Uint64("points", awarded),
		slog.Bool("daily_challenge", isDailyChallenge),
	)

	return game, nil
}

// GetGame retrieves a single recorded game by ID
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.GameResult, error) {
	return c.store.GetGame(ctx, id)
}

// UserGames returns up to limit of the identity's recorded games
// starting at offset, in recording order. The offset must lie within the
// identity's history; a limit extending past the end silently truncates.
func (c *Controller) UserGames(ctx context.Context, id model.Identity, offset, limit uint64) ([]*model.GameResult, error) {
	count, err := c.store.PlayerGameCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if offset >= count {
		return nil, fmt.Errorf("offset %d beyond %d recorded games: %w",
			offset, count, model.ErrOutOfRange)
	}

	return c.store.PlayerGames(ctx, id, offset, limit)
}

// IsDailyChallengeCompleted reports whether the identity has a completed
// daily challenge for the given date key.
func (c *Controller) IsDailyChallengeCompleted(ctx context.Context, id model.Identity, key model.DateKey) (bool, error) {
	daily, err := c.store.GetDailyChallenge(ctx, id, key)
	if err != nil {
		return false, err
	}
	return daily != nil && daily.Completed, nil
}

// TotalUsers returns the number of registered identities
func (c *Controller) TotalUsers(ctx context.Context) (uint64, error) {
	return c.store.TotalUsers(ctx)
}

// TotalGames returns the number of recorded games
func (c *Controller) TotalGames(ctx context.Context) (uint64, error) {
	return c.store.TotalGames(ctx)
}
