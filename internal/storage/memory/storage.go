package memory

import (
	"context"
	"sync"

	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It is the authoritative single owned ledger state: created at startup,
// mutated only through the operations below.
type Storage struct {
	mu sync.RWMutex

	users     map[model.Identity]model.User
	userOrder []model.Identity // registration order
	games     map[model.GameID]model.GameResult
	playerGames map[model.Identity][]model.GameID
	dailies   map[dailyKey]model.DailyChallenge

	totalUsers uint64
	totalGames uint64
}

type dailyKey struct {
	player  model.Identity
	dateKey model.DateKey
}

// New creates a new in-memory storage instance.
func New() *Storage {
	return &Storage{
		users:       make(map[model.Identity]model.User),
		games:       make(map[model.GameID]model.GameResult),
		playerGames: make(map[model.Identity][]model.GameID),
		dailies:     make(map[dailyKey]model.DailyChallenge),
	}
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User, isNew bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Identity] = *user
	if isNew {
		s.userOrder = append(s.userOrder, user.Identity)
		s.totalUsers++
	}
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.Identity) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		user := s.users[id]
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) TotalUsers(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalUsers, nil
}

// Game operations

func (s *Storage) CommitGame(ctx context.Context, user *model.User, game *model.GameResult, daily *model.DailyChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[user.Identity] = *user
	s.games[game.ID] = *game
	s.playerGames[game.Player] = append(s.playerGames[game.Player], game.ID)
	s.totalGames++

	if daily != nil {
		s.dailies[dailyKey{player: daily.Player, dateKey: daily.DateKey}] = *daily
	}

	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return &game, nil
}

func (s *Storage) PlayerGames(ctx context.Context, id model.Identity, offset, limit uint64) ([]*model.GameResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.playerGames[id]
	if offset > uint64(len(ids)) {
		return nil, nil
	}

	end := offset + limit
	if end > uint64(len(ids)) {
		end = uint64(len(ids))
	}

	results := make([]*model.GameResult, 0, end-offset)
	for _, gameID := range ids[offset:end] {
		game := s.games[gameID]
		results = append(results, &game)
	}
	return results, nil
}

func (s *Storage) PlayerGameCount(ctx context.Context, id model.Identity) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.playerGames[id])), nil
}

func (s *Storage) TotalGames(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalGames, nil
}

// Daily challenge operations

func (s *Storage) GetDailyChallenge(ctx context.Context, id model.Identity, key model.DateKey) (*model.DailyChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	daily, ok := s.dailies[dailyKey{player: id, dateKey: key}]
	if !ok {
		return nil, nil
	}
	return &daily, nil
}
