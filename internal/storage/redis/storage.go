package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Multi-key writes go through a transaction pipeline so a state
// transition lands atomically.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User, isNew bool) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.Identity), data, 0)
	if isNew {
		pipe.RPush(ctx, userOrderKey(), string(user.Identity))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.Identity) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.LRange(ctx, userOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = userKey(model.Identity(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // order entry with no user record
		}
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}

func (s *Storage) TotalUsers(ctx context.Context) (uint64, error) {
	n, err := s.client.LLen(ctx, userOrderKey()).Result()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// Game operations

func (s *Storage) CommitGame(ctx context.Context, user *model.User, game *model.GameResult, daily *model.DailyChallenge) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	gameData, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.Identity), userData, 0)
	pipe.Set(ctx, gameKey(game.ID), gameData, 0)
	pipe.RPush(ctx, playerGamesKey(game.Player), uint64(game.ID))
	// Single writer: the dense game ID doubles as the counter value.
	pipe.Set(ctx, totalGamesKey(), uint64(game.ID), 0)

	if daily != nil {
		dailyData, err := json.Marshal(daily)
		if err != nil {
			return err
		}
		pipe.Set(ctx, dailyKey(daily.Player, daily.DateKey), dailyData, 0)
	}

	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.GameResult, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.GameResult
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) PlayerGames(ctx context.Context, id model.Identity, offset, limit uint64) ([]*model.GameResult, error) {
	if limit == 0 {
		return nil, nil
	}

	start := int64(offset)
	stop := int64(offset+limit) - 1
	ids, err := s.client.LRange(ctx, playerGamesKey(id), start, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, raw := range ids {
		gameID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		keys[i] = gameKey(model.GameID(gameID))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	results := make([]*model.GameResult, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var game model.GameResult
		if err := json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, err
		}
		results = append(results, &game)
	}
	return results, nil
}

func (s *Storage) PlayerGameCount(ctx context.Context, id model.Identity) (uint64, error) {
	n, err := s.client.LLen(ctx, playerGamesKey(id)).Result()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func (s *Storage) TotalGames(ctx context.Context) (uint64, error) {
	raw, err := s.client.Get(ctx, totalGamesKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

// Daily challenge operations

func (s *Storage) GetDailyChallenge(ctx context.Context, id model.Identity, key model.DateKey) (*model.DailyChallenge, error) {
	data, err := s.client.Get(ctx, dailyKey(id, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var daily model.DailyChallenge
	if err := json.Unmarshal(data, &daily); err != nil {
		return nil, err
	}
	return &daily, nil
}
