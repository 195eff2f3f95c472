// Package factory wires the application's services together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/mindmatch/memoryledger/internal/dependencies/clock"
	"github.com/mindmatch/memoryledger/internal/facts"
	"github.com/mindmatch/memoryledger/internal/services/ledger"
	"github.com/mindmatch/memoryledger/internal/services/rank"
	"github.com/mindmatch/memoryledger/internal/services/registry"
	"github.com/mindmatch/memoryledger/internal/sse"
	"github.com/mindmatch/memoryledger/internal/storage"
	"github.com/mindmatch/memoryledger/internal/storage/memory"
	redisstorage "github.com/mindmatch/memoryledger/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Store

	// External dependencies
	Clock clock.Clock

	// Fact fan-out
	Bus *facts.Bus
	Hub *sse.Hub

	// Services
	RegistryService *registry.Service
	LedgerService   *ledger.Controller
	RankEngine      *rank.Engine
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Store
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, clk clock.Clock, logger *slog.Logger) *App {
	bus := facts.NewBus()
	hub := sse.NewHub(logger)
	go hub.Run()
	bus.Subscribe(sse.NewBroadcaster(hub, logger))

	// All state transitions go through one writer lock, shared by the
	// registry and the ledger.
	writeMu := &sync.Mutex{}

	registryService := registry.New(store, clk, bus, writeMu, logger)
	ledgerService := ledger.NewController(store, clk, bus, writeMu, logger)
	rankEngine := rank.New(store)

	return &App{
		Storage:         store,
		Clock:           clk,
		Bus:             bus,
		Hub:             hub,
		RegistryService: registryService,
		LedgerService:   ledgerService,
		RankEngine:      rankEngine,
	}
}
