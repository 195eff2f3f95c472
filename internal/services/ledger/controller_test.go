package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mindmatch/memoryledger/internal/dependencies/mocks"
	"github.com/mindmatch/memoryledger/internal/facts"
	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/services/datekey"
	"github.com/mindmatch/memoryledger/internal/services/registry"
	"github.com/mindmatch/memoryledger/internal/storage/memory"
	"github.com/mindmatch/memoryledger/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	controller *Controller
	registry   *registry.Service
	storage    *memory.Storage
	clock      *mocks.MockClock
	recorder   *testutil.FactRecorder
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Unix(1_700_000_000, 0))
	s.recorder = &testutil.FactRecorder{}

	bus := facts.NewBus()
	bus.Subscribe(s.recorder)

	var writeMu sync.Mutex
	logger := testutil.NopLogger()
	s.registry = registry.New(s.storage, s.clock, bus, &writeMu, logger)
	s.controller = NewController(s.storage, s.clock, bus, &writeMu, logger)
	s.ctx = context.Background()
}

func (s *ControllerSuite) register(id model.Identity, name string) {
	_, _, err := s.registry.Register(s.ctx, id, name)
	s.Require().NoError(err)
}

// Recording

func (s *ControllerSuite) TestRecordDailyHardWin() {
	s.register("0xa", "Alice")
	s.register("0xb", "Bob")
	s.recorder.Reset()

	game, err := s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyHard, 30, true)
	s.Require().NoError(err)
	s.Equal(model.GameID(1), game.ID)
	s.Equal(uint64(300), game.Points)
	s.Equal(uint64(30), game.TimeSpent)

	user, err := s.storage.GetUser(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Equal(uint64(300), user.TotalPoints)
	s.Equal(uint64(30), user.BestTime)
	s.Equal(uint64(1), user.GamesWon)
	s.Equal(uint64(1), user.GamesPlayed)
	s.Equal(s.clock.CurrentTime, user.LastGameAt)

	total, err := s.controller.TotalGames(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1), total)

	key := datekey.Encode(s.clock.CurrentTime)
	completed, err := s.controller.IsDailyChallengeCompleted(s.ctx, "0xa", key)
	s.Require().NoError(err)
	s.True(completed)

	// Daily fact precedes the game fact, matching transition order.
	s.Equal([]model.FactType{
		model.FactDailyChallengeCompleted,
		model.FactGameCompleted,
	}, s.recorder.Types())
}

func (s *ControllerSuite) TestRecordLossNormalizesTimeSpent() {
	s.register("0xa", "Alice")
	s.recorder.Reset()

	game, err := s.controller.RecordGame(s.ctx, "0xa", false, model.DifficultyEasy, 999, false)
	s.Require().NoError(err)
	s.Zero(game.Points)
	s.Zero(game.TimeSpent)

	stored, err := s.controller.GetGame(s.ctx, game.ID)
	s.Require().NoError(err)
	s.Zero(stored.TimeSpent)

	user, err := s.storage.GetUser(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Zero(user.BestTime)
	s.Zero(user.GamesWon)
	s.Equal(uint64(1), user.GamesPlayed)

	// The fact carries the raw value, not the normalized one.
	recorded := s.recorder.Facts()
	s.Require().Len(recorded, 1)
	payload := recorded[0].Payload.(model.GameCompletedPayload)
	s.Equal(uint64(999), payload.TimeSpent)
	s.Zero(payload.Points)
}

func (s *ControllerSuite) TestRecordUnregisteredUser() {
	_, err := s.controller.RecordGame(s.ctx, "0xghost", true, model.DifficultyEasy, 10, false)
	s.ErrorIs(err, model.ErrUserNotFound)
	s.Empty(s.recorder.Types())

	total, err := s.controller.TotalGames(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *ControllerSuite) TestRecordInvalidDifficulty() {
	s.register("0xa", "Alice")
	s.recorder.Reset()

	_, err := s.controller.RecordGame(s.ctx, "0xa", true, model.Difficulty(3), 10, false)
	s.ErrorIs(err, model.ErrInvalidInput)

	// Failed precondition leaves no partial state behind.
	user, err := s.storage.GetUser(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Zero(user.GamesPlayed)
	total, err := s.controller.TotalGames(s.ctx)
	s.Require().NoError(err)
	s.Zero(total)
	s.Empty(s.recorder.Types())
}

func (s *ControllerSuite) TestGameIDsDenselyAssigned() {
	s.register("0xa", "Alice")
	s.register("0xb", "Bob")

	for i := 1; i <= 3; i++ {
		id := model.Identity("0xa")
		if i%2 == 0 {
			id = "0xb"
		}
		game, err := s.controller.RecordGame(s.ctx, id, i%2 == 0, model.DifficultyEasy, 10, false)
		s.Require().NoError(err)
		s.Equal(model.GameID(i), game.ID)
	}
}

// Aggregates

func (s *ControllerSuite) TestGamesWonNeverExceedsGamesPlayed() {
	s.register("0xa", "Alice")

	outcomes := []bool{true, false, true, true, false, false, true}
	for _, won := range outcomes {
		_, err := s.controller.RecordGame(s.ctx, "0xa", won, model.DifficultyMedium, 20, false)
		s.Require().NoError(err)

		user, err := s.storage.GetUser(s.ctx, "0xa")
		s.Require().NoError(err)
		s.LessOrEqual(user.GamesWon, user.GamesPlayed)
	}

	user, err := s.storage.GetUser(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Equal(uint64(7), user.GamesPlayed)
	s.Equal(uint64(4), user.GamesWon)
	s.Equal(uint64(400), user.TotalPoints)
}

func (s *ControllerSuite) TestBestTimeOnlyDecreases() {
	s.register("0xa", "Alice")

	steps := []struct {
		won      bool
		time     uint64
		wantBest uint64
	}{
		{true, 60, 60},
		{true, 90, 60},  // slower win does not raise it
		{false, 5, 60},  // a loss never sets it
		{true, 0, 60},   // zero time never sets it
		{true, 45, 45},
	}

	for _, step := range steps {
		_, err := s.controller.RecordGame(s.ctx, "0xa", step.won, model.DifficultyEasy, step.time, false)
		s.Require().NoError(err)

		user, err := s.storage.GetUser(s.ctx, "0xa")
		s.Require().NoError(err)
		s.Equal(step.wantBest, user.BestTime)
	}
}

func (s *ControllerSuite) TestBestTimeUnsetUntilTimedWin() {
	s.register("0xa", "Alice")

	_, err := s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyEasy, 0, false)
	s.Require().NoError(err)

	user, err := s.storage.GetUser(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Zero(user.BestTime)
	s.Equal(uint64(1), user.GamesWon)
}

// Daily challenges

func (s *ControllerSuite) TestDailyChallengeOnlyWrittenOnDailyWin() {
	s.register("0xa", "Alice")
	key := datekey.Encode(s.clock.CurrentTime)

	// Daily loss does not complete the challenge.
	_, err := s.controller.RecordGame(s.ctx, "0xa", false, model.DifficultyHard, 10, true)
	s.Require().NoError(err)
	completed, err := s.controller.IsDailyChallengeCompleted(s.ctx, "0xa", key)
	s.Require().NoError(err)
	s.False(completed)

	// Non-daily win does not either.
	_, err = s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyHard, 10, false)
	s.Require().NoError(err)
	completed, err = s.controller.IsDailyChallengeCompleted(s.ctx, "0xa", key)
	s.Require().NoError(err)
	s.False(completed)
}

func (s *ControllerSuite) TestDailyChallengeRepeatCompletionOverwrites() {
	s.register("0xa", "Alice")
	key := datekey.Encode(s.clock.CurrentTime)

	_, err := s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyEasy, 40, true)
	s.Require().NoError(err)

	s.clock.Advance(time.Hour) // same bucket
	_, err = s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyHard, 25, true)
	s.Require().NoError(err)

	daily, err := s.storage.GetDailyChallenge(s.ctx, "0xa", key)
	s.Require().NoError(err)
	s.Require().NotNil(daily)
	s.Equal(model.DifficultyHard, daily.Difficulty)
	s.Equal(uint64(300), daily.Points)
	s.Equal(s.clock.CurrentTime, daily.CompletedAt)
}

func (s *ControllerSuite) TestDailyChallengeNextDayIsSeparate() {
	s.register("0xa", "Alice")
	firstKey := datekey.Encode(s.clock.CurrentTime)

	_, err := s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyEasy, 40, true)
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)
	secondKey := datekey.Encode(s.clock.CurrentTime)
	s.NotEqual(firstKey, secondKey)

	_, err = s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyMedium, 35, true)
	s.Require().NoError(err)

	for _, key := range []model.DateKey{firstKey, secondKey} {
		completed, err := s.controller.IsDailyChallengeCompleted(s.ctx, "0xa", key)
		s.Require().NoError(err)
		s.True(completed)
	}
}

// History pagination

func (s *ControllerSuite) TestUserGamesPagination() {
	s.register("0xa", "Alice")
	for i := 0; i < 5; i++ {
		_, err := s.controller.RecordGame(s.ctx, "0xa", true, model.DifficultyEasy, 10, false)
		s.Require().NoError(err)
	}

	page, err := s.controller.UserGames(s.ctx, "0xa", 1, 2)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Equal(model.GameID(2), page[0].ID)
	s.Equal(model.GameID(3), page[1].ID)

	// A limit past the end truncates rather than erroring.
	page, err = s.controller.UserGames(s.ctx, "0xa", 3, 10)
	s.Require().NoError(err)
	s.Len(page, 2)
}

func (s *ControllerSuite) TestUserGamesOffsetOutOfRange() {
	s.register("0xa", "Alice")
	for i := 0; i < 3; i++ {
		_, err := s.controller.RecordGame(s.ctx, "0xa", false, model.DifficultyEasy, 0, false)
		s.Require().NoError(err)
	}

	_, err := s.controller.UserGames(s.ctx, "0xa", 5, 10)
	s.ErrorIs(err, model.ErrOutOfRange)

	_, err = s.controller.UserGames(s.ctx, "0xa", 3, 10)
	s.ErrorIs(err, model.ErrOutOfRange)
}

func (s *ControllerSuite) TestUserGamesNoHistory() {
	s.register("0xa", "Alice")
	_, err := s.controller.UserGames(s.ctx, "0xa", 0, 10)
	s.ErrorIs(err, model.ErrOutOfRange)
}
