package rank

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mindmatch/memoryledger/internal/model"
	"github.com/mindmatch/memoryledger/internal/storage/memory"
)

type EngineSuite struct {
	suite.Suite
	engine  *Engine
	storage *memory.Storage
	ctx     context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.storage = memory.New()
	s.engine = New(s.storage)
	s.ctx = context.Background()
}

// addUser registers users in call order, so registration order follows
// the order of addUser calls in each test.
func (s *EngineSuite) addUser(id model.Identity, points uint64) {
	err := s.storage.SaveUser(s.ctx, &model.User{
		Identity:    id,
		DisplayName: string(id),
		TotalPoints: points,
	}, true)
	s.Require().NoError(err)
}

func (s *EngineSuite) TestLeaderboardDescending() {
	s.addUser("0xa", 100)
	s.addUser("0xb", 300)
	s.addUser("0xc", 200)

	entries, err := s.engine.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal(model.Identity("0xb"), entries[0].Identity)
	s.Equal(model.Identity("0xc"), entries[1].Identity)
	s.Equal(model.Identity("0xa"), entries[2].Identity)
}

func (s *EngineSuite) TestLeaderboardTiesKeepRegistrationOrder() {
	s.addUser("0xa", 200)
	s.addUser("0xb", 300)
	s.addUser("0xc", 200)
	s.addUser("0xd", 200)

	entries, err := s.engine.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 4)
	s.Equal(model.Identity("0xb"), entries[0].Identity)
	s.Equal(model.Identity("0xa"), entries[1].Identity)
	s.Equal(model.Identity("0xc"), entries[2].Identity)
	s.Equal(model.Identity("0xd"), entries[3].Identity)
}

func (s *EngineSuite) TestLeaderboardLimitClipsToTopK() {
	s.addUser("0xa", 10)
	s.addUser("0xb", 40)
	s.addUser("0xc", 20)
	s.addUser("0xd", 30)

	entries, err := s.engine.Leaderboard(s.ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.Identity("0xb"), entries[0].Identity)
	s.Equal(model.Identity("0xd"), entries[1].Identity)
}

func (s *EngineSuite) TestLeaderboardLengthIsMinOfLimitAndTotal() {
	s.addUser("0xa", 10)
	s.addUser("0xb", 20)

	entries, err := s.engine.Leaderboard(s.ctx, 100)
	s.Require().NoError(err)
	s.Len(entries, 2)
}

func (s *EngineSuite) TestLeaderboardEmptyRegistry() {
	entries, err := s.engine.Leaderboard(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *EngineSuite) TestLeaderboardInvalidLimit() {
	_, err := s.engine.Leaderboard(s.ctx, 0)
	s.ErrorIs(err, model.ErrInvalidInput)

	_, err = s.engine.Leaderboard(s.ctx, 101)
	s.ErrorIs(err, model.ErrInvalidInput)

	_, err = s.engine.Leaderboard(s.ctx, 100)
	s.NoError(err)
}

func (s *EngineSuite) TestUserRankStrictMaximum() {
	s.addUser("0xa", 100)
	s.addUser("0xb", 300)
	s.addUser("0xc", 200)

	rank, err := s.engine.UserRank(s.ctx, "0xb")
	s.Require().NoError(err)
	s.Equal(uint64(1), rank)

	rank, err = s.engine.UserRank(s.ctx, "0xc")
	s.Require().NoError(err)
	s.Equal(uint64(2), rank)

	rank, err = s.engine.UserRank(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Equal(uint64(3), rank)
}

func (s *EngineSuite) TestUserRankDenseTies() {
	s.addUser("0xa", 300)
	s.addUser("0xb", 200)
	s.addUser("0xc", 200)
	s.addUser("0xd", 100)

	for _, id := range []model.Identity{"0xb", "0xc"} {
		rank, err := s.engine.UserRank(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(uint64(2), rank)
	}

	// 0xd sits at 1 + count(strictly greater), after the tie run.
	rank, err := s.engine.UserRank(s.ctx, "0xd")
	s.Require().NoError(err)
	s.Equal(uint64(4), rank)
}

func (s *EngineSuite) TestUserRankUnregistered() {
	rank, err := s.engine.UserRank(s.ctx, "0xghost")
	s.Require().NoError(err)
	s.Zero(rank)
}

func (s *EngineSuite) TestUserRankIdempotent() {
	s.addUser("0xa", 100)

	first, err := s.engine.UserRank(s.ctx, "0xa")
	s.Require().NoError(err)
	second, err := s.engine.UserRank(s.ctx, "0xa")
	s.Require().NoError(err)
	s.Equal(first, second)
}
