package drop

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/crispsgc/crisps-bot/internal/models"
)

type DropRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *DropRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *DropRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestDropRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(DropRepositoryTestSuite))
}

func (s *DropRepositoryTestSuite) testDrop() *models.Drop {
	return &models.Drop{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "message-1",
		Amount:    40,
		Type:      models.DropTypeGrab,
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *DropRepositoryTestSuite) TestSaveAndGet() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, &SaveInput{Drop: s.testDrop()}))

	got, err := s.repo.Get(ctx, &GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal("message-1", got.MessageID)
	s.Equal(int64(40), got.Amount)
	s.Equal(models.DropTypeGrab, got.Type)
}

func (s *DropRepositoryTestSuite) TestSaveRejectsSecondPending() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, &SaveInput{Drop: s.testDrop()}))

	second := s.testDrop()
	second.MessageID = "message-2"
	err := s.repo.Save(ctx, &SaveInput{Drop: second})
	s.Equal(ErrDropExists, err)

	// the original drop is untouched
	got, err := s.repo.Get(ctx, &GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal("message-1", got.MessageID)
}

func (s *DropRepositoryTestSuite) TestClaimConsumesExactlyOnce() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, &SaveInput{Drop: s.testDrop()}))

	claimed, err := s.repo.Claim(ctx, &ClaimInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(int64(40), claimed.Amount)

	_, err = s.repo.Claim(ctx, &ClaimInput{GuildID: "guild-1"})
	s.Equal(ErrDropNotFound, err)

	_, err = s.repo.Get(ctx, &GetInput{GuildID: "guild-1"})
	s.Equal(ErrDropNotFound, err)
}

func (s *DropRepositoryTestSuite) TestDeleteDiscardsPending() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Save(ctx, &SaveInput{Drop: s.testDrop()}))
	s.Require().NoError(s.repo.Delete(ctx, &DeleteInput{GuildID: "guild-1"}))

	_, err := s.repo.Get(ctx, &GetInput{GuildID: "guild-1"})
	s.Equal(ErrDropNotFound, err)

	// deleting when nothing is pending is fine
	s.Require().NoError(s.repo.Delete(ctx, &DeleteInput{GuildID: "guild-1"}))
}
