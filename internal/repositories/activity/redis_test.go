package activity

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type ActivityRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *ActivityRepositoryTestSuite) SetupTest() {
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

func (s *ActivityRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestActivityRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ActivityRepositoryTestSuite))
}

func (s *ActivityRepositoryTestSuite) TestChatterCountsPerDay() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := s.repo.IncrementChatter(ctx, &IncrementChatterInput{
			GuildID: "guild-1", UserID: "user-1", Date: "2026-09-01",
		})
		s.Require().NoError(err)
	}
	err := s.repo.IncrementChatter(ctx, &IncrementChatterInput{
		GuildID: "guild-1", UserID: "user-2", Date: "2026-09-01",
	})
	s.Require().NoError(err)

	// A different date is a separate counter
	err = s.repo.IncrementChatter(ctx, &IncrementChatterInput{
		GuildID: "guild-1", UserID: "user-2", Date: "2026-09-02",
	})
	s.Require().NoError(err)

	top, err := s.repo.TopChatters(ctx, &TopChattersInput{
		GuildID: "guild-1", Date: "2026-09-01", Limit: 2,
	})
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal("user-1", top[0].UserID)
	s.Equal(int64(3), top[0].Points)
	s.Equal("user-2", top[1].UserID)
	s.Equal(int64(1), top[1].Points)
}

func (s *ActivityRepositoryTestSuite) TestClearDayDeletesBothCounters() {
	ctx := context.Background()

	err := s.repo.IncrementChatter(ctx, &IncrementChatterInput{
		GuildID: "guild-1", UserID: "user-1", Date: "2026-09-01",
	})
	s.Require().NoError(err)
	err = s.repo.IncrementActivity(ctx, &IncrementActivityInput{
		GuildID: "guild-1", UserID: "user-1", Date: "2026-09-01", Points: 15,
	})
	s.Require().NoError(err)

	err = s.repo.ClearDay(ctx, &ClearDayInput{GuildID: "guild-1", Date: "2026-09-01"})
	s.Require().NoError(err)

	top, err := s.repo.TopChatters(ctx, &TopChattersInput{GuildID: "guild-1", Date: "2026-09-01"})
	s.Require().NoError(err)
	s.Empty(top)

	topActivity, err := s.repo.TopActivity(ctx, &TopActivityInput{GuildID: "guild-1", Date: "2026-09-01"})
	s.Require().NoError(err)
	s.Empty(topActivity)
}

func (s *ActivityRepositoryTestSuite) TestVoiceSessionLifecycle() {
	ctx := context.Background()
	joined := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	err := s.repo.StartVoiceSession(ctx, &StartVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", JoinedAt: joined,
	})
	s.Require().NoError(err)

	minutes, err := s.repo.EndVoiceSession(ctx, &EndVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", Now: joined.Add(42 * time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(42, minutes)

	// The session is consumed
	_, err = s.repo.EndVoiceSession(ctx, &EndVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", Now: joined.Add(time.Hour),
	})
	s.Equal(ErrSessionNotFound, err)
}

func (s *ActivityRepositoryTestSuite) TestVoiceRejoinReplacesSession() {
	ctx := context.Background()
	first := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(30 * time.Minute)

	err := s.repo.StartVoiceSession(ctx, &StartVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", JoinedAt: first,
	})
	s.Require().NoError(err)
	err = s.repo.StartVoiceSession(ctx, &StartVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", JoinedAt: second,
	})
	s.Require().NoError(err)

	minutes, err := s.repo.EndVoiceSession(ctx, &EndVoiceSessionInput{
		GuildID: "guild-1", UserID: "user-1", Now: second.Add(10 * time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(10, minutes)
}
