package question

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type QuestionRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
}

func (s *QuestionRepositoryTestSuite) SetupTest() {
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

func (s *QuestionRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestQuestionRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(QuestionRepositoryTestSuite))
}

func (s *QuestionRepositoryTestSuite) TestMarkUsedAccumulates() {
	ctx := context.Background()

	used, err := s.repo.GetUsed(ctx, &GetUsedInput{GuildID: "guild-1", Category: "warm"})
	s.Require().NoError(err)
	s.Empty(used)

	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "warm", Index: 3}))
	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "warm", Index: 0}))
	// marking twice is a no-op
	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "warm", Index: 3}))

	used, err = s.repo.GetUsed(ctx, &GetUsedInput{GuildID: "guild-1", Category: "warm"})
	s.Require().NoError(err)
	s.Equal([]int{0, 3}, used)
}

func (s *QuestionRepositoryTestSuite) TestCategoriesAreIsolated() {
	ctx := context.Background()

	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "warm", Index: 1}))
	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "chill", Index: 7}))
	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-2", Category: "warm", Index: 2}))

	used, err := s.repo.GetUsed(ctx, &GetUsedInput{GuildID: "guild-1", Category: "warm"})
	s.Require().NoError(err)
	s.Equal([]int{1}, used)

	used, err = s.repo.GetUsed(ctx, &GetUsedInput{GuildID: "guild-1", Category: "chill"})
	s.Require().NoError(err)
	s.Equal([]int{7}, used)
}

func (s *QuestionRepositoryTestSuite) TestResetStartsNewCycle() {
	ctx := context.Background()

	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "typology", Index: 4}))
	s.Require().NoError(s.repo.MarkUsed(ctx, &MarkUsedInput{GuildID: "guild-1", Category: "typology", Index: 5}))

	s.Require().NoError(s.repo.Reset(ctx, &ResetInput{GuildID: "guild-1", Category: "typology"}))

	used, err := s.repo.GetUsed(ctx, &GetUsedInput{GuildID: "guild-1", Category: "typology"})
	s.Require().NoError(err)
	s.Empty(used)
}
