package questions

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/random"
	questionRepo "github.com/crispsgc/crisps-bot/internal/repositories/question"
)

type QuestionsServiceTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	service Service
}

func (s *QuestionsServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := questionRepo.NewRedis(&questionRepo.Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)

	svc, err := NewService(&Config{
		QuestionRepo: repo,
		Picker:       random.New(&random.Config{Seed: 42}),
		Banks: map[string][]config.Question{
			config.CategoryWarm: {
				{Kind: "Debate Time", Text: "warm one"},
				{Kind: "Debate Time", Text: "warm two"},
				{Kind: "Would You Rather", Text: "warm three"},
			},
			config.CategoryChill: {
				{Text: "chill one"},
			},
			config.CategoryTypology: {
				{Text: "typology one"},
				{Text: "typology two"},
			},
		},
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *QuestionsServiceTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestQuestionsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(QuestionsServiceTestSuite))
}

func (s *QuestionsServiceTestSuite) TestBagExhaustsBeforeRepeating() {
	ctx := context.Background()

	seen := make(map[string]int)
	for i := 0; i < 3; i++ {
		out, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
			GuildID:  "guild-1",
			Category: config.CategoryWarm,
		})
		s.Require().NoError(err)
		s.False(out.Reshuffled)
		seen[out.Text]++
	}

	// three draws cover the three-question bank exactly once each
	s.Len(seen, 3)
	for text, count := range seen {
		s.Equal(1, count, "question %q drawn more than once in a cycle", text)
	}

	// the fourth draw starts a new cycle
	out, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
		GuildID:  "guild-1",
		Category: config.CategoryWarm,
	})
	s.Require().NoError(err)
	s.True(out.Reshuffled)
	s.Contains(seen, out.Text)
}

func (s *QuestionsServiceTestSuite) TestSingleQuestionBankAlwaysReturnsIt() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		out, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
			GuildID:  "guild-1",
			Category: config.CategoryChill,
		})
		s.Require().NoError(err)
		s.Equal("chill one", out.Text)
	}
}

func (s *QuestionsServiceTestSuite) TestGuildsHaveIndependentBags() {
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
			GuildID:  "guild-1",
			Category: config.CategoryWarm,
		})
		s.Require().NoError(err)
	}

	out, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
		GuildID:  "guild-2",
		Category: config.CategoryWarm,
	})
	s.Require().NoError(err)
	s.False(out.Reshuffled)
}

func (s *QuestionsServiceTestSuite) TestTypologyPairsDistinctCombos() {
	ctx := context.Background()

	out, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
		GuildID:  "guild-1",
		Category: config.CategoryTypology,
	})
	s.Require().NoError(err)
	s.NotEmpty(out.TypeOne)
	s.NotEmpty(out.TypeTwo)
	s.NotEqual(out.TypeOne, out.TypeTwo)

	warm, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
		GuildID:  "guild-1",
		Category: config.CategoryWarm,
	})
	s.Require().NoError(err)
	s.Empty(warm.TypeOne)
}

func (s *QuestionsServiceTestSuite) TestUnknownCategory() {
	_, err := s.service.SelectQuestion(context.Background(), &SelectQuestionInput{
		GuildID:  "guild-1",
		Category: "mystery",
	})
	s.Equal(ErrUnknownCategory, err)
}

func (s *QuestionsServiceTestSuite) TestUsageStats() {
	ctx := context.Background()

	_, err := s.service.SelectQuestion(ctx, &SelectQuestionInput{
		GuildID:  "guild-1",
		Category: config.CategoryWarm,
	})
	s.Require().NoError(err)

	stats, err := s.service.UsageStats(ctx, &UsageStatsInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Require().Len(stats.Categories, len(config.RotationOrder))
	s.Equal(config.CategoryWarm, stats.Categories[0].Category)
	s.Equal(1, stats.Categories[0].Used)
	s.Equal(3, stats.Categories[0].Total)
	s.Equal(0, stats.Categories[1].Used)
}
