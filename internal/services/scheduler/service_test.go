package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockmocks "github.com/crispsgc/crisps-bot/internal/common/clock/mocks"
	"github.com/crispsgc/crisps-bot/internal/common/uuid"
	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/platform"
	platformmocks "github.com/crispsgc/crisps-bot/internal/platform/mocks"
	"github.com/crispsgc/crisps-bot/internal/random"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	ledgerRepo "github.com/crispsgc/crisps-bot/internal/repositories/ledger"
	questionRepo "github.com/crispsgc/crisps-bot/internal/repositories/question"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
)

type SchedulerServiceTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	ctrl   *gomock.Controller

	state  stateRepo.Repository
	poster *platformmocks.MockPoster
	svc    Service

	now time.Time
}

func (s *SchedulerServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.state, err = stateRepo.NewRedis(&stateRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	qRepo, err := questionRepo.NewRedis(&questionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	users, err := userRepo.NewRedis(&userRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	activity, err := activityRepo.NewRedis(&activityRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	drops, err := dropRepo.NewRedis(&dropRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	ledger, err := ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.ctrl = gomock.NewController(s.T())
	s.poster = platformmocks.NewMockPoster(s.ctrl)

	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mockClock := clockmocks.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	qSvc, err := questions.NewService(&questions.Config{
		QuestionRepo: qRepo,
		Picker:       random.New(&random.Config{Seed: 11}),
	})
	s.Require().NoError(err)

	eSvc, err := economy.NewService(&economy.Config{
		UserRepo:      users,
		ActivityRepo:  activity,
		DropRepo:      drops,
		LedgerRepo:    ledger,
		StateRepo:     s.state,
		Poster:        s.poster,
		Picker:        random.New(&random.Config{Seed: 11}),
		Clock:         mockClock,
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)

	s.svc, err = NewService(&Config{
		StateRepo: s.state,
		Questions: qSvc,
		Economy:   eSvc,
		Poster:    s.poster,
		Picker:    random.New(&random.Config{Seed: 11}),
	})
	s.Require().NoError(err)
}

func (s *SchedulerServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

func TestSchedulerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SchedulerServiceTestSuite))
}

func (s *SchedulerServiceTestSuite) setChannel(feature, channelID string) {
	err := s.state.SetChannel(context.Background(), &stateRepo.SetChannelInput{
		GuildID:   "guild-1",
		Feature:   feature,
		ChannelID: channelID,
	})
	s.Require().NoError(err)
}

func (s *SchedulerServiceTestSuite) setAllQuestionChannels() {
	for _, category := range config.RotationOrder {
		s.setChannel(category, "chan-"+category)
	}
}

func (s *SchedulerServiceTestSuite) tick() *TickOutput {
	out, err := s.svc.Tick(context.Background(), &TickInput{
		GuildIDs: []string{"guild-1"},
		Now:      s.now,
	})
	s.Require().NoError(err)
	return out
}

func (s *SchedulerServiceTestSuite) TestBootstrapDelaysFirstQuestion() {
	s.setAllQuestionChannels()

	// First sight of the guild only arms the timer
	out := s.tick()
	s.Equal(0, out.QuestionsPosted)

	upcoming, err := s.svc.UpcomingSchedule(context.Background(), &UpcomingScheduleInput{
		GuildID: "guild-1",
		Now:     s.now,
	})
	s.Require().NoError(err)
	s.True(upcoming.Bootstrapped)
	s.Equal(config.CategoryWarm, upcoming.NextCategory)
	s.Equal(s.now.Add(2*time.Minute), upcoming.NextQuestionAt.UTC())

	// Not due yet
	s.now = s.now.Add(time.Minute)
	out = s.tick()
	s.Equal(0, out.QuestionsPosted)

	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-warm", "", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-warm", MessageID: "m1"}, nil)

	s.now = s.now.Add(time.Minute)
	out = s.tick()
	s.Equal(1, out.QuestionsPosted)
}

func (s *SchedulerServiceTestSuite) TestRotationCyclesEveryCategoryOncePerDay() {
	s.setAllQuestionChannels()

	// Bootstrap, then step through a full day of firings
	s.tick()
	s.now = s.now.Add(2 * time.Minute)

	var titles []string
	s.poster.EXPECT().
		SendEmbed(gomock.Any(), gomock.Any(), "", gomock.Any()).
		DoAndReturn(func(_ context.Context, channelID, _ string, embed *platform.Embed) (*platform.Message, error) {
			titles = append(titles, embed.Title)
			return &platform.Message{ChannelID: channelID, MessageID: "m"}, nil
		}).
		Times(3)

	for i := 0; i < 3; i++ {
		out := s.tick()
		s.Equal(1, out.QuestionsPosted)
		s.now = s.now.Add(8 * time.Hour)
	}

	s.Equal([]string{
		config.QuestionEmbeds[config.CategoryWarm].Title,
		config.QuestionEmbeds[config.CategoryChill].Title,
		config.QuestionEmbeds[config.CategoryTypology].Title,
	}, titles)

	// A full cycle lands back on the first category
	upcoming, err := s.svc.UpcomingSchedule(context.Background(), &UpcomingScheduleInput{
		GuildID: "guild-1",
		Now:     s.now,
	})
	s.Require().NoError(err)
	s.Equal(config.CategoryWarm, upcoming.NextCategory)
}

func (s *SchedulerServiceTestSuite) TestFailedPostRetriesNextTick() {
	s.setAllQuestionChannels()

	s.tick()
	s.now = s.now.Add(2 * time.Minute)

	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-warm", "", gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	out := s.tick()
	s.Equal(0, out.QuestionsPosted)

	// The rotation did not advance, so the same category fires again
	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-warm", "", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-warm", MessageID: "m1"}, nil)

	s.now = s.now.Add(time.Minute)
	out = s.tick()
	s.Equal(1, out.QuestionsPosted)
}

func (s *SchedulerServiceTestSuite) TestUnconfiguredCategoryIsSkippedQuietly() {
	// Only chill has a channel; warm rotates past without posting
	s.setChannel(config.CategoryChill, "chan-chill")

	s.tick()
	s.now = s.now.Add(2 * time.Minute)

	out := s.tick()
	s.Equal(0, out.QuestionsPosted)

	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-chill", "", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-chill", MessageID: "m1"}, nil)

	s.now = s.now.Add(8 * time.Hour)
	out = s.tick()
	s.Equal(1, out.QuestionsPosted)
}

func (s *SchedulerServiceTestSuite) TestResetTimerFiresQuestionWithoutAdvancingRotation() {
	s.setAllQuestionChannels()

	// Bootstrap, then let the first regular question fire
	s.tick()
	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-warm", "", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-warm", MessageID: "m1"}, nil)
	s.now = s.now.Add(2 * time.Minute)
	s.tick()

	before, err := s.svc.UpcomingSchedule(context.Background(), &UpcomingScheduleInput{
		GuildID: "guild-1",
		Now:     s.now,
	})
	s.Require().NoError(err)
	s.Equal(config.CategoryChill, before.NextCategory)

	reset, err := s.svc.ResetTimer(context.Background(), &ResetTimerInput{
		GuildID: "guild-1",
		Feature: ResetFeatureQuestion,
		Now:     s.now,
	})
	s.Require().NoError(err)
	s.Equal([]ResetTimerFeature{ResetFeatureQuestion}, reset.Applied)

	// Not due for another minute
	out := s.tick()
	s.Equal(0, out.QuestionsPosted)

	// The override posts the category the rotation is sitting on
	s.poster.EXPECT().
		SendEmbed(gomock.Any(), "chan-chill", "", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-chill", MessageID: "m2"}, nil)

	s.now = s.now.Add(time.Minute)
	out = s.tick()
	s.Equal(1, out.QuestionsPosted)

	// One-off: the regular rotation is untouched and the override is gone
	after, err := s.svc.UpcomingSchedule(context.Background(), &UpcomingScheduleInput{
		GuildID: "guild-1",
		Now:     s.now,
	})
	s.Require().NoError(err)
	s.Equal(before.NextCategory, after.NextCategory)
	s.Equal(before.NextQuestionAt, after.NextQuestionAt)

	s.now = s.now.Add(time.Minute)
	out = s.tick()
	s.Equal(0, out.QuestionsPosted)
}

func (s *SchedulerServiceTestSuite) TestCodePurpleAfterQuietSpell() {
	s.setChannel(config.FeatureCodePurple, "chan-general")

	quietSince := s.now.Add(-7 * time.Hour)
	err := s.state.Set(context.Background(), &stateRepo.SetInput{
		GuildID: "guild-1",
		Key:     stateRepo.KeyLastMessage,
		Value:   quietSince.Format(time.RFC3339),
	})
	s.Require().NoError(err)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "chan-general", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-general", MessageID: "m1"}, nil)

	out := s.tick()
	s.Equal(1, out.NudgesSent)

	// Still quiet an hour later, but the cooldown holds
	s.now = s.now.Add(time.Hour)
	out = s.tick()
	s.Equal(0, out.NudgesSent)
}

func (s *SchedulerServiceTestSuite) TestCodePurpleOnlyChecksOnTheHour() {
	s.setChannel(config.FeatureCodePurple, "chan-general")

	err := s.state.Set(context.Background(), &stateRepo.SetInput{
		GuildID: "guild-1",
		Key:     stateRepo.KeyLastMessage,
		Value:   s.now.Add(-7 * time.Hour).Format(time.RFC3339),
	})
	s.Require().NoError(err)

	s.now = s.now.Add(30 * time.Minute)
	out := s.tick()
	s.Equal(0, out.NudgesSent)
}

func (s *SchedulerServiceTestSuite) TestCodePurpleSkipsActiveGuilds() {
	s.setChannel(config.FeatureCodePurple, "chan-general")

	err := s.state.Set(context.Background(), &stateRepo.SetInput{
		GuildID: "guild-1",
		Key:     stateRepo.KeyLastMessage,
		Value:   s.now.Add(-time.Hour).Format(time.RFC3339),
	})
	s.Require().NoError(err)

	out := s.tick()
	s.Equal(0, out.NudgesSent)
}

func (s *SchedulerServiceTestSuite) TestForceCodePurpleIgnoresThresholds() {
	s.setChannel(config.FeatureCodePurple, "chan-general")

	err := s.state.Set(context.Background(), &stateRepo.SetInput{
		GuildID: "guild-1",
		Key:     stateRepo.KeyLastMessage,
		Value:   s.now.Format(time.RFC3339),
	})
	s.Require().NoError(err)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "chan-general", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-general", MessageID: "m1"}, nil)

	err = s.svc.ForceCodePurple(context.Background(), &ForceCodePurpleInput{
		GuildID: "guild-1",
		Now:     s.now,
	})
	s.Require().NoError(err)
}

func (s *SchedulerServiceTestSuite) TestRewardsFireAtConfiguredLocalTime() {
	s.setChannel(config.FeatureChipDrop, "chan-drops")

	err := s.svc.SetRewardsTime(context.Background(), &SetRewardsTimeInput{
		GuildID: "guild-1",
		Hour:    9,
		Minute:  30,
	})
	s.Require().NoError(err)

	// Wrong minute: nothing happens
	s.now = time.Date(2024, 6, 2, 9, 29, 0, 0, time.UTC)
	out := s.tick()
	s.Equal(0, out.RewardsRuns)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "chan-drops", gomock.Any()).
		Return(&platform.Message{ChannelID: "chan-drops", MessageID: "m1"}, nil)

	s.now = time.Date(2024, 6, 2, 9, 30, 0, 0, time.UTC)
	out = s.tick()
	s.Equal(1, out.RewardsRuns)

	// A second tick in the same minute is a no-op: today already ran
	out = s.tick()
	s.Equal(0, out.RewardsRuns)
}

func (s *SchedulerServiceTestSuite) TestSetRewardsTimeRejectsBadClock() {
	err := s.svc.SetRewardsTime(context.Background(), &SetRewardsTimeInput{
		GuildID: "guild-1",
		Hour:    24,
		Minute:  0,
	})
	s.ErrorIs(err, ErrInvalidTime)

	err = s.svc.SetRewardsTime(context.Background(), &SetRewardsTimeInput{
		GuildID: "guild-1",
		Hour:    10,
		Minute:  60,
	})
	s.ErrorIs(err, ErrInvalidTime)
}
