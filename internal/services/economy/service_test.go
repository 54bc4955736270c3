package economy

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
	"github.com/crispsgc/crisps-bot/internal/models"
	platformmocks "github.com/crispsgc/crisps-bot/internal/platform/mocks"
	"github.com/crispsgc/crisps-bot/internal/random"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	ledgerRepo "github.com/crispsgc/crisps-bot/internal/repositories/ledger"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
)

type EconomyServiceTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	ctrl   *gomock.Controller

	users    userRepo.Repository
	activity activityRepo.Repository
	drops    dropRepo.Repository
	ledger   ledgerRepo.Repository
	state    stateRepo.Repository
	poster   *platformmocks.MockPoster

	// now is what the injected clock reports
	now time.Time
}

func (s *EconomyServiceTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	s.users, err = userRepo.NewRedis(&userRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.activity, err = activityRepo.NewRedis(&activityRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.drops, err = dropRepo.NewRedis(&dropRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.ledger, err = ledgerRepo.NewRedis(&ledgerRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	s.state, err = stateRepo.NewRedis(&stateRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	s.ctrl = gomock.NewController(s.T())
	s.poster = platformmocks.NewMockPoster(s.ctrl)

	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *EconomyServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
	s.client.Close()
	s.mr.Close()
}

// newService builds a service over the suite's repos. mathChance below
// zero forces grab drops; above one forces math drops.
func (s *EconomyServiceTestSuite) newService(mathChance float64) Service {
	mockClock := clockmocks.NewMockClock(s.ctrl)
	mockClock.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	svc, err := NewService(&Config{
		UserRepo:      s.users,
		ActivityRepo:  s.activity,
		DropRepo:      s.drops,
		LedgerRepo:    s.ledger,
		StateRepo:     s.state,
		Poster:        s.poster,
		Picker:        random.New(&random.Config{Seed: 7}),
		Clock:         mockClock,
		UUIDGenerator: uuid.New(),
		MathChance:    mathChance,
	})
	s.Require().NoError(err)
	return svc
}

func TestEconomyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EconomyServiceTestSuite))
}

func (s *EconomyServiceTestSuite) TestSetBalanceOverridesCreditsAndLogs() {
	ctx := context.Background()
	svc := s.newService(-1)

	_, err := s.users.AddChips(ctx, &userRepo.AddChipsInput{GuildID: "guild-1", UserID: "user-1", Amount: 250})
	s.Require().NoError(err)

	out, err := svc.SetBalance(ctx, &SetBalanceInput{
		GuildID:  "guild-1",
		UserID:   "user-1",
		Username: "Potato",
		Amount:   40,
	})
	s.Require().NoError(err)
	s.Equal(int64(40), out.Chips)

	balance, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(40), balance.Chips)
	s.True(balance.Ranked)
	s.Equal(1, balance.Rank)

	recent, err := svc.RecentTransactions(ctx, &RecentTransactionsInput{GuildID: "guild-1", Limit: 5})
	s.Require().NoError(err)
	s.Require().Len(recent.Transactions, 1)
	s.Equal(models.ChipReasonAdminSet, recent.Transactions[0].Reason)
	s.Equal(int64(40), recent.Transactions[0].Amount)
	s.NotEmpty(recent.Transactions[0].ID)
}

func (s *EconomyServiceTestSuite) TestSetBalanceRejectsNegative() {
	svc := s.newService(-1)

	_, err := svc.SetBalance(context.Background(), &SetBalanceInput{
		GuildID: "guild-1",
		UserID:  "user-1",
		Amount:  -5,
	})
	s.Equal(userRepo.ErrNegativeAmount, err)
}

func (s *EconomyServiceTestSuite) TestGetBalanceUnknownUser() {
	svc := s.newService(-1)

	out, err := svc.GetBalance(context.Background(), &GetBalanceInput{GuildID: "guild-1", UserID: "nobody"})
	s.Require().NoError(err)
	s.Equal(int64(0), out.Chips)
	s.False(out.Ranked)
}

func (s *EconomyServiceTestSuite) TestGetLeaderboardWithCallerPosition() {
	ctx := context.Background()
	svc := s.newService(-1)

	for i, amount := range []int64{300, 200, 100} {
		_, err := s.users.AddChips(ctx, &userRepo.AddChipsInput{
			GuildID:  "guild-1",
			UserID:   []string{"user-1", "user-2", "user-3"}[i],
			Username: []string{"First", "Second", "Third"}[i],
			Amount:   amount,
		})
		s.Require().NoError(err)
	}

	out, err := svc.GetLeaderboard(ctx, &GetLeaderboardInput{GuildID: "guild-1", UserID: "user-3", Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("First", out.Entries[0].Username)
	s.True(out.CallerRanked)
	s.Equal(3, out.CallerRank)
	s.Equal(int64(100), out.CallerChips)
	s.Equal(int64(3), out.TotalUsers)
}

func (s *EconomyServiceTestSuite) TestTrackMessageRecordsCountersAndTimestamp() {
	ctx := context.Background()
	svc := s.newService(-1)

	for i := 0; i < 3; i++ {
		s.Require().NoError(svc.TrackMessage(ctx, &TrackMessageInput{
			GuildID:  "guild-1",
			UserID:   "user-1",
			Username: "Potato",
		}))
	}

	date := s.now.Format("2006-01-02")
	chatters, err := s.activity.TopChatters(ctx, &activityRepo.TopChattersInput{GuildID: "guild-1", Date: date, Limit: 5})
	s.Require().NoError(err)
	s.Require().Len(chatters, 1)
	s.Equal(int64(3), chatters[0].Points)

	stored, err := s.state.Get(ctx, &stateRepo.GetInput{GuildID: "guild-1", Key: stateRepo.KeyLastMessage})
	s.Require().NoError(err)
	s.Equal(s.now.UTC().Format(time.RFC3339), stored)
}

func (s *EconomyServiceTestSuite) TestVoiceSessionCreditsMinutes() {
	ctx := context.Background()
	svc := s.newService(-1)

	s.Require().NoError(svc.TrackVoiceJoin(ctx, &TrackVoiceJoinInput{GuildID: "guild-1", UserID: "user-1"}))

	s.now = s.now.Add(12 * time.Minute)
	s.Require().NoError(svc.TrackVoiceLeave(ctx, &TrackVoiceLeaveInput{GuildID: "guild-1", UserID: "user-1"}))

	date := s.now.Format("2006-01-02")
	top, err := s.activity.TopActivity(ctx, &activityRepo.TopActivityInput{GuildID: "guild-1", Date: date, Limit: 5})
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal(int64(12), top[0].Points)

	// leave without a join is a quiet no-op
	s.Require().NoError(svc.TrackVoiceLeave(ctx, &TrackVoiceLeaveInput{GuildID: "guild-1", UserID: "user-2"}))
}
