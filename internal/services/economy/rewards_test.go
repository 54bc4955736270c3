package economy

import (
	"context"
	"strings"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/crispsgc/crisps-bot/internal/platform"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
)

func (s *EconomyServiceTestSuite) seedChatter(userID string, messages int) {
	ctx := context.Background()
	date := s.now.Format("2006-01-02")
	for i := 0; i < messages; i++ {
		s.Require().NoError(s.activity.IncrementChatter(ctx, &activityRepo.IncrementChatterInput{
			GuildID: "guild-1",
			UserID:  userID,
			Date:    date,
		}))
		s.Require().NoError(s.activity.IncrementActivity(ctx, &activityRepo.IncrementActivityInput{
			GuildID: "guild-1",
			UserID:  userID,
			Date:    date,
			Points:  1,
		}))
	}
}

func (s *EconomyServiceTestSuite) TestDailyRewardsPayTopTwoChatters() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	s.seedChatter("user-1", 10)
	s.seedChatter("user-2", 6)
	s.seedChatter("user-3", 2)

	var posted string
	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, content string) (*platform.Message, error) {
			posted = content
			return &platform.Message{ChannelID: "channel-1", MessageID: "rewards-1"}, nil
		})

	out, err := svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Posted)

	s.Contains(posted, "<@user-1>")
	s.Contains(posted, "<@user-2>")

	// 100 chatter + 75 activity for first, 50 + 50 for second,
	// third only places on the activity board
	first, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(175), first.Chips)

	second, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-2"})
	s.Require().NoError(err)
	s.Equal(int64(100), second.Chips)

	third, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-3"})
	s.Require().NoError(err)
	s.Equal(int64(25), third.Chips)

	// counters were consumed
	date := s.now.Format("2006-01-02")
	chatters, err := s.activity.TopChatters(ctx, &activityRepo.TopChattersInput{GuildID: "guild-1", Date: date, Limit: 5})
	s.Require().NoError(err)
	s.Empty(chatters)
}

func (s *EconomyServiceTestSuite) TestDailyRewardsRunOncePerDate() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	s.seedChatter("user-1", 4)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "rewards-1"}, nil)

	out, err := svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Posted)

	balance, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	paidOnce := balance.Chips

	// same date again: guarded, nothing credited, nothing posted
	out, err = svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now.Add(3 * time.Hour)})
	s.Require().NoError(err)
	s.True(out.AlreadyPosted)
	s.False(out.Posted)

	balance, err = svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(paidOnce, balance.Chips)

	// the next calendar day runs again
	s.now = s.now.Add(24 * time.Hour)
	s.seedChatter("user-1", 1)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "rewards-2"}, nil)

	out, err = svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Posted)
}

func (s *EconomyServiceTestSuite) TestLoneChatterSweepsBothRewards() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	s.seedChatter("user-1", 3)

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "rewards-1"}, nil)

	_, err := svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)

	// 100 + 50 chatter sweep plus 75 for topping the activity board
	balance, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(int64(225), balance.Chips)
}

func (s *EconomyServiceTestSuite) TestQuietDayStillPostsAndStamps() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	var posted string
	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, content string) (*platform.Message, error) {
			posted = content
			return &platform.Message{ChannelID: "channel-1", MessageID: "rewards-1"}, nil
		})

	out, err := svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Posted)
	s.True(strings.Contains(posted, "vault"))

	out, err = svc.RunDailyRewards(ctx, &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.AlreadyPosted)
}

func (s *EconomyServiceTestSuite) TestRewardsSkipWhenNoChannelConfigured() {
	svc := s.newService(-1)

	out, err := svc.RunDailyRewards(context.Background(), &RunDailyRewardsInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.False(out.Posted)
	s.False(out.AlreadyPosted)
}
