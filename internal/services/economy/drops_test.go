package economy

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
)

func (s *EconomyServiceTestSuite) setDropChannel() {
	err := s.state.SetChannel(context.Background(), &stateRepo.SetChannelInput{
		GuildID:   "guild-1",
		Feature:   config.FeatureChipDrop,
		ChannelID: "channel-1",
	})
	s.Require().NoError(err)
}

func (s *EconomyServiceTestSuite) markRecentChat(at time.Time) {
	err := s.state.Set(context.Background(), &stateRepo.SetInput{
		GuildID: "guild-1",
		Key:     stateRepo.KeyLastMessage,
		Value:   at.UTC().Format(time.RFC3339),
	})
	s.Require().NoError(err)
}

func (s *EconomyServiceTestSuite) TestDropScheduleFireAndClaim() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()
	s.markRecentChat(s.now)

	// first tick draws a future fire time
	out, err := svc.HandleDropTick(ctx, &HandleDropTickInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Scheduled)
	s.False(out.Created)

	// far enough ahead to pass any drawn offset
	fireTime := s.now.Add(15 * time.Minute)
	s.poster.EXPECT().
		SendButtonMessage(gomock.Any(), "channel-1", gomock.Any(), gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "drop-msg-1"}, nil)

	out, err = svc.HandleDropTick(ctx, &HandleDropTickInput{GuildID: "guild-1", Now: fireTime})
	s.Require().NoError(err)
	s.True(out.Created)

	active, err := s.drops.Get(ctx, &dropRepo.GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.Equal(models.DropTypeGrab, active.Type)
	s.GreaterOrEqual(active.Amount, int64(20))
	s.LessOrEqual(active.Amount, int64(60))

	// wrong keyword is just chat
	claim, err := svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-1", Username: "Potato", Content: "hello",
	})
	s.Require().NoError(err)
	s.False(claim.Claimed)

	s.poster.EXPECT().
		EditMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	claim, err = svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-1", Username: "Potato", Content: "  GRAB ",
	})
	s.Require().NoError(err)
	s.True(claim.Claimed)
	s.Equal(active.Amount, claim.Amount)

	balance, err := svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-1"})
	s.Require().NoError(err)
	s.Equal(active.Amount, balance.Chips)

	// the losing near-simultaneous claim finds nothing
	claim, err = svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-2", Username: "Rival", Content: "grab",
	})
	s.Require().NoError(err)
	s.False(claim.Claimed)

	balance, err = svc.GetBalance(ctx, &GetBalanceInput{GuildID: "guild-1", UserID: "user-2"})
	s.Require().NoError(err)
	s.Equal(int64(0), balance.Chips)

	// claim stamped the cooldown state for the next scheduling decision
	_, err = s.state.Get(ctx, &stateRepo.GetInput{GuildID: "guild-1", Key: stateRepo.KeyLastDropClaim})
	s.Require().NoError(err)
	_, err = s.state.Get(ctx, &stateRepo.GetInput{GuildID: "guild-1", Key: stateRepo.KeyDropCooldownMinutes})
	s.Require().NoError(err)
}

func (s *EconomyServiceTestSuite) TestMathDropClaimByExactAnswer() {
	ctx := context.Background()
	svc := s.newService(2)
	s.setDropChannel()

	s.poster.EXPECT().
		SendMessage(gomock.Any(), "channel-1", gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "drop-msg-1"}, nil)

	out, err := svc.CreateDrop(ctx, &CreateDropInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.Equal(models.DropTypeMath, out.Type)

	active, err := s.drops.Get(ctx, &dropRepo.GetInput{GuildID: "guild-1"})
	s.Require().NoError(err)
	s.NotEmpty(active.Answer)

	claim, err := svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-1", Username: "Potato", Content: active.Answer + "0",
	})
	s.Require().NoError(err)
	s.False(claim.Claimed)

	s.poster.EXPECT().
		EditMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	claim, err = svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-1", Username: "Potato", Content: active.Answer,
	})
	s.Require().NoError(err)
	s.True(claim.Claimed)
}

func (s *EconomyServiceTestSuite) TestButtonClaimChecksMessageAndType() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	s.poster.EXPECT().
		SendButtonMessage(gomock.Any(), "channel-1", gomock.Any(), gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "drop-msg-2"}, nil)

	_, err := svc.CreateDrop(ctx, &CreateDropInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)

	// a button from an older drop message cannot take the current one
	claim, err := svc.ClaimByButton(ctx, &ClaimByButtonInput{
		GuildID: "guild-1", MessageID: "drop-msg-1", UserID: "user-1", Username: "Potato",
	})
	s.Require().NoError(err)
	s.False(claim.Claimed)

	s.poster.EXPECT().
		EditMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(nil)

	claim, err = svc.ClaimByButton(ctx, &ClaimByButtonInput{
		GuildID: "guild-1", MessageID: "drop-msg-2", UserID: "user-1", Username: "Potato",
	})
	s.Require().NoError(err)
	s.True(claim.Claimed)
}

func (s *EconomyServiceTestSuite) TestDropExpiresAndClaimsAreRejected() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	err := s.drops.Save(ctx, &dropRepo.SaveInput{Drop: &models.Drop{
		GuildID:   "guild-1",
		ChannelID: "channel-1",
		MessageID: "drop-msg-1",
		Amount:    30,
		Type:      models.DropTypeGrab,
		CreatedAt: s.now.Add(-time.Hour),
	}})
	s.Require().NoError(err)

	s.poster.EXPECT().
		EditMessage(gomock.Any(), &platform.Message{ChannelID: "channel-1", MessageID: "drop-msg-1"}, gomock.Any(), gomock.Nil()).
		Return(nil)

	out, err := svc.HandleDropTick(ctx, &HandleDropTickInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.True(out.Expired)

	claim, err := svc.ClaimByMessage(ctx, &ClaimByMessageInput{
		GuildID: "guild-1", UserID: "user-1", Username: "Potato", Content: "grab",
	})
	s.Require().NoError(err)
	s.False(claim.Claimed)
}

func (s *EconomyServiceTestSuite) TestTickSkipsQuietOrUnconfiguredGuilds() {
	ctx := context.Background()
	svc := s.newService(-1)

	// no channel configured
	out, err := svc.HandleDropTick(ctx, &HandleDropTickInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.False(out.Scheduled)

	// channel set but chat went quiet
	s.setDropChannel()
	s.markRecentChat(s.now.Add(-2 * time.Hour))
	out, err = svc.HandleDropTick(ctx, &HandleDropTickInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)
	s.False(out.Scheduled)
}

func (s *EconomyServiceTestSuite) TestCreateDropRejectsSecondActive() {
	ctx := context.Background()
	svc := s.newService(-1)
	s.setDropChannel()

	s.poster.EXPECT().
		SendButtonMessage(gomock.Any(), "channel-1", gomock.Any(), gomock.Any()).
		Return(&platform.Message{ChannelID: "channel-1", MessageID: "drop-msg-1"}, nil)

	_, err := svc.CreateDrop(ctx, &CreateDropInput{GuildID: "guild-1", Now: s.now})
	s.Require().NoError(err)

	_, err = svc.CreateDrop(ctx, &CreateDropInput{GuildID: "guild-1", Now: s.now})
	s.Equal(ErrDropActive, err)
}
