package economy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/models"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
)

// RunDailyRewards pays out the day's chatter and activity rewards. The
// stored last-posted date makes repeat invocations on the same calendar
// date no-ops, even when the counters were not yet cleared.
func (s *service) RunDailyRewards(ctx context.Context, input *RunDailyRewardsInput) (*RunDailyRewardsOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	today := s.dateKey(input.Now)

	last, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyLastRewardsDate,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return nil, err
	}
	if err == nil && last == today {
		return &RunDailyRewardsOutput{AlreadyPosted: true}, nil
	}

	// Rewards post in the chip drop channel
	channelID, err := s.stateRepo.GetChannel(ctx, &stateRepo.GetChannelInput{
		GuildID: input.GuildID,
		Feature: config.FeatureChipDrop,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return &RunDailyRewardsOutput{}, nil
		}
		return nil, err
	}

	chatterLines, err := s.payChatterRewards(ctx, input.GuildID, today)
	if err != nil {
		return nil, err
	}

	activityLines, err := s.payActivityRewards(ctx, input.GuildID, today)
	if err != nil {
		return nil, err
	}

	lines := chatterLines
	if len(activityLines) > 0 {
		lines = append(lines, "")
		lines = append(lines, activityLines...)
	}

	if _, err := s.poster.SendMessage(ctx, channelID, strings.Join(lines, "\n")); err != nil {
		return nil, err
	}

	// Counters are consumed whether or not anyone qualified
	err = s.activityRepo.ClearDay(ctx, &activityRepo.ClearDayInput{
		GuildID: input.GuildID,
		Date:    today,
	})
	if err != nil {
		return nil, err
	}

	err = s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyLastRewardsDate,
		Value:   today,
	})
	if err != nil {
		return nil, err
	}

	return &RunDailyRewardsOutput{Posted: true}, nil
}

// payChatterRewards credits the day's top two chatters. A lone chatter
// sweeps both rewards.
func (s *service) payChatterRewards(ctx context.Context, guildID, date string) ([]string, error) {
	chatters, err := s.activityRepo.TopChatters(ctx, &activityRepo.TopChattersInput{
		GuildID: guildID,
		Date:    date,
		Limit:   2,
	})
	if err != nil {
		return nil, err
	}

	if len(chatters) == 0 {
		return []string{config.ChatterRewardNoActivity}, nil
	}

	lines := []string{config.ChatterRewardHeader}

	if len(chatters) == 1 {
		solo := chatters[0]
		total := s.config.TopChatterReward + s.config.SecondChatterReward
		if err := s.creditReward(ctx, guildID, solo.UserID, total, models.ChipReasonTopChatter); err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf(config.ChatterRewardSoloLine, "<@"+solo.UserID+">", total, config.ChipsEmoji))
		return lines, nil
	}

	top, second := chatters[0], chatters[1]

	if err := s.creditReward(ctx, guildID, top.UserID, s.config.TopChatterReward, models.ChipReasonTopChatter); err != nil {
		return nil, err
	}
	lines = append(lines, fmt.Sprintf(config.ChatterRewardTopLine, "<@"+top.UserID+">", s.config.TopChatterReward, config.ChipsEmoji))

	if err := s.creditReward(ctx, guildID, second.UserID, s.config.SecondChatterReward, models.ChipReasonSecondChatter); err != nil {
		return nil, err
	}
	lines = append(lines, fmt.Sprintf(config.ChatterRewardSecondLine, "<@"+second.UserID+">", s.config.SecondChatterReward, config.ChipsEmoji))

	return lines, nil
}

// payActivityRewards credits the day's top activity scorers
func (s *service) payActivityRewards(ctx context.Context, guildID, date string) ([]string, error) {
	top, err := s.activityRepo.TopActivity(ctx, &activityRepo.TopActivityInput{
		GuildID: guildID,
		Date:    date,
		Limit:   len(s.config.ActivityRewards),
	})
	if err != nil {
		return nil, err
	}

	if len(top) == 0 {
		return nil, nil
	}

	lines := []string{config.ActivityRewardHeader}
	for i, entry := range top {
		reward := s.config.ActivityRewards[i]
		if err := s.creditReward(ctx, guildID, entry.UserID, reward, models.ChipReasonActivityReward); err != nil {
			return nil, err
		}
		emoji := config.RankEmojis[i+1]
		if emoji == "" {
			emoji = config.RankEmojiDefault
		}
		lines = append(lines, fmt.Sprintf(config.ActivityRewardLine, emoji, i+1, "<@"+entry.UserID+">", reward, config.ChipsEmoji))
	}

	return lines, nil
}

func (s *service) creditReward(ctx context.Context, guildID, userID string, amount int64, reason models.ChipReason) error {
	_, err := s.userRepo.AddChips(ctx, &userRepo.AddChipsInput{
		GuildID: guildID,
		UserID:  userID,
		Amount:  amount,
	})
	if err != nil {
		return err
	}

	return s.recordTransaction(ctx, guildID, userID, amount, reason)
}
