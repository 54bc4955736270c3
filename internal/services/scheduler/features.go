package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/platform"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
)

// PostQuestion posts the next question for a category immediately
func (s *service) PostQuestion(ctx context.Context, input *PostQuestionInput) (*PostQuestionOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	channelID, err := s.stateRepo.GetChannel(ctx, &stateRepo.GetChannelInput{
		GuildID: input.GuildID,
		Feature: input.Category,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return nil, ErrNoChannelConfigured
		}
		return nil, fmt.Errorf("failed to get question channel: %w", err)
	}

	selection, err := s.questions.SelectQuestion(ctx, &questions.SelectQuestionInput{
		GuildID:  input.GuildID,
		Category: input.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to select question: %w", err)
	}

	meta := config.QuestionEmbeds[input.Category]
	embed := &platform.Embed{
		Title:       meta.Title,
		Description: questionBody(selection),
		FooterText:  meta.FooterText,
		Color:       meta.Color,
	}

	content := ""
	roleID, err := s.stateRepo.GetPingRole(ctx, &stateRepo.GetPingRoleInput{
		GuildID: input.GuildID,
		Feature: input.Category,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to get ping role: %w", err)
	}
	if err == nil && roleID != "" {
		content = "<@&" + roleID + ">"
	}

	if _, err := s.poster.SendEmbed(ctx, channelID, content, embed); err != nil {
		return nil, fmt.Errorf("failed to post question: %w", err)
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	if err := s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyLastQuestion(input.Category),
		Value:   now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("failed to stamp question time: %w", err)
	}

	return &PostQuestionOutput{Kind: selection.Kind, Text: selection.Text}, nil
}

// questionBody formats the embed description for one selection
func questionBody(selection *questions.SelectQuestionOutput) string {
	if selection.TypeOne != "" {
		return fmt.Sprintf("**%s** or **%s**\n\n%s", selection.TypeOne, selection.TypeTwo, selection.Text)
	}
	if selection.Kind != "" {
		return fmt.Sprintf("**%s**\n\n%s", selection.Kind, selection.Text)
	}
	return selection.Text
}

// checkCodePurple nudges a guild that has gone quiet. Guilds with no
// recorded activity are left alone, there is nothing to revive yet.
func (s *service) checkCodePurple(ctx context.Context, guildID string, now time.Time) (bool, error) {
	lastMessage, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyLastMessage,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}

	lastAt, err := time.Parse(time.RFC3339, lastMessage)
	if err != nil {
		return false, fmt.Errorf("malformed last message time %q: %w", lastMessage, err)
	}
	if now.Sub(lastAt) < s.config.InactivityThreshold {
		return false, nil
	}

	lastNudge, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyLastCodePurple,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return false, err
	}
	if err == nil {
		if nudgedAt, parseErr := time.Parse(time.RFC3339, lastNudge); parseErr == nil {
			if now.Sub(nudgedAt) < s.config.NudgeCooldown {
				return false, nil
			}
		}
	}

	if err := s.sendCodePurple(ctx, guildID, now); err != nil {
		if errors.Is(err, ErrNoChannelConfigured) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// ForceCodePurple sends an inactivity nudge regardless of thresholds
func (s *service) ForceCodePurple(ctx context.Context, input *ForceCodePurpleInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	return s.sendCodePurple(ctx, input.GuildID, input.Now)
}

func (s *service) sendCodePurple(ctx context.Context, guildID string, now time.Time) error {
	channelID, err := s.stateRepo.GetChannel(ctx, &stateRepo.GetChannelInput{
		GuildID: guildID,
		Feature: config.FeatureCodePurple,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return ErrNoChannelConfigured
		}
		return fmt.Errorf("failed to get code purple channel: %w", err)
	}

	content := config.CodePurpleMessages[s.picker.Intn(len(config.CodePurpleMessages))]

	roleID, err := s.stateRepo.GetPingRole(ctx, &stateRepo.GetPingRoleInput{
		GuildID: guildID,
		Feature: config.FeatureCodePurple,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return fmt.Errorf("failed to get ping role: %w", err)
	}
	if err == nil && roleID != "" {
		content = "<@&" + roleID + "> " + content
	}

	if _, err := s.poster.SendMessage(ctx, channelID, content); err != nil {
		return fmt.Errorf("failed to send code purple: %w", err)
	}

	if err := s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyLastCodePurple,
		Value:   now.UTC().Format(time.RFC3339),
	}); err != nil {
		return fmt.Errorf("failed to stamp code purple time: %w", err)
	}

	return nil
}

// checkRewards fires the daily payout at the guild's local rewards
// time, or early when a one-off override is pending. The payout itself
// refuses to run twice on one calendar date.
func (s *service) checkRewards(ctx context.Context, guildID string, now time.Time) (bool, error) {
	override, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyOverrideRewards,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return false, err
	}
	if err == nil {
		return s.fireRewardsOverride(ctx, guildID, override, now)
	}

	hour, minute := s.rewardsTime(ctx, guildID)
	local := now.In(s.location)
	if local.Hour() != hour || local.Minute() != minute {
		return false, nil
	}

	output, err := s.economy.RunDailyRewards(ctx, &economy.RunDailyRewardsInput{
		GuildID: guildID,
		Now:     now,
	})
	if err != nil {
		return false, err
	}

	return output.Posted, nil
}

func (s *service) fireRewardsOverride(ctx context.Context, guildID string, override string, now time.Time) (bool, error) {
	fireAt, parseErr := time.Parse(time.RFC3339, override)
	if parseErr == nil && now.Before(fireAt) {
		return false, nil
	}

	ran := false
	if parseErr == nil {
		output, err := s.economy.RunDailyRewards(ctx, &economy.RunDailyRewardsInput{
			GuildID: guildID,
			Now:     now,
		})
		if err != nil {
			return false, err
		}
		ran = output.Posted
	}

	if err := s.stateRepo.Delete(ctx, &stateRepo.DeleteInput{
		GuildID: guildID,
		Key:     stateRepo.KeyOverrideRewards,
	}); err != nil {
		return ran, err
	}

	return ran, nil
}

// rewardsTime returns the local daily rewards time in effect for a
// guild, falling back to the service defaults when the stored value is
// absent or unparseable.
func (s *service) rewardsTime(ctx context.Context, guildID string) (int, int) {
	stored, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyRewardsSchedule,
	})
	if err != nil {
		return s.config.RewardsHour, s.config.RewardsMinute
	}

	parts := strings.SplitN(stored, ":", 2)
	if len(parts) != 2 {
		return s.config.RewardsHour, s.config.RewardsMinute
	}

	hour, hourErr := strconv.Atoi(parts[0])
	minute, minuteErr := strconv.Atoi(parts[1])
	if hourErr != nil || minuteErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return s.config.RewardsHour, s.config.RewardsMinute
	}

	return hour, minute
}
