package economy

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
)

// DropClaimCustomID identifies the grab button on drop messages
const DropClaimCustomID = "chipdrop_claim"

// HandleDropTick advances the drop lifecycle one step. With a drop
// active it only checks for expiry; otherwise it fires a due scheduled
// drop, or draws a schedule when recent chat activity warrants one.
func (s *service) HandleDropTick(ctx context.Context, input *HandleDropTickInput) (*HandleDropTickOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	output := &HandleDropTickOutput{}

	active, err := s.dropRepo.Get(ctx, &dropRepo.GetInput{GuildID: input.GuildID})
	if err == nil {
		if input.Now.Sub(active.CreatedAt) < s.config.DropTimeout {
			return output, nil
		}
		if err := s.expireDrop(ctx, active); err != nil {
			return nil, err
		}
		output.Expired = true
		return output, nil
	}
	if !errors.Is(err, dropRepo.ErrDropNotFound) {
		return nil, err
	}

	// Drops only run where a channel is configured
	_, err = s.stateRepo.GetChannel(ctx, &stateRepo.GetChannelInput{
		GuildID: input.GuildID,
		Feature: config.FeatureChipDrop,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return output, nil
		}
		return nil, err
	}

	// An admin override fires a one-off drop ahead of any schedule
	override, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyOverrideDrop,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return nil, err
	}
	if err == nil {
		fireAt, parseErr := time.Parse(time.RFC3339, override)
		if parseErr != nil {
			// Malformed override: discard it
			return output, s.stateRepo.Delete(ctx, &stateRepo.DeleteInput{
				GuildID: input.GuildID,
				Key:     stateRepo.KeyOverrideDrop,
			})
		}
		if !input.Now.Before(fireAt) {
			if _, err := s.CreateDrop(ctx, &CreateDropInput{GuildID: input.GuildID, Now: input.Now}); err != nil {
				return nil, err
			}
			// Deleted only after the send went out; a crash before
			// this point repeats the drop on restart
			delErr := s.stateRepo.Delete(ctx, &stateRepo.DeleteInput{
				GuildID: input.GuildID,
				Key:     stateRepo.KeyOverrideDrop,
			})
			if delErr != nil {
				return nil, delErr
			}
			output.Created = true
		}
		return output, nil
	}

	scheduled, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyDropScheduledAt,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return nil, err
	}

	if err == nil {
		fireAt, parseErr := time.Parse(time.RFC3339, scheduled)
		if parseErr != nil || !input.Now.Before(fireAt) {
			delErr := s.stateRepo.Delete(ctx, &stateRepo.DeleteInput{
				GuildID: input.GuildID,
				Key:     stateRepo.KeyDropScheduledAt,
			})
			if delErr != nil {
				return nil, delErr
			}
			if parseErr != nil {
				return output, nil
			}
			if _, err := s.CreateDrop(ctx, &CreateDropInput{GuildID: input.GuildID, Now: input.Now}); err != nil {
				return nil, err
			}
			output.Created = true
		}
		return output, nil
	}

	due, err := s.shouldSchedule(ctx, input.GuildID, input.Now)
	if err != nil || !due {
		return output, err
	}

	offset := s.randomDuration(s.config.DropDelayMin, s.config.DropDelayMax)
	err = s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyDropScheduledAt,
		Value:   input.Now.Add(offset).UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	output.Scheduled = true
	return output, nil
}

// shouldSchedule gates scheduling on recent chat and the post-claim cooldown
func (s *service) shouldSchedule(ctx context.Context, guildID string, now time.Time) (bool, error) {
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
	if err != nil || now.Sub(lastAt) > s.config.ActivityWindow {
		return false, nil
	}

	lastClaim, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyLastDropClaim,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return true, nil
		}
		return false, err
	}

	claimedAt, err := time.Parse(time.RFC3339, lastClaim)
	if err != nil {
		return true, nil
	}

	cooldown := s.config.DropCooldownMin
	stored, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyDropCooldownMinutes,
	})
	if err == nil {
		if minutes, convErr := strconv.Atoi(stored); convErr == nil && minutes > 0 {
			cooldown = time.Duration(minutes) * time.Minute
		}
	} else if !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return false, err
	}

	return now.Sub(claimedAt) >= cooldown, nil
}

// CreateDrop posts a new drop immediately
func (s *service) CreateDrop(ctx context.Context, input *CreateDropInput) (*CreateDropOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if _, err := s.dropRepo.Get(ctx, &dropRepo.GetInput{GuildID: input.GuildID}); err == nil {
		return nil, ErrDropActive
	} else if !errors.Is(err, dropRepo.ErrDropNotFound) {
		return nil, err
	}

	channelID, err := s.stateRepo.GetChannel(ctx, &stateRepo.GetChannelInput{
		GuildID: input.GuildID,
		Feature: config.FeatureChipDrop,
	})
	if err != nil {
		if errors.Is(err, stateRepo.ErrKeyNotFound) {
			return nil, ErrNoDropChannel
		}
		return nil, err
	}

	amount := s.config.DropAmountMin + int64(s.picker.Intn(int(s.config.DropAmountMax-s.config.DropAmountMin)+1))

	drop := &models.Drop{
		GuildID:   input.GuildID,
		ChannelID: channelID,
		Amount:    amount,
		Type:      models.DropTypeGrab,
		CreatedAt: input.Now,
	}

	var msg *platform.Message
	if s.picker.Float64() < s.config.MathChance {
		problem, answer := s.mathChallenge()
		drop.Type = models.DropTypeMath
		drop.Answer = answer

		template := config.DropMathAnnouncements[s.picker.Intn(len(config.DropMathAnnouncements))]
		msg, err = s.poster.SendMessage(ctx, channelID, fmt.Sprintf(template, amount, config.ChipsEmoji, problem))
	} else {
		template := config.DropAnnouncements[s.picker.Intn(len(config.DropAnnouncements))]
		msg, err = s.poster.SendButtonMessage(ctx, channelID, fmt.Sprintf(template, amount, config.ChipsEmoji), &platform.Button{
			Label:    config.GrabButtonLabel,
			CustomID: DropClaimCustomID,
		})
	}
	if err != nil {
		return nil, err
	}

	drop.MessageID = msg.MessageID

	if err := s.dropRepo.Save(ctx, &dropRepo.SaveInput{Drop: drop}); err != nil {
		if errors.Is(err, dropRepo.ErrDropExists) {
			// Lost a race with another creator; withdraw our post
			_ = s.poster.DeleteMessage(ctx, msg)
			return nil, ErrDropActive
		}
		return nil, err
	}

	return &CreateDropOutput{
		Amount: amount,
		Type:   drop.Type,
	}, nil
}

// mathChallenge draws a small arithmetic problem and its exact answer
func (s *service) mathChallenge() (string, string) {
	a := 2 + s.picker.Intn(11)
	b := 2 + s.picker.Intn(11)

	switch s.picker.Intn(3) {
	case 0:
		return fmt.Sprintf("%d + %d", a, b), strconv.Itoa(a + b)
	case 1:
		// keep subtraction results non-negative
		if b > a {
			a, b = b, a
		}
		return fmt.Sprintf("%d - %d", a, b), strconv.Itoa(a - b)
	default:
		return fmt.Sprintf("%d × %d", a, b), strconv.Itoa(a * b)
	}
}

// ClaimByMessage attempts to claim the active drop with a chat message.
// Non-matching content is not an error, it is just ordinary chat.
func (s *service) ClaimByMessage(ctx context.Context, input *ClaimByMessageInput) (*ClaimOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	active, err := s.dropRepo.Get(ctx, &dropRepo.GetInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, dropRepo.ErrDropNotFound) {
			return &ClaimOutput{}, nil
		}
		return nil, err
	}

	content := strings.TrimSpace(input.Content)
	switch active.Type {
	case models.DropTypeGrab:
		if !strings.EqualFold(content, config.GrabKeyword) {
			return &ClaimOutput{}, nil
		}
	case models.DropTypeMath:
		if content != active.Answer {
			return &ClaimOutput{}, nil
		}
	default:
		return &ClaimOutput{}, nil
	}

	return s.consumeDrop(ctx, input.GuildID, input.UserID, input.Username)
}

// ClaimByButton attempts to claim the active drop with the grab button
func (s *service) ClaimByButton(ctx context.Context, input *ClaimByButtonInput) (*ClaimOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	active, err := s.dropRepo.Get(ctx, &dropRepo.GetInput{GuildID: input.GuildID})
	if err != nil {
		if errors.Is(err, dropRepo.ErrDropNotFound) {
			return &ClaimOutput{}, nil
		}
		return nil, err
	}

	// A button press from an earlier, already-settled drop message
	// must not claim the current one
	if active.Type != models.DropTypeGrab || active.MessageID != input.MessageID {
		return &ClaimOutput{}, nil
	}

	return s.consumeDrop(ctx, input.GuildID, input.UserID, input.Username)
}

// consumeDrop settles a matched claim: atomically take the drop, credit
// the winner, record the claim, and draw the next cooldown
func (s *service) consumeDrop(ctx context.Context, guildID, userID, username string) (*ClaimOutput, error) {
	claimed, err := s.dropRepo.Claim(ctx, &dropRepo.ClaimInput{GuildID: guildID})
	if err != nil {
		if errors.Is(err, dropRepo.ErrDropNotFound) {
			// Someone else got here first
			return &ClaimOutput{}, nil
		}
		return nil, err
	}

	_, err = s.userRepo.AddChips(ctx, &userRepo.AddChipsInput{
		GuildID:  guildID,
		UserID:   userID,
		Username: username,
		Amount:   claimed.Amount,
	})
	if err != nil {
		return nil, err
	}

	if err := s.recordTransaction(ctx, guildID, userID, claimed.Amount, models.ChipReasonDropClaim); err != nil {
		return nil, err
	}

	template := config.DropClaimedMessages[s.picker.Intn(len(config.DropClaimedMessages))]
	settled := fmt.Sprintf(template, "<@"+userID+">", claimed.Amount, config.ChipsEmoji)
	_ = s.poster.EditMessage(ctx, &platform.Message{
		ChannelID: claimed.ChannelID,
		MessageID: claimed.MessageID,
	}, settled, nil)

	now := s.clock.Now()
	err = s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyLastDropClaim,
		Value:   now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	// The cooldown before the next drop is random per claim
	cooldown := s.randomDuration(s.config.DropCooldownMin, s.config.DropCooldownMax)
	err = s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyDropCooldownMinutes,
		Value:   strconv.Itoa(int(cooldown / time.Minute)),
	})
	if err != nil {
		return nil, err
	}

	return &ClaimOutput{
		Claimed: true,
		Amount:  claimed.Amount,
	}, nil
}

// expireDrop removes a stale drop and updates its message
func (s *service) expireDrop(ctx context.Context, stale *models.Drop) error {
	err := s.dropRepo.Delete(ctx, &dropRepo.DeleteInput{GuildID: stale.GuildID})
	if err != nil {
		return err
	}

	expired := config.DropExpiredMessages[s.picker.Intn(len(config.DropExpiredMessages))]
	_ = s.poster.EditMessage(ctx, &platform.Message{
		ChannelID: stale.ChannelID,
		MessageID: stale.MessageID,
	}, expired, nil)

	return nil
}

func (s *service) randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.picker.Intn(int(max-min)+1))
}
