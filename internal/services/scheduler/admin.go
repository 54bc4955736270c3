package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crispsgc/crisps-bot/internal/config"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
)

// UpcomingSchedule reports the guild's next scheduled events
func (s *service) UpcomingSchedule(ctx context.Context, input *UpcomingScheduleInput) (*UpcomingScheduleOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	schedule, err := s.stateRepo.GetSchedule(ctx, &stateRepo.GetScheduleInput{GuildID: input.GuildID})
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	hour, minute := s.rewardsTime(ctx, input.GuildID)

	output := &UpcomingScheduleOutput{
		RewardsTime: fmt.Sprintf("%02d:%02d", hour, minute),
		Timezone:    s.location.String(),
	}

	if schedule.NextQuestion.IsZero() {
		return output, nil
	}

	output.Bootstrapped = true
	output.NextQuestionAt = schedule.NextQuestion.In(s.location)
	output.NextCategory = config.RotationOrder[schedule.QuestionIndex%len(config.RotationOrder)]

	return output, nil
}

// ResetTimer fast-forwards features by writing one-off override keys.
// Questions and drops fire a minute out, rewards two, so an admin
// watching the channel sees them land in order.
func (s *service) ResetTimer(ctx context.Context, input *ResetTimerInput) (*ResetTimerOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	var features []ResetTimerFeature
	switch input.Feature {
	case ResetFeatureAll:
		features = []ResetTimerFeature{ResetFeatureQuestion, ResetFeatureDrop, ResetFeatureRewards}
	case ResetFeatureQuestion, ResetFeatureDrop, ResetFeatureRewards:
		features = []ResetTimerFeature{input.Feature}
	default:
		return nil, ErrUnknownFeature
	}

	output := &ResetTimerOutput{}
	for _, feature := range features {
		key := ""
		fireAt := input.Now.Add(time.Minute)
		switch feature {
		case ResetFeatureQuestion:
			key = stateRepo.KeyOverrideQuestion
		case ResetFeatureDrop:
			key = stateRepo.KeyOverrideDrop
		case ResetFeatureRewards:
			key = stateRepo.KeyOverrideRewards
			fireAt = input.Now.Add(2 * time.Minute)
		}

		if err := s.stateRepo.Set(ctx, &stateRepo.SetInput{
			GuildID: input.GuildID,
			Key:     key,
			Value:   fireAt.UTC().Format(time.RFC3339),
		}); err != nil {
			return nil, fmt.Errorf("failed to set %s override: %w", feature, err)
		}

		output.Applied = append(output.Applied, feature)
	}

	return output, nil
}

// SetRewardsTime stores a per-guild daily rewards time
func (s *service) SetRewardsTime(ctx context.Context, input *SetRewardsTimeInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.Hour < 0 || input.Hour > 23 || input.Minute < 0 || input.Minute > 59 {
		return ErrInvalidTime
	}

	if err := s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyRewardsSchedule,
		Value:   fmt.Sprintf("%02d:%02d", input.Hour, input.Minute),
	}); err != nil {
		return fmt.Errorf("failed to set rewards time: %w", err)
	}

	return nil
}
