package scheduler

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/crispsgc/crisps-bot/internal/services/scheduler Service

import "context"

// Service defines the interface for the minute-granularity schedule
// engine: the daily question rotation, Code Purple checks, and the
// daily reward trigger.
type Service interface {
	// Tick evaluates every guild's trigger conditions against Now.
	// Failures in one feature or guild are logged and do not stop the
	// rest of the tick.
	Tick(ctx context.Context, input *TickInput) (*TickOutput, error)

	// PostQuestion posts the next question for a category immediately
	PostQuestion(ctx context.Context, input *PostQuestionInput) (*PostQuestionOutput, error)

	// ForceCodePurple sends an inactivity nudge regardless of thresholds
	ForceCodePurple(ctx context.Context, input *ForceCodePurpleInput) error

	// UpcomingSchedule reports the guild's next scheduled events
	UpcomingSchedule(ctx context.Context, input *UpcomingScheduleInput) (*UpcomingScheduleOutput, error)

	// ResetTimer fast-forwards features with one-off overrides
	ResetTimer(ctx context.Context, input *ResetTimerInput) (*ResetTimerOutput, error)

	// SetRewardsTime stores a per-guild daily rewards time
	SetRewardsTime(ctx context.Context, input *SetRewardsTimeInput) error
}
