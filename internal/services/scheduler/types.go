package scheduler

import (
	"time"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/platform"
	"github.com/crispsgc/crisps-bot/internal/random"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
)

// Config holds the configuration for the scheduler service
type Config struct {
	StateRepo stateRepo.Repository
	Questions questions.Service
	Economy   economy.Service
	Poster    platform.Poster
	Picker    random.Picker

	// Location is the reference timezone for hour and date comparisons
	Location *time.Location

	// Features toggles whole features off. Defaults to all on.
	Features *config.Features

	// BootstrapDelay is how soon after first sight of a guild the
	// rotation fires. Defaults to 2 minutes.
	BootstrapDelay time.Duration

	// InactivityThreshold is the quiet period before a Code Purple
	// fires. Defaults to 6 hours.
	InactivityThreshold time.Duration

	// NudgeCooldown is the minimum spacing between Code Purples.
	// Defaults to 12 hours.
	NudgeCooldown time.Duration

	// RewardsHour and RewardsMinute are the default local daily
	// rewards time, overridable per guild. Defaults to 20:00.
	RewardsHour   int
	RewardsMinute int
}

// TickInput is the input for the Tick operation
type TickInput struct {
	GuildIDs []string
	Now      time.Time
}

// TickOutput is the output for the Tick operation
type TickOutput struct {
	// QuestionsPosted counts rotation and override question fires
	QuestionsPosted int

	// NudgesSent counts Code Purple posts
	NudgesSent int

	// RewardsRuns counts daily reward payouts
	RewardsRuns int
}

// PostQuestionInput is the input for the PostQuestion operation
type PostQuestionInput struct {
	GuildID  string
	Category string
	Now      time.Time
}

// PostQuestionOutput is the output for the PostQuestion operation
type PostQuestionOutput struct {
	Kind string
	Text string
}

// ForceCodePurpleInput is the input for the ForceCodePurple operation
type ForceCodePurpleInput struct {
	GuildID string
	Now     time.Time
}

// UpcomingScheduleInput is the input for the UpcomingSchedule operation
type UpcomingScheduleInput struct {
	GuildID string
	Now     time.Time
}

// UpcomingScheduleOutput is the output for the UpcomingSchedule operation
type UpcomingScheduleOutput struct {
	// Bootstrapped is false until the rotation has a stored schedule
	Bootstrapped bool

	// NextQuestionAt and NextCategory describe the rotation's next fire
	NextQuestionAt time.Time
	NextCategory   string

	// RewardsTime is the local "HH:MM" daily rewards time in effect
	RewardsTime string

	// Timezone names the reference timezone
	Timezone string
}

// ResetTimerFeature selects what /resettimer fast-forwards
type ResetTimerFeature string

const (
	ResetFeatureAll      ResetTimerFeature = "all"
	ResetFeatureQuestion ResetTimerFeature = "question"
	ResetFeatureDrop     ResetTimerFeature = "drop"
	ResetFeatureRewards  ResetTimerFeature = "rewards"
)

// ResetTimerInput is the input for the ResetTimer operation
type ResetTimerInput struct {
	GuildID string
	Feature ResetTimerFeature
	Now     time.Time
}

// ResetTimerOutput is the output for the ResetTimer operation
type ResetTimerOutput struct {
	// Applied lists the features that were fast-forwarded
	Applied []ResetTimerFeature
}

// SetRewardsTimeInput is the input for the SetRewardsTime operation
type SetRewardsTimeInput struct {
	GuildID string
	Hour    int
	Minute  int
}
