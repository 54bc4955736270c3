package state

// Well-known state keys. Every caller goes through these constants so a
// renamed key is a compile error, not a silent miss.
const (
	// KeyLastMessage is the RFC3339 time of the last human message seen
	KeyLastMessage = "last_message_at"

	// KeyLastCodePurple is the RFC3339 time of the last inactivity nudge
	KeyLastCodePurple = "last_code_purple_at"

	// KeyLastRewardsDate is the local calendar date (2006-01-02) the
	// daily rewards last posted
	KeyLastRewardsDate = "last_rewards_date"

	// KeyDropScheduledAt is the RFC3339 time the next drop fires
	KeyDropScheduledAt = "drop_scheduled_at"

	// KeyLastDropClaim is the RFC3339 time of the last claimed drop
	KeyLastDropClaim = "last_drop_claim_at"

	// KeyDropCooldownMinutes is the randomized cooldown drawn at the
	// last claim, consumed by the next scheduling decision
	KeyDropCooldownMinutes = "drop_cooldown_minutes"

	// KeyRewardsSchedule is an optional per-guild "HH:MM" local time
	// overriding the default daily rewards time
	KeyRewardsSchedule = "schedule_rewards"

	// KeyOverrideQuestion forces an early one-off daily question post;
	// deleted after the send attempt
	KeyOverrideQuestion = "next_question"

	// KeyOverrideRewards forces an early one-off rewards run; deleted
	// after the send attempt
	KeyOverrideRewards = "next_rewards"

	// KeyOverrideDrop forces an early one-off chip drop; deleted after
	// the send attempt
	KeyOverrideDrop = "next_drop"
)

// KeyLastQuestion is the RFC3339 time a category last posted
func KeyLastQuestion(category string) string {
	return "last_question_" + category
}
