package economy

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/crispsgc/crisps-bot/internal/services/economy Service

import "context"

// Service defines the interface for the chips economy: balances,
// activity tracking, the chip-drop lifecycle, and daily rewards.
type Service interface {
	// GetBalance retrieves a user's chips and leaderboard rank
	GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error)

	// SetBalance sets a user's balance to an absolute value (admin)
	SetBalance(ctx context.Context, input *SetBalanceInput) (*SetBalanceOutput, error)

	// GetLeaderboard retrieves the top balances plus the caller's position
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error)

	// TrackMessage records a human message for activity counters and
	// the inactivity-nudge timestamp
	TrackMessage(ctx context.Context, input *TrackMessageInput) error

	// TrackVoiceJoin opens a voice session for the user
	TrackVoiceJoin(ctx context.Context, input *TrackVoiceJoinInput) error

	// TrackVoiceLeave closes the user's voice session and credits the
	// elapsed minutes as activity points
	TrackVoiceLeave(ctx context.Context, input *TrackVoiceLeaveInput) error

	// HandleDropTick advances the drop lifecycle one step: expire a
	// stale drop, fire a due scheduled drop, or schedule the next one
	HandleDropTick(ctx context.Context, input *HandleDropTickInput) (*HandleDropTickOutput, error)

	// CreateDrop posts a new drop immediately
	CreateDrop(ctx context.Context, input *CreateDropInput) (*CreateDropOutput, error)

	// ClaimByMessage attempts to claim the active drop with a chat message
	ClaimByMessage(ctx context.Context, input *ClaimByMessageInput) (*ClaimOutput, error)

	// ClaimByButton attempts to claim the active drop with the grab button
	ClaimByButton(ctx context.Context, input *ClaimByButtonInput) (*ClaimOutput, error)

	// RunDailyRewards pays out the day's chatter and activity rewards
	// once per calendar date
	RunDailyRewards(ctx context.Context, input *RunDailyRewardsInput) (*RunDailyRewardsOutput, error)

	// RecentTransactions retrieves the latest ledger entries (admin)
	RecentTransactions(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error)
}
