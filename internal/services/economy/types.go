package economy

import (
	"time"

	"github.com/crispsgc/crisps-bot/internal/common/clock"
	"github.com/crispsgc/crisps-bot/internal/common/uuid"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	"github.com/crispsgc/crisps-bot/internal/random"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	ledgerRepo "github.com/crispsgc/crisps-bot/internal/repositories/ledger"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
)

// Config holds the configuration for the economy service
type Config struct {
	UserRepo     userRepo.Repository
	ActivityRepo activityRepo.Repository
	DropRepo     dropRepo.Repository
	LedgerRepo   ledgerRepo.Repository
	StateRepo    stateRepo.Repository

	Poster        platform.Poster
	Picker        random.Picker
	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// Location is the reference timezone for daily windows
	Location *time.Location

	// TopChatterReward and SecondChatterReward are the daily chatter
	// payouts. A lone chatter sweeps both.
	TopChatterReward    int64
	SecondChatterReward int64

	// ActivityRewards are the daily payouts for the top activity
	// scorers, highest first
	ActivityRewards []int64

	// DropAmountMin and DropAmountMax bound the random drop reward
	DropAmountMin int64
	DropAmountMax int64

	// MathChance is the probability a drop is a math challenge
	MathChance float64

	// DropTimeout expires an unclaimed drop
	DropTimeout time.Duration

	// ActivityWindow is how recent the last message must be for a drop
	// to be scheduled
	ActivityWindow time.Duration

	// DropDelayMin and DropDelayMax bound the random offset between a
	// scheduling decision and the drop firing
	DropDelayMin time.Duration
	DropDelayMax time.Duration

	// DropCooldownMin and DropCooldownMax bound the random cooldown
	// drawn after each claim
	DropCooldownMin time.Duration
	DropCooldownMax time.Duration
}

// GetBalanceInput is the input for the GetBalance operation
type GetBalanceInput struct {
	GuildID string
	UserID  string
}

// GetBalanceOutput is the output for the GetBalance operation
type GetBalanceOutput struct {
	Chips  int64
	Rank   int
	Ranked bool
}

// SetBalanceInput is the input for the SetBalance operation
type SetBalanceInput struct {
	GuildID  string
	UserID   string
	Username string
	Amount   int64
}

// SetBalanceOutput is the output for the SetBalance operation
type SetBalanceOutput struct {
	Chips int64
}

// GetLeaderboardInput is the input for the GetLeaderboard operation
type GetLeaderboardInput struct {
	GuildID string
	UserID  string
	Limit   int
}

// GetLeaderboardOutput is the output for the GetLeaderboard operation
type GetLeaderboardOutput struct {
	Entries []*models.LeaderboardEntry

	// Caller's position, when ranked
	CallerRank   int
	CallerChips  int64
	CallerRanked bool

	TotalUsers int64
}

// TrackMessageInput is the input for the TrackMessage operation
type TrackMessageInput struct {
	GuildID  string
	UserID   string
	Username string
}

// TrackVoiceJoinInput is the input for the TrackVoiceJoin operation
type TrackVoiceJoinInput struct {
	GuildID string
	UserID  string
}

// TrackVoiceLeaveInput is the input for the TrackVoiceLeave operation
type TrackVoiceLeaveInput struct {
	GuildID string
	UserID  string
}

// HandleDropTickInput is the input for the HandleDropTick operation
type HandleDropTickInput struct {
	GuildID string
	Now     time.Time
}

// HandleDropTickOutput is the output for the HandleDropTick operation
type HandleDropTickOutput struct {
	// Expired reports that a stale drop was cleaned up
	Expired bool

	// Scheduled reports that a future drop time was drawn
	Scheduled bool

	// Created reports that a due drop fired
	Created bool
}

// CreateDropInput is the input for the CreateDrop operation
type CreateDropInput struct {
	GuildID string
	Now     time.Time
}

// CreateDropOutput is the output for the CreateDrop operation
type CreateDropOutput struct {
	Amount int64
	Type   models.DropType
}

// ClaimByMessageInput is the input for the ClaimByMessage operation
type ClaimByMessageInput struct {
	GuildID  string
	UserID   string
	Username string
	Content  string
}

// ClaimByButtonInput is the input for the ClaimByButton operation
type ClaimByButtonInput struct {
	GuildID   string
	MessageID string
	UserID    string
	Username  string
}

// ClaimOutput is the output for the claim operations
type ClaimOutput struct {
	Claimed bool
	Amount  int64
}

// RunDailyRewardsInput is the input for the RunDailyRewards operation
type RunDailyRewardsInput struct {
	GuildID string
	Now     time.Time
}

// RunDailyRewardsOutput is the output for the RunDailyRewards operation
type RunDailyRewardsOutput struct {
	// Posted reports that the rewards message went out
	Posted bool

	// AlreadyPosted reports that today's run already happened
	AlreadyPosted bool
}

// RecentTransactionsInput is the input for the RecentTransactions operation
type RecentTransactionsInput struct {
	GuildID string
	Limit   int64
}

// RecentTransactionsOutput is the output for the RecentTransactions operation
type RecentTransactionsOutput struct {
	Transactions []*models.ChipTransaction
}
