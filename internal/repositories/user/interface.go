package user

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/user Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for chip balance persistence
type Repository interface {
	// AddChips atomically credits chips to a user, creating them if needed,
	// and returns the new balance
	AddChips(ctx context.Context, input *AddChipsInput) (int64, error)

	// SetChips sets a user's balance to an absolute non-negative value
	SetChips(ctx context.Context, input *SetChipsInput) error

	// SetUsername records the display name shown on the leaderboard
	SetUsername(ctx context.Context, input *SetUsernameInput) error

	// GetBalance retrieves a user's balance, zero when unknown
	GetBalance(ctx context.Context, input *GetBalanceInput) (int64, error)

	// GetRank retrieves a user's 1-based leaderboard position among
	// positive balances, returning ErrUserNotRanked otherwise
	GetRank(ctx context.Context, input *GetRankInput) (int, error)

	// GetLeaderboard retrieves the top balances in descending order
	GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) ([]*models.LeaderboardEntry, error)

	// CountUsers returns how many users have a recorded balance
	CountUsers(ctx context.Context, input *CountUsersInput) (int64, error)
}
