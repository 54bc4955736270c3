package user

import (
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis user repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// AddChipsInput credits chips to a user
type AddChipsInput struct {
	GuildID  string
	UserID   string
	Username string
	Amount   int64
}

// SetChipsInput sets a user's absolute balance
type SetChipsInput struct {
	GuildID  string
	UserID   string
	Username string
	Amount   int64
}

// SetUsernameInput records a display name
type SetUsernameInput struct {
	GuildID  string
	UserID   string
	Username string
}

// GetBalanceInput identifies a balance to read
type GetBalanceInput struct {
	GuildID string
	UserID  string
}

// GetRankInput identifies a user whose rank to read
type GetRankInput struct {
	GuildID string
	UserID  string
}

// GetLeaderboardInput identifies a guild leaderboard page
type GetLeaderboardInput struct {
	GuildID string
	Limit   int
}

// CountUsersInput identifies a guild whose users to count
type CountUsersInput struct {
	GuildID string
}
