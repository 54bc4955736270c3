package activity

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis activity repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// IncrementChatterInput adds one message to a day's counter
type IncrementChatterInput struct {
	GuildID string
	UserID  string
	Date    string
}

// IncrementActivityInput adds points to a day's counter
type IncrementActivityInput struct {
	GuildID string
	UserID  string
	Date    string
	Points  int64
}

// TopChattersInput identifies a day's chatter ranking
type TopChattersInput struct {
	GuildID string
	Date    string
	Limit   int
}

// TopActivityInput identifies a day's activity ranking
type TopActivityInput struct {
	GuildID string
	Date    string
	Limit   int
}

// ClearDayInput identifies a day's counters to delete
type ClearDayInput struct {
	GuildID string
	Date    string
}

// StartVoiceSessionInput records a voice join
type StartVoiceSessionInput struct {
	GuildID  string
	UserID   string
	JoinedAt time.Time
}

// EndVoiceSessionInput closes a voice session
type EndVoiceSessionInput struct {
	GuildID string
	UserID  string
	Now     time.Time
}
