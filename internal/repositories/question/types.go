package question

import (
	"github.com/redis/go-redis/v9"
)

// Config holds the configuration for the Redis repository
type Config struct {
	RedisClient *redis.Client
}

// GetUsedInput is the input for the GetUsed operation
type GetUsedInput struct {
	GuildID  string
	Category string
}

// MarkUsedInput is the input for the MarkUsed operation
type MarkUsedInput struct {
	GuildID  string
	Category string
	Index    int
}

// ResetInput is the input for the Reset operation
type ResetInput struct {
	GuildID  string
	Category string
}
