package wordgame

import (
	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Config holds the configuration for the Redis repository
type Config struct {
	RedisClient *redis.Client
}

// GetInput is the input for the Get operation
type GetInput struct {
	GuildID string
}

// SaveInput is the input for the Save operation
type SaveInput struct {
	Game *models.WordGame
}

// DeleteInput is the input for the Delete operation
type DeleteInput struct {
	GuildID string
}
