package drop

import (
	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Config holds the configuration for the Redis repository
type Config struct {
	RedisClient *redis.Client
}

// SaveInput is the input for the Save operation
type SaveInput struct {
	Drop *models.Drop
}

// GetInput is the input for the Get operation
type GetInput struct {
	GuildID string
}

// ClaimInput is the input for the Claim operation
type ClaimInput struct {
	GuildID string
}

// DeleteInput is the input for the Delete operation
type DeleteInput struct {
	GuildID string
}
