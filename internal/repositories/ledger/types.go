package ledger

import (
	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Config holds the configuration for the Redis repository
type Config struct {
	RedisClient *redis.Client

	// MaxEntries caps the ledger length per guild. Defaults to 500.
	MaxEntries int64
}

// RecordInput is the input for the Record operation
type RecordInput struct {
	Transaction *models.ChipTransaction
}

// RecentInput is the input for the Recent operation
type RecentInput struct {
	GuildID string
	Limit   int64
}
