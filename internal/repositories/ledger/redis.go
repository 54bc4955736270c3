package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

const (
	// LedgerKeyPrefix is the prefix for ledger list keys
	LedgerKeyPrefix = "ledger:"

	// DefaultMaxEntries is the default per-guild ledger cap
	DefaultMaxEntries = 500
)

type redisRepository struct {
	client     *redis.Client
	maxEntries int64
}

// NewRedis creates a new Redis-backed ledger repository
func NewRedis(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("cfg.RedisClient is required")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	return &redisRepository{
		client:     cfg.RedisClient,
		maxEntries: maxEntries,
	}, nil
}

func ledgerKey(guildID string) string {
	return LedgerKeyPrefix + guildID
}

func (r *redisRepository) Record(ctx context.Context, input *RecordInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.Transaction == nil {
		return errors.New("input.Transaction is required")
	}

	if input.Transaction.GuildID == "" {
		return errors.New("input.Transaction.GuildID is required")
	}

	txJSON, err := json.Marshal(input.Transaction)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}

	key := ledgerKey(input.Transaction.GuildID)

	pipe := r.client.Pipeline()
	pipe.LPush(ctx, key, txJSON)
	pipe.LTrim(ctx, key, 0, r.maxEntries-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	return nil
}

func (r *redisRepository) Recent(ctx context.Context, input *RecentInput) ([]*models.ChipTransaction, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if input.GuildID == "" {
		return nil, errors.New("input.GuildID is required")
	}

	limit := input.Limit
	if limit <= 0 || limit > r.maxEntries {
		limit = r.maxEntries
	}

	rows, err := r.client.LRange(ctx, ledgerKey(input.GuildID), 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	transactions := make([]*models.ChipTransaction, 0, len(rows))
	for _, row := range rows {
		var tx models.ChipTransaction
		if err := json.Unmarshal([]byte(row), &tx); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	return transactions, nil
}
