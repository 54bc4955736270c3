package question

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// UsedKeyPrefix is the prefix for question-usage set keys
	UsedKeyPrefix = "questions_used:"
)

type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed question-usage repository
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

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func usedKey(guildID, category string) string {
	return UsedKeyPrefix + guildID + ":" + category
}

func (r *redisRepository) GetUsed(ctx context.Context, input *GetUsedInput) ([]int, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if input.GuildID == "" {
		return nil, errors.New("input.GuildID is required")
	}

	if input.Category == "" {
		return nil, errors.New("input.Category is required")
	}

	members, err := r.client.SMembers(ctx, usedKey(input.GuildID, input.Category)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get used questions: %w", err)
	}

	used := make([]int, 0, len(members))
	for _, member := range members {
		idx, err := strconv.Atoi(member)
		if err != nil {
			// skip entries that are not indices
			continue
		}
		used = append(used, idx)
	}
	sort.Ints(used)

	return used, nil
}

func (r *redisRepository) MarkUsed(ctx context.Context, input *MarkUsedInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.GuildID == "" {
		return errors.New("input.GuildID is required")
	}

	if input.Category == "" {
		return errors.New("input.Category is required")
	}

	if input.Index < 0 {
		return errors.New("input.Index must not be negative")
	}

	err := r.client.SAdd(ctx, usedKey(input.GuildID, input.Category), strconv.Itoa(input.Index)).Err()
	if err != nil {
		return fmt.Errorf("failed to mark question used: %w", err)
	}

	return nil
}

func (r *redisRepository) Reset(ctx context.Context, input *ResetInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.GuildID == "" {
		return errors.New("input.GuildID is required")
	}

	if input.Category == "" {
		return errors.New("input.Category is required")
	}

	err := r.client.Del(ctx, usedKey(input.GuildID, input.Category)).Err()
	if err != nil {
		return fmt.Errorf("failed to reset used questions: %w", err)
	}

	return nil
}
