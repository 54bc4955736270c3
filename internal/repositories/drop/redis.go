package drop

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

var (
	// ErrDropNotFound is returned when no drop is pending for the guild
	ErrDropNotFound = errors.New("drop not found")

	// ErrDropExists is returned when the guild already has a pending drop
	ErrDropExists = errors.New("drop already exists")
)

const (
	// DropKeyPrefix is the prefix for pending-drop keys
	DropKeyPrefix = "drop:"
)

type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed drop repository
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

func dropKey(guildID string) string {
	return DropKeyPrefix + guildID
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.Drop == nil {
		return errors.New("input.Drop is required")
	}

	if input.Drop.GuildID == "" {
		return errors.New("input.Drop.GuildID is required")
	}

	dropJSON, err := json.Marshal(input.Drop)
	if err != nil {
		return fmt.Errorf("failed to marshal drop: %w", err)
	}

	// SetNX keeps at most one pending drop per guild
	ok, err := r.client.SetNX(ctx, dropKey(input.Drop.GuildID), dropJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save drop: %w", err)
	}

	if !ok {
		return ErrDropExists
	}

	return nil
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.Drop, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if input.GuildID == "" {
		return nil, errors.New("input.GuildID is required")
	}

	dropJSON, err := r.client.Get(ctx, dropKey(input.GuildID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDropNotFound
		}
		return nil, fmt.Errorf("failed to get drop: %w", err)
	}

	return unmarshalDrop(dropJSON)
}

func (r *redisRepository) Claim(ctx context.Context, input *ClaimInput) (*models.Drop, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if input.GuildID == "" {
		return nil, errors.New("input.GuildID is required")
	}

	// GETDEL consumes the drop atomically so only one claimer wins
	dropJSON, err := r.client.GetDel(ctx, dropKey(input.GuildID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDropNotFound
		}
		return nil, fmt.Errorf("failed to claim drop: %w", err)
	}

	return unmarshalDrop(dropJSON)
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.GuildID == "" {
		return errors.New("input.GuildID is required")
	}

	err := r.client.Del(ctx, dropKey(input.GuildID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete drop: %w", err)
	}

	return nil
}

func unmarshalDrop(dropJSON string) (*models.Drop, error) {
	var drop models.Drop
	if err := json.Unmarshal([]byte(dropJSON), &drop); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drop: %w", err)
	}

	return &drop, nil
}
