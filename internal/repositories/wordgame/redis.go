package wordgame

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// ErrGameNotFound is returned when the guild has no word game row
var ErrGameNotFound = errors.New("word game not found")

const (
	// GameKeyPrefix is the prefix for word-game keys
	GameKeyPrefix = "wordgame:"
)

type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed word-game repository
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

func gameKey(guildID string) string {
	return GameKeyPrefix + guildID
}

func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*models.WordGame, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	if input.GuildID == "" {
		return nil, errors.New("input.GuildID is required")
	}

	gameJSON, err := r.client.Get(ctx, gameKey(input.GuildID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get word game: %w", err)
	}

	var game models.WordGame
	if err := json.Unmarshal([]byte(gameJSON), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal word game: %w", err)
	}

	return &game, nil
}

func (r *redisRepository) Save(ctx context.Context, input *SaveInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.Game == nil {
		return errors.New("input.Game is required")
	}

	if input.Game.GuildID == "" {
		return errors.New("input.Game.GuildID is required")
	}

	gameJSON, err := json.Marshal(input.Game)
	if err != nil {
		return fmt.Errorf("failed to marshal word game: %w", err)
	}

	err = r.client.Set(ctx, gameKey(input.Game.GuildID), gameJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to save word game: %w", err)
	}

	return nil
}

func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	if input.GuildID == "" {
		return errors.New("input.GuildID is required")
	}

	err := r.client.Del(ctx, gameKey(input.GuildID)).Err()
	if err != nil {
		return fmt.Errorf("failed to delete word game: %w", err)
	}

	return nil
}
