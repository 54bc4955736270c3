package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	chatterKeyPrefix  = "chatter:"
	activityKeyPrefix = "activity:"
	voiceKeyPrefix    = "vc:"

	// Counters are consumed and deleted daily; the TTL only catches
	// days the reward routine never ran for.
	counterTTL = 72 * time.Hour
)

// ErrSessionNotFound is returned when a user has no open voice session
var ErrSessionNotFound = errors.New("voice session not found")

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed activity repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func chatterKey(guildID, date string) string {
	return fmt.Sprintf("%s%s:%s", chatterKeyPrefix, guildID, date)
}

func activityKey(guildID, date string) string {
	return fmt.Sprintf("%s%s:%s", activityKeyPrefix, guildID, date)
}

func voiceKey(guildID string) string {
	return voiceKeyPrefix + guildID
}

// IncrementChatter atomically adds one to a user's message count
func (r *redisRepository) IncrementChatter(ctx context.Context, input *IncrementChatterInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" || input.Date == "" {
		return errors.New("input, guild ID, user ID and date cannot be empty")
	}

	key := chatterKey(input.GuildID, input.Date)
	pipe := r.client.Pipeline()
	pipe.ZIncrBy(ctx, key, 1, input.UserID)
	pipe.Expire(ctx, key, counterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment chatter count: %w", err)
	}

	return nil
}

// IncrementActivity atomically adds points to a user's activity
func (r *redisRepository) IncrementActivity(ctx context.Context, input *IncrementActivityInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" || input.Date == "" {
		return errors.New("input, guild ID, user ID and date cannot be empty")
	}

	if input.Points <= 0 {
		return errors.New("points must be positive")
	}

	key := activityKey(input.GuildID, input.Date)
	pipe := r.client.Pipeline()
	pipe.ZIncrBy(ctx, key, float64(input.Points), input.UserID)
	pipe.Expire(ctx, key, counterTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment activity points: %w", err)
	}

	return nil
}

// TopChatters retrieves the highest message counts for a day
func (r *redisRepository) TopChatters(ctx context.Context, input *TopChattersInput) ([]*models.ActivityEntry, error) {
	if input == nil || input.GuildID == "" || input.Date == "" {
		return nil, errors.New("input, guild ID and date cannot be empty")
	}

	return r.topEntries(ctx, chatterKey(input.GuildID, input.Date), input.Limit)
}

// TopActivity retrieves the highest activity points for a day
func (r *redisRepository) TopActivity(ctx context.Context, input *TopActivityInput) ([]*models.ActivityEntry, error) {
	if input == nil || input.GuildID == "" || input.Date == "" {
		return nil, errors.New("input, guild ID and date cannot be empty")
	}

	return r.topEntries(ctx, activityKey(input.GuildID, input.Date), input.Limit)
}

func (r *redisRepository) topEntries(ctx context.Context, key string, limit int) ([]*models.ActivityEntry, error) {
	if limit <= 0 {
		limit = 3
	}

	members, err := r.client.ZRevRangeWithScores(ctx, key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top entries: %w", err)
	}

	entries := make([]*models.ActivityEntry, 0, len(members))
	for _, member := range members {
		entries = append(entries, &models.ActivityEntry{
			UserID: member.Member.(string),
			Points: int64(member.Score),
		})
	}

	return entries, nil
}

// ClearDay deletes a day's chatter and activity counters
func (r *redisRepository) ClearDay(ctx context.Context, input *ClearDayInput) error {
	if input == nil || input.GuildID == "" || input.Date == "" {
		return errors.New("input, guild ID and date cannot be empty")
	}

	err := r.client.Del(ctx,
		chatterKey(input.GuildID, input.Date),
		activityKey(input.GuildID, input.Date),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to clear daily counters: %w", err)
	}

	return nil
}

// StartVoiceSession records a voice-channel join
func (r *redisRepository) StartVoiceSession(ctx context.Context, input *StartVoiceSessionInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return errors.New("input, guild ID and user ID cannot be empty")
	}

	err := r.client.HSet(ctx, voiceKey(input.GuildID), input.UserID,
		input.JoinedAt.UTC().Format(time.RFC3339)).Err()
	if err != nil {
		return fmt.Errorf("failed to start voice session: %w", err)
	}

	return nil
}

// EndVoiceSession closes a user's open session and returns elapsed minutes
func (r *redisRepository) EndVoiceSession(ctx context.Context, input *EndVoiceSessionInput) (int, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return 0, errors.New("input, guild ID and user ID cannot be empty")
	}

	raw, err := r.client.HGet(ctx, voiceKey(input.GuildID), input.UserID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrSessionNotFound
		}
		return 0, fmt.Errorf("failed to get voice session: %w", err)
	}

	joinedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return 0, fmt.Errorf("invalid voice session start %q: %w", raw, err)
	}

	if err := r.client.HDel(ctx, voiceKey(input.GuildID), input.UserID).Err(); err != nil {
		return 0, fmt.Errorf("failed to end voice session: %w", err)
	}

	minutes := int(input.Now.Sub(joinedAt).Minutes())
	if minutes < 0 {
		minutes = 0
	}

	return minutes, nil
}
