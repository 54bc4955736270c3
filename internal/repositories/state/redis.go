package state

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	stateKeyPrefix = "state:"

	// Hash field prefixes inside a guild's state hash
	channelFieldPrefix  = "channel_"
	pingRoleFieldPrefix = "ping_role_"

	// Typed schedule fields
	fieldNextQuestion  = "next_daily_question"
	fieldQuestionIndex = "daily_question_index"
)

// ErrKeyNotFound is returned when a state value is not set
var ErrKeyNotFound = errors.New("state key not found")

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed state repository
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

func stateKey(guildID string) string {
	return stateKeyPrefix + guildID
}

// Get retrieves a state value
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (string, error) {
	if input == nil || input.GuildID == "" || input.Key == "" {
		return "", errors.New("input, guild ID and key cannot be empty")
	}

	value, err := r.client.HGet(ctx, stateKey(input.GuildID), input.Key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("failed to get state %s: %w", input.Key, err)
	}

	return value, nil
}

// Set stores a state value
func (r *redisRepository) Set(ctx context.Context, input *SetInput) error {
	if input == nil || input.GuildID == "" || input.Key == "" {
		return errors.New("input, guild ID and key cannot be empty")
	}

	if err := r.client.HSet(ctx, stateKey(input.GuildID), input.Key, input.Value).Err(); err != nil {
		return fmt.Errorf("failed to set state %s: %w", input.Key, err)
	}

	return nil
}

// Delete removes a state value
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) error {
	if input == nil || input.GuildID == "" || input.Key == "" {
		return errors.New("input, guild ID and key cannot be empty")
	}

	if err := r.client.HDel(ctx, stateKey(input.GuildID), input.Key).Err(); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", input.Key, err)
	}

	return nil
}

// GetChannel retrieves the configured channel for a feature
func (r *redisRepository) GetChannel(ctx context.Context, input *GetChannelInput) (string, error) {
	if input == nil || input.GuildID == "" || input.Feature == "" {
		return "", errors.New("input, guild ID and feature cannot be empty")
	}

	return r.Get(ctx, &GetInput{
		GuildID: input.GuildID,
		Key:     channelFieldPrefix + input.Feature,
	})
}

// SetChannel stores the channel for a feature
func (r *redisRepository) SetChannel(ctx context.Context, input *SetChannelInput) error {
	if input == nil || input.GuildID == "" || input.Feature == "" || input.ChannelID == "" {
		return errors.New("input, guild ID, feature and channel ID cannot be empty")
	}

	return r.Set(ctx, &SetInput{
		GuildID: input.GuildID,
		Key:     channelFieldPrefix + input.Feature,
		Value:   input.ChannelID,
	})
}

// GetAllChannels retrieves every configured feature channel
func (r *redisRepository) GetAllChannels(ctx context.Context, input *GetAllChannelsInput) (map[string]string, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, stateKey(input.GuildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get state for guild %s: %w", input.GuildID, err)
	}

	channels := make(map[string]string)
	for field, value := range fields {
		if len(field) > len(channelFieldPrefix) && field[:len(channelFieldPrefix)] == channelFieldPrefix {
			channels[field[len(channelFieldPrefix):]] = value
		}
	}

	return channels, nil
}

// GetPingRole retrieves the role to mention for a feature
func (r *redisRepository) GetPingRole(ctx context.Context, input *GetPingRoleInput) (string, error) {
	if input == nil || input.GuildID == "" || input.Feature == "" {
		return "", errors.New("input, guild ID and feature cannot be empty")
	}

	return r.Get(ctx, &GetInput{
		GuildID: input.GuildID,
		Key:     pingRoleFieldPrefix + input.Feature,
	})
}

// SetPingRole stores the role to mention for a feature
func (r *redisRepository) SetPingRole(ctx context.Context, input *SetPingRoleInput) error {
	if input == nil || input.GuildID == "" || input.Feature == "" || input.RoleID == "" {
		return errors.New("input, guild ID, feature and role ID cannot be empty")
	}

	return r.Set(ctx, &SetInput{
		GuildID: input.GuildID,
		Key:     pingRoleFieldPrefix + input.Feature,
		Value:   input.RoleID,
	})
}

// GetSchedule retrieves the typed rotation schedule for a guild
func (r *redisRepository) GetSchedule(ctx context.Context, input *GetScheduleInput) (*models.GuildSchedule, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	schedule := &models.GuildSchedule{
		GuildID: input.GuildID,
	}

	values, err := r.client.HMGet(ctx, stateKey(input.GuildID), fieldNextQuestion, fieldQuestionIndex).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule for guild %s: %w", input.GuildID, err)
	}

	if raw, ok := values[0].(string); ok && raw != "" {
		next, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid next question time %q: %w", raw, err)
		}
		schedule.NextQuestion = next
	}

	if raw, ok := values[1].(string); ok && raw != "" {
		index, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid question index %q: %w", raw, err)
		}
		schedule.QuestionIndex = index
	}

	return schedule, nil
}

// SaveSchedule persists the typed rotation schedule for a guild
func (r *redisRepository) SaveSchedule(ctx context.Context, input *SaveScheduleInput) error {
	if input == nil || input.Schedule == nil {
		return errors.New("input and schedule cannot be nil")
	}

	schedule := input.Schedule
	if schedule.GuildID == "" {
		return errors.New("schedule guild ID cannot be empty")
	}

	err := r.client.HSet(ctx, stateKey(schedule.GuildID),
		fieldNextQuestion, schedule.NextQuestion.UTC().Format(time.RFC3339),
		fieldQuestionIndex, strconv.Itoa(schedule.QuestionIndex),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to save schedule for guild %s: %w", schedule.GuildID, err)
	}

	return nil
}
