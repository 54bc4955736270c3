package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	chipsKeyPrefix     = "chips:"
	usernamesKeyPrefix = "usernames:"
)

var (
	// ErrUserNotRanked is returned when a user has no positive balance
	ErrUserNotRanked = errors.New("user not ranked")

	// ErrNegativeAmount is returned for negative credit or set amounts
	ErrNegativeAmount = errors.New("amount cannot be negative")
)

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed user repository
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

func chipsKey(guildID string) string {
	return chipsKeyPrefix + guildID
}

func usernamesKey(guildID string) string {
	return usernamesKeyPrefix + guildID
}

// AddChips atomically credits chips to a user. ZIncrBy is the
// insert-or-add upsert, so interleaved credits never lose updates.
func (r *redisRepository) AddChips(ctx context.Context, input *AddChipsInput) (int64, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return 0, errors.New("input, guild ID and user ID cannot be empty")
	}

	if input.Amount < 0 {
		return 0, ErrNegativeAmount
	}

	pipe := r.client.Pipeline()
	incr := pipe.ZIncrBy(ctx, chipsKey(input.GuildID), float64(input.Amount), input.UserID)
	if input.Username != "" {
		pipe.HSet(ctx, usernamesKey(input.GuildID), input.UserID, input.Username)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to add chips: %w", err)
	}

	return int64(incr.Val()), nil
}

// SetChips sets a user's balance to an absolute value
func (r *redisRepository) SetChips(ctx context.Context, input *SetChipsInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return errors.New("input, guild ID and user ID cannot be empty")
	}

	if input.Amount < 0 {
		return ErrNegativeAmount
	}

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, chipsKey(input.GuildID), redis.Z{
		Score:  float64(input.Amount),
		Member: input.UserID,
	})
	if input.Username != "" {
		pipe.HSet(ctx, usernamesKey(input.GuildID), input.UserID, input.Username)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set chips: %w", err)
	}

	return nil
}

// SetUsername records the display name shown on the leaderboard
func (r *redisRepository) SetUsername(ctx context.Context, input *SetUsernameInput) error {
	if input == nil || input.GuildID == "" || input.UserID == "" || input.Username == "" {
		return errors.New("input, guild ID, user ID and username cannot be empty")
	}

	err := r.client.HSet(ctx, usernamesKey(input.GuildID), input.UserID, input.Username).Err()
	if err != nil {
		return fmt.Errorf("failed to set username: %w", err)
	}

	return nil
}

// GetBalance retrieves a user's balance
func (r *redisRepository) GetBalance(ctx context.Context, input *GetBalanceInput) (int64, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return 0, errors.New("input, guild ID and user ID cannot be empty")
	}

	score, err := r.client.ZScore(ctx, chipsKey(input.GuildID), input.UserID).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return int64(score), nil
}

// GetRank retrieves a user's 1-based position among positive balances
func (r *redisRepository) GetRank(ctx context.Context, input *GetRankInput) (int, error) {
	if input == nil || input.GuildID == "" || input.UserID == "" {
		return 0, errors.New("input, guild ID and user ID cannot be empty")
	}

	balance, err := r.GetBalance(ctx, &GetBalanceInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	})
	if err != nil {
		return 0, err
	}

	if balance <= 0 {
		return 0, ErrUserNotRanked
	}

	// Rank is one more than the count of strictly larger balances, so
	// tied users share a rank.
	larger, err := r.client.ZCount(ctx, chipsKey(input.GuildID), fmt.Sprintf("(%d", balance), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get rank: %w", err)
	}

	return int(larger) + 1, nil
}

// GetLeaderboard retrieves the top positive balances in descending order
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) ([]*models.LeaderboardEntry, error) {
	if input == nil || input.GuildID == "" {
		return nil, errors.New("input and guild ID cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	members, err := r.client.ZRevRangeByScoreWithScores(ctx, chipsKey(input.GuildID), &redis.ZRangeBy{
		Min:    "(0",
		Max:    "+inf",
		Offset: 0,
		Count:  int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	if len(members) == 0 {
		return []*models.LeaderboardEntry{}, nil
	}

	userIDs := make([]string, 0, len(members))
	for _, member := range members {
		userIDs = append(userIDs, member.Member.(string))
	}

	usernames, err := r.client.HMGet(ctx, usernamesKey(input.GuildID), userIDs...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usernames: %w", err)
	}

	entries := make([]*models.LeaderboardEntry, 0, len(members))
	for i, member := range members {
		username := ""
		if name, ok := usernames[i].(string); ok {
			username = name
		}

		entries = append(entries, &models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   member.Member.(string),
			Username: username,
			Chips:    int64(member.Score),
		})
	}

	return entries, nil
}

// CountUsers returns how many users have a recorded balance
func (r *redisRepository) CountUsers(ctx context.Context, input *CountUsersInput) (int64, error) {
	if input == nil || input.GuildID == "" {
		return 0, errors.New("input and guild ID cannot be empty")
	}

	count, err := r.client.ZCard(ctx, chipsKey(input.GuildID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
