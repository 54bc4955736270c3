package state

import (
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

// Config holds configuration for the Redis state repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// GetInput identifies a state value to read
type GetInput struct {
	GuildID string
	Key     string
}

// SetInput identifies a state value to write
type SetInput struct {
	GuildID string
	Key     string
	Value   string
}

// DeleteInput identifies a state value to remove
type DeleteInput struct {
	GuildID string
	Key     string
}

// GetChannelInput identifies a feature channel to read
type GetChannelInput struct {
	GuildID string
	Feature string
}

// SetChannelInput identifies a feature channel to write
type SetChannelInput struct {
	GuildID   string
	Feature   string
	ChannelID string
}

// GetAllChannelsInput identifies a guild whose channels to list
type GetAllChannelsInput struct {
	GuildID string
}

// GetPingRoleInput identifies a feature ping role to read
type GetPingRoleInput struct {
	GuildID string
	Feature string
}

// SetPingRoleInput identifies a feature ping role to write
type SetPingRoleInput struct {
	GuildID string
	Feature string
	RoleID  string
}

// GetScheduleInput identifies a guild schedule to read
type GetScheduleInput struct {
	GuildID string
}

// SaveScheduleInput carries a guild schedule to persist
type SaveScheduleInput struct {
	Schedule *models.GuildSchedule
}
