package config

import (
	"errors"
	"os"
)

// Config holds the runtime configuration loaded from the environment
type Config struct {
	// DiscordToken is the bot token, required
	DiscordToken string

	// ApplicationID is the Discord application ID for command registration
	ApplicationID string

	// GuildID optionally scopes command registration to one guild
	GuildID string

	// RedisAddr is the Redis host:port
	RedisAddr string

	// RedisPassword is the optional Redis password
	RedisPassword string

	// Timezone is the IANA name of the reference timezone
	Timezone string
}

// Load reads configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		ApplicationID: os.Getenv("APPLICATION_ID"),
		GuildID:       os.Getenv("GUILD_ID"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Timezone:      getEnv("TIMEZONE", "Asia/Manila"),
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN environment variable is required")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// Features toggles whole subsystems on or off for a run
type Features struct {
	Questions      bool
	ChipDrops      bool
	CodePurple     bool
	ChatterRewards bool
	WordGame       bool
}

// DefaultFeatures returns the feature set with everything enabled
func DefaultFeatures() Features {
	return Features{
		Questions:      true,
		ChipDrops:      true,
		CodePurple:     true,
		ChatterRewards: true,
		WordGame:       true,
	}
}
