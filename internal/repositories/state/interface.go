package state

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/state Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for per-guild bot state persistence
type Repository interface {
	// Get retrieves a state value, returning ErrKeyNotFound when absent
	Get(ctx context.Context, input *GetInput) (string, error)

	// Set stores a state value
	Set(ctx context.Context, input *SetInput) error

	// Delete removes a state value
	Delete(ctx context.Context, input *DeleteInput) error

	// GetChannel retrieves the configured channel for a feature,
	// returning ErrKeyNotFound when the feature has no channel
	GetChannel(ctx context.Context, input *GetChannelInput) (string, error)

	// SetChannel stores the channel for a feature
	SetChannel(ctx context.Context, input *SetChannelInput) error

	// GetAllChannels retrieves every configured feature channel
	GetAllChannels(ctx context.Context, input *GetAllChannelsInput) (map[string]string, error)

	// GetPingRole retrieves the role to mention for a feature,
	// returning ErrKeyNotFound when none is set
	GetPingRole(ctx context.Context, input *GetPingRoleInput) (string, error)

	// SetPingRole stores the role to mention for a feature
	SetPingRole(ctx context.Context, input *SetPingRoleInput) error

	// GetSchedule retrieves the typed rotation schedule for a guild.
	// A schedule with a zero NextQuestion means not bootstrapped yet.
	GetSchedule(ctx context.Context, input *GetScheduleInput) (*models.GuildSchedule, error)

	// SaveSchedule persists the typed rotation schedule for a guild
	SaveSchedule(ctx context.Context, input *SaveScheduleInput) error

	// Migrate applies any pending schema migrations, each at most once
	Migrate(ctx context.Context) error
}
