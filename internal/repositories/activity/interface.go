package activity

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/activity Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for daily counter persistence.
// Counters are keyed by (guild, user, date) and deleted once the daily
// reward routine consumes them.
type Repository interface {
	// IncrementChatter atomically adds one to a user's message count for a day
	IncrementChatter(ctx context.Context, input *IncrementChatterInput) error

	// IncrementActivity atomically adds points to a user's activity for a day
	IncrementActivity(ctx context.Context, input *IncrementActivityInput) error

	// TopChatters retrieves the highest message counts for a day
	TopChatters(ctx context.Context, input *TopChattersInput) ([]*models.ActivityEntry, error)

	// TopActivity retrieves the highest activity points for a day
	TopActivity(ctx context.Context, input *TopActivityInput) ([]*models.ActivityEntry, error)

	// ClearDay deletes a day's chatter and activity counters
	ClearDay(ctx context.Context, input *ClearDayInput) error

	// StartVoiceSession records a voice-channel join, replacing any
	// open session for the user
	StartVoiceSession(ctx context.Context, input *StartVoiceSessionInput) error

	// EndVoiceSession closes a user's open session and returns the
	// elapsed whole minutes, or ErrSessionNotFound
	EndVoiceSession(ctx context.Context, input *EndVoiceSessionInput) (int, error)
}
