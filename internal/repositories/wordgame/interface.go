package wordgame

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/wordgame Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for word-game persistence.
// Each guild has at most one game row, active or finished.
type Repository interface {
	// Get retrieves the guild's game. Returns ErrGameNotFound if none
	// has ever been started.
	Get(ctx context.Context, input *GetInput) (*models.WordGame, error)

	// Save stores the game, replacing any previous row
	Save(ctx context.Context, input *SaveInput) error

	// Delete removes the guild's game row
	Delete(ctx context.Context, input *DeleteInput) error
}
