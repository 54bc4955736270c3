package drop

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/drop Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for pending chip-drop persistence.
// At most one drop is pending per guild at a time.
type Repository interface {
	// Save stores a new pending drop. Returns ErrDropExists if the
	// guild already has one pending.
	Save(ctx context.Context, input *SaveInput) error

	// Get retrieves the pending drop without consuming it
	Get(ctx context.Context, input *GetInput) (*models.Drop, error)

	// Claim atomically consumes the pending drop so that exactly one
	// caller wins. Returns ErrDropNotFound if there is none.
	Claim(ctx context.Context, input *ClaimInput) (*models.Drop, error)

	// Delete discards the pending drop, if any
	Delete(ctx context.Context, input *DeleteInput) error
}
