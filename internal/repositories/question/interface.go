package question

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/question Repository

import (
	"context"
)

// Repository defines the interface for question-usage persistence.
// Each (guild, category) keeps the set of bank indices already posted
// in the current cycle.
type Repository interface {
	// GetUsed retrieves the consumed indices for a category
	GetUsed(ctx context.Context, input *GetUsedInput) ([]int, error)

	// MarkUsed records an index as consumed
	MarkUsed(ctx context.Context, input *MarkUsedInput) error

	// Reset clears the consumed set, starting a new cycle
	Reset(ctx context.Context, input *ResetInput) error
}
