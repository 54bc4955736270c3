package ledger

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/crispsgc/crisps-bot/internal/repositories/ledger Repository

import (
	"context"

	"github.com/crispsgc/crisps-bot/internal/models"
)

// Repository defines the interface for the chip transaction ledger.
// The ledger is an audit trail capped at the most recent entries.
type Repository interface {
	// Record appends a transaction to the guild's ledger
	Record(ctx context.Context, input *RecordInput) error

	// Recent retrieves the most recent transactions, newest first
	Recent(ctx context.Context, input *RecentInput) ([]*models.ChipTransaction, error)
}
