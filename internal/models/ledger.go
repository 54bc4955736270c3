package models

import (
	"time"
)

// ChipReason represents why chips were credited or set
type ChipReason string

const (
	// ChipReasonDropClaim indicates chips claimed from a drop
	ChipReasonDropClaim ChipReason = "drop_claim"

	// ChipReasonTopChatter indicates the daily top-chatter reward
	ChipReasonTopChatter ChipReason = "top_chatter"

	// ChipReasonSecondChatter indicates the daily runner-up reward
	ChipReasonSecondChatter ChipReason = "second_chatter"

	// ChipReasonActivityReward indicates the daily activity reward
	ChipReasonActivityReward ChipReason = "activity_reward"

	// ChipReasonAdminSet indicates an admin set the balance directly
	ChipReasonAdminSet ChipReason = "admin_set"
)

// ChipTransaction records a single chip credit or admin adjustment
type ChipTransaction struct {
	// ID is the unique identifier for the transaction
	ID string

	// GuildID is the guild the transaction belongs to
	GuildID string

	// UserID is the user whose balance changed
	UserID string

	// Amount is the credited amount, or the absolute balance for admin_set
	Amount int64

	// Reason is why the chips moved
	Reason ChipReason

	// CreatedAt is when the transaction was recorded
	CreatedAt time.Time
}
