package models

import (
	"time"
)

// DropType represents how an active chip drop is claimed
type DropType string

const (
	// DropTypeGrab indicates a first-come claim by keyword or button
	DropTypeGrab DropType = "grab"

	// DropTypeMath indicates a claim by answering a math challenge
	DropTypeMath DropType = "math"
)

// Drop represents the single active chip drop in a guild
type Drop struct {
	// GuildID is the guild the drop belongs to
	GuildID string

	// ChannelID is the channel the drop was posted in
	ChannelID string

	// MessageID is the Discord message announcing the drop
	MessageID string

	// Amount is the chip reward for claiming the drop
	Amount int64

	// Type determines how the drop is claimed
	Type DropType

	// Answer is the expected answer for math drops, empty otherwise
	Answer string

	// CreatedAt is when the drop was posted
	CreatedAt time.Time
}
