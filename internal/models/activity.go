package models

import (
	"time"
)

// ActivityEntry is one user's counter for a single day
type ActivityEntry struct {
	// UserID is the Discord user ID
	UserID string

	// Points is the counter value (messages, or messages plus voice minutes)
	Points int64
}

// VoiceSession represents an open voice-channel interval for a user.
// At most one open session exists per (guild, user).
type VoiceSession struct {
	// GuildID is the guild the session belongs to
	GuildID string

	// UserID is the Discord user ID
	UserID string

	// JoinedAt is when the user joined a voice channel
	JoinedAt time.Time
}
