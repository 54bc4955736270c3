package models

import (
	"time"
)

// GuildSchedule is the typed scheduling state for one guild's daily
// question rotation. A zero NextQuestion means the rotation has not
// been bootstrapped yet.
type GuildSchedule struct {
	// GuildID is the guild the schedule belongs to
	GuildID string

	// NextQuestion is when the rotation fires next
	NextQuestion time.Time

	// QuestionIndex is the current position in the category rotation,
	// always within [0, len(order))
	QuestionIndex int
}
