package models

// User represents a guild member known to the chips economy
type User struct {
	// GuildID is the Discord guild the balance belongs to
	GuildID string

	// UserID is the Discord user ID
	UserID string

	// Username is the last known display name
	Username string

	// Chips is the current chip balance, never negative
	Chips int64
}

// LeaderboardEntry is one row of the guild chip leaderboard
type LeaderboardEntry struct {
	// Rank is the 1-based position on the leaderboard
	Rank int

	// UserID is the Discord user ID
	UserID string

	// Username is the last known display name
	Username string

	// Chips is the user's chip balance
	Chips int64
}
