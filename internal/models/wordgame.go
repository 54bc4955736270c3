package models

// WordGame represents the single collaborative story game in a guild.
// Rows are never deleted; ending a game flips Active and keeps the story.
type WordGame struct {
	// GuildID is the guild the game belongs to
	GuildID string

	// ChannelID is the channel the game is played in
	ChannelID string

	// MessageID is the current story display message
	MessageID string

	// Words is the space-joined transcript of accepted tokens
	Words string

	// LastContributorID is the user who added the most recent word
	LastContributorID string

	// WordCount is the number of accepted tokens
	WordCount int

	// Active indicates whether the game is accepting contributions
	Active bool
}
