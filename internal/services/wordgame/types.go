package wordgame

import (
	"github.com/crispsgc/crisps-bot/internal/platform"
	wordgameRepo "github.com/crispsgc/crisps-bot/internal/repositories/wordgame"
)

// Config holds the configuration for the word-game service
type Config struct {
	GameRepo wordgameRepo.Repository
	Poster   platform.Poster

	// MaxWordLength caps a single contribution. Defaults to 30 runes.
	MaxWordLength int
}

// ContributeResult says what a chat message in the game channel did
type ContributeResult string

const (
	// ResultIgnored means the message was not a valid token; it is
	// treated as ordinary chat
	ResultIgnored ContributeResult = "ignored"

	// ResultRejectedSameUser means a valid token was refused because
	// the contributor also added the previous word
	ResultRejectedSameUser ContributeResult = "rejected_same_user"

	// ResultAdded means the word joined the story
	ResultAdded ContributeResult = "added"

	// ResultEnded means the token ended the game
	ResultEnded ContributeResult = "ended"
)

// StartInput is the input for the Start operation
type StartInput struct {
	GuildID   string
	ChannelID string
}

// StartOutput is the output for the Start operation
type StartOutput struct {
	MessageID string
}

// ContributeInput is the input for the Contribute operation
type ContributeInput struct {
	GuildID   string
	ChannelID string
	UserID    string
	Content   string
}

// ContributeOutput is the output for the Contribute operation
type ContributeOutput struct {
	Result    ContributeResult
	WordCount int

	// Story is the rendered final text when Result is ResultEnded
	Story string
}

// EndInput is the input for the End operation
type EndInput struct {
	GuildID string

	// UserID credits who ended the game in the closing message;
	// optional
	UserID string
}

// EndOutput is the output for the End operation
type EndOutput struct {
	WordCount int
	Story     string
}

// ViewInput is the input for the View operation
type ViewInput struct {
	GuildID string
}

// ViewOutput is the output for the View operation
type ViewOutput struct {
	Active    bool
	ChannelID string
	WordCount int

	// Transcript is the raw space-joined token sequence
	Transcript string

	// Story is the rendered reading of the transcript
	Story string
}
