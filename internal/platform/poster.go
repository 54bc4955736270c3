package platform

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_poster.go github.com/crispsgc/crisps-bot/internal/platform Poster

// Message identifies a posted chat message
type Message struct {
	// ChannelID is the channel the message lives in
	ChannelID string

	// MessageID is the platform message ID
	MessageID string
}

// Embed is a platform-neutral rich message
type Embed struct {
	Title       string
	Description string
	FooterText  string
	AuthorName  string
	Color       int
}

// Button is a single action button attached to a message
type Button struct {
	Label    string
	CustomID string
	Disabled bool
}

// Poster is the outbound chat-platform capability handed to services.
// Implementations are expected to be safe for concurrent use.
type Poster interface {
	// SendMessage sends a plain text message to a channel
	SendMessage(ctx context.Context, channelID, content string) (*Message, error)

	// SendEmbed sends an embed, with optional plain content above it
	SendEmbed(ctx context.Context, channelID, content string, embed *Embed) (*Message, error)

	// SendButtonMessage sends a text message with a single button
	SendButtonMessage(ctx context.Context, channelID, content string, button *Button) (*Message, error)

	// EditMessage replaces a message's content and button
	EditMessage(ctx context.Context, msg *Message, content string, button *Button) error

	// DeleteMessage removes a message
	DeleteMessage(ctx context.Context, msg *Message) error
}
