package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/platform"
)

// Poster adapts a discordgo session to the platform.Poster interface
// the services are built against.
type Poster struct {
	session *discordgo.Session
}

// NewPoster creates a poster over an open Discord session
func NewPoster(session *discordgo.Session) (*Poster, error) {
	if session == nil {
		return nil, errors.New("session cannot be nil")
	}

	return &Poster{session: session}, nil
}

// SendMessage sends a plain text message to a channel
func (p *Poster) SendMessage(ctx context.Context, channelID, content string) (*platform.Message, error) {
	msg, err := p.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return &platform.Message{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// SendEmbed sends an embed, with optional plain content above it
func (p *Poster) SendEmbed(ctx context.Context, channelID, content string, embed *platform.Embed) (*platform.Message, error) {
	msg, err := p.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{toDiscordEmbed(embed)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send embed: %w", err)
	}

	return &platform.Message{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// SendButtonMessage sends a text message with a single button
func (p *Poster) SendButtonMessage(ctx context.Context, channelID, content string, button *platform.Button) (*platform.Message, error) {
	msg, err := p.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:    content,
		Components: buttonRow(button),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send button message: %w", err)
	}

	return &platform.Message{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// EditMessage replaces a message's content and button
func (p *Poster) EditMessage(ctx context.Context, msg *platform.Message, content string, button *platform.Button) error {
	components := buttonRow(button)

	_, err := p.session.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    msg.ChannelID,
		ID:         msg.MessageID,
		Content:    &content,
		Components: &components,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}

	return nil
}

// DeleteMessage removes a message
func (p *Poster) DeleteMessage(ctx context.Context, msg *platform.Message) error {
	if err := p.session.ChannelMessageDelete(msg.ChannelID, msg.MessageID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

func toDiscordEmbed(embed *platform.Embed) *discordgo.MessageEmbed {
	out := &discordgo.MessageEmbed{
		Title:       embed.Title,
		Description: embed.Description,
		Color:       embed.Color,
	}

	if embed.FooterText != "" {
		out.Footer = &discordgo.MessageEmbedFooter{Text: embed.FooterText}
	}

	if embed.AuthorName != "" {
		out.Author = &discordgo.MessageEmbedAuthor{Name: embed.AuthorName}
	}

	return out
}

func buttonRow(button *platform.Button) []discordgo.MessageComponent {
	if button == nil {
		return []discordgo.MessageComponent{}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    button.Label,
					Style:    discordgo.PrimaryButton,
					CustomID: button.CustomID,
					Disabled: button.Disabled,
				},
			},
		},
	}
}
