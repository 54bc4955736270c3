package discord

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/wordgame"
)

// warnLifetime is how long the same-user word-game warning stays up
const warnLifetime = 3 * time.Second

// handleMessageCreate feeds every human guild message through activity
// tracking, drop claiming, and the word game.
func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	ctx := context.Background()

	username := m.Author.Username
	if m.Member != nil && m.Member.Nick != "" {
		username = m.Member.Nick
	}

	if err := b.economy.TrackMessage(ctx, &economy.TrackMessageInput{
		GuildID:  m.GuildID,
		UserID:   m.Author.ID,
		Username: username,
	}); err != nil {
		log.Printf("Error tracking message: %v", err)
	}

	claim, err := b.economy.ClaimByMessage(ctx, &economy.ClaimByMessageInput{
		GuildID:  m.GuildID,
		UserID:   m.Author.ID,
		Username: username,
		Content:  m.Content,
	})
	if err != nil {
		log.Printf("Error checking drop claim: %v", err)
	} else if claim.Claimed {
		// The drop message was already edited with the winner
		return
	}

	b.handleWordGameMessage(ctx, s, m)
}

// handleWordGameMessage routes a message to the story in its channel,
// if there is one. Invalid tokens fall through as ordinary chat.
func (b *Bot) handleWordGameMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate) {
	output, err := b.wordGame.Contribute(ctx, &wordgame.ContributeInput{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Content:   m.Content,
	})
	if err != nil {
		log.Printf("Error contributing to word game: %v", err)
		return
	}

	if output.Result == wordgame.ResultIgnored {
		// Ordinary chat in the game channel, leave it alone
		return
	}

	// The token was consumed by the story; take the raw message down
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		log.Printf("Error deleting consumed word: %v", err)
	}

	if output.Result != wordgame.ResultRejectedSameUser {
		return
	}

	// Warn the eager contributor briefly
	warn, err := s.ChannelMessageSend(m.ChannelID,
		fmt.Sprintf(config.WordGameSameUserWarn, m.Author.Mention()))
	if err != nil {
		log.Printf("Error sending word game warning: %v", err)
		return
	}

	time.AfterFunc(warnLifetime, func() {
		if err := s.ChannelMessageDelete(warn.ChannelID, warn.ID); err != nil {
			log.Printf("Error deleting word game warning: %v", err)
		}
	})
}
