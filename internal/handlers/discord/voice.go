package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/services/economy"
)

// handleVoiceStateUpdate opens and closes voice sessions for activity
// credit. Channel hops keep the original session running.
func (b *Bot) handleVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.GuildID == "" || v.UserID == "" {
		return
	}

	if v.Member != nil && v.Member.User != nil && v.Member.User.Bot {
		return
	}

	ctx := context.Background()

	wasConnected := v.BeforeUpdate != nil && v.BeforeUpdate.ChannelID != ""
	isConnected := v.ChannelID != ""

	switch {
	case isConnected && !wasConnected:
		if err := b.economy.TrackVoiceJoin(ctx, &economy.TrackVoiceJoinInput{
			GuildID: v.GuildID,
			UserID:  v.UserID,
		}); err != nil {
			log.Printf("Error tracking voice join: %v", err)
		}
	case !isConnected && wasConnected:
		if err := b.economy.TrackVoiceLeave(ctx, &economy.TrackVoiceLeaveInput{
			GuildID: v.GuildID,
			UserID:  v.UserID,
		}); err != nil {
			log.Printf("Error tracking voice leave: %v", err)
		}
	}
}
