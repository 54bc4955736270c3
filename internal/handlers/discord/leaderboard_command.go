package discord

import (
	"context"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/services/economy"
)

// defaultLeaderboardSize is how many rows /chipleaderboard shows
const defaultLeaderboardSize = 10

// LeaderboardCommand handles the /chipleaderboard command
type LeaderboardCommand struct {
	BaseCommand
	economyService economy.Service
}

// NewLeaderboardCommand creates a new leaderboard command handler
func NewLeaderboardCommand(economyService economy.Service) *LeaderboardCommand {
	return &LeaderboardCommand{
		BaseCommand: BaseCommand{
			Name:        "chipleaderboard",
			Description: "Show the top chip holders in the server",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "page",
					Description: "Page of the leaderboard to show",
					Required:    false,
				},
			},
		},
		economyService: economyService,
	}
}

// Handle processes a Discord interaction for the leaderboard command
func (c *LeaderboardCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	userID := ""
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}

	page := 1
	opts := optionMap(i.ApplicationCommandData().Options)
	if opt, ok := opts["page"]; ok && opt.IntValue() > 1 {
		page = int(opt.IntValue())
	}

	output, err := c.economyService.GetLeaderboard(context.Background(), &economy.GetLeaderboardInput{
		GuildID: i.GuildID,
		UserID:  userID,
		Limit:   page * defaultLeaderboardSize,
	})
	if err != nil {
		log.Printf("Error getting leaderboard: %v", err)
		return RespondWithError(s, i, "Could not load the leaderboard right now.")
	}

	// Keep only the requested page of the fetched rows
	start := (page - 1) * defaultLeaderboardSize
	if start > len(output.Entries) {
		start = len(output.Entries)
	}
	output.Entries = output.Entries[start:]

	return RespondWithEmbed(s, i, renderLeaderboard(output))
}
