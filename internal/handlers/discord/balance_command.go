package discord

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
)

// BalanceCommand handles the /balance command
type BalanceCommand struct {
	BaseCommand
	economyService economy.Service
}

// NewBalanceCommand creates a new balance command handler
func NewBalanceCommand(economyService economy.Service) *BalanceCommand {
	return &BalanceCommand{
		BaseCommand: BaseCommand{
			Name:        "balance",
			Description: "Check your chip balance and leaderboard rank",
		},
		economyService: economyService,
	}
}

// Handle processes a Discord interaction for the balance command
func (c *BalanceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	if i.Member == nil || i.Member.User == nil {
		return nil
	}

	output, err := c.economyService.GetBalance(context.Background(), &economy.GetBalanceInput{
		GuildID: i.GuildID,
		UserID:  i.Member.User.ID,
	})
	if err != nil {
		log.Printf("Error getting balance: %v", err)
		return RespondWithError(s, i, "Could not look up your balance right now.")
	}

	if output.Chips == 0 && !output.Ranked {
		return RespondWithEphemeralMessage(s, i, config.BalanceNoChips)
	}

	rank := config.BalanceUnranked
	if output.Ranked {
		rank = "#" + strconv.Itoa(output.Rank)
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf(config.BalanceResponse, output.Chips, config.ChipsName, config.ChipsEmoji, rank))
}
