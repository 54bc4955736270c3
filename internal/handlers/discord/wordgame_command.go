package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/config"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	"github.com/crispsgc/crisps-bot/internal/services/wordgame"
)

// WordGameCommand handles the /wordgame command
type WordGameCommand struct {
	BaseCommand
	wordGameService wordgame.Service
	stateRepo       stateRepo.Repository
}

// NewWordGameCommand creates a new word game command handler
func NewWordGameCommand(wordGameService wordgame.Service, stateRepository stateRepo.Repository) *WordGameCommand {
	return &WordGameCommand{
		BaseCommand: BaseCommand{
			Name:        "wordgame",
			Description: "Collaborative one-word story game",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start a new story in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "end",
					Description: "End the current story",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "view",
					Description: "Read the story so far",
				},
			},
		},
		wordGameService: wordGameService,
		stateRepo:       stateRepository,
	}
}

// Handle processes a Discord interaction for the wordgame command
func (c *WordGameCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	switch data.Options[0].Name {
	case "start":
		return c.handleStart(s, i)
	case "end":
		return c.handleEnd(s, i)
	case "view":
		return c.handleView(s, i)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleStart handles the start subcommand. The story lives in the
// configured word-game channel when one is set, otherwise right here.
func (c *WordGameCommand) handleStart(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channelID := i.ChannelID
	if configured, err := c.stateRepo.GetChannel(context.Background(), &stateRepo.GetChannelInput{
		GuildID: i.GuildID,
		Feature: config.FeatureWordGame,
	}); err == nil && configured != "" {
		channelID = configured
	}

	_, err := c.wordGameService.Start(context.Background(), &wordgame.StartInput{
		GuildID:   i.GuildID,
		ChannelID: channelID,
	})
	if err != nil {
		if errors.Is(err, wordgame.ErrGameActive) {
			return RespondWithEphemeralMessage(s, i,
				"A story is already running! Finish it with `/wordgame end` or by typing END.")
		}
		log.Printf("Error starting word game: %v", err)
		return RespondWithError(s, i, "Could not start the story.")
	}

	return RespondWithEphemeralMessage(s, i, "Story started! Add one word per message.")
}

// handleEnd handles the end subcommand
func (c *WordGameCommand) handleEnd(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID := ""
	if i.Member != nil && i.Member.User != nil {
		userID = i.Member.User.ID
	}

	output, err := c.wordGameService.End(context.Background(), &wordgame.EndInput{
		GuildID: i.GuildID,
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, wordgame.ErrGameNotActive) {
			return RespondWithEphemeralMessage(s, i, "There's no story running right now.")
		}
		log.Printf("Error ending word game: %v", err)
		return RespondWithError(s, i, "Could not end the story.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Story finished at %d words.", output.WordCount))
}

// handleView handles the view subcommand
func (c *WordGameCommand) handleView(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.wordGameService.View(context.Background(), &wordgame.ViewInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.Printf("Error viewing word game: %v", err)
		return RespondWithError(s, i, "Could not read the story.")
	}

	if !output.Active && output.WordCount == 0 {
		return RespondWithEphemeralMessage(s, i, "There's no story to read. Start one with `/wordgame start`!")
	}

	story := output.Story
	if story == "" {
		story = "*The page is still blank.*"
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("**The story so far** (%d words):\n%s", output.WordCount, story))
}
