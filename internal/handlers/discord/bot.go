package discord

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
	"github.com/crispsgc/crisps-bot/internal/services/scheduler"
	"github.com/crispsgc/crisps-bot/internal/services/wordgame"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	economy    economy.Service
	wordGame   wordgame.Service
	scheduler  scheduler.Service
	questions  questions.Service
	stateRepo  stateRepo.Repository
	config     *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is the Discord session, shared with the Poster
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID to scope command registration to one server
	GuildID string

	// Services
	Economy   economy.Service
	WordGame  wordgame.Service
	Scheduler scheduler.Service
	Questions questions.Service

	// StateRepo backs the channel, role, and schedule admin commands
	StateRepo stateRepo.Repository
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.Economy == nil {
		return nil, errors.New("economy service cannot be nil")
	}

	if cfg.WordGame == nil {
		return nil, errors.New("word game service cannot be nil")
	}

	if cfg.Scheduler == nil {
		return nil, errors.New("scheduler service cannot be nil")
	}

	if cfg.Questions == nil {
		return nil, errors.New("questions service cannot be nil")
	}

	if cfg.StateRepo == nil {
		return nil, errors.New("state repository cannot be nil")
	}

	session := cfg.Session

	// Message content is needed for drop claims and the word game
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsMessageContent

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		economy:    cfg.Economy,
		wordGame:   cfg.WordGame,
		scheduler:  cfg.Scheduler,
		questions:  cfg.Questions,
		stateRepo:  cfg.StateRepo,
		config:     cfg,
	}

	// Register the event handlers
	session.AddHandler(bot.handleInteraction)
	session.AddHandler(bot.handleMessageCreate)
	session.AddHandler(bot.handleVoiceStateUpdate)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	handlers := []CommandHandler{
		NewBalanceCommand(b.economy),
		NewLeaderboardCommand(b.economy),
		NewWordGameCommand(b.wordGame, b.stateRepo),
		NewAdminCommand(b.economy, b.scheduler, b.questions, b.stateRepo),
	}

	for _, cmd := range handlers {
		if err := b.RegisterCommand(cmd); err != nil {
			return fmt.Errorf("failed to register %s command: %w", cmd.GetName(), err)
		}
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	// Remove all commands
	appID := b.config.ApplicationID
	if appID == "" {
		appID = b.session.State.User.ID
	}

	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
	}

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			log.Printf("Failed to delete command %s (ID: %s): %v", cmdName, cmdID, err)
		}
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// Register the command with Discord
	appID := b.config.ApplicationID
	if appID == "" {
		// Fall back to session user ID if application ID is not provided
		appID = b.session.State.User.ID
	}

	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	guildID := ""
	if b.config.GuildID != "" {
		guildID = b.config.GuildID
		log.Printf("Registering command %s for guild %s", cmd.GetName(), guildID)
	} else {
		log.Printf("Registering command %s globally", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		// Handle slash commands
		if h, ok := b.commands[i.ApplicationCommandData().Name]; ok {
			if err := h.Handle(s, i); err != nil {
				log.Printf("Error handling command %s: %v", i.ApplicationCommandData().Name, err)
			}
		}
	case discordgo.InteractionMessageComponent:
		// Handle buttons and other components
		if err := b.handleComponentInteraction(s, i); err != nil {
			log.Printf("Error handling component interaction: %v", err)
		}
	}
}

// handleComponentInteraction handles button clicks
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	customID := i.MessageComponentData().CustomID

	switch customID {
	case economy.DropClaimCustomID:
		return b.handleDropClaimButton(s, i)
	default:
		return RespondWithError(s, i, fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleDropClaimButton races the clicker against everyone else for the
// active drop. Losers get a quiet ephemeral note instead of an error.
func (b *Bot) handleDropClaimButton(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	if i.Member == nil || i.Member.User == nil {
		return nil
	}

	output, err := b.economy.ClaimByButton(ctx, &economy.ClaimByButtonInput{
		GuildID:   i.GuildID,
		MessageID: i.Message.ID,
		UserID:    i.Member.User.ID,
		Username:  memberDisplayName(i),
	})
	if err != nil {
		log.Printf("Error claiming drop: %v", err)
		return RespondWithError(s, i, "Something went wrong claiming the drop.")
	}

	if !output.Claimed {
		return RespondWithEphemeralMessage(s, i, "Too slow! Someone else got there first.")
	}

	// The claim already edited the drop message; just acknowledge
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}
