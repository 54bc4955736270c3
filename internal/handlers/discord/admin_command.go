package discord

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/config"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
	"github.com/crispsgc/crisps-bot/internal/services/scheduler"
)

// recentLedgerSize is how many ledger rows the stats view shows
const recentLedgerSize = 10

// featureChoices are the channel/role mappable features
var featureChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Warm questions", Value: config.FeatureWarm},
	{Name: "Chill questions", Value: config.FeatureChill},
	{Name: "Typology questions", Value: config.FeatureTypology},
	{Name: "Code Purple", Value: config.FeatureCodePurple},
	{Name: "Chip drops", Value: config.FeatureChipDrop},
	{Name: "Word game", Value: config.FeatureWordGame},
}

// AdminCommand handles the /crisps admin command
type AdminCommand struct {
	BaseCommand
	economyService   economy.Service
	schedulerService scheduler.Service
	questionsService questions.Service
	stateRepo        stateRepo.Repository
}

// NewAdminCommand creates a new admin command handler
func NewAdminCommand(economyService economy.Service, schedulerService scheduler.Service, questionsService questions.Service, stateRepository stateRepo.Repository) *AdminCommand {
	return &AdminCommand{
		BaseCommand: BaseCommand{
			Name:        "crisps",
			Description: "Bot administration commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setchips",
					Description: "Set a user's chip balance",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who to adjust",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "amount",
							Description: "New balance",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "forcedrop",
					Description: "Post a chip drop right now",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "forcequestion",
					Description: "Post a daily question right now",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "category",
							Description: "Question category",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Warm", Value: config.CategoryWarm},
								{Name: "Chill", Value: config.CategoryChill},
								{Name: "Typology", Value: config.CategoryTypology},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "codepurple",
					Description: "Send an inactivity nudge right now",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show question bank usage and recent chip activity",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setchannel",
					Description: "Map a feature to a channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "feature",
							Description: "Which feature",
							Required:    true,
							Choices:     featureChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "Where it posts",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setrole",
					Description: "Set the role a feature pings",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "feature",
							Description: "Which feature",
							Required:    true,
							Choices:     featureChoices,
						},
						{
							Type:        discordgo.ApplicationCommandOptionRole,
							Name:        "role",
							Description: "Role to mention",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "viewchannels",
					Description: "Show the feature-to-channel mapping",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "viewschedule",
					Description: "Show upcoming scheduled events",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "resettimer",
					Description: "Fast-forward a feature's timer",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "feature",
							Description: "What to fast-forward",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Everything", Value: string(scheduler.ResetFeatureAll)},
								{Name: "Question", Value: string(scheduler.ResetFeatureQuestion)},
								{Name: "Chip drop", Value: string(scheduler.ResetFeatureDrop)},
								{Name: "Rewards", Value: string(scheduler.ResetFeatureRewards)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "setschedule",
					Description: "Set the daily rewards time",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "hour",
							Description: "Hour (0-23)",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "minute",
							Description: "Minute (0-59)",
							Required:    true,
						},
					},
				},
			},
		},
		economyService:   economyService,
		schedulerService: schedulerService,
		questionsService: questionsService,
		stateRepo:        stateRepository,
	}
}

// Handle processes a Discord interaction for the admin command
func (c *AdminCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	if !isAdmin(i) {
		return RespondWithEphemeralMessage(s, i, "You need the Manage Server permission for that.")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case "setchips":
		return c.handleSetChips(s, i, opts)
	case "forcedrop":
		return c.handleForceDrop(s, i)
	case "forcequestion":
		return c.handleForceQuestion(s, i, opts)
	case "codepurple":
		return c.handleCodePurple(s, i)
	case "stats":
		return c.handleStats(s, i)
	case "setchannel":
		return c.handleSetChannel(s, i, opts)
	case "setrole":
		return c.handleSetRole(s, i, opts)
	case "viewchannels":
		return c.handleViewChannels(s, i)
	case "viewschedule":
		return c.handleViewSchedule(s, i)
	case "resettimer":
		return c.handleResetTimer(s, i, opts)
	case "setschedule":
		return c.handleSetSchedule(s, i, opts)
	default:
		return errors.New("unknown subcommand")
	}
}

// handleSetChips handles the setchips subcommand
func (c *AdminCommand) handleSetChips(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	target := opts["user"].UserValue(s)
	amount := opts["amount"].IntValue()

	output, err := c.economyService.SetBalance(context.Background(), &economy.SetBalanceInput{
		GuildID:  i.GuildID,
		UserID:   target.ID,
		Username: target.Username,
		Amount:   amount,
	})
	if err != nil {
		log.Printf("Error setting balance: %v", err)
		return RespondWithError(s, i, fmt.Sprintf("Could not set the balance: %v", err))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("%s now has **%d %s** %s", target.Mention(), output.Chips, config.ChipsName, config.ChipsEmoji))
}

// handleForceDrop handles the forcedrop subcommand
func (c *AdminCommand) handleForceDrop(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.economyService.CreateDrop(context.Background(), &economy.CreateDropInput{
		GuildID: i.GuildID,
		Now:     time.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, economy.ErrDropActive):
			return RespondWithEphemeralMessage(s, i, "A drop is already waiting to be claimed.")
		case errors.Is(err, economy.ErrNoDropChannel):
			return RespondWithEphemeralMessage(s, i, "Set a chip drop channel first with `setchannel`.")
		}
		log.Printf("Error creating drop: %v", err)
		return RespondWithError(s, i, "Could not create the drop.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Dropped **%d %s** (%s).", output.Amount, config.ChipsName, output.Type))
}

// handleForceQuestion handles the forcequestion subcommand
func (c *AdminCommand) handleForceQuestion(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	category := opts["category"].StringValue()

	output, err := c.schedulerService.PostQuestion(context.Background(), &scheduler.PostQuestionInput{
		GuildID:  i.GuildID,
		Category: category,
		Now:      time.Now(),
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrNoChannelConfigured) {
			return RespondWithEphemeralMessage(s, i,
				fmt.Sprintf("No channel configured for %s questions. Use `setchannel` first.", category))
		}
		log.Printf("Error posting question: %v", err)
		return RespondWithError(s, i, "Could not post the question.")
	}

	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("Posted: %s", output.Text))
}

// handleCodePurple handles the codepurple subcommand
func (c *AdminCommand) handleCodePurple(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := c.schedulerService.ForceCodePurple(context.Background(), &scheduler.ForceCodePurpleInput{
		GuildID: i.GuildID,
		Now:     time.Now(),
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrNoChannelConfigured) {
			return RespondWithEphemeralMessage(s, i, "Set a Code Purple channel first with `setchannel`.")
		}
		log.Printf("Error forcing code purple: %v", err)
		return RespondWithError(s, i, "Could not send the nudge.")
	}

	return RespondWithEphemeralMessage(s, i, "💜 Code Purple sent.")
}

// handleStats handles the stats subcommand
func (c *AdminCommand) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()

	usage, err := c.questionsService.UsageStats(ctx, &questions.UsageStatsInput{GuildID: i.GuildID})
	if err != nil {
		log.Printf("Error getting usage stats: %v", err)
		return RespondWithError(s, i, "Could not load stats.")
	}

	recent, err := c.economyService.RecentTransactions(ctx, &economy.RecentTransactionsInput{
		GuildID: i.GuildID,
		Limit:   recentLedgerSize,
	})
	if err != nil {
		log.Printf("Error getting recent transactions: %v", err)
		return RespondWithError(s, i, "Could not load stats.")
	}

	leaderboard, err := c.economyService.GetLeaderboard(ctx, &economy.GetLeaderboardInput{
		GuildID: i.GuildID,
		Limit:   1,
	})
	if err != nil {
		log.Printf("Error getting leaderboard size: %v", err)
		return RespondWithError(s, i, "Could not load stats.")
	}

	lastPosted := make(map[string]time.Time)
	for _, category := range config.RotationOrder {
		stored, err := c.stateRepo.Get(ctx, &stateRepo.GetInput{
			GuildID: i.GuildID,
			Key:     stateRepo.KeyLastQuestion(category),
		})
		if err != nil {
			continue
		}
		if at, parseErr := time.Parse(time.RFC3339, stored); parseErr == nil {
			lastPosted[category] = at
		}
	}

	return RespondWithEmbed(s, i, renderStats(usage, lastPosted, leaderboard.TotalUsers, recent))
}

// handleSetChannel handles the setchannel subcommand
func (c *AdminCommand) handleSetChannel(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	feature := opts["feature"].StringValue()
	channel := opts["channel"].ChannelValue(s)

	err := c.stateRepo.SetChannel(context.Background(), &stateRepo.SetChannelInput{
		GuildID:   i.GuildID,
		Feature:   feature,
		ChannelID: channel.ID,
	})
	if err != nil {
		log.Printf("Error setting channel: %v", err)
		return RespondWithError(s, i, "Could not save the channel mapping.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("**%s** now posts in <#%s>.", feature, channel.ID))
}

// handleSetRole handles the setrole subcommand
func (c *AdminCommand) handleSetRole(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	feature := opts["feature"].StringValue()
	role := opts["role"].RoleValue(s, i.GuildID)

	err := c.stateRepo.SetPingRole(context.Background(), &stateRepo.SetPingRoleInput{
		GuildID: i.GuildID,
		Feature: feature,
		RoleID:  role.ID,
	})
	if err != nil {
		log.Printf("Error setting ping role: %v", err)
		return RespondWithError(s, i, "Could not save the ping role.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("**%s** will now ping <@&%s>.", feature, role.ID))
}

// handleViewChannels handles the viewchannels subcommand
func (c *AdminCommand) handleViewChannels(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	channels, err := c.stateRepo.GetAllChannels(context.Background(), &stateRepo.GetAllChannelsInput{
		GuildID: i.GuildID,
	})
	if err != nil {
		log.Printf("Error getting channels: %v", err)
		return RespondWithError(s, i, "Could not load the channel mapping.")
	}

	return RespondWithEmbed(s, i, renderChannels(channels))
}

// handleViewSchedule handles the viewschedule subcommand
func (c *AdminCommand) handleViewSchedule(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	output, err := c.schedulerService.UpcomingSchedule(context.Background(), &scheduler.UpcomingScheduleInput{
		GuildID: i.GuildID,
		Now:     time.Now(),
	})
	if err != nil {
		log.Printf("Error getting schedule: %v", err)
		return RespondWithError(s, i, "Could not load the schedule.")
	}

	return RespondWithEmbed(s, i, renderSchedule(output))
}

// handleResetTimer handles the resettimer subcommand
func (c *AdminCommand) handleResetTimer(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	feature := scheduler.ResetTimerFeature(opts["feature"].StringValue())

	output, err := c.schedulerService.ResetTimer(context.Background(), &scheduler.ResetTimerInput{
		GuildID: i.GuildID,
		Feature: feature,
		Now:     time.Now(),
	})
	if err != nil {
		log.Printf("Error resetting timer: %v", err)
		return RespondWithError(s, i, "Could not reset the timer.")
	}

	applied := make([]string, 0, len(output.Applied))
	for _, f := range output.Applied {
		applied = append(applied, string(f))
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Fast-forwarded: %s. Watch the channels over the next couple of minutes.",
			joinWords(applied)))
}

// handleSetSchedule handles the setschedule subcommand
func (c *AdminCommand) handleSetSchedule(s *discordgo.Session, i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
	hour := int(opts["hour"].IntValue())
	minute := int(opts["minute"].IntValue())

	err := c.schedulerService.SetRewardsTime(context.Background(), &scheduler.SetRewardsTimeInput{
		GuildID: i.GuildID,
		Hour:    hour,
		Minute:  minute,
	})
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidTime) {
			return RespondWithEphemeralMessage(s, i, "That's not a valid time. Hour is 0-23, minute is 0-59.")
		}
		log.Printf("Error setting schedule: %v", err)
		return RespondWithError(s, i, "Could not save the schedule.")
	}

	return RespondWithEphemeralMessage(s, i,
		fmt.Sprintf("Daily rewards will now run at %02d:%02d.", hour, minute))
}

// joinWords joins a list with commas and a final "and"
func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return fmt.Sprintf("%s and %s",
			joinAllButLast(words), words[len(words)-1])
	}
}

func joinAllButLast(words []string) string {
	out := ""
	for idx, word := range words[:len(words)-1] {
		if idx > 0 {
			out += ", "
		}
		out += word
	}
	return out
}
