package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
	"github.com/crispsgc/crisps-bot/internal/services/scheduler"
)

// renderLeaderboard builds the /chipleaderboard embed
func renderLeaderboard(output *economy.GetLeaderboardOutput) *discordgo.MessageEmbed {
	if len(output.Entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       config.LeaderboardTitle,
			Description: config.LeaderboardEmpty,
			Color:       config.LeaderboardColor,
		}
	}

	var lines []string
	for _, entry := range output.Entries {
		emoji, ok := config.RankEmojis[entry.Rank]
		if !ok {
			emoji = config.RankEmojiDefault
		}

		name := entry.Username
		if name == "" {
			name = "<@" + entry.UserID + ">"
		}

		lines = append(lines, fmt.Sprintf(config.LeaderboardEntryLine,
			emoji, entry.Rank, name, entry.Chips, config.ChipsName))
	}

	callerShown := false
	for _, entry := range output.Entries {
		if output.CallerRanked && entry.Rank == output.CallerRank {
			callerShown = true
		}
	}

	footer := config.LeaderboardFooter
	if output.CallerRanked && !callerShown {
		footer = fmt.Sprintf("You're #%d with %d %s. %s",
			output.CallerRank, output.CallerChips, config.ChipsName, footer)
	}

	return &discordgo.MessageEmbed{
		Title:       config.LeaderboardTitle,
		Description: strings.Join(lines, "\n"),
		Color:       config.LeaderboardColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: footer},
	}
}

// renderStats builds the stats embed from question usage, last-post
// times, and the recent chip ledger.
func renderStats(usage *questions.UsageStatsOutput, lastPosted map[string]time.Time, totalUsers int64, recent *economy.RecentTransactionsOutput) *discordgo.MessageEmbed {
	var usageLines []string
	for _, category := range usage.Categories {
		line := fmt.Sprintf("**%s**: %d/%d posted",
			category.Category, category.Used, category.Total)
		if at, ok := lastPosted[category.Category]; ok {
			line += fmt.Sprintf(", last %s", at.Format("Jan 2 15:04"))
		}
		usageLines = append(usageLines, line)
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Question Banks",
			Value:  strings.Join(usageLines, "\n"),
			Inline: false,
		},
		{
			Name:   "Chip Holders",
			Value:  fmt.Sprintf("%d users on the leaderboard", totalUsers),
			Inline: false,
		},
	}

	if len(recent.Transactions) > 0 {
		var txLines []string
		for _, tx := range recent.Transactions {
			txLines = append(txLines, fmt.Sprintf("<@%s> %+d (%s)",
				tx.UserID, tx.Amount, tx.Reason))
		}

		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   "Recent Chip Activity",
			Value:  strings.Join(txLines, "\n"),
			Inline: false,
		})
	}

	return &discordgo.MessageEmbed{
		Title:  "📊 Bot Stats",
		Color:  config.LeaderboardColor,
		Fields: fields,
	}
}

// renderSchedule builds the viewschedule embed
func renderSchedule(output *scheduler.UpcomingScheduleOutput) *discordgo.MessageEmbed {
	nextQuestion := "not scheduled yet"
	if output.Bootstrapped {
		nextQuestion = fmt.Sprintf("%s at %s",
			output.NextCategory, output.NextQuestionAt.Format(time.Kitchen))
	}

	return &discordgo.MessageEmbed{
		Title: "🗓️ Upcoming Schedule",
		Color: config.LeaderboardColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Next Question", Value: nextQuestion, Inline: false},
			{Name: "Daily Rewards", Value: output.RewardsTime, Inline: true},
			{Name: "Timezone", Value: output.Timezone, Inline: true},
		},
	}
}

// renderChannels builds the viewchannels embed
func renderChannels(channels map[string]string) *discordgo.MessageEmbed {
	if len(channels) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "📺 Feature Channels",
			Description: "No channels configured yet. Use `setchannel` to map features.",
			Color:       config.LeaderboardColor,
		}
	}

	features := make([]string, 0, len(channels))
	for feature := range channels {
		features = append(features, feature)
	}
	sort.Strings(features)

	var lines []string
	for _, feature := range features {
		lines = append(lines, fmt.Sprintf("**%s** → <#%s>", feature, channels[feature]))
	}

	return &discordgo.MessageEmbed{
		Title:       "📺 Feature Channels",
		Description: strings.Join(lines, "\n"),
		Color:       config.LeaderboardColor,
	}
}
