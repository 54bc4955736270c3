package questions

import (
	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/random"
	questionRepo "github.com/crispsgc/crisps-bot/internal/repositories/question"
)

// Config holds the configuration for the questions service
type Config struct {
	QuestionRepo questionRepo.Repository
	Picker       random.Picker

	// Banks maps category to its question list. Defaults to the
	// built-in banks when nil.
	Banks map[string][]config.Question
}

// SelectQuestionInput is the input for the SelectQuestion operation
type SelectQuestionInput struct {
	GuildID  string
	Category string
}

// SelectQuestionOutput is the output for the SelectQuestion operation
type SelectQuestionOutput struct {
	// Kind is the optional sub-label for the question
	Kind string

	// Text is the question itself
	Text string

	// TypeOne and TypeTwo are the two typology combos to pit against
	// each other. Empty for non-typology categories.
	TypeOne string
	TypeTwo string

	// Reshuffled reports that the bank was exhausted and reset before
	// this selection
	Reshuffled bool
}

// UsageStatsInput is the input for the UsageStats operation
type UsageStatsInput struct {
	GuildID string
}

// CategoryUsage is one category's bank consumption
type CategoryUsage struct {
	Category string
	Used     int
	Total    int
}

// UsageStatsOutput is the output for the UsageStats operation
type UsageStatsOutput struct {
	// Categories follows config.RotationOrder
	Categories []*CategoryUsage
}
