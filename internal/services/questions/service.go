package questions

import (
	"context"
	"errors"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/random"
	questionRepo "github.com/crispsgc/crisps-bot/internal/repositories/question"
)

var (
	// ErrUnknownCategory is returned for a category with no bank
	ErrUnknownCategory = errors.New("unknown question category")
)

// service implements the Service interface
type service struct {
	questionRepo questionRepo.Repository
	picker       random.Picker
	banks        map[string][]config.Question
}

// NewService creates a new questions service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}

	if cfg.QuestionRepo == nil {
		return nil, errors.New("cfg.QuestionRepo is required")
	}

	if cfg.Picker == nil {
		return nil, errors.New("cfg.Picker is required")
	}

	banks := cfg.Banks
	if banks == nil {
		banks = map[string][]config.Question{
			config.CategoryWarm:     config.WarmQuestions,
			config.CategoryChill:    config.ChillQuestions,
			config.CategoryTypology: config.TypologyQuestions,
		}
	}

	return &service{
		questionRepo: cfg.QuestionRepo,
		picker:       cfg.Picker,
		banks:        banks,
	}, nil
}

// SelectQuestion draws a random unused question from the category bank,
// resetting the used set once every question has been posted
func (s *service) SelectQuestion(ctx context.Context, input *SelectQuestionInput) (*SelectQuestionOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	bank, ok := s.banks[input.Category]
	if !ok || len(bank) == 0 {
		return nil, ErrUnknownCategory
	}

	used, err := s.questionRepo.GetUsed(ctx, &questionRepo.GetUsedInput{
		GuildID:  input.GuildID,
		Category: input.Category,
	})
	if err != nil {
		return nil, err
	}

	reshuffled := false
	if len(used) >= len(bank) {
		err = s.questionRepo.Reset(ctx, &questionRepo.ResetInput{
			GuildID:  input.GuildID,
			Category: input.Category,
		})
		if err != nil {
			return nil, err
		}
		used = nil
		reshuffled = true
	}

	usedSet := make(map[int]struct{}, len(used))
	for _, idx := range used {
		usedSet[idx] = struct{}{}
	}

	available := make([]int, 0, len(bank)-len(used))
	for i := range bank {
		if _, ok := usedSet[i]; !ok {
			available = append(available, i)
		}
	}

	idx := available[s.picker.Intn(len(available))]

	// Mark before returning so a crash cannot hand out the same
	// question twice within a cycle
	err = s.questionRepo.MarkUsed(ctx, &questionRepo.MarkUsedInput{
		GuildID:  input.GuildID,
		Category: input.Category,
		Index:    idx,
	})
	if err != nil {
		return nil, err
	}

	output := &SelectQuestionOutput{
		Kind:       bank[idx].Kind,
		Text:       bank[idx].Text,
		Reshuffled: reshuffled,
	}

	if input.Category == config.CategoryTypology {
		output.TypeOne, output.TypeTwo = s.typologyPair()
	}

	return output, nil
}

// typologyPair picks two distinct MBTI + enneagram combos
func (s *service) typologyPair() (string, string) {
	first := s.randomCombo()
	second := first
	for second == first {
		second = s.randomCombo()
	}
	return first, second
}

func (s *service) randomCombo() string {
	mbti := config.MBTITypes[s.picker.Intn(len(config.MBTITypes))]
	enneagram := config.EnneagramTypes[s.picker.Intn(len(config.EnneagramTypes))]
	return mbti + " " + enneagram
}

// UsageStats reports used/total per category in rotation order
func (s *service) UsageStats(ctx context.Context, input *UsageStatsInput) (*UsageStatsOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	output := &UsageStatsOutput{}
	for _, category := range config.RotationOrder {
		bank := s.banks[category]

		used, err := s.questionRepo.GetUsed(ctx, &questionRepo.GetUsedInput{
			GuildID:  input.GuildID,
			Category: category,
		})
		if err != nil {
			return nil, err
		}

		output.Categories = append(output.Categories, &CategoryUsage{
			Category: category,
			Used:     len(used),
			Total:    len(bank),
		})
	}

	return output, nil
}
