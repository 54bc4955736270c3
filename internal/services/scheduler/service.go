package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/crispsgc/crisps-bot/internal/config"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	"github.com/crispsgc/crisps-bot/internal/random"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	"github.com/crispsgc/crisps-bot/internal/services/economy"
	"github.com/crispsgc/crisps-bot/internal/services/questions"
)

// Define errors
var (
	ErrNoChannelConfigured = errors.New("no channel configured for feature")
	ErrInvalidTime         = errors.New("invalid time, hour must be 0-23 and minute 0-59")
	ErrUnknownFeature      = errors.New("unknown timer feature")
)

// service implements the Service interface
type service struct {
	config    *Config
	stateRepo stateRepo.Repository
	questions questions.Service
	economy   economy.Service
	poster    platform.Poster
	picker    random.Picker
	location  *time.Location
	features  config.Features

	// questionGap spaces the rotation so all categories post once per day
	questionGap time.Duration
}

// NewService creates a new scheduler service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}

	if cfg.StateRepo == nil {
		return nil, errors.New("cfg.StateRepo is required")
	}

	if cfg.Questions == nil {
		return nil, errors.New("cfg.Questions is required")
	}

	if cfg.Economy == nil {
		return nil, errors.New("cfg.Economy is required")
	}

	if cfg.Poster == nil {
		return nil, errors.New("cfg.Poster is required")
	}

	if cfg.Picker == nil {
		return nil, errors.New("cfg.Picker is required")
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	features := config.DefaultFeatures()
	if cfg.Features != nil {
		features = *cfg.Features
	}

	if cfg.BootstrapDelay == 0 {
		cfg.BootstrapDelay = 2 * time.Minute
	}
	if cfg.InactivityThreshold == 0 {
		cfg.InactivityThreshold = 6 * time.Hour
	}
	if cfg.NudgeCooldown == 0 {
		cfg.NudgeCooldown = 12 * time.Hour
	}
	if cfg.RewardsHour == 0 && cfg.RewardsMinute == 0 {
		cfg.RewardsHour = 20
	}

	return &service{
		config:      cfg,
		stateRepo:   cfg.StateRepo,
		questions:   cfg.Questions,
		economy:     cfg.Economy,
		poster:      cfg.Poster,
		picker:      cfg.Picker,
		location:    location,
		features:    features,
		questionGap: 24 * time.Hour / time.Duration(len(config.RotationOrder)),
	}, nil
}

// Tick evaluates every guild's trigger conditions against Now. Guilds
// and features are isolated: one failure is logged and the rest of the
// tick carries on.
func (s *service) Tick(ctx context.Context, input *TickInput) (*TickOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	output := &TickOutput{}
	localNow := input.Now.In(s.location)

	for _, guildID := range input.GuildIDs {
		if s.features.Questions {
			posted, err := s.checkQuestions(ctx, guildID, input.Now)
			if err != nil {
				log.Printf("scheduler: question check failed for guild %s: %v", guildID, err)
			}
			output.QuestionsPosted += posted
		}

		// Code Purple is evaluated once an hour
		if s.features.CodePurple && localNow.Minute() == 0 {
			sent, err := s.checkCodePurple(ctx, guildID, input.Now)
			if err != nil {
				log.Printf("scheduler: code purple check failed for guild %s: %v", guildID, err)
			}
			if sent {
				output.NudgesSent++
			}
		}

		if s.features.ChatterRewards {
			ran, err := s.checkRewards(ctx, guildID, input.Now)
			if err != nil {
				log.Printf("scheduler: rewards check failed for guild %s: %v", guildID, err)
			}
			if ran {
				output.RewardsRuns++
			}
		}
	}

	return output, nil
}

// checkQuestions runs the rotation state machine for one guild
func (s *service) checkQuestions(ctx context.Context, guildID string, now time.Time) (int, error) {
	schedule, err := s.stateRepo.GetSchedule(ctx, &stateRepo.GetScheduleInput{GuildID: guildID})
	if err != nil {
		return 0, err
	}

	// While an override exists the regular rotation waits
	override, err := s.stateRepo.Get(ctx, &stateRepo.GetInput{
		GuildID: guildID,
		Key:     stateRepo.KeyOverrideQuestion,
	})
	if err != nil && !errors.Is(err, stateRepo.ErrKeyNotFound) {
		return 0, err
	}
	if err == nil {
		return s.fireOverride(ctx, guildID, schedule, override, now)
	}

	// First sight of this guild: aim the rotation a short way out
	if schedule.NextQuestion.IsZero() {
		schedule.QuestionIndex = 0
		schedule.NextQuestion = now.Add(s.config.BootstrapDelay)
		return 0, s.stateRepo.SaveSchedule(ctx, &stateRepo.SaveScheduleInput{Schedule: schedule})
	}

	if now.Before(schedule.NextQuestion) {
		return 0, nil
	}

	category := config.RotationOrder[schedule.QuestionIndex%len(config.RotationOrder)]

	posted := 0
	_, err = s.PostQuestion(ctx, &PostQuestionInput{GuildID: guildID, Category: category, Now: now})
	switch {
	case err == nil:
		posted = 1
	case errors.Is(err, ErrNoChannelConfigured):
		// Unconfigured feature: rotate past it quietly
	default:
		// Leave the schedule untouched so the next tick retries
		return 0, err
	}

	schedule.QuestionIndex = (schedule.QuestionIndex + 1) % len(config.RotationOrder)
	schedule.NextQuestion = now.Add(s.questionGap)
	if err := s.stateRepo.SaveSchedule(ctx, &stateRepo.SaveScheduleInput{Schedule: schedule}); err != nil {
		return posted, err
	}

	return posted, nil
}

// fireOverride posts the current rotation category early, once. The
// override key is deleted after the attempt; the rotation itself is
// not advanced.
func (s *service) fireOverride(ctx context.Context, guildID string, schedule *models.GuildSchedule, override string, now time.Time) (int, error) {
	fireAt, parseErr := time.Parse(time.RFC3339, override)
	if parseErr == nil && now.Before(fireAt) {
		return 0, nil
	}

	posted := 0
	if parseErr == nil {
		category := config.RotationOrder[schedule.QuestionIndex%len(config.RotationOrder)]
		_, err := s.PostQuestion(ctx, &PostQuestionInput{GuildID: guildID, Category: category, Now: now})
		if err == nil {
			posted = 1
		} else if !errors.Is(err, ErrNoChannelConfigured) {
			log.Printf("scheduler: override question post failed for guild %s: %v", guildID, err)
		}
	}

	if err := s.stateRepo.Delete(ctx, &stateRepo.DeleteInput{
		GuildID: guildID,
		Key:     stateRepo.KeyOverrideQuestion,
	}); err != nil {
		return posted, err
	}

	return posted, nil
}
