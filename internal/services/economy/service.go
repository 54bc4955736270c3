package economy

import (
	"context"
	"errors"
	"time"

	"github.com/crispsgc/crisps-bot/internal/common/clock"
	"github.com/crispsgc/crisps-bot/internal/common/uuid"
	"github.com/crispsgc/crisps-bot/internal/models"
	"github.com/crispsgc/crisps-bot/internal/platform"
	"github.com/crispsgc/crisps-bot/internal/random"
	activityRepo "github.com/crispsgc/crisps-bot/internal/repositories/activity"
	dropRepo "github.com/crispsgc/crisps-bot/internal/repositories/drop"
	ledgerRepo "github.com/crispsgc/crisps-bot/internal/repositories/ledger"
	stateRepo "github.com/crispsgc/crisps-bot/internal/repositories/state"
	userRepo "github.com/crispsgc/crisps-bot/internal/repositories/user"
)

// Define errors
var (
	ErrNoDropChannel = errors.New("no chip drop channel configured")
	ErrDropActive    = errors.New("a drop is already active")
)

// Tuning defaults
const (
	defaultTopChatterReward    = int64(100)
	defaultSecondChatterReward = int64(50)
	defaultDropAmountMin       = int64(20)
	defaultDropAmountMax       = int64(60)
	defaultMathChance          = 0.25
	defaultDropTimeout         = 10 * time.Minute
	defaultActivityWindow      = 30 * time.Minute
	defaultDropDelayMin        = 1 * time.Minute
	defaultDropDelayMax        = 10 * time.Minute
	defaultDropCooldownMin     = 45 * time.Minute
	defaultDropCooldownMax     = 120 * time.Minute
)

// service implements the Service interface
type service struct {
	config       *Config
	userRepo     userRepo.Repository
	activityRepo activityRepo.Repository
	dropRepo     dropRepo.Repository
	ledgerRepo   ledgerRepo.Repository
	stateRepo    stateRepo.Repository
	poster       platform.Poster
	picker       random.Picker
	clock        clock.Clock
	uuider       uuid.UUID
	location     *time.Location
}

// NewService creates a new economy service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("cfg is required")
	}

	if cfg.UserRepo == nil {
		return nil, errors.New("cfg.UserRepo is required")
	}

	if cfg.ActivityRepo == nil {
		return nil, errors.New("cfg.ActivityRepo is required")
	}

	if cfg.DropRepo == nil {
		return nil, errors.New("cfg.DropRepo is required")
	}

	if cfg.LedgerRepo == nil {
		return nil, errors.New("cfg.LedgerRepo is required")
	}

	if cfg.StateRepo == nil {
		return nil, errors.New("cfg.StateRepo is required")
	}

	if cfg.Poster == nil {
		return nil, errors.New("cfg.Poster is required")
	}

	if cfg.Picker == nil {
		return nil, errors.New("cfg.Picker is required")
	}

	if cfg.Clock == nil {
		return nil, errors.New("cfg.Clock is required")
	}

	if cfg.UUIDGenerator == nil {
		return nil, errors.New("cfg.UUIDGenerator is required")
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}

	// Fill in tuning defaults
	if cfg.TopChatterReward == 0 {
		cfg.TopChatterReward = defaultTopChatterReward
	}
	if cfg.SecondChatterReward == 0 {
		cfg.SecondChatterReward = defaultSecondChatterReward
	}
	if cfg.ActivityRewards == nil {
		cfg.ActivityRewards = []int64{75, 50, 25}
	}
	if cfg.DropAmountMin == 0 {
		cfg.DropAmountMin = defaultDropAmountMin
	}
	if cfg.DropAmountMax == 0 {
		cfg.DropAmountMax = defaultDropAmountMax
	}
	if cfg.MathChance == 0 {
		cfg.MathChance = defaultMathChance
	}
	if cfg.DropTimeout == 0 {
		cfg.DropTimeout = defaultDropTimeout
	}
	if cfg.ActivityWindow == 0 {
		cfg.ActivityWindow = defaultActivityWindow
	}
	if cfg.DropDelayMin == 0 {
		cfg.DropDelayMin = defaultDropDelayMin
	}
	if cfg.DropDelayMax == 0 {
		cfg.DropDelayMax = defaultDropDelayMax
	}
	if cfg.DropCooldownMin == 0 {
		cfg.DropCooldownMin = defaultDropCooldownMin
	}
	if cfg.DropCooldownMax == 0 {
		cfg.DropCooldownMax = defaultDropCooldownMax
	}

	return &service{
		config:       cfg,
		userRepo:     cfg.UserRepo,
		activityRepo: cfg.ActivityRepo,
		dropRepo:     cfg.DropRepo,
		ledgerRepo:   cfg.LedgerRepo,
		stateRepo:    cfg.StateRepo,
		poster:       cfg.Poster,
		picker:       cfg.Picker,
		clock:        cfg.Clock,
		uuider:       cfg.UUIDGenerator,
		location:     location,
	}, nil
}

// dateKey formats a time as the local calendar date counters are keyed by
func (s *service) dateKey(t time.Time) string {
	return t.In(s.location).Format("2006-01-02")
}

// GetBalance retrieves a user's chips and leaderboard rank
func (s *service) GetBalance(ctx context.Context, input *GetBalanceInput) (*GetBalanceOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	chips, err := s.userRepo.GetBalance(ctx, &userRepo.GetBalanceInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	})
	if err != nil {
		return nil, err
	}

	output := &GetBalanceOutput{Chips: chips}

	rank, err := s.userRepo.GetRank(ctx, &userRepo.GetRankInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
	})
	if err == nil {
		output.Rank = rank
		output.Ranked = true
	} else if !errors.Is(err, userRepo.ErrUserNotRanked) {
		return nil, err
	}

	return output, nil
}

// SetBalance sets a user's balance to an absolute value and records
// the adjustment in the ledger
func (s *service) SetBalance(ctx context.Context, input *SetBalanceInput) (*SetBalanceOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	err := s.userRepo.SetChips(ctx, &userRepo.SetChipsInput{
		GuildID:  input.GuildID,
		UserID:   input.UserID,
		Username: input.Username,
		Amount:   input.Amount,
	})
	if err != nil {
		return nil, err
	}

	err = s.recordTransaction(ctx, input.GuildID, input.UserID, input.Amount, models.ChipReasonAdminSet)
	if err != nil {
		return nil, err
	}

	return &SetBalanceOutput{Chips: input.Amount}, nil
}

// GetLeaderboard retrieves the top balances plus the caller's position
func (s *service) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	entries, err := s.userRepo.GetLeaderboard(ctx, &userRepo.GetLeaderboardInput{
		GuildID: input.GuildID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	total, err := s.userRepo.CountUsers(ctx, &userRepo.CountUsersInput{
		GuildID: input.GuildID,
	})
	if err != nil {
		return nil, err
	}

	output := &GetLeaderboardOutput{
		Entries:    entries,
		TotalUsers: total,
	}

	if input.UserID != "" {
		rank, err := s.userRepo.GetRank(ctx, &userRepo.GetRankInput{
			GuildID: input.GuildID,
			UserID:  input.UserID,
		})
		if err == nil {
			chips, err := s.userRepo.GetBalance(ctx, &userRepo.GetBalanceInput{
				GuildID: input.GuildID,
				UserID:  input.UserID,
			})
			if err != nil {
				return nil, err
			}
			output.CallerRank = rank
			output.CallerChips = chips
			output.CallerRanked = true
		} else if !errors.Is(err, userRepo.ErrUserNotRanked) {
			return nil, err
		}
	}

	return output, nil
}

// TrackMessage records a human message: the inactivity-nudge timestamp,
// the day's chatter count, and one activity point
func (s *service) TrackMessage(ctx context.Context, input *TrackMessageInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	now := s.clock.Now()

	err := s.stateRepo.Set(ctx, &stateRepo.SetInput{
		GuildID: input.GuildID,
		Key:     stateRepo.KeyLastMessage,
		Value:   now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	if input.Username != "" {
		err = s.userRepo.SetUsername(ctx, &userRepo.SetUsernameInput{
			GuildID:  input.GuildID,
			UserID:   input.UserID,
			Username: input.Username,
		})
		if err != nil {
			return err
		}
	}

	date := s.dateKey(now)

	err = s.activityRepo.IncrementChatter(ctx, &activityRepo.IncrementChatterInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Date:    date,
	})
	if err != nil {
		return err
	}

	return s.activityRepo.IncrementActivity(ctx, &activityRepo.IncrementActivityInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Date:    date,
		Points:  1,
	})
}

// TrackVoiceJoin opens a voice session for the user
func (s *service) TrackVoiceJoin(ctx context.Context, input *TrackVoiceJoinInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	return s.activityRepo.StartVoiceSession(ctx, &activityRepo.StartVoiceSessionInput{
		GuildID:  input.GuildID,
		UserID:   input.UserID,
		JoinedAt: s.clock.Now(),
	})
}

// TrackVoiceLeave closes the user's voice session and credits the
// elapsed minutes as activity points
func (s *service) TrackVoiceLeave(ctx context.Context, input *TrackVoiceLeaveInput) error {
	if input == nil {
		return errors.New("input is required")
	}

	now := s.clock.Now()

	minutes, err := s.activityRepo.EndVoiceSession(ctx, &activityRepo.EndVoiceSessionInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Now:     now,
	})
	if err != nil {
		// A leave without a recorded join is not an error
		if errors.Is(err, activityRepo.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if minutes <= 0 {
		return nil
	}

	return s.activityRepo.IncrementActivity(ctx, &activityRepo.IncrementActivityInput{
		GuildID: input.GuildID,
		UserID:  input.UserID,
		Date:    s.dateKey(now),
		Points:  int64(minutes),
	})
}

// RecentTransactions retrieves the latest ledger entries
func (s *service) RecentTransactions(ctx context.Context, input *RecentTransactionsInput) (*RecentTransactionsOutput, error) {
	if input == nil {
		return nil, errors.New("input is required")
	}

	transactions, err := s.ledgerRepo.Recent(ctx, &ledgerRepo.RecentInput{
		GuildID: input.GuildID,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, err
	}

	return &RecentTransactionsOutput{Transactions: transactions}, nil
}

// recordTransaction appends a ledger entry
func (s *service) recordTransaction(ctx context.Context, guildID, userID string, amount int64, reason models.ChipReason) error {
	return s.ledgerRepo.Record(ctx, &ledgerRepo.RecordInput{
		Transaction: &models.ChipTransaction{
			ID:        s.uuider.NewUUID(),
			GuildID:   guildID,
			UserID:    userID,
			Amount:    amount,
			Reason:    reason,
			CreatedAt: s.clock.Now(),
		},
	})
}
