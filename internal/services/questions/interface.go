package questions

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/crispsgc/crisps-bot/internal/services/questions Service

import "context"

// Service defines the interface for question selection
type Service interface {
	// SelectQuestion draws the next question for a category, never
	// repeating one until the whole bank has been posted
	SelectQuestion(ctx context.Context, input *SelectQuestionInput) (*SelectQuestionOutput, error)

	// UsageStats reports per-category bank consumption for the admin view
	UsageStats(ctx context.Context, input *UsageStatsInput) (*UsageStatsOutput, error)
}
