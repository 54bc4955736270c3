package wordgame

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/crispsgc/crisps-bot/internal/services/wordgame Service

import "context"

// Service defines the interface for the collaborative one-word story
type Service interface {
	// Start begins a fresh game and posts the empty story display
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)

	// Contribute processes one chat message in the game channel
	Contribute(ctx context.Context, input *ContributeInput) (*ContributeOutput, error)

	// End finishes the active game and posts the completed story
	End(ctx context.Context, input *EndInput) (*EndOutput, error)

	// View reports the current game state
	View(ctx context.Context, input *ViewInput) (*ViewOutput, error)
}
