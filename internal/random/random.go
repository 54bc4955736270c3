package random

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_picker.go github.com/crispsgc/crisps-bot/internal/random Picker

// Picker provides the randomness used for question selection, drop
// amounts and intervals, and message-template choice.
type Picker interface {
	// Intn returns a uniform value in [0, n)
	Intn(n int) int

	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64
}

// Config for the default picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// DefaultPicker implements Picker with a seeded math/rand source
type DefaultPicker struct {
	random *rand.Rand
}

// New creates a new picker
func New(cfg *Config) *DefaultPicker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)

	return &DefaultPicker{
		random: rand.New(source),
	}
}

// Intn returns a uniform value in [0, n)
func (p *DefaultPicker) Intn(n int) int {
	if n < 1 {
		return 0
	}
	return p.random.Intn(n)
}

// Float64 returns a uniform value in [0.0, 1.0)
func (p *DefaultPicker) Float64() float64 {
	return p.random.Float64()
}
