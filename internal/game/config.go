package game

import (
	"time"

	"scrabblesrv/internal/model"
)

// Config holds the lifecycle policy knobs governing a room's game: turn
// duration, the language that selects the bag's letter distribution, how
// many consecutive passes end a stalled game, and whether an exchange
// counts toward that consecutive-pass counter.
type Config struct {
	Language              model.Language
	TurnDuration          time.Duration
	MaxConsecutivePasses  int
	ExchangeCountsAsStall bool
}

// DefaultConfig returns the lifecycle's out-of-the-box policy.
func DefaultConfig() Config {
	return Config{
		Language:              model.LanguageEnglish,
		TurnDuration:          120 * time.Second,
		MaxConsecutivePasses:  6,
		ExchangeCountsAsStall: true,
	}
}
