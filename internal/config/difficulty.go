package config

import (
	"fmt"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Bands maps round numbers to question difficulty: rounds up to EasyUntil
// draw EASY, up to MediumUntil draw MEDIUM, and HARD after that.
type Bands struct {
	EasyUntil   int `yaml:"easy_until"`
	MediumUntil int `yaml:"medium_until"`
}

// DefaultBands returns EASY for rounds 1-3, MEDIUM for 4-7 and HARD after.
func DefaultBands() Bands {
	return Bands{EasyUntil: 3, MediumUntil: 7}
}

// For returns the difficulty of a 1-based round.
func (b Bands) For(round int) core.Difficulty {
	switch {
	case round <= b.EasyUntil:
		return core.DifficultyEasy
	case round <= b.MediumUntil:
		return core.DifficultyMedium
	default:
		return core.DifficultyHard
	}
}

// Validate checks the bands are ordered.
func (b Bands) Validate() error {
	if b.EasyUntil < 0 || b.MediumUntil < b.EasyUntil {
		return fmt.Errorf("config: difficulty bands must satisfy 0 <= easy_until <= medium_until, got %d/%d",
			b.EasyUntil, b.MediumUntil)
	}
	return nil
}
