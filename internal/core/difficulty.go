package core

import (
	"fmt"
	"strings"
)

// Difficulty is the tier of a question. Each tier carries its point
// multiplier and display color.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// Difficulties lists all tiers from easiest to hardest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Multiplier returns the base points a round winner earns at this tier.
func (d Difficulty) Multiplier() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	default:
		return 1
	}
}

// Color returns the display color for the tier.
func (d Difficulty) Color() Color {
	switch d {
	case DifficultyEasy:
		return ColorGreen
	case DifficultyMedium:
		return ColorOrange
	case DifficultyHard:
		return ColorRed
	default:
		return ColorDefault
	}
}

// String returns the lowercase tier name used in data files and flags.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a tier name (case-insensitive).
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyEasy, fmt.Errorf("core: unknown difficulty %q", s)
}

// MarshalYAML writes the tier by name.
func (d Difficulty) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML reads the tier by name.
func (d *Difficulty) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDifficulty(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
