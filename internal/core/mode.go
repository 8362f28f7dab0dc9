package core

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the rule preset of a game.
type Mode int

const (
	ModeClassic Mode = iota
	ModeSpeed
	ModeElimination
	ModePowerUp
)

// Modes lists all game modes in menu order.
var Modes = []Mode{ModeClassic, ModeSpeed, ModeElimination, ModePowerUp}

// Preset holds the rules a mode applies.
type Preset struct {
	Rounds          int
	PowerUpsEnabled bool
	TurnTime        time.Duration
}

// Preset returns the default rules for the mode.
func (m Mode) Preset() Preset {
	switch m {
	case ModeSpeed:
		return Preset{Rounds: 5, PowerUpsEnabled: false, TurnTime: 15 * time.Second}
	case ModeElimination:
		return Preset{Rounds: 8, PowerUpsEnabled: false, TurnTime: 30 * time.Second}
	case ModePowerUp:
		return Preset{Rounds: 10, PowerUpsEnabled: true, TurnTime: 30 * time.Second}
	default:
		return Preset{Rounds: 10, PowerUpsEnabled: false, TurnTime: 30 * time.Second}
	}
}

// String returns the mode identifier used by flags and config.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeSpeed:
		return "speed"
	case ModeElimination:
		return "elimination"
	case ModePowerUp:
		return "powerup"
	default:
		return "unknown"
	}
}

// Title returns a human-readable name for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeSpeed:
		return "Speed"
	case ModeElimination:
		return "Elimination"
	case ModePowerUp:
		return "Power-Up"
	default:
		return "Unknown"
	}
}

// ParseMode parses a mode identifier (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "":
		return ModeClassic, nil
	case "speed":
		return ModeSpeed, nil
	case "elimination":
		return ModeElimination, nil
	case "powerup", "power-up", "power_up":
		return ModePowerUp, nil
	}
	return ModeClassic, fmt.Errorf("core: unknown mode %q", s)
}
