package core

import (
	"fmt"
	"strings"
)

// PowerUpType is a limited-use modifier a player can invoke on their turn.
type PowerUpType int

const (
	PowerUpDoublePoints PowerUpType = iota // Doubles the base points if the user wins
	PowerUpStealPoint                      // Takes one point from the round winner
	PowerUpExtraTime                       // Adds time to the running countdown
	PowerUpFreeze                          // Locks other players out for a short window
	PowerUpCount                           // Sentinel for counting types
)

// String returns the name of the power-up.
func (p PowerUpType) String() string {
	switch p {
	case PowerUpDoublePoints:
		return "Double Points"
	case PowerUpStealPoint:
		return "Steal Point"
	case PowerUpExtraTime:
		return "Extra Time"
	case PowerUpFreeze:
		return "Freeze"
	default:
		return "?"
	}
}

// Glyph returns the display glyph for the power-up.
func (p PowerUpType) Glyph() string {
	switch p {
	case PowerUpDoublePoints:
		return "x2"
	case PowerUpStealPoint:
		return "$"
	case PowerUpExtraTime:
		return "+t"
	case PowerUpFreeze:
		return "*"
	default:
		return "?"
	}
}

// Description explains what the power-up does.
func (p PowerUpType) Description() string {
	switch p {
	case PowerUpDoublePoints:
		return "Double your base points if you win this round"
	case PowerUpStealPoint:
		return "Steal one point from this round's winner"
	case PowerUpExtraTime:
		return "Add 15 seconds to your countdown"
	case PowerUpFreeze:
		return "Freeze every other player for 5 seconds"
	default:
		return ""
	}
}

// Cost is the shop price of the power-up.
func (p PowerUpType) Cost() int {
	switch p {
	case PowerUpDoublePoints:
		return 3
	case PowerUpStealPoint:
		return 2
	case PowerUpExtraTime:
		return 1
	case PowerUpFreeze:
		return 2
	default:
		return 0
	}
}

// DefaultUses is how many uses a freshly granted power-up has.
func (p PowerUpType) DefaultUses() int {
	switch p {
	case PowerUpExtraTime:
		return 2
	default:
		return 1
	}
}

// Instant reports whether the power-up takes effect on use rather than
// being attached to an answer.
func (p PowerUpType) Instant() bool {
	return p == PowerUpExtraTime || p == PowerUpFreeze
}

// ParsePowerUp parses a power-up name such as "double", "steal", "extra-time"
// or "freeze".
func ParsePowerUp(s string) (PowerUpType, error) {
	switch NormalizeName(s) {
	case "double", "double points", "x2":
		return PowerUpDoublePoints, nil
	case "steal", "steal point":
		return PowerUpStealPoint, nil
	case "extra", "extra time", "time":
		return PowerUpExtraTime, nil
	case "freeze":
		return PowerUpFreeze, nil
	}
	return 0, fmt.Errorf("core: unknown power-up %q", strings.TrimSpace(s))
}

// PowerUp is a held power-up instance with its remaining uses.
type PowerUp struct {
	Type PowerUpType `json:"type"`
	Uses int         `json:"uses"`
}
