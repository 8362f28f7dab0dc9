package core

import "time"

// RuntimeConfig contains configuration passed to a game at initialization.
// Games use this for timing rules and for deterministic question selection.
type RuntimeConfig struct {
	Seed          int64         // RNG seed for deterministic gameplay (0 = time based)
	TickRate      int           // Simulation ticks per second for real-time drivers
	TimersEnabled bool          // False for untimed play (no per-turn countdown)
	TurnPause     time.Duration // Pause between a resolved turn and the next one
	FreezeWindow  time.Duration // How long a Freeze power-up locks other players
	ExtraTime     time.Duration // Time added by the ExtraTime power-up
	MaxTurnTime   time.Duration // Cap on the countdown after ExtraTime
	PowerUpEvery  int           // Winner gets a random power-up every N rounds
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed:          0,
		TickRate:      10,
		TimersEnabled: true,
		TurnPause:     1500 * time.Millisecond,
		FreezeWindow:  5 * time.Second,
		ExtraTime:     15 * time.Second,
		MaxTurnTime:   60 * time.Second,
		PowerUpEvery:  3,
	}
}
