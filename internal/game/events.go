package game

import (
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Event is something that happened in a game. Observers receive events in
// the order they happen.
type Event interface {
	gameEvent()
}

// GameStarted is emitted once when the game starts.
type GameStarted struct {
	Mode    core.Mode
	Rounds  int
	Players []core.PlayerID
}

func (GameStarted) gameEvent() {}

// RoundStarted is emitted when a new question is drawn.
type RoundStarted struct {
	Round    int
	Category string
	Question core.Question
}

func (RoundStarted) gameEvent() {}

// TurnStarted is emitted when a player's turn becomes active.
type TurnStarted struct {
	Round     int
	Player    core.PlayerID
	Remaining time.Duration
}

func (TurnStarted) gameEvent() {}

// TimerTicked is emitted once per countdown second.
type TimerTicked struct {
	Player    core.PlayerID
	Remaining time.Duration
}

func (TimerTicked) gameEvent() {}

// AnswerAccepted is emitted when a submission is recorded.
type AnswerAccepted struct {
	Answer core.Answer
}

func (AnswerAccepted) gameEvent() {}

// AnswerRejected is emitted when typed text cannot be parsed as an answer.
// Out-of-turn and duplicate submissions are dropped without an event.
type AnswerRejected struct {
	Player core.PlayerID
	Text   string
	Err    error
}

func (AnswerRejected) gameEvent() {}

// TurnPassed is emitted when a countdown runs out without an answer.
type TurnPassed struct {
	Player core.PlayerID
}

func (TurnPassed) gameEvent() {}

// PowerUpArmed is emitted when a power-up is set to ride on the player's
// next answer.
type PowerUpArmed struct {
	Player core.PlayerID
	Type   core.PowerUpType
}

func (PowerUpArmed) gameEvent() {}

// PowerUpUsed is emitted when a power-up use is spent.
type PowerUpUsed struct {
	Player core.PlayerID
	Type   core.PowerUpType
}

func (PowerUpUsed) gameEvent() {}

// PlayerFrozen is emitted when a Freeze locks players out.
type PlayerFrozen struct {
	By      core.PlayerID
	Players []core.PlayerID
	For     time.Duration
}

func (PlayerFrozen) gameEvent() {}

// PowerUpGranted is emitted when a player receives a new power-up.
type PowerUpGranted struct {
	Player core.PlayerID
	Type   core.PowerUpType
}

func (PowerUpGranted) gameEvent() {}

// RoundResolved is emitted with the scored result of a round.
type RoundResolved struct {
	Result RoundResult
}

func (RoundResolved) gameEvent() {}

// AchievementUnlocked is emitted for every new achievement.
type AchievementUnlocked struct {
	Player      core.PlayerID
	Achievement core.Achievement
}

func (AchievementUnlocked) gameEvent() {}

// PlayerEliminated is emitted when elimination mode removes a player.
type PlayerEliminated struct {
	Player core.PlayerID
	Score  int
	Round  int
}

func (PlayerEliminated) gameEvent() {}

// PauseChanged is emitted when the game is paused or resumed.
type PauseChanged struct {
	Paused bool
}

func (PauseChanged) gameEvent() {}

// GameOver is emitted when the game ends. Aborted games were ended early
// and are not persisted.
type GameOver struct {
	Summary Summary
	Aborted bool
}

func (GameOver) gameEvent() {}
