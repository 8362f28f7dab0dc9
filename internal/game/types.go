// Package game sequences rounds into a full TheoryGames match: it draws
// questions, runs each round, applies scoring, culls players in elimination
// mode and hands the final result to the profile store.
package game

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/round"
)

var (
	// ErrNoPlayers is returned by New when no players are given.
	ErrNoPlayers = errors.New("game: no players")

	// ErrNoCategories is returned by New when no categories are configured.
	ErrNoCategories = errors.New("game: no categories")

	// ErrDuplicatePlayer is returned by New when two players share an id.
	ErrDuplicatePlayer = errors.New("game: duplicate player id")

	// ErrWrongPhase is returned when an operation does not apply to the
	// current phase, such as NextRound during a round.
	ErrWrongPhase = errors.New("game: wrong phase")
)

// Phase is the state of the game across rounds.
type Phase int

const (
	PhaseSetup            Phase = iota // Created, not started
	PhaseRoundInProgress               // A round is running its turns
	PhaseRoundResolved                 // Round scored, waiting for the next one
	PhaseEliminationCheck              // Lowest scorer being removed
	PhaseGameOver                      // Finished or ended
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseRoundInProgress:
		return "RoundInProgress"
	case PhaseRoundResolved:
		return "RoundResolved"
	case PhaseEliminationCheck:
		return "EliminationCheck"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// EliminationStart is the first round after which elimination mode removes
// a player.
const EliminationStart = 2

// Config holds the rules of one game.
type Config struct {
	Mode       core.Mode
	Rounds     int           // 0 uses the mode preset
	TurnTime   time.Duration // 0 uses the mode preset
	Categories []string      // Rotated round by round
	Runtime    core.RuntimeConfig

	// RoundPause starts the next round automatically this long after a round
	// resolves. Zero waits for NextRound.
	RoundPause time.Duration
}

// MaxRounds returns the configured round count or the mode's preset.
func (c Config) MaxRounds() int {
	if c.Rounds > 0 {
		return c.Rounds
	}
	return c.Mode.Preset().Rounds
}

// QuestionSource draws questions and resolves name-match guesses.
// *catalog.Catalog implements it.
type QuestionSource interface {
	round.Resolver
	SelectQuestion(category string, round int) (core.Question, error)
}

// ProfileSaver persists the result of a finished game.
type ProfileSaver interface {
	RecordGame(ctx context.Context, s Summary) error
}

// Options are the optional collaborators of a game.
type Options struct {
	Logger *log.Logger      // Defaults to a discarding logger
	Saver  ProfileSaver     // Optional, can be nil
	Clock  func() time.Time // Defaults to time.Now
}

// RoundResult is the scored outcome of one round. Immutable once created.
type RoundResult struct {
	Round     int
	Category  string
	Players   []core.PlayerID // Turn order of the round
	Question  core.Question
	Answers   []core.Answer
	Winner    *core.PlayerID
	Points    map[core.PlayerID]int
	Distances map[core.PlayerID]float64
}

// Summary is the final result of a game handed to the profile store.
type Summary struct {
	ID         string
	Mode       core.Mode
	StartedAt  time.Time
	EndedAt    time.Time
	Rounds     int           // Rounds played
	Players    []core.Player // Every player in seating order, final state
	Eliminated []core.PlayerID
	Winner     *core.PlayerID
	Results    []RoundResult
}

// Won reports whether the player won the game.
func (s Summary) Won(id core.PlayerID) bool {
	return s.Winner != nil && *s.Winner == id
}

// Player returns the final state of one player.
func (s Summary) Player(id core.PlayerID) (core.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return core.Player{}, false
}
