package game

import (
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/round"
)

// State is a value snapshot of a game. It shares no mutable memory with the game,
// so it can be handed to another goroutine.
type State struct {
	Phase     Phase
	Mode      core.Mode
	Round     int
	MaxRounds int
	Category  string
	Paused    bool

	// Current round, valid while Round > 0.
	Question      *core.Question
	RoundPhase    round.Phase
	Turn          int
	Active        core.PlayerID // Empty between turns
	Remaining     time.Duration
	TimersEnabled bool
	Frozen        []core.PlayerID
	Answered      []core.PlayerID // Players who answered this round, in order
	Armed         map[core.PlayerID]core.PowerUpType

	Players    []core.Player // Remaining players in turn order
	Eliminated []core.Player
	Last       *RoundResult // Most recent resolved round
	Winner     *core.PlayerID
}

// Player returns a remaining player by id.
func (s State) Player(id core.PlayerID) (core.Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return core.Player{}, false
}

// IsFrozen reports whether the player is frozen in the snapshot.
func (s State) IsFrozen(id core.PlayerID) bool {
	for _, f := range s.Frozen {
		if f == id {
			return true
		}
	}
	return false
}

// State returns a snapshot of the game.
func (g *Game) State() State {
	st := State{
		Phase:         g.phase,
		Mode:          g.cfg.Mode,
		Round:         g.round,
		MaxRounds:     g.maxRounds,
		Category:      g.category,
		Paused:        g.paused,
		TimersEnabled: g.roundCfg.TimersEnabled,
		Armed:         make(map[core.PlayerID]core.PowerUpType, len(g.armed)),
		Winner:        g.winner,
	}
	for id, t := range g.armed {
		st.Armed[id] = t
	}
	for _, p := range g.players {
		st.Players = append(st.Players, p.Clone())
	}
	for _, p := range g.eliminated {
		st.Eliminated = append(st.Eliminated, p.Clone())
	}
	if n := len(g.results); n > 0 {
		last := g.results[n-1]
		st.Last = &last
	}

	if g.current != nil {
		q := g.current.Question()
		st.Question = &q
		st.RoundPhase = g.current.Phase()
		st.Turn = g.current.Turn()
		st.Active, _ = g.current.ActivePlayer()
		st.Remaining = g.current.Remaining()
		st.Frozen = g.current.Frozen()
		for _, a := range g.current.Answers() {
			st.Answered = append(st.Answered, a.Player)
		}
	}
	return st
}
