// Package round runs a single trivia question from the first player's turn
// through every player's turn to resolution. Rounds contain pure logic: time
// only moves through the Scheduler, so the same inputs replay identically.
package round

import (
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Phase is the state of the turn state machine.
type Phase int

const (
	PhaseAwaitingTurn Phase = iota // Turn index chosen, waiting to activate
	PhaseTurnActive                // Active player may answer; countdown running
	PhaseAnswered                  // Turn resolved (answer or pass), pausing before the next
	PhaseResolving                 // Last turn done, winner being decided
	PhaseResolved                  // Outcome available
	PhaseStopped                   // Aborted by the game (end or reset)
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingTurn:
		return "AwaitingTurn"
	case PhaseTurnActive:
		return "PlayerTurnActive"
	case PhaseAnswered:
		return "PlayerAnswered"
	case PhaseResolving:
		return "RoundResolving"
	case PhaseResolved:
		return "RoundResolved"
	case PhaseStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// Config holds the timing rules of a round.
type Config struct {
	TurnTime      time.Duration // Countdown budget per turn
	TimersEnabled bool          // False skips the countdown entirely
	TurnPause     time.Duration // Pause between turns
	FreezeWindow  time.Duration // Duration of a Freeze
	ExtraTime     time.Duration // Time added by ExtraTime
	MaxTurnTime   time.Duration // Countdown cap after ExtraTime
}

// ConfigFor builds the round rules for a mode.
func ConfigFor(mode core.Mode, rc core.RuntimeConfig) Config {
	return Config{
		TurnTime:      mode.Preset().TurnTime,
		TimersEnabled: rc.TimersEnabled,
		TurnPause:     rc.TurnPause,
		FreezeWindow:  rc.FreezeWindow,
		ExtraTime:     rc.ExtraTime,
		MaxTurnTime:   rc.MaxTurnTime,
	}
}

// Outcome is the resolved result of a round.
type Outcome struct {
	Question  core.Question
	Answers   []core.Answer
	Winner    *core.PlayerID // nil when nobody answered
	Distances map[core.PlayerID]float64
}

// WinningAnswer returns the winner's answer.
func (o Outcome) WinningAnswer() (core.Answer, bool) {
	if o.Winner == nil {
		return core.Answer{}, false
	}
	for _, a := range o.Answers {
		if a.Player == *o.Winner {
			return a, true
		}
	}
	return core.Answer{}, false
}

// Listener receives round progress notifications.
type Listener interface {
	TurnStarted(player core.PlayerID, remaining time.Duration)
	TimerTicked(player core.PlayerID, remaining time.Duration)
	AnswerAccepted(a core.Answer)
	TurnPassed(player core.PlayerID)
	RoundResolved(o Outcome)
}

type nopListener struct{}

func (nopListener) TurnStarted(core.PlayerID, time.Duration) {}
func (nopListener) TimerTicked(core.PlayerID, time.Duration) {}
func (nopListener) AnswerAccepted(core.Answer)               {}
func (nopListener) TurnPassed(core.PlayerID)                 {}
func (nopListener) RoundResolved(Outcome)                    {}

// Round runs one question across the players' turns.
type Round struct {
	cfg      Config
	question core.Question
	order    []core.PlayerID
	judge    Judge
	sched    *Scheduler
	listener Listener

	phase     Phase
	turn      int
	answers   []core.Answer
	answered  map[core.PlayerID]bool
	frozen    map[core.PlayerID]time.Duration // player -> frozen until
	remaining time.Duration
	timer     Handle
	turnStart time.Duration
	paused    bool
	deferred  bool // Next turn is due but the round is paused
	outcome   *Outcome
}

// New creates a round for the players in turn order. The round does nothing
// until Start is called.
func New(q core.Question, order []core.PlayerID, cfg Config, sched *Scheduler, judge Judge, l Listener) *Round {
	if l == nil {
		l = nopListener{}
	}
	return &Round{
		cfg:      cfg,
		question: q,
		order:    append([]core.PlayerID(nil), order...),
		judge:    judge,
		sched:    sched,
		listener: l,
		phase:    PhaseAwaitingTurn,
		answered: make(map[core.PlayerID]bool, len(order)),
		frozen:   make(map[core.PlayerID]time.Duration),
	}
}

// Start activates the first player's turn. A round without players
// resolves immediately with no winner.
func (r *Round) Start() {
	if r.phase != PhaseAwaitingTurn || r.turn != 0 {
		return
	}
	if len(r.order) == 0 {
		r.resolve()
		return
	}
	r.beginTurn()
}

// Submit records the active player's answer. Answers from any other player,
// from a frozen player, from a player who already answered, or outside an
// active turn are dropped and Submit returns false.
func (r *Round) Submit(a core.Answer) bool {
	if !r.CanSubmit(a.Player) {
		return false
	}

	a.TimeTaken = r.sched.Now() - r.turnStart
	r.answers = append(r.answers, a)
	r.answered[a.Player] = true
	r.replaceTimer(Handle{})
	r.phase = PhaseAnswered

	r.listener.AnswerAccepted(a)
	r.finishTurn()
	return true
}

// CanSubmit reports whether an answer from player would be accepted now.
func (r *Round) CanSubmit(player core.PlayerID) bool {
	if r.phase != PhaseTurnActive || r.paused {
		return false
	}
	return player == r.order[r.turn] && !r.answered[player] && !r.IsFrozen(player)
}

// Pause freezes the countdown. Returns false if there is nothing to pause.
func (r *Round) Pause() bool {
	if r.paused || r.phase == PhaseResolved || r.phase == PhaseStopped {
		return false
	}
	r.paused = true
	r.replaceTimer(Handle{})
	return true
}

// Resume restarts the countdown from its current value if time remains.
func (r *Round) Resume() bool {
	if !r.paused {
		return false
	}
	r.paused = false
	if r.deferred {
		r.deferred = false
		r.nextTurn()
		return true
	}
	if r.phase == PhaseTurnActive && r.cfg.TimersEnabled && r.remaining > 0 {
		r.startCountdown()
	}
	return true
}

// ExtraTime adds time to the active player's countdown, capped at the
// configured maximum. Only the active player may use it during a timed turn.
func (r *Round) ExtraTime(player core.PlayerID) bool {
	if r.phase != PhaseTurnActive || r.paused || !r.cfg.TimersEnabled {
		return false
	}
	if player != r.order[r.turn] {
		return false
	}
	r.remaining = min(r.remaining+r.cfg.ExtraTime, r.cfg.MaxTurnTime)
	return true
}

// Freeze locks every player other than the active one out of answering for
// the freeze window. The window runs on the scheduler clock, independent of
// the countdown.
func (r *Round) Freeze(player core.PlayerID) bool {
	if r.phase != PhaseTurnActive || r.paused || player != r.order[r.turn] {
		return false
	}
	until := r.sched.Now() + r.cfg.FreezeWindow
	for _, id := range r.order {
		if id != player {
			r.frozen[id] = until
		}
	}
	r.sched.After(r.cfg.FreezeWindow, r.thaw)
	return true
}

// Stop aborts the round and cancels its timer. Pending scheduled work is
// dropped by the owner bumping the scheduler generation.
func (r *Round) Stop() {
	r.replaceTimer(Handle{})
	if r.phase != PhaseResolved {
		r.phase = PhaseStopped
	}
}

// Phase returns the current state.
func (r *Round) Phase() Phase {
	return r.phase
}

// Turn returns the index of the current turn.
func (r *Round) Turn() int {
	return r.turn
}

// ActivePlayer returns the player whose turn it is.
func (r *Round) ActivePlayer() (core.PlayerID, bool) {
	if r.turn >= len(r.order) || r.phase == PhaseResolved || r.phase == PhaseStopped {
		return "", false
	}
	return r.order[r.turn], true
}

// Order returns the players in turn order.
func (r *Round) Order() []core.PlayerID {
	return append([]core.PlayerID(nil), r.order...)
}

// Question returns the round's question.
func (r *Round) Question() core.Question {
	return r.question
}

// Answers returns the accepted answers in submission order.
func (r *Round) Answers() []core.Answer {
	return append([]core.Answer(nil), r.answers...)
}

// Remaining returns the active turn's countdown.
func (r *Round) Remaining() time.Duration {
	return r.remaining
}

// Paused reports whether the round is paused.
func (r *Round) Paused() bool {
	return r.paused
}

// TimerRunning reports whether a countdown task is live.
func (r *Round) TimerRunning() bool {
	return r.timer.Active()
}

// IsFrozen reports whether a player is locked out by a Freeze.
func (r *Round) IsFrozen(player core.PlayerID) bool {
	until, ok := r.frozen[player]
	return ok && until > r.sched.Now()
}

// Frozen returns the currently frozen players.
func (r *Round) Frozen() []core.PlayerID {
	var ids []core.PlayerID
	for _, id := range r.order {
		if r.IsFrozen(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Outcome returns the resolved result, if the round has resolved.
func (r *Round) Outcome() (Outcome, bool) {
	if r.outcome == nil {
		return Outcome{}, false
	}
	return *r.outcome, true
}

// replaceTimer installs h as the round's countdown, always cancelling the
// previous one first so two countdowns never drive the same turn.
func (r *Round) replaceTimer(h Handle) {
	r.timer.Cancel()
	r.timer = h
}

func (r *Round) startCountdown() {
	r.replaceTimer(r.sched.Every(time.Second, r.tick))
}

func (r *Round) beginTurn() {
	r.phase = PhaseTurnActive
	r.turnStart = r.sched.Now()
	r.remaining = 0
	if r.cfg.TimersEnabled {
		r.remaining = r.cfg.TurnTime
		if !r.paused {
			r.startCountdown()
		}
	}
	r.listener.TurnStarted(r.order[r.turn], r.remaining)
}

func (r *Round) tick() {
	if r.phase != PhaseTurnActive {
		r.replaceTimer(Handle{})
		return
	}
	r.remaining -= time.Second
	if r.remaining < 0 {
		r.remaining = 0
	}
	player := r.order[r.turn]
	r.listener.TimerTicked(player, r.remaining)
	if r.remaining == 0 {
		r.replaceTimer(Handle{})
		r.phase = PhaseAnswered
		r.listener.TurnPassed(player)
		r.finishTurn()
	}
}

// finishTurn moves on after the active turn ended by answer or pass.
func (r *Round) finishTurn() {
	if r.turn >= len(r.order)-1 {
		r.resolve()
		return
	}
	if r.cfg.TurnPause <= 0 {
		r.nextTurn()
		return
	}
	r.sched.After(r.cfg.TurnPause, func() {
		if r.phase != PhaseAnswered {
			return
		}
		if r.paused {
			r.deferred = true
			return
		}
		r.nextTurn()
	})
}

func (r *Round) nextTurn() {
	r.turn++
	r.phase = PhaseAwaitingTurn
	r.beginTurn()
}

func (r *Round) thaw() {
	now := r.sched.Now()
	for id, until := range r.frozen {
		if until <= now {
			delete(r.frozen, id)
		}
	}
}

func (r *Round) resolve() {
	r.replaceTimer(Handle{})
	r.phase = PhaseResolving
	out := r.judge.Decide(r.question, r.answers)
	r.outcome = &out
	r.phase = PhaseResolved
	r.listener.RoundResolved(out)
}
