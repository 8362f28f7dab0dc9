package game

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/round"
	"github.com/vovakirdan/theory-games/internal/scoring"
)

// saveTimeout bounds a background profile save.
const saveTimeout = 10 * time.Second

// Observer receives every event together with the state right after it.
// Observers run synchronously and must not call back into the game.
type Observer func(ev Event, st State)

// Game is the director of one match. It owns all game state; every
// mutation goes through its methods. Not safe for concurrent use: Runner
// drives a Game from a single goroutine.
type Game struct {
	cfg      Config
	roundCfg round.Config
	rules    scoring.Rules
	source   QuestionSource
	logger   *log.Logger
	saver    ProfileSaver
	clock    func() time.Time
	rng      *rand.Rand
	sched    *round.Scheduler

	seating    []*core.Player // Every player in original order
	players    []*core.Player // Remaining players in turn order
	eliminated []*core.Player

	id        string
	startedAt time.Time
	phase     Phase
	round     int
	maxRounds int
	category  string
	current   *round.Round
	results   []RoundResult
	armed     map[core.PlayerID]core.PowerUpType
	paused    bool
	deferNext bool // Auto-advance fell due while paused
	winner    *core.PlayerID

	observers []Observer
}

// New creates a game in the Setup phase. The game takes ownership of the
// players and mutates them as rounds are scored.
func New(cfg Config, players []*core.Player, source QuestionSource, opts Options) (*Game, error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(cfg.Categories) == 0 {
		return nil, ErrNoCategories
	}
	seen := make(map[core.PlayerID]bool, len(players))
	for _, p := range players {
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
		}
		seen[p.ID] = true
	}

	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	preset := cfg.Mode.Preset()
	roundCfg := round.ConfigFor(cfg.Mode, cfg.Runtime)
	if cfg.TurnTime > 0 {
		roundCfg.TurnTime = cfg.TurnTime
	}
	return &Game{
		cfg:      cfg,
		roundCfg: roundCfg,
		rules: scoring.Rules{
			PowerUpsEnabled: preset.PowerUpsEnabled,
			PowerUpEvery:    cfg.Runtime.PowerUpEvery,
		},
		source:    source,
		logger:    logger,
		saver:     opts.Saver,
		clock:     clock,
		rng:       rand.New(rand.NewSource(seed)),
		sched:     round.NewScheduler(),
		seating:   append([]*core.Player(nil), players...),
		players:   append([]*core.Player(nil), players...),
		phase:     PhaseSetup,
		maxRounds: cfg.MaxRounds(),
		armed:     make(map[core.PlayerID]core.PowerUpType),
	}, nil
}

// Subscribe registers an observer for game events.
func (g *Game) Subscribe(o Observer) {
	g.observers = append(g.observers, o)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the current round number (1-based, 0 before the start).
func (g *Game) Round() int {
	return g.round
}

// Results returns the resolved rounds so far.
func (g *Game) Results() []RoundResult {
	return append([]RoundResult(nil), g.results...)
}

// Start resets every player's per-game counters and begins round 1.
func (g *Game) Start() error {
	if g.phase != PhaseSetup {
		return fmt.Errorf("%w: start during %s", ErrWrongPhase, g.phase)
	}

	g.id = uuid.NewString()
	g.startedAt = g.clock()
	ids := make([]core.PlayerID, 0, len(g.players))
	for _, p := range g.players {
		p.Score = 0
		p.Streak = 0
		p.LongestStreak = 0
		p.RoundsWon = 0
		p.PowerUpsUsed = 0
		p.PowerUps = nil
		if g.rules.PowerUpsEnabled {
			scoring.GrantPowerUp(p, scoring.RandomType(g.rng))
		}
		ids = append(ids, p.ID)
	}

	g.logger.Info("game started", "game", g.id, "mode", g.cfg.Mode, "players", len(ids), "rounds", g.maxRounds)
	g.emit(GameStarted{Mode: g.cfg.Mode, Rounds: g.maxRounds, Players: ids})
	return g.startRound(1)
}

// NextRound starts the round after a resolved one.
func (g *Game) NextRound() error {
	if g.phase != PhaseRoundResolved {
		return fmt.Errorf("%w: next round during %s", ErrWrongPhase, g.phase)
	}
	return g.startRound(g.round + 1)
}

// Advance moves game time forward, running countdowns and pauses.
func (g *Game) Advance(dt time.Duration) {
	if g.phase == PhaseSetup || g.phase == PhaseGameOver {
		return
	}
	g.sched.Advance(dt)
}

// Submit records an answer for the active player. Answers the round does not
// accept are dropped and Submit returns false. An armed power-up rides on
// the answer and is spent.
func (g *Game) Submit(a core.Answer) bool {
	if g.phase != PhaseRoundInProgress || g.current == nil || !g.current.CanSubmit(a.Player) {
		return false
	}

	a.PowerUp = nil
	if t, ok := g.armed[a.Player]; ok {
		delete(g.armed, a.Player)
		if p := g.player(a.Player); p != nil && scoring.Consume(p, t) {
			a.PowerUp = &t
			g.emit(PowerUpUsed{Player: a.Player, Type: t})
		}
	}
	return g.current.Submit(a)
}

// SubmitText parses typed text for the current question and submits it.
// Only a parse error is reported; rejected submissions return false.
func (g *Game) SubmitText(player core.PlayerID, text string) (bool, error) {
	if g.phase != PhaseRoundInProgress || g.current == nil || !g.current.CanSubmit(player) {
		return false, nil
	}
	a, err := core.NewAnswer(player, g.current.Question().Kind, text)
	if err != nil {
		g.emit(AnswerRejected{Player: player, Text: text, Err: err})
		return false, err
	}
	return g.Submit(a), nil
}

// UsePowerUp invokes one of the active player's power-ups. ExtraTime and
// Freeze act immediately; DoublePoints and StealPoint are armed and spent
// with the player's answer. Returns false if the power-up cannot be used.
func (g *Game) UsePowerUp(player core.PlayerID, t core.PowerUpType) bool {
	if !g.rules.PowerUpsEnabled || g.phase != PhaseRoundInProgress || g.paused || g.current == nil {
		return false
	}
	p := g.player(player)
	if p == nil || !scoring.Has(p, t) {
		return false
	}
	if active, ok := g.current.ActivePlayer(); !ok || active != player || g.current.Phase() != round.PhaseTurnActive {
		return false
	}

	switch t {
	case core.PowerUpExtraTime:
		if !g.current.ExtraTime(player) {
			return false
		}
	case core.PowerUpFreeze:
		if !g.current.Freeze(player) {
			return false
		}
	default:
		if _, ok := g.armed[player]; ok {
			return false
		}
		g.armed[player] = t
		g.emit(PowerUpArmed{Player: player, Type: t})
		return true
	}

	scoring.Consume(p, t)
	g.emit(PowerUpUsed{Player: player, Type: t})
	if t == core.PowerUpFreeze {
		g.emit(PlayerFrozen{By: player, Players: g.current.Frozen(), For: g.roundCfg.FreezeWindow})
	}
	return true
}

// Pause stops the countdown and any pending turn or round transition.
func (g *Game) Pause() bool {
	if g.paused || g.phase == PhaseSetup || g.phase == PhaseGameOver {
		return false
	}
	g.paused = true
	if g.current != nil {
		g.current.Pause()
	}
	g.emit(PauseChanged{Paused: true})
	return true
}

// Resume continues a paused game.
func (g *Game) Resume() bool {
	if !g.paused {
		return false
	}
	g.paused = false
	g.emit(PauseChanged{Paused: false})
	if g.current != nil {
		g.current.Resume()
	}
	if g.deferNext {
		g.deferNext = false
		if err := g.NextRound(); err != nil {
			g.logger.Warn("could not start next round", "error", err)
		}
	}
	return true
}

// End stops the game immediately. Every pending timer is cancelled and the
// unfinished game is not persisted.
func (g *Game) End() {
	if g.phase == PhaseGameOver {
		return
	}
	g.stop()
	g.phase = PhaseGameOver
	g.logger.Info("game ended early", "game", g.id, "round", g.round)
	g.emit(GameOver{Summary: g.summary(), Aborted: true})
}

// Reset discards all progress and returns to Setup with the original
// players, ready for Start.
func (g *Game) Reset() {
	g.stop()
	g.players = append([]*core.Player(nil), g.seating...)
	g.eliminated = nil
	g.results = nil
	g.current = nil
	g.round = 0
	g.category = ""
	g.winner = nil
	g.phase = PhaseSetup
}

// stop cancels the round and every scheduled task by starting a new
// scheduler generation.
func (g *Game) stop() {
	if g.current != nil {
		g.current.Stop()
	}
	g.sched.Bump()
	g.armed = make(map[core.PlayerID]core.PowerUpType)
	g.paused = false
	g.deferNext = false
}

func (g *Game) startRound(n int) error {
	g.sched.Bump()

	cat, q, err := g.draw(n)
	if err != nil {
		g.logger.Error("cannot draw question", "round", n, "error", err)
		g.finish()
		return err
	}

	order := make([]core.PlayerID, 0, len(g.players))
	for _, p := range g.players {
		order = append(order, p.ID)
	}

	g.round = n
	g.category = cat
	g.phase = PhaseRoundInProgress
	g.armed = make(map[core.PlayerID]core.PowerUpType)
	g.deferNext = false
	g.current = round.New(q, order, g.roundCfg, g.sched, round.Judge{Resolver: g.source}, roundListener{g})

	g.logger.Debug("round started", "round", n, "category", cat, "question", q.ID, "difficulty", q.Difficulty)
	g.emit(RoundStarted{Round: n, Category: cat, Question: q})
	g.current.Start()
	if g.paused {
		g.current.Pause()
	}
	return nil
}

// draw picks the round's question, rotating over the categories. A category
// that cannot produce a question is skipped.
func (g *Game) draw(n int) (string, core.Question, error) {
	cats := g.cfg.Categories
	var lastErr error
	for i := range cats {
		cat := cats[(n-1+i)%len(cats)]
		q, err := g.source.SelectQuestion(cat, n)
		if err == nil {
			return cat, q, nil
		}
		g.logger.Warn("skipping category", "category", cat, "error", err)
		lastErr = err
	}
	return "", core.Question{}, fmt.Errorf("game: no question for round %d: %w", n, lastErr)
}

func (g *Game) resolveRound(out round.Outcome) {
	res := scoring.Settle(out, g.players, g.round, g.rules, g.rng)
	result := RoundResult{
		Round:     g.round,
		Category:  g.category,
		Players:   g.current.Order(),
		Question:  out.Question,
		Answers:   out.Answers,
		Winner:    out.Winner,
		Points:    res.Deltas,
		Distances: out.Distances,
	}
	g.results = append(g.results, result)
	g.armed = make(map[core.PlayerID]core.PowerUpType)
	g.phase = PhaseRoundResolved

	g.emit(RoundResolved{Result: result})
	if res.Granted != nil {
		g.emit(PowerUpGranted{Player: res.Granted.Player, Type: res.Granted.Type})
	}
	for _, u := range res.Unlocks {
		g.emit(AchievementUnlocked{Player: u.Player, Achievement: u.Achievement})
	}

	elimination := g.cfg.Mode == core.ModeElimination
	if elimination && g.round >= EliminationStart && len(g.players) > 1 {
		g.phase = PhaseEliminationCheck
		g.eliminate()
		g.phase = PhaseRoundResolved
	}

	if g.round >= g.maxRounds || (elimination && len(g.players) == 1) {
		g.finish()
		return
	}
	if g.cfg.RoundPause > 0 {
		g.sched.After(g.cfg.RoundPause, g.autoAdvance)
	}
}

func (g *Game) autoAdvance() {
	if g.phase != PhaseRoundResolved {
		return
	}
	if g.paused {
		g.deferNext = true
		return
	}
	if err := g.NextRound(); err != nil {
		g.logger.Warn("could not start next round", "error", err)
	}
}

// eliminate removes the lowest scorer. Ties remove the player who comes
// first in turn order.
func (g *Game) eliminate() {
	if len(g.players) <= 1 {
		return
	}
	lowest := 0
	for i, p := range g.players {
		if p.Score < g.players[lowest].Score {
			lowest = i
		}
	}
	out := g.players[lowest]
	g.players = append(g.players[:lowest:lowest], g.players[lowest+1:]...)
	g.eliminated = append(g.eliminated, out)

	g.logger.Info("player eliminated", "player", out.ID, "score", out.Score, "round", g.round)
	g.emit(PlayerEliminated{Player: out.ID, Score: out.Score, Round: g.round})
}

// finish ends a game that ran its course and persists the result.
func (g *Game) finish() {
	g.stop()
	g.phase = PhaseGameOver
	if len(g.results) > 0 {
		g.winner = g.leader()
	}

	all := append(append([]*core.Player(nil), g.players...), g.eliminated...)
	for _, u := range scoring.GameAchievements(all, len(g.results)) {
		g.emit(AchievementUnlocked{Player: u.Player, Achievement: u.Achievement})
	}

	s := g.summary()
	g.logger.Info("game over", "game", g.id, "rounds", s.Rounds, "winner", winnerName(s.Winner))
	g.emit(GameOver{Summary: s})
	g.save(s)
}

// leader returns the remaining player with the highest score, the first in
// turn order on ties.
func (g *Game) leader() *core.PlayerID {
	if len(g.players) == 0 {
		return nil
	}
	best := g.players[0]
	for _, p := range g.players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	id := best.ID
	return &id
}

func (g *Game) summary() Summary {
	s := Summary{
		ID:        g.id,
		Mode:      g.cfg.Mode,
		StartedAt: g.startedAt,
		EndedAt:   g.clock(),
		Rounds:    len(g.results),
		Winner:    g.winner,
		Results:   append([]RoundResult(nil), g.results...),
	}
	for _, p := range g.seating {
		s.Players = append(s.Players, p.Clone())
	}
	for _, p := range g.eliminated {
		s.Eliminated = append(s.Eliminated, p.ID)
	}
	return s
}

// save hands the summary to the profile saver without blocking the game.
// Failures are logged and never reach the round flow.
func (g *Game) save(s Summary) {
	if g.saver == nil || s.Rounds == 0 {
		return
	}
	saver, logger := g.saver, g.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := saver.RecordGame(ctx, s); err != nil {
			logger.Error("could not save game", "game", s.ID, "error", err)
			return
		}
		logger.Debug("game saved", "game", s.ID)
	}()
}

func (g *Game) player(id core.PlayerID) *core.Player {
	for _, p := range g.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (g *Game) emit(ev Event) {
	if len(g.observers) == 0 {
		return
	}
	st := g.State()
	for _, o := range g.observers {
		o(ev, st)
	}
}

func winnerName(id *core.PlayerID) string {
	if id == nil {
		return "none"
	}
	return string(*id)
}

// roundListener forwards round notifications into the game.
type roundListener struct {
	g *Game
}

func (l roundListener) TurnStarted(p core.PlayerID, remaining time.Duration) {
	l.g.emit(TurnStarted{Round: l.g.round, Player: p, Remaining: remaining})
}

func (l roundListener) TimerTicked(p core.PlayerID, remaining time.Duration) {
	l.g.emit(TimerTicked{Player: p, Remaining: remaining})
}

func (l roundListener) AnswerAccepted(a core.Answer) {
	l.g.emit(AnswerAccepted{Answer: a})
}

func (l roundListener) TurnPassed(p core.PlayerID) {
	delete(l.g.armed, p)
	l.g.emit(TurnPassed{Player: p})
}

func (l roundListener) RoundResolved(o round.Outcome) {
	l.g.resolveRound(o)
}
