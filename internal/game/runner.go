package game

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Command is an action sent to a Runner from another goroutine.
type Command interface {
	command()
}

// SubmitCmd submits typed text for a player.
type SubmitCmd struct {
	Player core.PlayerID
	Text   string
}

func (SubmitCmd) command() {}

// UsePowerUpCmd invokes a power-up for a player.
type UsePowerUpCmd struct {
	Player core.PlayerID
	Type   core.PowerUpType
}

func (UsePowerUpCmd) command() {}

// PauseCmd toggles pause.
type PauseCmd struct{}

func (PauseCmd) command() {}

// ResumeCmd resumes a paused game. It does nothing otherwise.
type ResumeCmd struct{}

func (ResumeCmd) command() {}

// NextRoundCmd starts the next round after a resolved one.
type NextRoundCmd struct{}

func (NextRoundCmd) command() {}

// QuitCmd ends the game and stops the runner.
type QuitCmd struct{}

func (QuitCmd) command() {}

// Update pairs an event with the state right after it.
type Update struct {
	Event Event
	State State
}

// RunnerConfig holds Runner settings.
type RunnerConfig struct {
	TickRate   int // Game advances per second
	BufferSize int // Update buffer; the oldest update is dropped when full
	Logger     *log.Logger
}

// Runner owns a Game in a single goroutine, advancing it on a real-time
// ticker and applying commands from other goroutines.
type Runner struct {
	game     *Game
	tickRate int
	logger   *log.Logger

	cmds     chan Command
	updates  chan Update
	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner wraps a game. The game must not be used directly afterwards.
func NewRunner(g *Game, cfg RunnerConfig) *Runner {
	if cfg.TickRate < 1 {
		cfg.TickRate = 10
	}
	if cfg.BufferSize < 1 {
		cfg.BufferSize = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	r := &Runner{
		game:     g,
		tickRate: cfg.TickRate,
		logger:   cfg.Logger,
		cmds:     make(chan Command, 64),
		updates:  make(chan Update, cfg.BufferSize),
		done:     make(chan struct{}),
	}
	g.Subscribe(r.publish)
	return r
}

// Send queues a command. Non-blocking: a command sent while the queue is
// full or after the runner stopped is dropped.
func (r *Runner) Send(cmd Command) {
	select {
	case <-r.done:
		return
	default:
	}
	select {
	case r.cmds <- cmd:
	default:
		r.logger.Warn("command queue full, dropping command")
	}
}

// Updates returns the channel of game updates.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Done returns a channel that closes when the runner stops.
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Stop stops the runner. Safe to call multiple times.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// Run starts the game and drives it until ctx is cancelled, Stop is called
// or a QuitCmd arrives. A game still running at that point is ended.
func (r *Runner) Run(ctx context.Context) error {
	defer r.Stop()
	defer r.game.End()

	if err := r.game.Start(); err != nil {
		return err
	}

	tick := time.Second / time.Duration(r.tickRate)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			r.game.Advance(now.Sub(last))
			last = now

		case cmd := <-r.cmds:
			if quit := r.apply(cmd); quit {
				return nil
			}

		case <-ctx.Done():
			return ctx.Err()

		case <-r.done:
			return nil
		}
	}
}

func (r *Runner) apply(cmd Command) bool {
	g := r.game
	switch c := cmd.(type) {
	case SubmitCmd:
		_, _ = g.SubmitText(c.Player, c.Text) //nolint:errcheck // surfaced as AnswerRejected
	case UsePowerUpCmd:
		g.UsePowerUp(c.Player, c.Type)
	case PauseCmd:
		if !g.Pause() {
			g.Resume()
		}
	case ResumeCmd:
		g.Resume()
	case NextRoundCmd:
		if err := g.NextRound(); err != nil {
			r.logger.Debug("next round refused", "error", err)
		}
	case QuitCmd:
		return true
	}
	return false
}

// publish delivers an update without blocking the game loop. When the
// buffer is full the oldest update is dropped.
func (r *Runner) publish(ev Event, st State) {
	u := Update{Event: ev, State: st}
	select {
	case r.updates <- u:
		return
	default:
	}
	select {
	case <-r.updates:
	default:
	}
	select {
	case r.updates <- u:
	default:
	}
}
