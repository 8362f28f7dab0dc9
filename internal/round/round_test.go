package round

import (
	"testing"
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
)

type recorder struct {
	started  []core.PlayerID
	ticks    int
	accepted []core.Answer
	passed   []core.PlayerID
	outcomes []Outcome
}

func (r *recorder) TurnStarted(p core.PlayerID, _ time.Duration) { r.started = append(r.started, p) }
func (r *recorder) TimerTicked(core.PlayerID, time.Duration)     { r.ticks++ }
func (r *recorder) AnswerAccepted(a core.Answer)                 { r.accepted = append(r.accepted, a) }
func (r *recorder) TurnPassed(p core.PlayerID)                   { r.passed = append(r.passed, p) }
func (r *recorder) RoundResolved(o Outcome)                      { r.outcomes = append(r.outcomes, o) }

func testConfig() Config {
	return Config{
		TurnTime:      30 * time.Second,
		TimersEnabled: true,
		TurnPause:     1500 * time.Millisecond,
		FreezeWindow:  5 * time.Second,
		ExtraTime:     15 * time.Second,
		MaxTurnTime:   60 * time.Second,
	}
}

func newRound(cfg Config, players ...core.PlayerID) (*Round, *Scheduler, *recorder) {
	s := NewScheduler()
	rec := &recorder{}
	r := New(numeric(100), players, cfg, s, Judge{}, rec)
	r.Start()
	return r, s, rec
}

func TestConfigFor(t *testing.T) {
	rc := core.DefaultConfig()
	if got := ConfigFor(core.ModeSpeed, rc).TurnTime; got != 15*time.Second {
		t.Errorf("Speed turn time = %v, want 15s", got)
	}
	for _, m := range []core.Mode{core.ModeClassic, core.ModeElimination, core.ModePowerUp} {
		if got := ConfigFor(m, rc).TurnTime; got != 30*time.Second {
			t.Errorf("%s turn time = %v, want 30s", m, got)
		}
	}
}

func TestFullRoundResolves(t *testing.T) {
	r, s, rec := newRound(testConfig(), "p1", "p2", "p3")

	if r.Phase() != PhaseTurnActive {
		t.Fatalf("Expected active turn after Start, got %v", r.Phase())
	}

	if !r.Submit(core.Answer{Player: "p1", Value: 90}) {
		t.Fatal("Active player's answer rejected")
	}
	if r.Phase() != PhaseAnswered {
		t.Errorf("Expected PlayerAnswered during pause, got %v", r.Phase())
	}
	s.Advance(1500 * time.Millisecond)
	if p, _ := r.ActivePlayer(); p != "p2" {
		t.Fatalf("Expected p2 active after pause, got %s", p)
	}
	r.Submit(core.Answer{Player: "p2", Value: 101})
	s.Advance(1500 * time.Millisecond)
	r.Submit(core.Answer{Player: "p3", Value: 150})

	if r.Phase() != PhaseResolved {
		t.Fatalf("Expected resolved round, got %v", r.Phase())
	}
	out, ok := r.Outcome()
	if !ok || out.Winner == nil || *out.Winner != "p2" {
		t.Fatalf("Expected p2 to win, got %+v", out.Winner)
	}
	if len(rec.outcomes) != 1 {
		t.Errorf("Expected one RoundResolved notification, got %d", len(rec.outcomes))
	}
	if r.TimerRunning() {
		t.Error("Countdown should be cancelled after resolution")
	}
	if s.Pending() != 0 {
		t.Errorf("Expected no pending tasks after resolution, got %d", s.Pending())
	}
}

func TestSubmitRejections(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2")

	if r.Submit(core.Answer{Player: "p2", Value: 1}) {
		t.Error("Out-of-turn answer should be rejected")
	}
	if r.Submit(core.Answer{Player: "ghost", Value: 1}) {
		t.Error("Unknown player's answer should be rejected")
	}
	if !r.Submit(core.Answer{Player: "p1", Value: 1}) {
		t.Fatal("Active player's answer rejected")
	}
	if r.Submit(core.Answer{Player: "p1", Value: 2}) {
		t.Error("Duplicate answer should be rejected")
	}

	s.Advance(1500 * time.Millisecond)
	r.Pause()
	if r.Submit(core.Answer{Player: "p2", Value: 3}) {
		t.Error("Answer while paused should be rejected")
	}
	r.Resume()
	r.Submit(core.Answer{Player: "p2", Value: 3})

	answers := r.Answers()
	if len(answers) != 2 {
		t.Fatalf("Expected 2 answers, got %d", len(answers))
	}
	seen := map[core.PlayerID]bool{}
	for _, a := range answers {
		if seen[a.Player] {
			t.Errorf("Player %s answered twice", a.Player)
		}
		seen[a.Player] = true
	}
	if r.Submit(core.Answer{Player: "p1", Value: 4}) {
		t.Error("Answer after resolution should be rejected")
	}
}

func TestCountdownForcesPass(t *testing.T) {
	cfg := testConfig()
	cfg.TurnTime = 3 * time.Second
	cfg.TurnPause = 0
	r, s, rec := newRound(cfg, "p1", "p2")

	s.Advance(2 * time.Second)
	if r.Remaining() != time.Second {
		t.Errorf("Expected 1s remaining, got %v", r.Remaining())
	}
	s.Advance(time.Second)

	if len(rec.passed) != 1 || rec.passed[0] != "p1" {
		t.Fatalf("Expected p1 to pass, got %v", rec.passed)
	}
	if p, _ := r.ActivePlayer(); p != "p2" {
		t.Fatalf("Expected p2 active after pass, got %s", p)
	}
	if r.Remaining() != 3*time.Second {
		t.Errorf("New turn should start with a full countdown, got %v", r.Remaining())
	}

	s.Advance(3 * time.Second)
	out, ok := r.Outcome()
	if !ok {
		t.Fatal("Round should resolve after the last pass")
	}
	if out.Winner != nil {
		t.Errorf("Expected no winner without answers, got %s", *out.Winner)
	}
	if len(out.Answers) != 0 {
		t.Errorf("Passes should record no answers, got %d", len(out.Answers))
	}
}

func TestUntimedTurnNeverPasses(t *testing.T) {
	cfg := testConfig()
	cfg.TimersEnabled = false
	r, s, rec := newRound(cfg, "p1", "p2")

	s.Advance(10 * time.Minute)

	if r.Phase() != PhaseTurnActive {
		t.Errorf("Untimed turn should stay active, got %v", r.Phase())
	}
	if rec.ticks != 0 || len(rec.passed) != 0 {
		t.Errorf("Untimed turn ticked %d times and passed %v", rec.ticks, rec.passed)
	}
	if r.ExtraTime("p1") {
		t.Error("ExtraTime should be refused without timers")
	}
}

func TestExtraTimeCapped(t *testing.T) {
	tests := []struct {
		name     string
		budget   time.Duration
		expected time.Duration
	}{
		{"below cap", 30 * time.Second, 45 * time.Second},
		{"capped at 60s", 50 * time.Second, 60 * time.Second},
		{"already at cap", 60 * time.Second, 60 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.TurnTime = tt.budget
			r, _, _ := newRound(cfg, "p1", "p2")

			if !r.ExtraTime("p1") {
				t.Fatal("ExtraTime refused for the active player")
			}
			if r.Remaining() != tt.expected {
				t.Errorf("Remaining = %v, want %v", r.Remaining(), tt.expected)
			}
		})
	}

	r, _, _ := newRound(testConfig(), "p1", "p2")
	if r.ExtraTime("p2") {
		t.Error("ExtraTime should be refused for a waiting player")
	}
}

func TestFreezeLocksOthers(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2", "p3")

	if !r.Freeze("p1") {
		t.Fatal("Freeze refused for the active player")
	}
	frozen := r.Frozen()
	if len(frozen) != 2 || frozen[0] != "p2" || frozen[1] != "p3" {
		t.Fatalf("Expected p2 and p3 frozen, got %v", frozen)
	}

	s.Advance(time.Second)
	r.Submit(core.Answer{Player: "p1", Value: 100})
	s.Advance(1500 * time.Millisecond)

	if p, _ := r.ActivePlayer(); p != "p2" {
		t.Fatalf("Expected p2 active, got %s", p)
	}
	if r.Submit(core.Answer{Player: "p2", Value: 99}) {
		t.Error("Frozen player's answer should be rejected")
	}

	s.Advance(2500 * time.Millisecond)
	if r.IsFrozen("p2") {
		t.Error("Freeze should expire after 5s")
	}
	if !r.Submit(core.Answer{Player: "p2", Value: 99}) {
		t.Error("Answer after the freeze expired should be accepted")
	}
}

func TestFreezeExpiryScopedToGeneration(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2")
	r.Freeze("p1")
	r.Stop()
	s.Bump()

	if s.Pending() != 0 {
		t.Errorf("Expected no pending tasks after Bump, got %d", s.Pending())
	}

	next := New(numeric(1), []core.PlayerID{"p1", "p2"}, testConfig(), s, Judge{}, nil)
	next.Start()
	s.Advance(10 * time.Second)
	if len(next.Frozen()) != 0 {
		t.Errorf("New round inherited frozen players: %v", next.Frozen())
	}
	if r.Phase() != PhaseStopped {
		t.Errorf("Stopped round phase = %v", r.Phase())
	}
}

func TestPauseResume(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2")

	s.Advance(5 * time.Second)
	if !r.Pause() {
		t.Fatal("Pause refused")
	}
	if r.TimerRunning() {
		t.Error("Countdown should stop while paused")
	}
	s.Advance(20 * time.Second)
	if r.Remaining() != 25*time.Second {
		t.Errorf("Countdown moved while paused: %v", r.Remaining())
	}
	if r.Pause() {
		t.Error("Second Pause should be refused")
	}

	if !r.Resume() {
		t.Fatal("Resume refused")
	}
	if !r.TimerRunning() {
		t.Error("Countdown should restart on resume")
	}
	s.Advance(5 * time.Second)
	if r.Remaining() != 20*time.Second {
		t.Errorf("Remaining = %v, want 20s", r.Remaining())
	}
}

func TestPauseDuringTurnGap(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2")
	r.Submit(core.Answer{Player: "p1", Value: 1})
	r.Pause()

	s.Advance(10 * time.Second)
	if r.Phase() != PhaseAnswered {
		t.Fatalf("Next turn should wait for resume, got %v", r.Phase())
	}

	r.Resume()
	if p, _ := r.ActivePlayer(); p != "p2" || r.Phase() != PhaseTurnActive {
		t.Errorf("Expected p2 active after resume, got %s in %v", p, r.Phase())
	}
	if !r.TimerRunning() {
		t.Error("Countdown should run for the resumed turn")
	}
}

func TestTimeTakenMeasuredFromTurnStart(t *testing.T) {
	r, s, _ := newRound(testConfig(), "p1", "p2")
	r.Submit(core.Answer{Player: "p1", Value: 1})
	s.Advance(1500 * time.Millisecond)
	s.Advance(4 * time.Second)
	r.Submit(core.Answer{Player: "p2", Value: 1})

	answers := r.Answers()
	if answers[0].TimeTaken != 0 {
		t.Errorf("p1 time = %v, want 0", answers[0].TimeTaken)
	}
	if answers[1].TimeTaken != 4*time.Second {
		t.Errorf("p2 time = %v, want 4s", answers[1].TimeTaken)
	}
}

func TestEmptyRoundResolvesImmediately(t *testing.T) {
	r, _, rec := newRound(testConfig())
	if r.Phase() != PhaseResolved {
		t.Fatalf("Expected resolved round without players, got %v", r.Phase())
	}
	if len(rec.outcomes) != 1 || rec.outcomes[0].Winner != nil {
		t.Error("Empty round should resolve with no winner")
	}
}
