package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
	"github.com/vovakirdan/theory-games/internal/storage"
)

type stubSource struct{}

func (stubSource) SelectQuestion(category string, round int) (core.Question, error) {
	return core.Question{
		ID:       "q1",
		Category: category,
		Kind:     core.KindNumeric,
		Prompt:   "How many moons does Mars have?",
		Answer:   2,
	}, nil
}

func (stubSource) Resolve(category, name string) (core.ReferenceItem, bool) {
	return core.ReferenceItem{}, false
}

func typeText(m SetupModel, text string) SetupModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(SetupModel)
}

func press(m SetupModel, k tea.KeyType) SetupModel {
	next, _ := m.Update(tea.KeyMsg{Type: k})
	return next.(SetupModel)
}

func TestSetupAddsPlayersAndStarts(t *testing.T) {
	m := NewSetupModel(storage.DefaultSettings(), 80, 24)

	m = press(m, tea.KeyEnter)
	if m.Started() {
		t.Fatal("Should not start without players")
	}
	if m.notice == "" {
		t.Error("Expected a notice asking for players")
	}

	m = typeText(m, "Ada")
	m = press(m, tea.KeyEnter)
	m = typeText(m, "Bo")
	m = press(m, tea.KeyEnter)
	if m.Started() {
		t.Fatal("Enter with a name should add the player, not start")
	}

	m = press(m, tea.KeyEnter)
	if !m.Started() {
		t.Fatal("Enter on an empty input should start the game")
	}
	sel := m.Selection()
	if len(sel.Names) != 2 || sel.Names[0] != "Ada" || sel.Names[1] != "Bo" {
		t.Errorf("Unexpected players: %v", sel.Names)
	}
	if sel.Mode != core.ModeClassic || !sel.Timers {
		t.Errorf("Unexpected selection: %+v", sel)
	}
}

func TestSetupRejectsDuplicateNames(t *testing.T) {
	m := NewSetupModel(storage.DefaultSettings(), 80, 24)
	m = press(typeText(m, "Ada"), tea.KeyEnter)
	m = press(typeText(m, "ada"), tea.KeyEnter)

	if got := m.Selection().Names; len(got) != 1 {
		t.Errorf("Expected duplicate to be rejected, got %v", got)
	}
	if !strings.Contains(m.notice, "already playing") {
		t.Errorf("Unexpected notice %q", m.notice)
	}
}

func TestSetupBackspaceRemovesLastPlayer(t *testing.T) {
	m := NewSetupModel(storage.Settings{LastPlayers: []string{"Ada", "Bo"}}, 80, 24)
	m = press(m, tea.KeyBackspace)
	if got := m.Selection().Names; len(got) != 1 || got[0] != "Ada" {
		t.Errorf("Expected [Ada], got %v", got)
	}
}

func TestSetupRestoresSettings(t *testing.T) {
	m := NewSetupModel(storage.Settings{Mode: "elimination", TimersEnabled: false}, 80, 24)
	sel := m.Selection()
	if sel.Mode != core.ModeElimination || sel.Timers {
		t.Errorf("Unexpected selection: %+v", sel)
	}

	m = press(m, tea.KeyDown)
	m = press(m, tea.KeyCtrlT)
	sel = m.Selection()
	if sel.Mode != core.ModePowerUp || !sel.Timers {
		t.Errorf("Expected powerup with timers, got %+v", sel)
	}

	m = press(m, tea.KeyDown)
	if m.Selection().Mode != core.ModePowerUp {
		t.Error("Cursor should stop at the last mode")
	}
}

func TestSetupMaxPlayers(t *testing.T) {
	m := NewSetupModel(storage.DefaultSettings(), 80, 24)
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		m = press(typeText(m, n), tea.KeyEnter)
	}
	if got := len(m.Selection().Names); got != MaxPlayers {
		t.Errorf("Expected %d players, got %d", MaxPlayers, got)
	}
}

func TestGameKeyMapPowerUp(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		key  tea.KeyType
		want core.PowerUpType
		ok   bool
	}{
		{tea.KeyF1, core.PowerUpExtraTime, true},
		{tea.KeyF2, core.PowerUpFreeze, true},
		{tea.KeyF3, core.PowerUpDoublePoints, true},
		{tea.KeyF4, core.PowerUpStealPoint, true},
		{tea.KeyEnter, 0, false},
	}
	for _, tt := range tests {
		got, ok := keys.PowerUp(tea.KeyMsg{Type: tt.key})
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("PowerUp(%v) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDescribe(t *testing.T) {
	winner := core.PlayerID("p1")
	st := game.State{
		Players:    []core.Player{{ID: "p1", Name: "Ada", Avatar: "🦊"}},
		Eliminated: []core.Player{{ID: "p2", Name: "Bo"}},
	}

	tests := []struct {
		name string
		ev   game.Event
		want string
	}{
		{"turn", game.TurnStarted{Player: "p1"}, "🦊 Ada's turn"},
		{"tick is silent", game.TimerTicked{Player: "p1", Remaining: time.Second}, ""},
		{"rejected", game.AnswerRejected{Player: "p1", Err: errors.New("not a number")}, "🦊 Ada: not a number"},
		{"eliminated", game.PlayerEliminated{Player: "p2", Score: 1}, "Bo eliminated with 1 points"},
		{"round won", game.RoundResolved{Result: game.RoundResult{
			Round: 2, Winner: &winner, Points: map[core.PlayerID]int{"p1": 3},
		}}, "Round 2 won by 🦊 Ada (+3)"},
		{"nobody", game.RoundResolved{Result: game.RoundResult{Round: 3}}, "Round 3: nobody answered"},
		{"paused", game.PauseChanged{Paused: true}, "Paused"},
		{"aborted", game.GameOver{Aborted: true}, "Game ended"},
		{"unknown id", game.TurnPassed{Player: "zz"}, "zz ran out of time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.ev, st); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendFeedKeepsNewest(t *testing.T) {
	var feed []string
	for i := 0; i < maxFeed+3; i++ {
		feed = appendFeed(feed, string(rune('a'+i)))
	}
	feed = appendFeed(feed, "")
	if len(feed) != maxFeed {
		t.Fatalf("Expected %d lines, got %d", maxFeed, len(feed))
	}
	if feed[0] != "d" || feed[maxFeed-1] != "i" {
		t.Errorf("Unexpected feed: %v", feed)
	}
}

func TestPadRightCountsCells(t *testing.T) {
	tests := []struct {
		in    string
		width int
	}{
		{"Ada", 10},
		{"🦊 Ada", 10},
	}
	for _, tt := range tests {
		if got := runewidth.StringWidth(padRight(tt.in, tt.width)); got != tt.width {
			t.Errorf("padRight(%q, %d) is %d cells wide", tt.in, tt.width, got)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "0:30"},
		{29*time.Second + 100*time.Millisecond, "0:30"},
		{75 * time.Second, "1:15"},
		{0, "0:00"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.in); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlayModelShowsGameOver(t *testing.T) {
	players := []*core.Player{
		core.NewPlayer("p1", "Ada", "🦊"),
		core.NewPlayer("p2", "Bo", "🐼"),
	}
	g, err := game.New(game.Config{Categories: []string{"space"}, Runtime: core.DefaultConfig()}, players, stubSource{}, game.Options{})
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	m := NewPlayModel(g, game.RunnerConfig{}, 80, 24)

	winner := core.PlayerID("p2")
	st := game.State{
		Phase:   game.PhaseGameOver,
		Players: []core.Player{{ID: "p1", Name: "Ada", Score: 1}, {ID: "p2", Name: "Bo", Score: 4}},
		Winner:  &winner,
	}
	next, cmd := m.Update(updateMsg{Event: game.GameOver{}, State: st})
	m = next.(PlayModel)
	if cmd == nil {
		t.Error("Expected the model to keep waiting for updates")
	}
	if !m.over {
		t.Fatal("GameOver should end the play screen")
	}

	view := m.View()
	if !strings.Contains(view, "Bo wins") {
		t.Errorf("View should name the winner:\n%s", view)
	}
	if !strings.Contains(view, " 1. Bo") || !strings.Contains(view, " 2. Ada") {
		t.Errorf("Final standings should be sorted by score:\n%s", view)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(PlayModel).BackToMenu() {
		t.Error("Esc after game over should return to the menu")
	}
}
