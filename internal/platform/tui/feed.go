package tui

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/game"
)

// maxFeed is the number of event lines kept on the play screen.
const maxFeed = 6

// describe turns a game event into a feed line. Events that only move the
// clock return "".
func describe(ev game.Event, st game.State) string {
	name := func(id core.PlayerID) string {
		if p, ok := st.Player(id); ok {
			return playerLabel(p)
		}
		for _, p := range st.Eliminated {
			if p.ID == id {
				return playerLabel(p)
			}
		}
		return string(id)
	}

	switch e := ev.(type) {
	case game.GameStarted:
		return fmt.Sprintf("%s game, %d rounds, %d players", e.Mode.Title(), e.Rounds, len(e.Players))
	case game.RoundStarted:
		return fmt.Sprintf("Round %d: %s (%s)", e.Round, e.Category, e.Question.Difficulty)
	case game.TurnStarted:
		return fmt.Sprintf("%s's turn", name(e.Player))
	case game.AnswerAccepted:
		return fmt.Sprintf("%s answered %q", name(e.Answer.Player), e.Answer.Text)
	case game.AnswerRejected:
		return fmt.Sprintf("%s: %v", name(e.Player), e.Err)
	case game.TurnPassed:
		return fmt.Sprintf("%s ran out of time", name(e.Player))
	case game.PowerUpArmed:
		return fmt.Sprintf("%s armed %s", name(e.Player), e.Type)
	case game.PowerUpUsed:
		return fmt.Sprintf("%s used %s", name(e.Player), e.Type)
	case game.PlayerFrozen:
		if len(e.Players) == 0 {
			return fmt.Sprintf("%s froze nobody", name(e.By))
		}
		names := make([]string, 0, len(e.Players))
		for _, id := range e.Players {
			names = append(names, name(id))
		}
		return fmt.Sprintf("%s froze %s for %s", name(e.By), strings.Join(names, ", "), e.For)
	case game.PowerUpGranted:
		return fmt.Sprintf("%s earned %s", name(e.Player), e.Type)
	case game.RoundResolved:
		r := e.Result
		if r.Winner == nil {
			return fmt.Sprintf("Round %d: nobody answered", r.Round)
		}
		return fmt.Sprintf("Round %d won by %s (+%d)", r.Round, name(*r.Winner), r.Points[*r.Winner])
	case game.AchievementUnlocked:
		return fmt.Sprintf("%s unlocked %s", name(e.Player), e.Achievement.Title())
	case game.PlayerEliminated:
		return fmt.Sprintf("%s eliminated with %d points", name(e.Player), e.Score)
	case game.PauseChanged:
		if e.Paused {
			return "Paused"
		}
		return "Resumed"
	case game.GameOver:
		if e.Aborted {
			return "Game ended"
		}
		if e.Summary.Winner == nil {
			return "Game over"
		}
		return fmt.Sprintf("Game over, %s wins!", name(*e.Summary.Winner))
	}
	return ""
}

// appendFeed adds a line and keeps the newest maxFeed lines.
func appendFeed(feed []string, line string) []string {
	if line == "" {
		return feed
	}
	feed = append(feed, line)
	if len(feed) > maxFeed {
		feed = feed[len(feed)-maxFeed:]
	}
	return feed
}
