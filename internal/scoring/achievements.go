package scoring

import (
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/round"
)

// Achievement thresholds.
const (
	HotStreakLength  = 3
	CloseCallError   = 0.01
	SpeedDemonWindow = 5 * time.Second
	PowerPlayerUses  = 5
)

// RoundAchievements unlocks what a resolved round earned. Streaks, round wins
// and power-up counters must already be updated. Players never unlock the
// same achievement twice.
func RoundAchievements(out round.Outcome, players []*core.Player) []Unlock {
	var unlocks []Unlock
	unlock := func(p *core.Player, a core.Achievement) {
		if p.Unlock(a) {
			unlocks = append(unlocks, Unlock{Player: p.ID, Achievement: a})
		}
	}

	win, won := out.WinningAnswer()
	for _, p := range players {
		if won && p.ID == win.Player {
			unlock(p, core.AchievementFirstWin)
			if p.Streak >= HotStreakLength {
				unlock(p, core.AchievementHotStreak)
			}
			if out.Question.Kind == core.KindNumeric &&
				round.RelativeError(win.Value, out.Question.Answer) <= CloseCallError {
				unlock(p, core.AchievementCloseCall)
			}
		}
		for _, a := range out.Answers {
			if a.Player == p.ID && a.TimeTaken <= SpeedDemonWindow {
				unlock(p, core.AchievementSpeedDemon)
			}
		}
		if p.PowerUpsUsed >= PowerPlayerUses {
			unlock(p, core.AchievementPowerPlayer)
		}
	}
	return unlocks
}

// GameAchievements unlocks end-of-game achievements: Perfectionist for a
// player who won every round played.
func GameAchievements(players []*core.Player, roundsPlayed int) []Unlock {
	var unlocks []Unlock
	for _, p := range players {
		if p.PowerUpsUsed >= PowerPlayerUses && p.Unlock(core.AchievementPowerPlayer) {
			unlocks = append(unlocks, Unlock{Player: p.ID, Achievement: core.AchievementPowerPlayer})
		}
		if roundsPlayed > 0 && p.RoundsWon == roundsPlayed && p.Unlock(core.AchievementPerfectionist) {
			unlocks = append(unlocks, Unlock{Player: p.ID, Achievement: core.AchievementPerfectionist})
		}
	}
	return unlocks
}
