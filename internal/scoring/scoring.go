// Package scoring turns round outcomes into points, streaks, power-ups and
// achievements.
package scoring

import (
	"math/rand"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/round"
)

// StealAmount is the number of points a StealPoint takes from the winner.
const StealAmount = 1

// StreakBonus returns the bonus points for a win streak.
func StreakBonus(streak int) int {
	switch {
	case streak >= 5:
		return 3
	case streak >= 3:
		return 2
	case streak >= 2:
		return 1
	default:
		return 0
	}
}

// Award computes each player's point delta for a resolved round.
// winnerStreak is the winner's streak before this round is counted.
//
// Only the winner earns points: the difficulty multiplier (doubled by
// DoublePoints) plus the bonus for the streak the win is about to make.
// Every other answer carrying StealPoint then moves one point from the
// winner to that player, so the winner's delta can go negative.
func Award(out round.Outcome, winnerStreak int) map[core.PlayerID]int {
	deltas := make(map[core.PlayerID]int)
	win, ok := out.WinningAnswer()
	if !ok {
		return deltas
	}

	base := out.Question.Difficulty.Multiplier()
	if win.Used(core.PowerUpDoublePoints) {
		base *= 2
	}
	deltas[win.Player] = base + StreakBonus(winnerStreak+1)

	for _, a := range out.Answers {
		if a.Player == win.Player || !a.Used(core.PowerUpStealPoint) {
			continue
		}
		deltas[win.Player] -= StealAmount
		deltas[a.Player] += StealAmount
	}
	return deltas
}

// UpdateStreaks extends the winner's streak and resets everyone else's.
func UpdateStreaks(players []*core.Player, winner *core.PlayerID) {
	for _, p := range players {
		if winner != nil && p.ID == *winner {
			p.Streak++
			p.LongestStreak = max(p.LongestStreak, p.Streak)
			continue
		}
		p.Streak = 0
	}
}

// Rules are the mode-dependent scoring settings.
type Rules struct {
	PowerUpsEnabled bool
	PowerUpEvery    int // Winner gets a power-up on rounds divisible by this
}

// Unlock records an achievement a player earned.
type Unlock struct {
	Player      core.PlayerID
	Achievement core.Achievement
}

// Grant records a power-up handed to a player.
type Grant struct {
	Player core.PlayerID
	Type   core.PowerUpType
}

// Result is everything a round changed.
type Result struct {
	Deltas  map[core.PlayerID]int
	Granted *Grant
	Unlocks []Unlock
}

// Settle applies a resolved round to the players: points, streaks, round
// wins, the periodic power-up grant and achievements. roundNum is 1-based.
func Settle(out round.Outcome, players []*core.Player, roundNum int, rules Rules, rng *rand.Rand) Result {
	var winner *core.Player
	if out.Winner != nil {
		winner = find(players, *out.Winner)
	}

	streak := 0
	if winner != nil {
		streak = winner.Streak
	}
	res := Result{Deltas: Award(out, streak)}
	for _, p := range players {
		p.Score += res.Deltas[p.ID]
	}

	UpdateStreaks(players, out.Winner)
	if winner != nil {
		winner.RoundsWon++
		if rules.PowerUpsEnabled && rules.PowerUpEvery > 0 && roundNum%rules.PowerUpEvery == 0 {
			t := RandomType(rng)
			GrantPowerUp(winner, t)
			res.Granted = &Grant{Player: winner.ID, Type: t}
		}
	}

	res.Unlocks = RoundAchievements(out, players)
	return res
}

func find(players []*core.Player, id core.PlayerID) *core.Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
