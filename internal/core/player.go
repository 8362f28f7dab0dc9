package core

// PlayerID uniquely identifies a player within a game and across profiles.
type PlayerID string

// Player is a participant in a game. The game director mutates it every
// round; it is created at setup and persisted at game end.
type Player struct {
	ID     PlayerID
	Name   string
	Avatar string

	Score         int
	Streak        int
	LongestStreak int
	RoundsWon     int // Rounds won in the current game
	PowerUpsUsed  int // Power-ups used in the current game
	PowerUps      []PowerUp
	Achievements  []Achievement // Unlocked achievements, in unlock order

	LifetimeGames     int
	LifetimeWins      int
	LifetimeRoundsWon int // Rounds won across all games before this one
}

// NewPlayer creates a player with no score or power-ups.
func NewPlayer(id PlayerID, name, avatar string) *Player {
	return &Player{ID: id, Name: name, Avatar: avatar}
}

// HasAchievement reports whether the player already unlocked a.
func (p *Player) HasAchievement(a Achievement) bool {
	for _, have := range p.Achievements {
		if have == a {
			return true
		}
	}
	return false
}

// Unlock adds a to the player's achievements. Returns false if it was
// already unlocked.
func (p *Player) Unlock(a Achievement) bool {
	if p.HasAchievement(a) {
		return false
	}
	p.Achievements = append(p.Achievements, a)
	return true
}

// Uses returns the remaining uses of power-up type t.
func (p *Player) Uses(t PowerUpType) int {
	for _, pu := range p.PowerUps {
		if pu.Type == t {
			return pu.Uses
		}
	}
	return 0
}

// Clone returns a deep copy of the player for snapshots.
func (p *Player) Clone() Player {
	c := *p
	c.PowerUps = append([]PowerUp(nil), p.PowerUps...)
	c.Achievements = append([]Achievement(nil), p.Achievements...)
	return c
}
