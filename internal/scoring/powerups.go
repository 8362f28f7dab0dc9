package scoring

import (
	"math/rand"

	"github.com/vovakirdan/theory-games/internal/core"
)

// GrantPowerUp gives the player a fresh power-up of type t. A held power-up
// of the same type gains the new uses instead of a second entry.
func GrantPowerUp(p *core.Player, t core.PowerUpType) {
	for i := range p.PowerUps {
		if p.PowerUps[i].Type == t {
			p.PowerUps[i].Uses += t.DefaultUses()
			return
		}
	}
	p.PowerUps = append(p.PowerUps, core.PowerUp{Type: t, Uses: t.DefaultUses()})
}

// Has reports whether the player holds at least one use of t.
func Has(p *core.Player, t core.PowerUpType) bool {
	return p.Uses(t) > 0
}

// Consume spends one use of t, removing the power-up once exhausted.
// Returns false if the player has no use left.
func Consume(p *core.Player, t core.PowerUpType) bool {
	for i := range p.PowerUps {
		if p.PowerUps[i].Type != t || p.PowerUps[i].Uses <= 0 {
			continue
		}
		p.PowerUps[i].Uses--
		if p.PowerUps[i].Uses == 0 {
			p.PowerUps = append(p.PowerUps[:i], p.PowerUps[i+1:]...)
		}
		p.PowerUpsUsed++
		return true
	}
	return false
}

// RandomType draws a power-up type uniformly.
func RandomType(rng *rand.Rand) core.PowerUpType {
	return core.PowerUpType(rng.Intn(int(core.PowerUpCount)))
}
