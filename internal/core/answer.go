package core

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNotANumber is returned by ParseNumeric for text that holds no number.
var ErrNotANumber = errors.New("core: not a number")

// Answer is one player's submission for the current round.
type Answer struct {
	Player    PlayerID
	Value     float64       // Numeric guess
	Text      string        // Free text guess for name-match categories
	TimeTaken time.Duration // Time from turn start to submission
	PowerUp   *PowerUpType  // Power-up attached to the answer, if any
}

// Used reports whether the answer carries the given power-up.
func (a Answer) Used(t PowerUpType) bool {
	return a.PowerUp != nil && *a.PowerUp == t
}

// NewAnswer builds an answer from typed text. Numeric categories parse the
// text as a number; name-match categories keep it as-is.
func NewAnswer(player PlayerID, kind CategoryKind, text string) (Answer, error) {
	a := Answer{Player: player, Text: strings.TrimSpace(text)}
	if kind == KindNameMatch {
		return a, nil
	}
	v, err := ParseNumeric(text)
	if err != nil {
		return Answer{}, err
	}
	a.Value = v
	return a, nil
}

// ParseNumeric parses a typed guess. It accepts thousands separators,
// underscores, scientific notation and k/m/b/t magnitude suffixes.
func ParseNumeric(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.NewReplacer(",", "", "_", "", " ", "", "$", "").Replace(s)
	if s == "" {
		return 0, ErrNotANumber
	}

	mult := 1.0
	switch s[len(s)-1] {
	case 'k':
		mult = 1e3
	case 'm':
		mult = 1e6
	case 'b':
		mult = 1e9
	case 't':
		mult = 1e12
	}
	if mult != 1.0 {
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v * mult, nil
}
