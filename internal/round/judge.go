package round

import (
	"math"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Unmatched is the distance of a free-text guess that names no known item.
// It loses to every recognized guess.
const Unmatched = math.MaxFloat64

// Resolver looks up the reference item a free-text guess names.
type Resolver interface {
	Resolve(category, name string) (core.ReferenceItem, bool)
}

// Judge decides round winners.
type Judge struct {
	Resolver Resolver
}

// Distance returns how far an answer is from the truth.
func (j Judge) Distance(q core.Question, a core.Answer) float64 {
	if q.Kind != core.KindNameMatch {
		return math.Abs(a.Value - q.Answer)
	}

	if j.Resolver == nil {
		return Unmatched
	}
	guess, ok := j.Resolver.Resolve(q.Category, a.Text)
	if !ok {
		return Unmatched
	}
	if core.NormalizeName(guess.Name) == core.NormalizeName(q.AnswerName) {
		return 0
	}
	truth, ok := j.Resolver.Resolve(q.Category, q.AnswerName)
	if !ok {
		return Unmatched
	}
	return math.Abs(guess.Aggregate(q.Dimensions) - truth.Aggregate(q.Dimensions))
}

// Decide picks the answer with the smallest distance. Ties go to the answer
// submitted first. With no answers there is no winner.
func (j Judge) Decide(q core.Question, answers []core.Answer) Outcome {
	out := Outcome{
		Question:  q,
		Answers:   append([]core.Answer(nil), answers...),
		Distances: make(map[core.PlayerID]float64, len(answers)),
	}

	best := math.Inf(1)
	for _, a := range answers {
		d := j.Distance(q, a)
		out.Distances[a.Player] = d
		if out.Winner == nil || d < best {
			id := a.Player
			out.Winner = &id
			best = d
		}
	}
	return out
}

// RelativeError returns |answer - truth| / |truth|. A zero truth yields 0
// for an exact answer and +Inf otherwise.
func RelativeError(answer, truth float64) float64 {
	diff := math.Abs(answer - truth)
	if truth == 0 {
		if diff == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return diff / math.Abs(truth)
}
