package round

import (
	"math"
	"testing"

	"github.com/vovakirdan/theory-games/internal/core"
)

type stubResolver map[string]core.ReferenceItem

func (r stubResolver) Resolve(_ string, name string) (core.ReferenceItem, bool) {
	for _, item := range r {
		if item.Matches(name) {
			return item, true
		}
	}
	return core.ReferenceItem{}, false
}

var cards = stubResolver{
	"a": {Name: "Card A", Aliases: []string{"a"}, Metrics: map[string]float64{"tflops": 10, "vram": 8}},
	"b": {Name: "Card B", Metrics: map[string]float64{"tflops": 20, "vram": 12}},
	"c": {Name: "Card C", Metrics: map[string]float64{"tflops": 40, "vram": 24}},
}

func numeric(answer float64) core.Question {
	return core.Question{ID: "q", Category: "constants", Kind: core.KindNumeric, Answer: answer}
}

func TestDecideNumeric(t *testing.T) {
	j := Judge{}
	tests := []struct {
		name    string
		answers []core.Answer
		winner  core.PlayerID
	}{
		{
			name:    "closest wins",
			answers: []core.Answer{{Player: "p1", Value: 90}, {Player: "p2", Value: 99}, {Player: "p3", Value: 120}},
			winner:  "p2",
		},
		{
			name:    "exact beats close",
			answers: []core.Answer{{Player: "p1", Value: 100}, {Player: "p2", Value: 100.5}},
			winner:  "p1",
		},
		{
			name:    "tie goes to earliest",
			answers: []core.Answer{{Player: "p2", Value: 95}, {Player: "p1", Value: 105}},
			winner:  "p2",
		},
		{
			name:    "single answer wins",
			answers: []core.Answer{{Player: "p3", Value: -1e9}},
			winner:  "p3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := j.Decide(numeric(100), tt.answers)
			if out.Winner == nil {
				t.Fatal("Expected a winner")
			}
			if *out.Winner != tt.winner {
				t.Errorf("Winner = %s, want %s", *out.Winner, tt.winner)
			}
			if len(out.Distances) != len(tt.answers) {
				t.Errorf("Expected %d distances, got %d", len(tt.answers), len(out.Distances))
			}
		})
	}
}

func TestDecideNoAnswers(t *testing.T) {
	out := Judge{}.Decide(numeric(1), nil)
	if out.Winner != nil {
		t.Errorf("Expected no winner, got %s", *out.Winner)
	}
	if _, ok := out.WinningAnswer(); ok {
		t.Error("WinningAnswer should report false without a winner")
	}
}

func TestDecideIsIdempotent(t *testing.T) {
	j := Judge{}
	answers := []core.Answer{{Player: "p1", Value: 3}, {Player: "p2", Value: 3.2}, {Player: "p3", Value: 2.9}}
	first := j.Decide(numeric(3.14), answers)
	for i := 0; i < 5; i++ {
		again := j.Decide(numeric(3.14), answers)
		if *again.Winner != *first.Winner {
			t.Fatalf("Winner changed between calls: %s vs %s", *first.Winner, *again.Winner)
		}
	}
}

func TestDistanceNameMatch(t *testing.T) {
	j := Judge{Resolver: cards}
	q := core.Question{Category: "hardware", Kind: core.KindNameMatch, AnswerName: "Card B", Dimensions: []string{"tflops", "vram"}}

	tests := []struct {
		guess    string
		expected float64
	}{
		{"card b", 0},
		{"Card A", 14},
		{"a", 14},
		{"Card C", 32},
		{"Voodoo", Unmatched},
	}
	for _, tt := range tests {
		if got := j.Distance(q, core.Answer{Text: tt.guess}); got != tt.expected {
			t.Errorf("Distance(%q) = %v, want %v", tt.guess, got, tt.expected)
		}
	}
}

func TestDecideNameMatch(t *testing.T) {
	j := Judge{Resolver: cards}
	q := core.Question{Category: "hardware", Kind: core.KindNameMatch, AnswerName: "Card B", Dimensions: []string{"tflops"}}

	out := j.Decide(q, []core.Answer{
		{Player: "p1", Text: "nonsense"},
		{Player: "p2", Text: "Card C"},
		{Player: "p3", Text: "Card A"},
	})
	if out.Winner == nil || *out.Winner != "p3" {
		t.Fatalf("Expected p3 (distance 10) to win, got %v", out.Winner)
	}

	// Unmatched guesses still produce a winner when nothing better exists.
	out = j.Decide(q, []core.Answer{{Player: "p1", Text: "x"}, {Player: "p2", Text: "y"}})
	if out.Winner == nil || *out.Winner != "p1" {
		t.Errorf("Expected first unmatched guess to win, got %v", out.Winner)
	}
}

func TestRelativeError(t *testing.T) {
	tests := []struct {
		answer, truth, expected float64
	}{
		{101, 100, 0.01},
		{99, 100, 0.01},
		{-50, -100, 0.5},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := RelativeError(tt.answer, tt.truth); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("RelativeError(%v, %v) = %v, want %v", tt.answer, tt.truth, got, tt.expected)
		}
	}
	if !math.IsInf(RelativeError(1, 0), 1) {
		t.Error("Non-zero answer against zero truth should be +Inf")
	}
}
