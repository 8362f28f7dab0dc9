package catalog

import (
	"errors"
	"testing"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/registry"
)

type stubSource struct {
	cat       core.Category
	questions []core.Question
}

func (s stubSource) Category() core.Category          { return s.cat }
func (s stubSource) Questions() []core.Question       { return s.questions }
func (s stubSource) References() []core.ReferenceItem { return nil }
func (s stubSource) Dimensions() []string             { return nil }

func easyOnly() registry.Source {
	return stubSource{
		cat: core.Category{ID: "easy-only", Title: "Easy Only", Kind: core.KindNumeric},
		questions: []core.Question{
			{ID: "e1", Category: "easy-only", Difficulty: core.DifficultyEasy, Answer: 1},
			{ID: "e2", Category: "easy-only", Difficulty: core.DifficultyEasy, Answer: 2},
		},
	}
}

func TestEmbeddedCategoriesRegistered(t *testing.T) {
	for _, id := range []string{"constants", "gpus", "stocks", "movies", "hardware"} {
		if !registry.Exists(id) {
			t.Errorf("Expected embedded category %q to be registered", id)
		}
	}

	c := New(1)
	kind, ok := c.Kind("hardware")
	if !ok || kind != core.KindNameMatch {
		t.Errorf("hardware kind = %v (ok=%v), want name-match", kind, ok)
	}
	if len(c.QuestionsFor("constants")) == 0 {
		t.Error("constants should have static questions")
	}
}

func TestDefaultBands(t *testing.T) {
	tests := []struct {
		round    int
		expected core.Difficulty
	}{
		{1, core.DifficultyEasy},
		{3, core.DifficultyEasy},
		{4, core.DifficultyMedium},
		{7, core.DifficultyMedium},
		{8, core.DifficultyHard},
		{12, core.DifficultyHard},
	}
	for _, tt := range tests {
		if got := DefaultBands(tt.round); got != tt.expected {
			t.Errorf("DefaultBands(%d) = %v, want %v", tt.round, got, tt.expected)
		}
	}
}

func TestSelectQuestionUsesBand(t *testing.T) {
	c := New(42)
	for round := 1; round <= 10; round++ {
		q, err := c.SelectQuestion("constants", round)
		if err != nil {
			t.Fatalf("SelectQuestion(round %d) failed: %v", round, err)
		}
		if q.Difficulty != DefaultBands(round) {
			t.Errorf("Round %d drew %v, want %v", round, q.Difficulty, DefaultBands(round))
		}
		if q.Category != "constants" {
			t.Errorf("Drew question from wrong category %q", q.Category)
		}
	}
}

func TestSelectQuestionFallsBackToWholeCategory(t *testing.T) {
	c := NewFromSources(7, []registry.Source{easyOnly()})

	q, err := c.SelectQuestion("easy-only", 9)
	if err != nil {
		t.Fatalf("Expected fallback question, got error: %v", err)
	}
	if q.Difficulty != core.DifficultyEasy {
		t.Errorf("Fallback should draw from the whole category, got %v", q.Difficulty)
	}
}

func TestEmptyAndUnknownCategories(t *testing.T) {
	empty := stubSource{cat: core.Category{ID: "empty", Kind: core.KindNumeric}}
	c := NewFromSources(7, []registry.Source{empty})

	if _, err := c.SelectQuestion("empty", 1); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("Expected ErrEmptyCategory, got %v", err)
	}
	if _, err := c.RandomQuestion("nope", nil); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestDeterministicSelection(t *testing.T) {
	c1 := New(12345)
	c2 := New(12345)
	for round := 1; round <= 10; round++ {
		q1, _ := c1.SelectQuestion("movies", round)
		q2, _ := c2.SelectQuestion("movies", round)
		if q1.ID != q2.ID {
			t.Fatalf("Round %d: same seed drew %q and %q", round, q1.ID, q2.ID)
		}
	}
}

func TestNameMatchGeneration(t *testing.T) {
	c := New(99)

	tests := []struct {
		d    core.Difficulty
		dims int
	}{
		{core.DifficultyEasy, 3},
		{core.DifficultyMedium, 2},
		{core.DifficultyHard, 1},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			d := tt.d
			q, err := c.RandomQuestion("hardware", &d)
			if err != nil {
				t.Fatalf("RandomQuestion failed: %v", err)
			}
			if q.Kind != core.KindNameMatch {
				t.Errorf("Expected name-match question, got %v", q.Kind)
			}
			if len(q.Dimensions) != tt.dims {
				t.Errorf("Expected %d dimensions, got %d (%v)", tt.dims, len(q.Dimensions), q.Dimensions)
			}
			if _, ok := c.Resolve("hardware", q.AnswerName); !ok {
				t.Errorf("Answer %q should resolve in its own category", q.AnswerName)
			}
			if q.Prompt == "" {
				t.Error("Generated question should have a prompt")
			}
		})
	}
}

func TestResolve(t *testing.T) {
	c := New(1)

	item, ok := c.Resolve("hardware", "rtx-4090")
	if !ok {
		t.Fatal("Expected alias to resolve")
	}
	if item.Name != "GeForce RTX 4090" {
		t.Errorf("Resolved to %q", item.Name)
	}

	if _, ok := c.Resolve("hardware", "Voodoo 5"); ok {
		t.Error("Unknown card should not resolve")
	}
	if _, ok := c.Resolve("nope", "RTX 4090"); ok {
		t.Error("Unknown category should not resolve")
	}
}
