// Package catalog provides the fact catalog: static trivia tables grouped by
// category, question selection by difficulty band, and reference lookups
// used to judge name-match answers.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vovakirdan/theory-games/internal/core"
	"github.com/vovakirdan/theory-games/internal/registry"
)

var (
	// ErrUnknownCategory is returned for category ids that are not registered.
	ErrUnknownCategory = errors.New("catalog: unknown category")

	// ErrEmptyCategory is returned when a category has no questions at all,
	// even after falling back from the requested difficulty.
	ErrEmptyCategory = errors.New("catalog: category has no questions")
)

// BandFunc maps a round number (1-based) to the difficulty drawn that round.
type BandFunc func(round int) core.Difficulty

// DefaultBands draws EASY for rounds 1-3, MEDIUM for 4-7 and HARD after.
func DefaultBands(round int) core.Difficulty {
	switch {
	case round <= 3:
		return core.DifficultyEasy
	case round <= 7:
		return core.DifficultyMedium
	default:
		return core.DifficultyHard
	}
}

// labeler is implemented by sources that have display labels for their
// comparison dimensions.
type labeler interface {
	Label(dim string) string
}

// Catalog serves questions from a set of category sources.
// Safe for concurrent use.
type Catalog struct {
	mu      sync.Mutex
	rng     *rand.Rand
	bands   BandFunc
	sources map[string]registry.Source
	ids     []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithBands overrides the round-to-difficulty mapping.
func WithBands(b BandFunc) Option {
	return func(c *Catalog) {
		if b != nil {
			c.bands = b
		}
	}
}

// New creates a catalog over every registered category.
// A zero seed uses the current time.
func New(seed int64, opts ...Option) *Catalog {
	var sources []registry.Source
	for _, info := range registry.List() {
		src, err := registry.Create(info.ID)
		if err != nil {
			continue
		}
		sources = append(sources, src)
	}
	return NewFromSources(seed, sources, opts...)
}

// NewFromSources creates a catalog over the given sources only.
func NewFromSources(seed int64, sources []registry.Source, opts ...Option) *Catalog {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c := &Catalog{
		rng:     rand.New(rand.NewSource(seed)),
		bands:   DefaultBands,
		sources: make(map[string]registry.Source, len(sources)),
	}
	for _, src := range sources {
		id := src.Category().ID
		if _, dup := c.sources[id]; !dup {
			c.ids = append(c.ids, id)
		}
		c.sources[id] = src
	}
	sort.Strings(c.ids)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Categories returns the catalog's categories sorted by id.
func (c *Catalog) Categories() []core.Category {
	cats := make([]core.Category, 0, len(c.ids))
	for _, id := range c.ids {
		cats = append(cats, c.sources[id].Category())
	}
	return cats
}

// Has reports whether the category exists in the catalog.
func (c *Catalog) Has(category string) bool {
	_, ok := c.sources[category]
	return ok
}

// Kind returns how answers in the category are judged.
func (c *Catalog) Kind(category string) (core.CategoryKind, bool) {
	src, ok := c.sources[category]
	if !ok {
		return core.KindNumeric, false
	}
	return src.Category().Kind, true
}

// QuestionsFor returns a copy of the static questions of a category.
// Name-match categories generate their questions and return none here.
func (c *Catalog) QuestionsFor(category string) []core.Question {
	src, ok := c.sources[category]
	if !ok {
		return nil
	}
	return append([]core.Question(nil), src.Questions()...)
}

// SelectQuestion draws the question for a round: the difficulty comes from
// the round band, falling back to the whole category when the band is empty.
func (c *Catalog) SelectQuestion(category string, round int) (core.Question, error) {
	d := c.bands(round)
	return c.RandomQuestion(category, &d)
}

// RandomQuestion picks a question uniformly at random. A nil difficulty
// draws from the whole category.
func (c *Catalog) RandomQuestion(category string, difficulty *core.Difficulty) (core.Question, error) {
	src, ok := c.sources[category]
	if !ok {
		return core.Question{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if src.Category().Kind == core.KindNameMatch {
		d := core.Difficulties[c.rng.Intn(len(core.Difficulties))]
		if difficulty != nil {
			d = *difficulty
		}
		return c.generate(src, d)
	}

	all := src.Questions()
	pool := all
	if difficulty != nil {
		pool = nil
		for _, q := range all {
			if q.Difficulty == *difficulty {
				pool = append(pool, q)
			}
		}
		if len(pool) == 0 {
			pool = all
		}
	}
	if len(pool) == 0 {
		return core.Question{}, fmt.Errorf("%w: %q", ErrEmptyCategory, category)
	}
	return pool[c.rng.Intn(len(pool))], nil
}

// Resolve finds the reference item a free-text guess names.
func (c *Catalog) Resolve(category, name string) (core.ReferenceItem, bool) {
	src, ok := c.sources[category]
	if !ok {
		return core.ReferenceItem{}, false
	}
	for _, item := range src.References() {
		if item.Matches(name) {
			return item, true
		}
	}
	return core.ReferenceItem{}, false
}

// dimensionsFor returns how many comparison dimensions a name-match question
// reveals. Harder questions reveal fewer clues.
func dimensionsFor(d core.Difficulty) int {
	switch d {
	case core.DifficultyEasy:
		return 3
	case core.DifficultyMedium:
		return 2
	default:
		return 1
	}
}

// generate builds a name-match question around a random reference item and
// a random comparison set. Must be called with mu held.
func (c *Catalog) generate(src registry.Source, d core.Difficulty) (core.Question, error) {
	cat := src.Category()
	refs := src.References()
	allDims := src.Dimensions()
	if len(refs) == 0 || len(allDims) == 0 {
		return core.Question{}, fmt.Errorf("%w: %q", ErrEmptyCategory, cat.ID)
	}

	item := refs[c.rng.Intn(len(refs))]

	n := min(dimensionsFor(d), len(allDims))
	picked := c.rng.Perm(len(allDims))[:n]
	sort.Ints(picked)
	dims := make([]string, 0, n)
	for _, i := range picked {
		dims = append(dims, allDims[i])
	}

	clues := make([]string, 0, n)
	for _, dim := range dims {
		label := dim
		if l, ok := src.(labeler); ok {
			label = l.Label(dim)
		}
		clues = append(clues, fmt.Sprintf("%s %s", label, strconv.FormatFloat(item.Metrics[dim], 'f', -1, 64)))
	}

	return core.Question{
		ID:         fmt.Sprintf("%s-%s-%s", cat.ID, slug(item.Name), strings.Join(dims, "+")),
		Category:   cat.ID,
		Kind:       core.KindNameMatch,
		Difficulty: d,
		Prompt:     fmt.Sprintf("Which one has %s?", strings.Join(clues, ", ")),
		AnswerName: item.Name,
		Dimensions: dims,
	}, nil
}

func slug(s string) string {
	return strings.ReplaceAll(core.NormalizeName(s), " ", "-")
}
