package core

import (
	"strings"
)

// CategoryKind decides how answers in a category are compared.
type CategoryKind int

const (
	// KindNumeric categories are answered with a number and judged by
	// absolute error.
	KindNumeric CategoryKind = iota

	// KindNameMatch categories are answered with the name of a reference
	// item and judged by the distance between reference metrics.
	KindNameMatch
)

// String returns a human-readable name for the kind.
func (k CategoryKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindNameMatch:
		return "name-match"
	default:
		return "unknown"
	}
}

// Category identifies a group of questions.
type Category struct {
	ID    string
	Title string
	Kind  CategoryKind
}

// Question is one trivia question. Questions are immutable once built.
type Question struct {
	ID          string
	Category    string
	Kind        CategoryKind
	Difficulty  Difficulty
	Prompt      string
	Answer      float64 // Correct value for numeric categories
	AnswerName  string  // Correct item for name-match categories
	Unit        string
	Hint        string
	Explanation string
	Country     string

	// Dimensions are the reference metrics sampled for a name-match question.
	Dimensions []string
}

// ReferenceItem is a named entry of a category's reference table
// (a GPU, a movie) with numeric metrics per dimension.
type ReferenceItem struct {
	Name    string             `yaml:"name"`
	Aliases []string           `yaml:"aliases"`
	Metrics map[string]float64 `yaml:"metrics"`
}

// Aggregate sums the item's metrics over the given dimensions.
// Missing dimensions count as zero.
func (r ReferenceItem) Aggregate(dims []string) float64 {
	var total float64
	for _, d := range dims {
		total += r.Metrics[d]
	}
	return total
}

// Matches reports whether name refers to this item.
func (r ReferenceItem) Matches(name string) bool {
	key := NormalizeName(name)
	if key == "" {
		return false
	}
	if NormalizeName(r.Name) == key {
		return true
	}
	for _, a := range r.Aliases {
		if NormalizeName(a) == key {
			return true
		}
	}
	return false
}

// NormalizeName lowercases a name and collapses whitespace, dashes and
// underscores so "RTX-4090" and "rtx 4090" compare equal.
func NormalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
