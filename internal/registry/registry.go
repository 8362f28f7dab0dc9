// Package registry provides a global registry of question category sources.
// Categories register themselves in init() functions, allowing the catalog
// to discover and load them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/theory-games/internal/core"
)

// Source is the interface every question category implements.
// Sources contain static data only; selection and judging live in the catalog.
type Source interface {
	// Category returns the category descriptor (id, title, kind).
	// The id is used for CLI flags, config and profile statistics.
	Category() core.Category

	// Questions returns the static questions of the category.
	// Name-match categories may return none and rely on References.
	Questions() []core.Question

	// References returns the reference table used to judge name-match
	// answers. Numeric categories return nil.
	References() []core.ReferenceItem

	// Dimensions returns the metric names that comparison sets are sampled
	// from. Numeric categories return nil.
	Dimensions() []string
}

// SourceInfo contains metadata about a registered category.
type SourceInfo struct {
	ID    string
	Title string
	Kind  core.CategoryKind
}

// Factory is a function that creates a new instance of a category source.
type Factory func() Source

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SourceInfo)
	mu        sync.RWMutex
)

// Register adds a category factory to the registry.
// Typically called from an init() function.
// Panics if a category with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: category %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	cat := f().Category()
	infos[id] = SourceInfo{ID: id, Title: cat.Title, Kind: cat.Kind}
}

// List returns information about all registered categories, sorted by ID.
func List() []SourceInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SourceInfo, 0, len(factories))
	for id := range factories {
		result = append(result, infos[id])
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a category source by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Source, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown category %q", id)
	}

	return f(), nil
}

// Exists checks if a category with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
