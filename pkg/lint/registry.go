package lint

import (
	"cmp"
	"slices"
	"sync"
)

// Registry holds all registered checkers.
type Registry struct {
	mu     sync.RWMutex
	byID   map[string]Checker
	byName map[string]Checker
}

// NewRegistry creates an empty checker registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]Checker),
		byName: make(map[string]Checker),
	}
}

// Register adds a checker to the registry.
// If a checker with the same ID already exists, it is replaced.
func (r *Registry) Register(checker Checker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.byID[checker.ID()]; ok {
		delete(r.byName, old.Name())
	}
	r.byID[checker.ID()] = checker
	r.byName[checker.Name()] = checker
}

// Get retrieves a checker by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if checker, ok := r.byID[key]; ok {
		return checker, true
	}
	if checker, ok := r.byName[key]; ok {
		return checker, true
	}
	return nil, false
}

// GetByID retrieves a checker by its ID only.
func (r *Registry) GetByID(id string) (Checker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	checker, ok := r.byID[id]
	return checker, ok
}

// Resolve returns the canonical ID for a checker ID or name.
func (r *Registry) Resolve(key string) (string, bool) {
	checker, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return checker.ID(), true
}

// Checkers returns all registered checkers sorted by ID.
func (r *Registry) Checkers() []Checker {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Checker, 0, len(r.byID))
	for _, checker := range r.byID {
		result = append(result, checker)
	}

	slices.SortFunc(result, func(a, b Checker) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return result
}

// IDs returns all registered checker IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in checkers.
// Checkers register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for checker registration
var DefaultRegistry = NewRegistry()
