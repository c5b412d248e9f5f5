package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// BuildFunc constructs the steps of a tour. Steps may close over nav and
// handle to express their hooks; construction itself must not navigate.
type BuildFunc func(nav ports.NavigationBridge, handle ports.Handle) ([]domain.Step, error)

// Registry maps tour IDs to their builders.
type Registry struct {
	mu    sync.RWMutex
	tours map[string]BuildFunc
}

var (
	_ ports.TourBuilder = (*Registry)(nil)
	_ ports.Catalog     = (*Registry)(nil)
)

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tours: make(map[string]BuildFunc),
	}
}

// Register adds a tour to the registry.
// If a tour with the same ID exists, it is overwritten.
func (r *Registry) Register(id string, fn BuildFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tours[id] = fn
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tours[id]
	return ok
}

// Build looks up a tour and constructs it. Unknown IDs return an error
// wrapping domain.ErrTourNotFound.
func (r *Registry) Build(id string, nav ports.NavigationBridge, handle ports.Handle) (*domain.Tour, error) {
	r.mu.RLock()
	fn, ok := r.tours[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTourNotFound, id)
	}

	steps, err := fn(nav, handle)
	if err != nil {
		return nil, fmt.Errorf("build tour %s: %w", id, err)
	}
	return domain.NewTour(id, steps)
}

// IDs returns the registered tour IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.tours))
	for id := range r.tours {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Suggest returns the registered ID closest to id, or "" when nothing is
// within a third of its length.
func (r *Registry) Suggest(id string) string {
	best, bestDist := "", -1
	for _, candidate := range r.IDs() {
		d := levenshtein.ComputeDistance(id, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	limit := len(id)/3 + 1
	if bestDist < 0 || bestDist > limit {
		return ""
	}
	return best
}
