package host

import (
	"sync"
)

// Registry tracks the open surfaces. It is populated on surface creation and
// drained on close; Activate and OpenProjectFile query it.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[SurfaceID]Surface
	order    []SurfaceID
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[SurfaceID]Surface)}
}

// Add registers s. Registering an id twice replaces the surface.
func (r *Registry) Add(s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[s.ID()]; !exists {
		r.order = append(r.order, s.ID())
	}
	r.surfaces[s.ID()] = s
}

// Remove unregisters id and returns the number of surfaces left.
func (r *Registry) Remove(id SurfaceID) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.surfaces[id]; exists {
		delete(r.surfaces, id)
		for i, existing := range r.order {
			if existing == id {
				r.order = append(r.order[:i], r.order[i+1:]...)
				break
			}
		}
	}
	return len(r.surfaces)
}

// Get returns the surface registered under id
func (r *Registry) Get(id SurfaceID) (Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	return s, ok
}

// Count returns the number of open surfaces
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.surfaces)
}

// Latest returns the most recently registered surface still open
func (r *Registry) Latest() (Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return nil, false
	}
	return r.surfaces[r.order[len(r.order)-1]], true
}
