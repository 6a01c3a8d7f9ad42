package catalog

import (
	"fmt"
	"sync"

	"htmm/internal/domain"
)

// Registry manages registered catalogs.
type Registry struct {
	mu       sync.RWMutex
	catalogs map[domain.Provider]Catalog
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		catalogs: make(map[domain.Provider]Catalog),
	}
}

// Register adds a catalog to the registry.
func (r *Registry) Register(c Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	if _, exists := r.catalogs[id]; exists {
		return fmt.Errorf("catalog %q already registered", id)
	}

	r.catalogs[id] = c
	return nil
}

// Get returns the catalog for the given provider.
func (r *Registry) Get(id domain.Provider) (Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.catalogs[id]
	if !exists {
		return nil, fmt.Errorf("unknown catalog %q", id)
	}
	return c, nil
}

// List returns all registered catalogs.
func (r *Registry) List() []Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Catalog, 0, len(r.catalogs))
	for _, c := range r.catalogs {
		list = append(list, c)
	}
	return list
}
