package document

import (
	"sync"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Registry maps component names used in documents to definitions.
// It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]vdom.Definition
}

// NewRegistry creates a registry holding defs.
func NewRegistry(defs ...vdom.Definition) *Registry {
	r := &Registry{defs: make(map[string]vdom.Definition)}
	r.Register(defs...)
	return r
}

// Register adds definitions under their names, replacing any previous
// definition with the same name.
func (r *Registry) Register(defs ...vdom.Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, def := range defs {
		if def != nil {
			r.defs[def.Name()] = def
		}
	}
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (vdom.Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	return def, ok
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedNames(r.defs)
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry returns the shared registry holding the built-in
// components TextComponent and CounterComponent.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(TextComponent, CounterComponent)
	})
	return defaultRegistry
}
