package registry

import "sync"

// Registry holds the tools declared by a manifest, preserving
// declaration order for stable listing.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolSpec
	order []string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		tools: make(map[string]ToolSpec),
	}
}

// FromManifest builds a registry from a validated manifest.
func FromManifest(m Manifest) *Registry {
	r := New()
	for _, tool := range m.Tools {
		r.Register(tool)
	}
	return r
}

// Load reads a manifest file and builds a registry from it.
func Load(path string) (*Registry, error) {
	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return FromManifest(manifest), nil
}

// Register adds a tool spec. A spec with an existing name overwrites
// the previous one and keeps its original position.
func (r *Registry) Register(spec ToolSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[spec.Name]; !exists {
		r.order = append(r.order, spec.Name)
	}
	r.tools[spec.Name] = spec
}

// Get returns a tool spec by name.
func (r *Registry) Get(name string) (ToolSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.tools[name]
	return spec, ok
}

// Has reports whether a tool name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// List returns all tool specs in declaration order.
func (r *Registry) List() []ToolSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
