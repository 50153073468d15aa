package tool

import (
	"sort"
	"sync"
)

// Registry is an explicit allowlist of tools, keyed by name. It is populated
// during an initialization phase and read-only afterwards; there is no
// removal or replacement operation. A Registry may be shared across
// concurrent runs.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register inserts a tool. Registering a name twice fails with
// *DuplicateToolError; the first registration wins.
func (r *Registry) Register(t Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name()]; exists {
		return &DuplicateToolError{Name: t.Name()}
	}
	r.tools[t.Name()] = t

	return nil
}

// MustRegister is like Register but panics on error. Use during startup
// wiring where a duplicate name is a programming mistake.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Get returns the tool registered under name, or *ToolNotFoundError.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	if !ok {
		return nil, &ToolNotFoundError{Name: name}
	}

	return t, nil
}

// Names returns all registered tool names in lexicographic order, so
// planning and diagnostics see a stable view.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
