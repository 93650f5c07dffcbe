package prompts

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the compiled templates of every capability.
type Registry struct {
	mu        sync.RWMutex
	templates map[PromptName]Template
}

func NewRegistry() *Registry {
	return &Registry{templates: map[PromptName]Template{}}
}

// Register adds a compiled Template, replacing any earlier one with the same name.
func (r *Registry) Register(t Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.Name] = t
}

func (r *Registry) Lookup(name PromptName) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	return t, ok
}

// Build looks up a template by name and binds it to in.
func (r *Registry) Build(name PromptName, in map[string]any) (Prompt, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	return t.Bind(in)
}

// All returns the registered templates ordered by name.
func (r *Registry) All() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
