package lang

import (
	"fmt"
	"sort"
	"strings"
)

// Registry maps a language tag to its Adapter, mirroring the teacher's
// providers.Registry (Register/Get/Languages).
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own Name(), erroring on a duplicate.
func (r *Registry) Register(a Adapter) error {
	name := a.Name()
	if _, exists := r.adapters[name]; exists {
		return fmt.Errorf("lang: adapter %q already registered", name)
	}
	r.adapters[name] = a
	return nil
}

// Get looks up an adapter by language tag.
func (r *Registry) Get(name string) (Adapter, error) {
	a, ok := r.adapters[name]
	if !ok {
		return nil, fmt.Errorf("lang: no adapter registered for %q", name)
	}
	return a, nil
}

// ForExtension finds the adapter whose Extensions() claims the given file
// name, used by the CLI/walker to pick a dialect without a rule file.
func (r *Registry) ForExtension(filename string) (Adapter, error) {
	for _, a := range r.adapters {
		for _, ext := range a.Extensions() {
			if strings.HasPrefix(ext, ".") && strings.HasSuffix(filename, ext) {
				return a, nil
			}
			if !strings.HasPrefix(ext, ".") && strings.HasSuffix(filename, ext) {
				return a, nil
			}
		}
	}
	return nil, fmt.Errorf("lang: no adapter claims file %q", filename)
}

// Languages lists the registered language tags, sorted for stable output.
func (r *Registry) Languages() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
