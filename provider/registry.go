package provider

import (
	"fmt"
	"sort"

	"github.com/oxhq/sgrep/lang"
	"github.com/oxhq/sgrep/matcher"
)

// Registry maps a language tag to its Provider, mirroring the teacher's
// providers.Registry (Register/Get/Languages).
type Registry struct {
	providers map[string]*Provider
}

// NewRegistry builds a Registry with one Provider per adapter registered
// in langRegistry, all sharing the same soft bounds.
func NewRegistry(langRegistry *lang.Registry, limits matcher.Limits) (*Registry, error) {
	reg := &Registry{providers: make(map[string]*Provider)}
	for _, name := range langRegistry.Languages() {
		a, err := langRegistry.Get(name)
		if err != nil {
			return nil, err
		}
		reg.providers[name] = New(a, limits)
	}
	return reg, nil
}

// Get looks up the Provider for a language tag.
func (r *Registry) Get(language string) (*Provider, error) {
	p, ok := r.providers[language]
	if !ok {
		return nil, fmt.Errorf("provider: no provider registered for %q", language)
	}
	return p, nil
}

// Languages lists the registered language tags, sorted for stable output.
func (r *Registry) Languages() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
