package tools

import (
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Registry keeps the set of tools exposed to the model during a run.
// Lookup is case-insensitive, since models occasionally change the
// case of tool names when producing calls.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ITool
}

func NewRegistry(list ...ITool) (*Registry, error) {
	r := &Registry{
		tools: make(map[string]ITool, len(list)),
	}
	for _, t := range list {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is a helper for static tool sets.
func MustRegistry(list ...ITool) *Registry {
	r, err := NewRegistry(list...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Register(t ITool) error {
	name := strings.ToLower(t.Name())
	if name == "" {
		return errors.New("tool name is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; ok {
		return errors.Errorf("tool already registered: %s", t.Name())
	}
	r.tools[name] = t
	return nil
}

func (r *Registry) Lookup(name string) (ITool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[strings.ToLower(name)]
	return t, ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for _, t := range r.tools {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

func (r *Registry) List() []ITool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]ITool, 0, len(names))
	for _, name := range names {
		list = append(list, r.tools[name])
	}
	return list
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
