package agenda

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/Vitexus/pohoda/errdefs"
)

// Constructor builds a validated agenda from an option map.
type Constructor func(data map[string]any, ico string) (Agenda, error)

// Kind describes one registered agenda kind.
type Kind struct {
	Name       string
	ImportRoot string
	New        Constructor
}

// Registry is a closed set of agenda kinds keyed by exact name.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry returns a registry holding kinds. A later kind with the same
// name replaces an earlier one.
func NewRegistry(kinds ...Kind) *Registry {
	r := &Registry{kinds: make(map[string]Kind, len(kinds))}
	for _, k := range kinds {
		r.kinds[k.Name] = k
	}
	return r
}

// DefaultRegistry returns the kinds shipped with this package.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Kind{
			Name:       KindStorage,
			ImportRoot: StorageImportRoot,
			New: func(data map[string]any, ico string) (Agenda, error) {
				return NewStorage(data, ico)
			},
		},
		Kind{
			Name:       KindCategory,
			ImportRoot: CategoryImportRoot,
			New: func(data map[string]any, ico string) (Agenda, error) {
				return NewCategory(data, ico)
			},
		},
	)
}

// Resolve looks name up. Unknown names fail with errdefs.KindUnknownEntityKind.
func (r *Registry) Resolve(name string) (Kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, errdefs.New("agenda.resolve", errdefs.KindUnknownEntityKind, name,
			errors.Errorf("not allowed entity: %s", name))
	}
	return k, nil
}

// Create resolves name and constructs the agenda from data.
func (r *Registry) Create(name string, data map[string]any, ico string) (Agenda, error) {
	k, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return k.New(data, ico)
}

// Names returns the registered kind names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for n := range r.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
