package options

import (
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func fieldValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Resolver holds the option contract of one agenda kind.
type Resolver struct {
	kind     string
	defined  map[string]struct{}
	required map[string]struct{}
	defaults map[string]any
	rules    map[string]string
}

// NewResolver returns an empty contract for kind. The kind name is only used
// in error messages.
func NewResolver(kind string) *Resolver {
	return &Resolver{
		kind:     kind,
		defined:  map[string]struct{}{},
		required: map[string]struct{}{},
		defaults: map[string]any{},
		rules:    map[string]string{},
	}
}

// Kind returns the agenda kind the contract belongs to.
func (r *Resolver) Kind() string {
	return r.kind
}

// SetDefined adds names to the set of accepted options.
func (r *Resolver) SetDefined(names ...string) *Resolver {
	for _, n := range names {
		r.defined[n] = struct{}{}
	}
	return r
}

// SetRequired marks names as required. Required options are defined too.
func (r *Resolver) SetRequired(names ...string) *Resolver {
	for _, n := range names {
		r.defined[n] = struct{}{}
		r.required[n] = struct{}{}
	}
	return r
}

// SetDefault declares the value used when name is absent from the input.
func (r *Resolver) SetDefault(name string, value any) *Resolver {
	r.defined[name] = struct{}{}
	r.defaults[name] = value
	return r
}

// SetValidation attaches a validator tag (for example "max=19") checked
// against the text form of the option value whenever it is present, so
// "max" limits length for 100 and "100" alike.
func (r *Resolver) SetValidation(name, tag string) *Resolver {
	r.defined[name] = struct{}{}
	r.rules[name] = tag
	return r
}

// IsDefined reports whether name is an accepted option.
func (r *Resolver) IsDefined(name string) bool {
	_, ok := r.defined[name]
	return ok
}

// IsRequired reports whether name must be present.
func (r *Resolver) IsRequired(name string) bool {
	_, ok := r.required[name]
	return ok
}

// Defined returns the accepted option names, sorted.
func (r *Resolver) Defined() []string {
	return sortedKeys(r.defined)
}

// Required returns the required option names, sorted.
func (r *Resolver) Required() []string {
	return sortedKeys(r.required)
}

// Resolve checks input against the contract. On success it returns a copy of
// input with declared defaults filled in; input itself is never modified.
func (r *Resolver) Resolve(input map[string]any) (map[string]any, error) {
	var unknown []string
	for k := range input {
		if _, ok := r.defined[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownOptionError{Kind: r.kind, Options: unknown, Defined: r.Defined()}
	}

	var missing []string
	for k := range r.required {
		if _, ok := input[k]; !ok {
			if _, hasDefault := r.defaults[k]; !hasDefault {
				missing = append(missing, k)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingRequiredOptionError{Kind: r.kind, Options: missing}
	}

	out := make(map[string]any, len(input)+len(r.defaults))
	for k, v := range r.defaults {
		out[k] = v
	}
	for k, v := range input {
		out[k] = v
	}

	for _, name := range sortedKeys(r.rules) {
		value, ok := out[name]
		if !ok {
			continue
		}
		tag := r.rules[name]
		if err := fieldValidator().Var(Text(value), tag); err != nil {
			return nil, &InvalidOptionError{Kind: r.kind, Option: name, Tag: tag, Value: value, Err: err}
		}
	}

	return out, nil
}

// Validate checks input against an ad-hoc contract made of the defined and
// required sets.
func Validate(kind string, defined, required []string, input map[string]any) (map[string]any, error) {
	return NewResolver(kind).SetDefined(defined...).SetRequired(required...).Resolve(input)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
