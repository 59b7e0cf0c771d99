package agenda

import (
	"github.com/pkg/errors"

	"github.com/Vitexus/pohoda/errdefs"
	"github.com/Vitexus/pohoda/options"
	"github.com/Vitexus/pohoda/xmlnode"
)

// Version is the format version written on agenda root elements.
const Version = "2.0"

// Agenda is the contract every entity kind satisfies.
type Agenda interface {
	// Kind returns the registry name of the agenda ("Storage").
	Kind() string
	// ImportRoot returns the qualified element name that starts one record
	// of this kind in a Pohoda response document.
	ImportRoot() string
	// ICO returns the organization code the agenda was created for.
	ICO() string
	// Data returns a copy of the validated options.
	Data() map[string]any
	// XML renders the agenda as a namespace-qualified fragment.
	XML() (*xmlnode.Element, error)
}

// base holds the validated options shared by all kinds.
type base struct {
	kind string
	ico  string
	data map[string]any
}

func newBase(kind, ico string, data map[string]any, configure func(*options.Resolver)) (base, error) {
	r := options.NewResolver(kind)
	configure(r)

	resolved, err := r.Resolve(data)
	if err != nil {
		return base{}, errdefs.New("agenda.new", errdefs.KindValidation, kind, err)
	}
	return base{kind: kind, ico: ico, data: resolved}, nil
}

func (b *base) Kind() string { return b.kind }

func (b *base) ICO() string { return b.ico }

func (b *base) Data() map[string]any {
	out := make(map[string]any, len(b.data))
	for k, v := range b.data {
		out[k] = v
	}
	return out
}

func (b *base) value(name string) (string, bool) {
	v, ok := b.data[name]
	if !ok || v == nil {
		return "", false
	}
	return options.Text(v), true
}

// require guards rendering; construction already enforces the same rule.
func (b *base) require(names ...string) error {
	for _, n := range names {
		if _, ok := b.data[n]; !ok {
			return errdefs.New("agenda.xml", errdefs.KindValidation, b.kind,
				errors.Errorf("required option %q missing", n))
		}
	}
	return nil
}

// addElements appends one text child per present option, in the given order.
func (b *base) addElements(parent *xmlnode.Element, prefix string, names ...string) {
	for _, n := range names {
		if v, ok := b.value(n); ok {
			parent.AddText(prefix+":"+n, v)
		}
	}
}
