package document

import (
	"encoding/xml"

	"github.com/Vitexus/pohoda/errdefs"
	"github.com/Vitexus/pohoda/xmlnode"
)

// Fragment is one record cut out of a response document. Raw is UTF-8 and
// carries every namespace declaration the element needs, so it parses on
// its own.
type Fragment struct {
	Name string
	Raw  []byte
}

// Element parses the fragment into an element tree.
func (f *Fragment) Element() (*xmlnode.Element, error) {
	return xmlnode.Parse(f.Raw)
}

// Decode unmarshals the fragment into v with encoding/xml.
func (f *Fragment) Decode(v any) error {
	if err := xml.Unmarshal(f.Raw, v); err != nil {
		return errdefs.New("fragment.decode", errdefs.KindMalformedFragment, f.Name, err)
	}
	return nil
}

func (f *Fragment) String() string {
	return string(f.Raw)
}
