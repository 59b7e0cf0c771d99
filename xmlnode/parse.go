package xmlnode

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"

	"github.com/Vitexus/pohoda/errdefs"
)

// QualifiedName renders a raw token name as "prefix:local".
func QualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// NewDecoder returns a decoder that understands the legacy charsets Pohoda
// emits (windows-1250 in particular) in addition to UTF-8.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	return d
}

// Parse reads a single element from data. Anything other than exactly one
// well-formed root element is reported as a malformed fragment.
func Parse(data []byte) (*Element, error) {
	d := NewDecoder(bytes.NewReader(data))

	var (
		root  *Element
		stack []*Element
	)
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := New(QualifiedName(t.Name))
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: QualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, malformed(errors.Errorf("second root element <%s>", el.Name))
				}
				root = el
			} else {
				stack[len(stack)-1].Append(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			name := QualifiedName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, malformed(errors.Errorf("unexpected end element </%s>", name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, malformed(errors.New("character data outside root element"))
				}
				continue
			}
			stack[len(stack)-1].Text += string(t)
		}
	}

	if root == nil {
		return nil, malformed(errors.New("no root element"))
	}
	if len(stack) > 0 {
		return nil, malformed(errors.Errorf("unclosed element <%s>", stack[len(stack)-1].Name))
	}
	trimLayout(root)
	return root, nil
}

// trimLayout drops indentation-only text from elements that hold children.
func trimLayout(e *Element) {
	if len(e.Children) > 0 && strings.TrimSpace(e.Text) == "" {
		e.Text = ""
	}
	for _, c := range e.Children {
		trimLayout(c)
	}
}

func malformed(err error) error {
	return errdefs.New("xmlnode.parse", errdefs.KindMalformedFragment, "", err)
}
