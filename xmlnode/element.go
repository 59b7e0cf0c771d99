// Package xmlnode is a small ordered XML element tree used to build and
// inspect agenda fragments.
//
// Names are kept exactly as written, prefix included ("str:itemStorage").
// Namespace bindings are declared once on the enclosing document, so the
// tree never resolves prefixes to URIs.
package xmlnode

import (
	"bytes"
	"io"
	"strings"
)

// Attr is a single attribute. Order of Attrs is preserved on output.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a fragment.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// New returns an element without attributes or children.
func New(name string) *Element {
	return &Element{Name: name}
}

// AddChild appends a new child element and returns it.
func (e *Element) AddChild(name string) *Element {
	child := New(name)
	e.Children = append(e.Children, child)
	return child
}

// AddText appends a child holding only character data.
func (e *Element) AddText(name, text string) *Element {
	child := e.AddChild(name)
	child.Text = text
	return child
}

// Append attaches an already built element as the last child.
func (e *Element) Append(child *Element) {
	e.Children = append(e.Children, child)
}

// SetAttr sets an attribute, replacing a previous value in place.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the direct children called name, in document order.
func (e *Element) Find(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// First returns the first direct child called name, or nil.
func (e *Element) First(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// WriteTo writes the element and its subtree.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var b bytes.Buffer
	e.write(&b)
	return b.WriteTo(w)
}

// Bytes returns the serialized element.
func (e *Element) Bytes() []byte {
	var b bytes.Buffer
	e.write(&b)
	return b.Bytes()
}

func (e *Element) String() string {
	return string(e.Bytes())
}

func (e *Element) write(b *bytes.Buffer) {
	if len(e.Children) == 0 && e.Text == "" {
		e.writeStart(b, true)
		return
	}
	e.writeStart(b, false)
	if e.Text != "" {
		b.WriteString(EscapeText(e.Text))
	}
	for _, c := range e.Children {
		c.write(b)
	}
	b.WriteString(e.EndTag())
}

func (e *Element) writeStart(b *bytes.Buffer, selfClosing bool) {
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(EscapeAttr(a.Value))
		b.WriteByte('"')
	}
	if selfClosing {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
}

// StartTag returns the opening tag alone, attributes included. Used when a
// document is streamed and its children are written later.
func (e *Element) StartTag() string {
	var b bytes.Buffer
	e.writeStart(&b, false)
	return b.String()
}

// EndTag returns the closing tag.
func (e *Element) EndTag() string {
	return "</" + e.Name + ">"
}

var (
	textReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
	)
	attrReplacer = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		"\"", "&quot;",
		"'", "&apos;",
		"\t", "&#x9;",
		"\n", "&#xA;",
		"\r", "&#xD;",
	)
)

// EscapeText escapes character data.
func EscapeText(s string) string {
	return textReplacer.Replace(s)
}

// EscapeAttr escapes an attribute value. Tabs and line breaks are written as
// character references so attribute normalization keeps them.
func EscapeAttr(s string) string {
	return attrReplacer.Replace(s)
}
