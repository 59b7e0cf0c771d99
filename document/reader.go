package document

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/errdefs"
	"github.com/Vitexus/pohoda/xmlnode"
)

type readerState int

const (
	readerUnopened readerState = iota
	readerPositioned
	readerExhausted
	readerFailed
)

// frame is one open element on the scan path.
type frame struct {
	name string
	ns   map[string]string // xmlns declarations made by this element
}

// Reader yields the records of one agenda kind from a response document.
//
// Records are matched by qualified name at the depth of the first match.
// Each record is consumed whole when captured, so an element nested inside
// a record never counts as the next record even when it shares the name.
type Reader struct {
	registry *agenda.Registry
	log      *logrus.Entry

	state  readerState
	err    error
	dec    *xml.Decoder
	closer io.Closer
	name   string
	depth  int
	stack  []frame
	start  xml.StartElement
}

// NewReader returns an unopened reader resolving kinds through registry.
func NewReader(registry *agenda.Registry, opts ...ReaderOption) *Reader {
	if registry == nil {
		registry = agenda.DefaultRegistry()
	}
	r := &Reader{
		registry: registry,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// OpenFile opens path and positions the reader on the first record of kind.
// The kind is resolved before the file is touched.
func (r *Reader) OpenFile(path, kind string) error {
	if err := r.expectUnopened("document.openFile"); err != nil {
		return err
	}
	if _, err := r.registry.Resolve(kind); err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errdefs.New("document.openFile", errdefs.KindIOOpen, path, err)
	}
	if err := r.Open(f, kind); err != nil {
		_ = f.Close()
		return err
	}
	r.closer = f
	return nil
}

// Open positions the reader on the first element of source named like the
// import root of kind. A source without such element leaves the reader
// exhausted; that is not an error.
func (r *Reader) Open(source io.Reader, kind string) error {
	if err := r.expectUnopened("document.open"); err != nil {
		return err
	}
	k, err := r.registry.Resolve(kind)
	if err != nil {
		return err
	}
	if source == nil {
		return errdefs.New("document.open", errdefs.KindIOOpen, kind, errors.New("nil source"))
	}

	r.dec = xmlnode.NewDecoder(source)
	r.name = k.ImportRoot
	r.depth = 0
	r.stack = r.stack[:0]

	found, err := r.seek(0)
	if err != nil {
		r.dec = nil
		return err
	}
	if !found {
		r.state = readerExhausted
		r.log.WithField("root", r.name).Debug("no records found")
		return nil
	}
	r.state = readerPositioned
	r.log.WithFields(logrus.Fields{"root": r.name, "depth": r.depth}).Debug("positioned on first record")
	return nil
}

// Next returns the current record and advances to the following one. It
// returns nil, nil once the document holds no further record.
func (r *Reader) Next() (*Fragment, error) {
	switch r.state {
	case readerUnopened:
		return nil, errdefs.New("document.next", errdefs.KindInvalidState, "unopened",
			errors.New("reader is not open"))
	case readerExhausted:
		return nil, nil
	case readerFailed:
		return nil, r.err
	}

	raw, err := r.capture()
	if err != nil {
		r.fail(err)
		return nil, err
	}
	frag := &Fragment{Name: r.name, Raw: raw}

	itemDepth := r.depth + 1
	found, err := r.seek(itemDepth)
	switch {
	case err != nil:
		// the captured record is intact; the failure is reported by the
		// following call
		r.fail(err)
	case !found:
		r.state = readerExhausted
		if r.depth > 0 {
			r.log.WithField("open", r.depth).Warn("document ended inside an element")
		}
	}
	return frag, nil
}

// Close releases a file opened by OpenFile. The reader is exhausted
// afterwards.
func (r *Reader) Close() error {
	r.state = readerExhausted
	r.dec = nil
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

// seek advances to the next start element named r.name. With depth 0 the
// first such element at any depth matches; otherwise only elements at that
// depth do.
func (r *Reader) seek(depth int) (bool, error) {
	for {
		tok, err := r.dec.RawToken()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, malformed(r.name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			r.push(t)
			if xmlnode.QualifiedName(t.Name) == r.name && (depth == 0 || r.depth == depth) {
				r.start = t.Copy()
				return true, nil
			}
		case xml.EndElement:
			if err := r.pop(t); err != nil {
				return false, err
			}
		}
	}
}

// capture serializes the subtree of r.start. On return the decoder sits
// right after its end tag and the element is no longer on the stack.
func (r *Reader) capture() ([]byte, error) {
	var b bytes.Buffer
	writeStart(&b, r.start, r.inherited())

	base := r.depth
	for {
		tok, err := r.dec.RawToken()
		if err == io.EOF {
			return nil, malformed(r.name, io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, malformed(r.name, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			r.push(t)
			writeStart(&b, t, nil)
		case xml.EndElement:
			if err := r.pop(t); err != nil {
				return nil, err
			}
			b.WriteString("</")
			b.WriteString(xmlnode.QualifiedName(t.Name))
			b.WriteByte('>')
			if r.depth < base {
				return b.Bytes(), nil
			}
		case xml.CharData:
			b.WriteString(xmlnode.EscapeText(string(t)))
		case xml.Comment:
			b.WriteString("<!--")
			b.Write(t)
			b.WriteString("-->")
		}
	}
}

func (r *Reader) push(t xml.StartElement) {
	var ns map[string]string
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			if ns == nil {
				ns = map[string]string{}
			}
			ns[a.Name.Local] = a.Value
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			if ns == nil {
				ns = map[string]string{}
			}
			ns[""] = a.Value
		}
	}
	r.stack = append(r.stack, frame{name: xmlnode.QualifiedName(t.Name), ns: ns})
	r.depth++
}

func (r *Reader) pop(t xml.EndElement) error {
	name := xmlnode.QualifiedName(t.Name)
	if len(r.stack) == 0 || r.stack[len(r.stack)-1].name != name {
		return malformed(r.name, errors.Errorf("unexpected end element </%s>", name))
	}
	r.stack = r.stack[:len(r.stack)-1]
	r.depth--
	return nil
}

// inherited returns the namespace bindings declared by the ancestors of the
// element on top of the stack.
func (r *Reader) inherited() map[string]string {
	scope := map[string]string{}
	if len(r.stack) == 0 {
		return scope
	}
	for _, f := range r.stack[:len(r.stack)-1] {
		for p, u := range f.ns {
			scope[p] = u
		}
	}
	return scope
}

func (r *Reader) fail(err error) {
	r.state = readerFailed
	r.err = err
}

func (r *Reader) expectUnopened(op string) error {
	if r.state != readerUnopened {
		return errdefs.New(op, errdefs.KindInvalidState, "opened", errors.New("reader already opened"))
	}
	return nil
}

// writeStart writes a start tag. Bindings in inherit that the element does
// not declare itself are added, sorted by prefix.
func writeStart(b *bytes.Buffer, t xml.StartElement, inherit map[string]string) {
	el := xmlnode.New(xmlnode.QualifiedName(t.Name))

	own := map[string]bool{}
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "xmlns":
			own[a.Name.Local] = true
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			own[""] = true
		}
	}
	prefixes := make([]string, 0, len(inherit))
	for p := range inherit {
		if !own[p] {
			prefixes = append(prefixes, p)
		}
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		if p == "" {
			el.SetAttr("xmlns", inherit[p])
			continue
		}
		el.SetAttr("xmlns:"+p, inherit[p])
	}

	for _, a := range t.Attr {
		el.SetAttr(xmlnode.QualifiedName(a.Name), a.Value)
	}
	b.WriteString(el.StartTag())
}

func malformed(subject string, err error) error {
	return errdefs.New("document.read", errdefs.KindMalformedFragment, subject, err)
}
