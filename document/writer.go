package document

import (
	"bufio"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/errdefs"
	"github.com/Vitexus/pohoda/xmlnode"
)

// Encoding is the charset label written in the XML declaration.
const Encoding = "Windows-1250"

type writerState int

const (
	writerUnopened writerState = iota
	writerOpen
	writerClosed
)

func (s writerState) String() string {
	switch s {
	case writerUnopened:
		return "unopened"
	case writerOpen:
		return "open"
	default:
		return "closed"
	}
}

// Header holds the envelope attributes.
type Header struct {
	ID          string `validate:"required"`
	ICO         string `validate:"required"`
	Application string `validate:"required"`
	Note        string
}

var headerValidator = validator.New()

// Writer streams a dataPack document.
type Writer struct {
	ico         string
	application string
	log         *logrus.Entry

	state  writerState
	buf    *bufio.Writer
	enc    io.WriteCloser
	closer io.Closer
	items  int
}

// NewWriter returns an unopened writer for the organization ico.
func NewWriter(ico string, opts ...WriterOption) *Writer {
	w := &Writer{
		ico:         ico,
		application: DefaultApplication,
		log:         logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}
	return w
}

// Create opens path for writing and starts the document in it. The file is
// closed by Close. A file that cannot be created leaves the writer unopened.
func (w *Writer) Create(path, id, note string) error {
	if err := w.expect("document.create", writerUnopened); err != nil {
		return err
	}
	if err := w.validateHeader(id); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errdefs.New("document.create", errdefs.KindIOOpen, path, err)
	}
	if err := w.Open(f, id, note); err != nil {
		_ = f.Close()
		return err
	}
	w.closer = f
	return nil
}

// Open writes the XML declaration and the envelope start tag to sink.
func (w *Writer) Open(sink io.Writer, id, note string) error {
	if err := w.expect("document.open", writerUnopened); err != nil {
		return err
	}
	if err := w.validateHeader(id); err != nil {
		return err
	}
	if sink == nil {
		return errdefs.New("document.open", errdefs.KindIOOpen, "", errors.New("nil sink"))
	}

	buf := bufio.NewWriter(sink)
	// runes outside the code page become numeric character references
	enc := transform.NewWriter(buf, encoding.HTMLEscapeUnsupported(charmap.Windows1250.NewEncoder()))

	root := w.envelope(id, note)
	if err := root.Check(); err != nil {
		return err
	}
	if _, err := io.WriteString(enc, `<?xml version="1.0" encoding="`+Encoding+`"?>`+"\n"+root.StartTag()); err != nil {
		return errdefs.New("document.open", errdefs.KindIOOpen, "", err)
	}
	if err := buf.Flush(); err != nil {
		return errdefs.New("document.open", errdefs.KindIOOpen, "", err)
	}

	w.buf = buf
	w.enc = enc
	w.state = writerOpen
	w.log.WithFields(logrus.Fields{"id": id, "ico": w.ico}).Info("data pack opened")
	return nil
}

// AddItem renders a and writes it as one dataPackItem. The item is flushed
// to the sink before AddItem returns. A rendering failure writes nothing,
// and neither does a fragment holding characters XML cannot carry.
func (w *Writer) AddItem(id string, a agenda.Agenda) error {
	if err := w.expect("document.addItem", writerOpen); err != nil {
		return err
	}
	if a == nil {
		return errdefs.New("document.addItem", errdefs.KindValidation, id, errors.New("nil agenda"))
	}

	frag, err := a.XML()
	if err != nil {
		return err
	}

	item := xmlnode.New("dat:dataPackItem").
		SetAttr("id", id).
		SetAttr("version", Version)
	item.Append(frag)
	if err := item.Check(); err != nil {
		return err
	}

	if _, err := w.enc.Write(item.Bytes()); err != nil {
		return errors.Wrapf(err, "write item %s", id)
	}
	if err := w.buf.Flush(); err != nil {
		return errors.Wrapf(err, "flush item %s", id)
	}

	w.items++
	w.log.WithFields(logrus.Fields{"id": id, "kind": a.Kind()}).Debug("data pack item written")
	return nil
}

// Close ends the envelope, flushes and releases a file opened by Create.
func (w *Writer) Close() error {
	if err := w.expect("document.close", writerOpen); err != nil {
		return err
	}
	w.state = writerClosed

	var err error
	if _, werr := io.WriteString(w.enc, "</dat:dataPack>"); werr != nil {
		err = errors.Wrap(werr, "write envelope end")
	}
	if cerr := w.enc.Close(); cerr != nil && err == nil {
		err = errors.Wrap(cerr, "close encoder")
	}
	if ferr := w.buf.Flush(); ferr != nil && err == nil {
		err = errors.Wrap(ferr, "flush envelope end")
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close sink")
		}
		w.closer = nil
	}

	w.log.WithField("items", w.items).Info("data pack closed")
	return err
}

// Items returns the number of items written so far.
func (w *Writer) Items() int {
	return w.items
}

func (w *Writer) envelope(id, note string) *xmlnode.Element {
	root := xmlnode.New("dat:dataPack").
		SetAttr("id", id).
		SetAttr("ico", w.ico).
		SetAttr("application", w.application).
		SetAttr("version", Version).
		SetAttr("note", note)
	for _, ns := range agenda.Namespaces() {
		root.SetAttr("xmlns:"+ns.Prefix, ns.URI)
	}
	return root
}

func (w *Writer) validateHeader(id string) error {
	h := Header{ID: id, ICO: w.ico, Application: w.application}
	if err := headerValidator.Struct(h); err != nil {
		return errdefs.New("document.open", errdefs.KindValidation, "header", err)
	}
	return nil
}

func (w *Writer) expect(op string, want writerState) error {
	if w.state != want {
		return errdefs.New(op, errdefs.KindInvalidState, w.state.String(),
			errors.Errorf("writer must be %s", want))
	}
	return nil
}
