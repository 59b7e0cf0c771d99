// Package pohoda exchanges business records with the Pohoda accounting
// system through its dataPack XML format.
//
// Pohoda bundles the pieces most callers need: creating validated agendas by
// kind name, writing them into a dataPack file and reading records of one
// kind back out of a response file.
//
//	p := pohoda.New("12345678")
//	storage, err := p.CreateStorage(map[string]any{"code": "MAIN"})
//	...
//	err = p.Open("export.xml", "001", "")
//	err = p.AddItem("1", storage)
//	err = p.Close()
//
// The agenda, document and options packages expose the same functionality
// with finer control over sinks, sources and kinds.
package pohoda

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Vitexus/pohoda/agenda"
	"github.com/Vitexus/pohoda/document"
	"github.com/Vitexus/pohoda/errdefs"
)

// Option configures a Pohoda.
type Option func(*Pohoda)

// WithRegistry replaces the default agenda kinds.
func WithRegistry(r *agenda.Registry) Option {
	return func(p *Pohoda) {
		if r != nil {
			p.registry = r
		}
	}
}

// WithApplication sets the application name written to dataPack envelopes.
func WithApplication(name string) Option {
	return func(p *Pohoda) {
		p.application = name
	}
}

// WithLogger routes logs of the writer and reader to log.
func WithLogger(log *logrus.Entry) Option {
	return func(p *Pohoda) {
		if log != nil {
			p.log = log
		}
	}
}

// Pohoda creates agendas for one organization and streams them to and from
// dataPack files. It holds at most one open writer and one open reader.
type Pohoda struct {
	ico         string
	application string
	registry    *agenda.Registry
	log         *logrus.Entry

	writer *document.Writer
	reader *document.Reader
}

// New returns a Pohoda for the organization identified by ico.
func New(ico string, opts ...Option) *Pohoda {
	p := &Pohoda{
		ico:         ico,
		application: document.DefaultApplication,
		registry:    agenda.DefaultRegistry(),
		log:         logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// ICO returns the organization code.
func (p *Pohoda) ICO() string { return p.ico }

// Registry returns the agenda kinds in use.
func (p *Pohoda) Registry() *agenda.Registry { return p.registry }

// Create builds the agenda registered as name from data.
func (p *Pohoda) Create(name string, data map[string]any) (agenda.Agenda, error) {
	return p.registry.Create(name, data, p.ico)
}

// CreateStorage builds a Storage agenda.
func (p *Pohoda) CreateStorage(data map[string]any) (*agenda.Storage, error) {
	return agenda.NewStorage(data, p.ico)
}

// CreateCategory builds a Category agenda.
func (p *Pohoda) CreateCategory(data map[string]any) (*agenda.Category, error) {
	return agenda.NewCategory(data, p.ico)
}

// Open starts a new dataPack file at path. The file started by a previous
// Open must be closed first.
func (p *Pohoda) Open(path, id, note string) error {
	if p.writer != nil {
		return errdefs.New("pohoda.open", errdefs.KindInvalidState, "writer",
			errors.New("writer already open"))
	}
	w := document.NewWriter(p.ico,
		document.WithApplication(p.application),
		document.WithWriterLogger(p.log.WithField("path", path)))
	if err := w.Create(path, id, note); err != nil {
		return err
	}
	p.writer = w
	return nil
}

// AddItem appends a to the file started by Open.
func (p *Pohoda) AddItem(id string, a agenda.Agenda) error {
	if p.writer == nil {
		return notOpen("pohoda.addItem", "writer")
	}
	return p.writer.AddItem(id, a)
}

// Close finishes the file started by Open.
func (p *Pohoda) Close() error {
	if p.writer == nil {
		return notOpen("pohoda.close", "writer")
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}

// Load opens the response file at path and positions on its first record
// of the agenda kind name. A previously loaded file is released.
func (p *Pohoda) Load(name, path string) error {
	if p.reader != nil {
		_ = p.reader.Close()
		p.reader = nil
	}
	r := document.NewReader(p.registry, document.WithReaderLogger(p.log.WithField("path", path)))
	if err := r.OpenFile(path, name); err != nil {
		return err
	}
	p.reader = r
	return nil
}

// Next returns the next record of the loaded file, or nil when none is
// left.
func (p *Pohoda) Next() (*document.Fragment, error) {
	if p.reader == nil {
		return nil, notOpen("pohoda.next", "reader")
	}
	return p.reader.Next()
}

// Unload releases the file opened by Load.
func (p *Pohoda) Unload() error {
	if p.reader == nil {
		return nil
	}
	err := p.reader.Close()
	p.reader = nil
	return err
}

func notOpen(op, what string) error {
	return errdefs.New(op, errdefs.KindInvalidState, what, errors.Errorf("no %s open", what))
}
