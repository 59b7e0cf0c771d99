package agenda

import (
	"github.com/Vitexus/pohoda/options"
	"github.com/Vitexus/pohoda/xmlnode"
)

// Registry name of the Storage kind and the element that starts one Storage
// record in a response document.
const (
	KindStorage       = "Storage"
	StorageImportRoot = "lst:itemStorage"
)

// Storage is a warehouse location. Storages nest: every storage may own an
// ordered list of substorages.
type Storage struct {
	base
	children []*Storage
}

// NewStorage validates data against the storage contract.
func NewStorage(data map[string]any, ico string) (*Storage, error) {
	b, err := newBase(KindStorage, ico, data, configureStorage)
	if err != nil {
		return nil, err
	}
	return &Storage{base: b}, nil
}

func configureStorage(r *options.Resolver) {
	r.SetDefined("code", "name")
	r.SetRequired("code")
	r.SetValidation("code", "max=64")
}

func (s *Storage) ImportRoot() string { return StorageImportRoot }

// AddSubstorage appends child. The caller owns the tree shape; no cycle or
// duplicate checks are made.
func (s *Storage) AddSubstorage(child *Storage) {
	s.children = append(s.children, child)
}

// Substorages returns the direct children in insertion order.
func (s *Storage) Substorages() []*Storage {
	return append([]*Storage(nil), s.children...)
}

func (s *Storage) XML() (*xmlnode.Element, error) {
	root := xmlnode.New("str:storage").SetAttr("version", Version)
	if err := s.RenderInto(root); err != nil {
		return nil, err
	}
	return root, nil
}

// RenderInto appends the storage element to parent, followed by a single
// str:subStorages group holding every child when there is at least one.
func (s *Storage) RenderInto(parent *xmlnode.Element) error {
	if err := s.require("code"); err != nil {
		return err
	}

	item := parent.AddChild("str:itemStorage")
	code, _ := s.value("code")
	item.SetAttr("code", code)
	if name, ok := s.value("name"); ok {
		item.SetAttr("name", name)
	}

	if len(s.children) == 0 {
		return nil
	}
	group := item.AddChild("str:subStorages")
	for _, c := range s.children {
		if err := c.RenderInto(group); err != nil {
			return err
		}
	}
	return nil
}
