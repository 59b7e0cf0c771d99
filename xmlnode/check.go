package xmlnode

import (
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/Vitexus/pohoda/errdefs"
)

// Check reports the first name, attribute value or text in the subtree that
// cannot be written as well-formed XML. Values must be valid UTF-8 made of
// runes from the XML Char production; tab, line feed and carriage return are
// the only control characters allowed.
func (e *Element) Check() error {
	if e.Name == "" {
		return unwritable("", errors.New("element without name"))
	}
	for _, a := range e.Attrs {
		if a.Name == "" {
			return unwritable(e.Name, errors.New("attribute without name"))
		}
		if err := checkChars(a.Value); err != nil {
			return unwritable(e.Name, errors.Wrapf(err, "attribute %s", a.Name))
		}
	}
	if err := checkChars(e.Text); err != nil {
		return unwritable(e.Name, errors.Wrap(err, "text"))
	}
	for _, c := range e.Children {
		if err := c.Check(); err != nil {
			return err
		}
	}
	return nil
}

func checkChars(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return errors.Errorf("invalid UTF-8 at byte %d", i)
		}
		if !isChar(r) {
			return errors.Errorf("character U+%04X at byte %d is not allowed in XML", r, i)
		}
		i += size
	}
	return nil
}

func isChar(r rune) bool {
	switch {
	case r == 0x09, r == 0x0A, r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return r >= 0x10000 && r <= utf8.MaxRune
	}
}

func unwritable(subject string, err error) error {
	return errdefs.New("xmlnode.check", errdefs.KindMalformedFragment, subject, err)
}
