// Package errdefs defines the error kinds returned by the Pohoda codec.
//
// Every error produced by the library is either an *Error carrying one of the
// kinds below or wraps one. Callers classify failures with the Is* helpers
// instead of matching on message text.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind is a coarse-grained categorization for errors.
type Kind string

const (
	// KindUnknownEntityKind is returned when an agenda name is not registered.
	KindUnknownEntityKind Kind = "unknown_entity_kind"
	// KindValidation is returned when an option set breaks its declared contract.
	KindValidation Kind = "validation"
	// KindIOOpen is returned when a sink or source cannot be acquired.
	KindIOOpen Kind = "io_open"
	// KindMalformedFragment is returned when a fragment is not well-formed XML.
	KindMalformedFragment Kind = "malformed_fragment"
	// KindInvalidState is returned when a writer or reader is used outside
	// the state its operation requires.
	KindInvalidState Kind = "invalid_state"
)

// Error wraps an underlying error with operation context and a kind.
type Error struct {
	Op      string
	Kind    Kind
	Subject string // optional: agenda name, path, element name
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Subject != "" {
		base += fmt.Sprintf(" (%s)", e.Subject)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New returns an *Error of the given kind.
func New(op string, kind Kind, subject string, err error) error {
	return &Error{Op: op, Kind: kind, Subject: subject, Err: err}
}

// IsKind reports whether any error in err's chain is an *Error of kind.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Err
	}
	return false
}

// IsUnknownEntityKind reports whether err was caused by an unknown agenda kind.
func IsUnknownEntityKind(err error) bool { return IsKind(err, KindUnknownEntityKind) }

// IsValidation reports whether err was caused by rejected options or header fields.
func IsValidation(err error) bool { return IsKind(err, KindValidation) }

// IsIOOpen reports whether err was caused by a sink or source that could not be opened.
func IsIOOpen(err error) bool { return IsKind(err, KindIOOpen) }

// IsMalformedFragment reports whether err was caused by XML that is not well-formed.
func IsMalformedFragment(err error) bool { return IsKind(err, KindMalformedFragment) }

// IsInvalidState reports whether err was caused by a call made in the wrong writer or reader state.
func IsInvalidState(err error) bool { return IsKind(err, KindInvalidState) }
