package errdefs

import (
	"errors"
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := New("agenda.create", KindValidation, "Storage", root)

	assert.Check(t, errors.Is(err, root))

	var got *Error
	assert.Assert(t, errors.As(err, &got))
	assert.Check(t, is.Equal(got.Kind, KindValidation))
	assert.Check(t, is.Equal(err.Error(), "agenda.create: validation (Storage): root"))
}

func TestIsKindFollowsChain(t *testing.T) {
	inner := New("options.resolve", KindValidation, "", errors.New("bad"))
	outer := New("document.addItem", KindMalformedFragment, "", inner)
	wrapped := fmt.Errorf("export: %w", outer)

	assert.Check(t, IsMalformedFragment(wrapped))
	assert.Check(t, IsValidation(wrapped))
	assert.Check(t, !IsIOOpen(wrapped))
	assert.Check(t, !IsUnknownEntityKind(errors.New("plain")))
	assert.Check(t, !IsInvalidState(nil))
}

func TestNilErrorString(t *testing.T) {
	var e *Error
	assert.Check(t, is.Equal(e.Error(), "<nil>"))
	assert.Check(t, e.Unwrap() == nil)
}
