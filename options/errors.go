package options

import (
	"fmt"
	"strings"
)

// UnknownOptionError is returned when the input holds keys outside the
// defined set.
type UnknownOptionError struct {
	Kind    string
	Options []string
	Defined []string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("options: %s: unknown option(s) %s; defined options are %s",
		describeKind(e.Kind), quoteAll(e.Options), quoteAll(e.Defined))
}

// MissingRequiredOptionError is returned when required keys are absent.
type MissingRequiredOptionError struct {
	Kind    string
	Options []string
}

func (e *MissingRequiredOptionError) Error() string {
	return fmt.Sprintf("options: %s: required option(s) %s missing", describeKind(e.Kind), quoteAll(e.Options))
}

// InvalidOptionError is returned when a value breaks its declared constraint.
type InvalidOptionError struct {
	Kind   string
	Option string
	Tag    string
	Value  any
	Err    error
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("options: %s: option %q with value %v fails %q", describeKind(e.Kind), e.Option, e.Value, e.Tag)
}

func (e *InvalidOptionError) Unwrap() error {
	return e.Err
}

func describeKind(kind string) string {
	if kind == "" {
		return "kind=<unnamed>"
	}
	return fmt.Sprintf("kind=%q", kind)
}

func quoteAll(names []string) string {
	if len(names) == 0 {
		return "<none>"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
