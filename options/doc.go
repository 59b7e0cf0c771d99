// Package options validates the flat option maps agendas are built from.
//
// Each agenda kind declares a contract on a Resolver: the options it accepts
// (defined), the ones that must be present (required), declared defaults and
// optional per-option constraints expressed as go-playground/validator tags.
// Constraints apply to the text form of a value (see Text), the form it is
// rendered in.
// Resolve checks an input map against that contract and fails fast; it never
// drops unknown keys silently.
package options
