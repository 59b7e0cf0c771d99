// Package agenda defines the entity kinds ("agendas") exchanged with Pohoda
// and the registry that maps kind names to their constructors.
//
// An agenda is built from a flat option map which is validated against the
// kind's declared contract exactly once, at construction. An agenda that
// breaks its contract cannot be obtained: the constructor returns an
// errdefs.KindValidation error instead.
//
// Composite kinds (Storage, Category) own an ordered list of children of
// their own kind and render them depth first inside a grouping element.
package agenda
