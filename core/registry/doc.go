// Package registry provides an immutable, hierarchical, typed lookup used as
// the contextual data plane the execution engine exposes to user code.
//
// A Registry holds an ordered set of arbitrary values. Lookups are performed
// by type: Get[T] walks the registry's entries in insertion order and
// returns the first value whose concrete type satisfies T, where T may be a
// concrete type or an interface the value implements. This gives "behavioral
// supertype" matching for free from Go's own type assertions.
//
// Two registries can be combined with Join: the resulting registry answers
// lookups from the child first, falling back to the parent. GetAll
// concatenates child results before parent results. Joining with an empty
// registry is a no-op that returns the other side unchanged.
//
//	base := registry.New(logger, clock)
//	perRequest := registry.New(requestID)
//	effective := base.Join(perRequest)
//
//	id, ok := registry.Get[string](effective)
//	all := registry.GetAll[fmt.Stringer](effective)
package registry
