// Package unit defines the value types that identify a single build action.
//
// A [Unit] is one fully-specified compilation: a package, a target within
// that package, a profile, a platform, a compile mode, and the feature set
// active for the build. Unit identity is structural: two units with equal
// attribute values are the same graph node. The [Interner] enforces this by
// handing out exactly one *Unit per distinct attribute combination, so the
// unit graph can key on pointers while preserving value semantics.
//
// [Compare] provides the total, deterministic order used for canonical
// serialization. It depends only on attribute values, never on pointer
// identity or map iteration order, so two runs over the same input produce
// the same sequence.
package unit
