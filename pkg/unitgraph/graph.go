package unitgraph

import (
	"github.com/jwollen/cargo/pkg/unit"
)

// Purpose classifies why a dependency edge exists. It is informational to
// the planner only: serialization preserves it unchanged and validation
// never inspects it.
type Purpose string

// Edge purposes. The set is extensible; unknown tags round-trip intact.
const (
	PurposeNormal Purpose = "normal"
	PurposeBuild  Purpose = "build"
	PurposeTest   Purpose = "test"
	PurposeBench  Purpose = "bench"
	PurposeDoc    Purpose = "doc"
)

// Dep is a directed edge from a dependent unit to one of its dependencies.
type Dep struct {
	// Unit is the dependency unit.
	Unit *unit.Unit

	// For records why this edge exists (test-only, build-script, ...).
	// Do not use it after the graph has been built.
	For Purpose

	// ExternCrateName is the name the dependent uses to refer to this
	// dependency in generated code.
	ExternCrateName string

	// DepName is the dependency's name if it was renamed in the
	// manifest; empty when not renamed. Artifact dependencies rely on it
	// for naming their environment variables, ExternCrateName cannot
	// serve that since it may be the build target itself.
	DepName string

	// Public marks the dependency as re-exposed to the dependent's own
	// dependents.
	Public bool

	// NoPrelude suppresses automatic injection of the dependency into
	// the prelude.
	NoPrelude bool
}

// Graph associates every unit, reachable or not, with its ordered list of
// outgoing edges. Edge order is insertion order and is semantically
// relevant: it can affect generated link order.
//
// A Graph is built once by the planner per build invocation and treated as
// immutable for the duration of any Emit or Validate call. The root set is
// carried separately (see [Emit]).
type Graph map[*unit.Unit][]Dep

// BuildContext carries the emission-time configuration the planner
// supplies alongside a graph. It is an immutable value: construct it once
// and pass it by reference.
type BuildContext struct {
	// NightlyFeaturesAllowed enables emission of the unstable per-edge
	// public/noprelude fields. When false they are omitted entirely,
	// never partially populated.
	NightlyFeaturesAllowed bool

	// ExtraCompilerArgs holds extra compiler arguments injected for
	// specific units. Units without an entry serialize an empty list.
	ExtraCompilerArgs map[*unit.Unit][]string
}

// extraArgsFor returns the extra compiler arguments for u, never nil.
func (b *BuildContext) extraArgsFor(u *unit.Unit) []string {
	if b == nil || b.ExtraCompilerArgs == nil {
		return []string{}
	}
	if args, ok := b.ExtraCompilerArgs[u]; ok && args != nil {
		return args
	}
	return []string{}
}
