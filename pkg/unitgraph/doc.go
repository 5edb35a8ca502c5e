// Package unitgraph records the dependency graph of build units and its
// portable serialized form.
//
// The build planner constructs a [Graph]: a map from every unit to its
// ordered outgoing [Dep] edges, plus a root set of units that were
// requested directly. [Emit] converts the graph into a versioned,
// index-based [Document] with a canonical unit ordering, so two emissions
// of the same graph are byte-identical. [Load] and [Document.Validate]
// reload a previously emitted document, reject structurally corrupt input,
// prune units unreachable from the roots, and re-densify indices.
//
// The package performs no compilation and no cycle detection; it is the
// single source of truth that the planner, the compiler invoker, and
// inspection tooling agree on.
package unitgraph
