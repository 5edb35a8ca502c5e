package unitgraph

import (
	"github.com/jwollen/cargo/pkg/unit"
)

// Version is the document schema version this package emits and accepts.
// Loading any other version fails with UNSUPPORTED_VERSION: the schema is
// negotiated explicitly, never interpreted best-effort.
const Version = 1

// Document is the serialized form of a unit graph: a flat array of units
// referencing each other by index, plus the indices of the root units.
// Field names are normative for cross-tool compatibility.
type Document struct {
	Version int              `json:"version"`
	Units   []SerializedUnit `json:"units"`
	Roots   []int            `json:"roots"`
}

// SerializedUnit mirrors the attributes of an in-memory [unit.Unit], with
// dependencies recorded as indices into the enclosing document's Units.
type SerializedUnit struct {
	PkgID                     unit.PackageID      `json:"pkg_id"`
	Target                    unit.Target         `json:"target"`
	Profile                   unit.Profile        `json:"profile"`
	Platform                  unit.CompileKind    `json:"platform"`
	Mode                      unit.Mode           `json:"mode"`
	Features                  []string            `json:"features"`
	Rustflags                 []string            `json:"rustflags"`
	Rustdocflags              []string            `json:"rustdocflags"`
	IsStd                     bool                `json:"is_std,omitempty"`
	DepHash                   uint64              `json:"dep_hash"`
	Artifact                  bool                `json:"artifact"`
	ArtifactTargetForFeatures *unit.CompileTarget `json:"artifact_target_for_features"`
	ExtraCompilerArgs         []string            `json:"extra_compiler_args"`
	SkipFreshnessCheck        bool                `json:"skip_freshness_check"`
	Dependencies              []SerializedDep     `json:"dependencies"`
}

// SerializedDep is one dependency edge in serialized form. Index is a
// position in the document's Units array, not an embedded unit.
//
// Public and NoPrelude are emitted only when unstable features are
// allowed; their absence on load means unknown, not false.
type SerializedDep struct {
	Index           int     `json:"index"`
	ExternCrateName string  `json:"extern_crate_name"`
	Public          *bool   `json:"public,omitempty"`
	NoPrelude       *bool   `json:"noprelude,omitempty"`
	DepName         *string `json:"dep_name"`
	UnitFor         Purpose `json:"unit_for"`
}

// EdgeCount returns the total number of dependency edges in the document.
func (d *Document) EdgeCount() int {
	n := 0
	for i := range d.Units {
		n += len(d.Units[i].Dependencies)
	}
	return n
}

// ModeCounts returns the number of units per compile mode, for reporting.
func (d *Document) ModeCounts() map[unit.Mode]int {
	counts := make(map[unit.Mode]int)
	for i := range d.Units {
		counts[d.Units[i].Mode]++
	}
	return counts
}
