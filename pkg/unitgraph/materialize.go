package unitgraph

import (
	"slices"

	"github.com/jwollen/cargo/pkg/errors"
	"github.com/jwollen/cargo/pkg/unit"
)

// Materialized is a document brought back to graph form: interned units,
// the edge relation, and the root set, ready to be handed to a planner or
// re-emitted with [Emit].
type Materialized struct {
	Roots []*unit.Unit
	Graph Graph

	// ExtraCompilerArgs holds the per-unit extra arguments recorded in
	// the document, keyed by interned unit. Feed it into the
	// [BuildContext] of a subsequent emission to preserve them.
	ExtraCompilerArgs map[*unit.Unit][]string
}

// Materialize converts a validated document into an in-memory graph. Units
// are interned, so structurally identical entries collapse to a single
// node. Absent per-edge public/noprelude fields materialize as false;
// whether they reappear on re-emission is decided by the emitting
// [BuildContext], not here.
//
// Emitting the result with the document's extra compiler arguments and an
// equivalent build context reproduces the document byte for byte.
func Materialize(d *Document) (*Materialized, error) {
	in := unit.NewInterner()

	ptrs := make([]*unit.Unit, len(d.Units))
	for i := range d.Units {
		su := &d.Units[i]
		ptrs[i] = in.Intern(unit.Unit{
			PkgID:                     su.PkgID,
			Target:                    su.Target,
			Profile:                   su.Profile,
			Platform:                  su.Platform,
			Mode:                      su.Mode,
			Features:                  slices.Clone(su.Features),
			Rustflags:                 slices.Clone(su.Rustflags),
			Rustdocflags:              slices.Clone(su.Rustdocflags),
			IsStd:                     su.IsStd,
			DepHash:                   su.DepHash,
			Artifact:                  su.Artifact,
			ArtifactTargetForFeatures: su.ArtifactTargetForFeatures,
			SkipFreshnessCheck:        su.SkipFreshnessCheck,
		})
	}

	g := make(Graph, len(ptrs))
	extra := make(map[*unit.Unit][]string)
	for i := range d.Units {
		su := &d.Units[i]

		deps := make([]Dep, len(su.Dependencies))
		for j, sd := range su.Dependencies {
			if sd.Index < 0 || sd.Index >= len(ptrs) {
				return nil, errors.New(errors.ErrCodeDanglingIndex,
					"unit graph has a dependency on unit #%d but contains only %d units", sd.Index, len(d.Units))
			}
			dep := Dep{
				Unit:            ptrs[sd.Index],
				For:             sd.UnitFor,
				ExternCrateName: sd.ExternCrateName,
			}
			if sd.DepName != nil {
				dep.DepName = *sd.DepName
			}
			if sd.Public != nil {
				dep.Public = *sd.Public
			}
			if sd.NoPrelude != nil {
				dep.NoPrelude = *sd.NoPrelude
			}
			deps[j] = dep
		}
		g[ptrs[i]] = deps

		if len(su.ExtraCompilerArgs) > 0 {
			extra[ptrs[i]] = slices.Clone(su.ExtraCompilerArgs)
		}
	}

	roots := make([]*unit.Unit, len(d.Roots))
	for i, r := range d.Roots {
		if r < 0 || r >= len(ptrs) {
			return nil, errors.New(errors.ErrCodeDanglingIndex,
				"unit graph has a dependency on unit #%d but contains only %d units", r, len(d.Units))
		}
		roots[i] = ptrs[r]
	}

	return &Materialized{Roots: roots, Graph: g, ExtraCompilerArgs: extra}, nil
}
