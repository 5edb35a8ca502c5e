package unitgraph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/jwollen/cargo/pkg/errors"
	"github.com/jwollen/cargo/pkg/unit"
)

// Emit writes the canonical serialized form of graph to w: the units in
// their total order, dependency and root references rewritten to dense
// 0-based indices, followed by a line terminator.
//
// Every root must be a key of graph; a violation is a caller bug and is
// reported as an internal error. Given the same graph, roots, and context,
// two emissions produce byte-identical output. The whole document is
// encoded in memory and issued as a single write burst; a failed write is
// terminal, nothing is retried or rewritten.
func Emit(roots []*unit.Unit, graph Graph, bcx *BuildContext, w io.Writer) error {
	doc, err := build(roots, graph, bcx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode unit graph")
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write unit graph")
	}
	return nil
}

// WriteFile emits the graph to path atomically: the document is written to
// a temporary file in the same directory and renamed into place, so a
// crashed dump never leaves a half-written document behind.
func WriteFile(roots []*unit.Unit, graph Graph, bcx *BuildContext, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".unit-graph-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := Emit(roots, graph, bcx, tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename %s", path)
	}
	return nil
}

// build assembles the document for a graph and root set.
func build(roots []*unit.Unit, graph Graph, bcx *BuildContext) (*Document, error) {
	type entry struct {
		unit *unit.Unit
		deps []Dep
	}

	// Fix the unordered map into the canonical sequence.
	entries := make([]entry, 0, len(graph))
	for u, deps := range graph {
		entries = append(entries, entry{unit: u, deps: deps})
	}
	slices.SortFunc(entries, func(a, b entry) int { return unit.Compare(a.unit, b.unit) })

	indices := make(map[*unit.Unit]int, len(entries))
	for i, e := range entries {
		indices[e.unit] = i
	}

	rootIndices := make([]int, len(roots))
	for i, root := range roots {
		idx, ok := indices[root]
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "root unit %s is not a node of the graph", root.PkgID)
		}
		rootIndices[i] = idx
	}

	units := make([]SerializedUnit, len(entries))
	for i, e := range entries {
		deps := make([]SerializedDep, len(e.deps))
		for j, dep := range e.deps {
			idx, ok := indices[dep.Unit]
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal, "dependency unit %s is not a node of the graph", dep.Unit.PkgID)
			}
			sd := SerializedDep{
				Index:           idx,
				ExternCrateName: dep.ExternCrateName,
				UnitFor:         dep.For,
			}
			// Unstable until rust-lang/rust#64260 stabilizes.
			if bcx != nil && bcx.NightlyFeaturesAllowed {
				public, noprelude := dep.Public, dep.NoPrelude
				sd.Public = &public
				sd.NoPrelude = &noprelude
			}
			if dep.DepName != "" {
				name := dep.DepName
				sd.DepName = &name
			}
			deps[j] = sd
		}

		u := e.unit
		units[i] = SerializedUnit{
			PkgID:                     u.PkgID,
			Target:                    u.Target,
			Profile:                   u.Profile,
			Platform:                  u.Platform,
			Mode:                      u.Mode,
			Features:                  emptyNotNull(u.Features),
			Rustflags:                 emptyNotNull(u.Rustflags),
			Rustdocflags:              emptyNotNull(u.Rustdocflags),
			IsStd:                     u.IsStd,
			DepHash:                   u.DepHash,
			Artifact:                  u.Artifact,
			ArtifactTargetForFeatures: u.ArtifactTargetForFeatures,
			ExtraCompilerArgs:         bcx.extraArgsFor(u),
			SkipFreshnessCheck:        u.SkipFreshnessCheck,
			Dependencies:              deps,
		}
	}

	return &Document{Version: Version, Units: units, Roots: rootIndices}, nil
}

// emptyNotNull keeps list-valued fields as JSON arrays even when empty.
func emptyNotNull(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
