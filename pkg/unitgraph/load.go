package unitgraph

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/jwollen/cargo/pkg/errors"
)

// Load reads and parses a previously emitted document from path. Parse and
// I/O failures are fatal; no partial document is usable. The result has
// not been validated, call [Document.Validate] before consuming it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "unit graph %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read %s", path)
	}
	doc, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", path)
	}
	return doc, nil
}

// Read parses a document from r. Malformed structure or type mismatches
// are reported as a syntax-level error.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode unit graph")
	}
	return &doc, nil
}

// Validate checks the document's structural integrity and compacts it to
// the units reachable from its roots.
//
// The version must match [Version] exactly; unknown versions are rejected
// rather than interpreted best-effort. A dependency or root index outside
// the units array is a fatal error: such a document is corrupt, not merely
// oversized. Units that are valid but unreachable from every root are
// reported as warnings through logger and removed, with the survivors
// renumbered densely in their original relative order and all surviving
// indices rewritten.
//
// Validating an already-dense, fully-reachable document is a no-op. A
// cyclic dependency relationship passes unchanged: cycle detection is
// deliberately out of scope, consumers handle cycles themselves.
//
// A nil logger falls back to [log.Default].
func (d *Document) Validate(logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	if d.Version != Version {
		return errors.New(errors.ErrCodeUnsupportedVersion,
			"unit graph document version %d is not supported (expected %d)", d.Version, Version)
	}

	// Reachability closure over the index-based edge relation.
	visited := make(map[int]bool, len(d.Units))
	work := slices.Clone(d.Roots)
	for len(work) > 0 {
		index := work[len(work)-1]
		work = work[:len(work)-1]

		if index < 0 || index >= len(d.Units) {
			return errors.New(errors.ErrCodeDanglingIndex,
				"unit graph has a dependency on unit #%d but contains only %d units", index, len(d.Units))
		}
		if visited[index] {
			continue
		}
		visited[index] = true
		for _, dep := range d.Units[index].Dependencies {
			work = append(work, dep.Index)
		}
	}

	if len(visited) == len(d.Units) {
		return nil
	}

	// Renumber the reachable units, keeping their original relative order.
	reachable := make([]int, 0, len(visited))
	for index := range visited {
		reachable = append(reachable, index)
	}
	slices.Sort(reachable)

	indexMap := make(map[int]int, len(reachable))
	for newIndex, oldIndex := range reachable {
		indexMap[oldIndex] = newIndex
	}

	units := make([]SerializedUnit, 0, len(reachable))
	for index, u := range d.Units {
		if _, ok := indexMap[index]; !ok {
			logger.Warnf("unit #%d (%s) is not a dependency of a root unit and will be ignored", index, u.PkgID)
			continue
		}
		// Reachability is closed under the edge relation, so every
		// dependency of a surviving unit is present in the mapping.
		for i := range u.Dependencies {
			u.Dependencies[i].Index = indexMap[u.Dependencies[i].Index]
		}
		units = append(units, u)
	}
	d.Units = units

	for i, root := range d.Roots {
		d.Roots[i] = indexMap[root]
	}
	return nil
}
