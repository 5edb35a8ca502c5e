package unitgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jwollen/cargo/pkg/errors"
	"github.com/jwollen/cargo/pkg/unit"
)

// DotOptions configures DOT export of a serialized unit graph.
type DotOptions struct {
	// Detailed includes profile, features, and edge names in labels.
	// When false, nodes show only package and mode.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format for inspection. Units
// are labeled with their package, mode, and platform; root units are drawn
// with a doubled outline and build-script edges with dashed lines.
//
// The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(d *Document, opts DotOptions) string {
	roots := make(map[int]bool, len(d.Roots))
	for _, r := range d.Roots {
		roots[r] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph units {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for i := range d.Units {
		u := &d.Units[i]
		attrs := []string{fmt.Sprintf("label=%q", dotLabel(u, opts.Detailed))}
		if roots[i] {
			attrs = append(attrs, "peripheries=2")
		}
		if u.Mode == unit.ModeRunCustomBuild {
			attrs = append(attrs, "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  u%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := range d.Units {
		for _, dep := range d.Units[i].Dependencies {
			var attrs []string
			if dep.UnitFor == PurposeBuild {
				attrs = append(attrs, "style=dashed")
			}
			if opts.Detailed {
				attrs = append(attrs, fmt.Sprintf("label=%q", dep.ExternCrateName))
			}
			if len(attrs) == 0 {
				fmt.Fprintf(&buf, "  u%d -> u%d;\n", i, dep.Index)
			} else {
				fmt.Fprintf(&buf, "  u%d -> u%d [%s];\n", i, dep.Index, strings.Join(attrs, ", "))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(u *SerializedUnit, detailed bool) string {
	parts := []string{
		fmt.Sprintf("%s v%s", u.PkgID.Name, u.PkgID.Version),
		fmt.Sprintf("%s · %s", u.Mode, u.Platform),
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("profile: %s", u.Profile.Name))
		if len(u.Features) > 0 {
			parts = append(parts, "features: "+strings.Join(u.Features, ","))
		}
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return buf.Bytes(), nil
}
