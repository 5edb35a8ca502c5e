// Package ops is the boundary between the unit graph core and the
// compilation machinery. The core hands a validated document to an
// [Executor]; everything past that point (invoking the compiler per unit,
// fingerprinting, scheduling) lives outside this repository's scope.
package ops

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/jwollen/cargo/pkg/unitgraph"
)

// BuildOptions carries the standard build-shaping flags of the CLI.
// They are forwarded to the executor, never interpreted by the graph core.
type BuildOptions struct {
	MessageFormat        string
	Jobs                 int
	TargetDir            string
	Rustflags            []string
	FutureIncompatReport bool
	Timings              bool
	Quiet                bool
}

// Executor translates a validated unit graph document back into build
// actions.
type Executor interface {
	Compile(ctx context.Context, doc *unitgraph.Document, opts *BuildOptions) error
}

// DryRun is an Executor that logs the planned unit schedule without
// invoking any compiler. It stands in for the real compilation machinery.
type DryRun struct {
	Logger *log.Logger
}

// Compile logs one line per unit in document order.
func (d *DryRun) Compile(ctx context.Context, doc *unitgraph.Document, opts *BuildOptions) error {
	logger := d.Logger
	if logger == nil {
		logger = log.Default()
	}
	if len(opts.Rustflags) > 0 && !opts.Quiet {
		logger.Infof("extra compiler flags: %s", strings.Join(opts.Rustflags, " "))
	}
	for i := range doc.Units {
		if err := ctx.Err(); err != nil {
			return err
		}
		u := &doc.Units[i]
		if !u.Mode.Valid() {
			logger.Warnf("unit #%d (%s) has unknown mode %q", i, u.PkgID, u.Mode)
		}
		if !opts.Quiet {
			logger.Infof("plan %s (%s, %s, %d deps)", u.PkgID, u.Mode, u.Platform, len(u.Dependencies))
		}
	}
	logger.Debugf("planned %d units for target dir %s", len(doc.Units), opts.TargetDir)
	return nil
}

var _ Executor = (*DryRun)(nil)
