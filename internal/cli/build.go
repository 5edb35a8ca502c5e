package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwollen/cargo/internal/config"
	"github.com/jwollen/cargo/internal/ops"
	"github.com/jwollen/cargo/pkg/unitgraph"
)

// buildOpts holds the command-line flags for the build-unit-graph command.
// All of them shape the downstream build; none are interpreted by the
// graph core itself.
type buildOpts struct {
	messageFormat        string
	jobs                 int
	targetDir            string
	futureIncompatReport bool
	timings              bool
	quiet                bool
	configPath           string
	unitGraphOut         string
}

// newBuildUnitGraphCmd creates the build-unit-graph command: load a
// previously dumped unit graph document, validate it, and hand it to the
// build executor.
func newBuildUnitGraphCmd() *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build-unit-graph <path>",
		Short: "Build from a previously dumped unit graph",
		Long: `Build from a previously dumped unit graph.

The path argument names a unit graph document produced by a prior build's
--unit-graph dump. The document is parsed, validated (units unreachable
from the roots are pruned with a warning; structurally corrupt documents
are rejected), and the surviving units are handed to the build executor.

Examples:
  cargo build-unit-graph target/unit-graph.json
  cargo build-unit-graph --target-dir out -j 4 unit-graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBuildUnitGraph(c, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.messageFormat, "message-format", "", "diagnostic output format (human, short, json)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "number of parallel jobs (0 = number of CPUs)")
	cmd.Flags().StringVar(&opts.targetDir, "target-dir", "", "directory for all generated artifacts")
	cmd.Flags().BoolVar(&opts.futureIncompatReport, "future-incompat-report", false, "output a future incompatibility report")
	cmd.Flags().BoolVar(&opts.timings, "timings", false, "output a timing report")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print planned units")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to the tool config file")
	cmd.Flags().StringVar(&opts.unitGraphOut, "unit-graph", "", "re-dump the validated unit graph to this path instead of building")

	return cmd
}

// runBuildUnitGraph performs the load → validate → execute sequence.
func runBuildUnitGraph(cmd *cobra.Command, path string, opts buildOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger.Infof("Loading unit graph from %s", path)
	prog := newProgress(logger)

	doc, err := unitgraph.Load(path)
	if err != nil {
		return err
	}
	loaded := len(doc.Units)
	if err := doc.Validate(logger); err != nil {
		return err
	}
	if pruned := loaded - len(doc.Units); pruned > 0 {
		printWarning("Ignored %d units not reachable from any root", pruned)
	}
	prog.done(fmt.Sprintf("Validated %d units with %d dependencies", len(doc.Units), doc.EdgeCount()))

	// --unit-graph dumps the canonical form and skips the build,
	// mirroring the dump that produced the input document.
	if opts.unitGraphOut != "" {
		return dumpUnitGraph(doc, cfg, opts.unitGraphOut)
	}

	executor := &ops.DryRun{Logger: logger}
	if err := executor.Compile(ctx, doc, buildOptions(cfg, opts)); err != nil {
		return err
	}

	printSuccess("Planned %d units", len(doc.Units))
	printStats(len(doc.Units), doc.EdgeCount(), len(doc.Roots))
	return nil
}

// dumpUnitGraph re-emits a validated document in canonical form. The
// unstable per-edge fields are included only when the config opts in to
// the public-dependency feature.
func dumpUnitGraph(doc *unitgraph.Document, cfg *config.Config, path string) error {
	m, err := unitgraph.Materialize(doc)
	if err != nil {
		return err
	}
	bcx := &unitgraph.BuildContext{
		NightlyFeaturesAllowed: cfg.Unstable.PublicDependency,
		ExtraCompilerArgs:      m.ExtraCompilerArgs,
	}
	if err := unitgraph.WriteFile(m.Roots, m.Graph, bcx, path); err != nil {
		return err
	}
	printSuccess("Dumped %d units", len(m.Graph))
	printFile(path)
	return nil
}

// buildOptions merges config file defaults with command-line flags;
// flags win.
func buildOptions(cfg *config.Config, opts buildOpts) *ops.BuildOptions {
	out := &ops.BuildOptions{
		MessageFormat:        cfg.Build.MessageFormat,
		Jobs:                 cfg.Build.Jobs,
		TargetDir:            cfg.Build.TargetDir,
		Rustflags:            cfg.Build.Rustflags,
		FutureIncompatReport: opts.futureIncompatReport,
		Timings:              opts.timings,
		Quiet:                opts.quiet,
	}
	if opts.messageFormat != "" {
		out.MessageFormat = opts.messageFormat
	}
	if opts.jobs != 0 {
		out.Jobs = opts.jobs
	}
	if opts.targetDir != "" {
		out.TargetDir = opts.targetDir
	}
	return out
}
