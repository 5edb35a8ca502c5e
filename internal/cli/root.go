package cli

import (
	"context"
	stderrors "errors"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwollen/cargo/pkg/buildinfo"
	"github.com/jwollen/cargo/pkg/errors"
)

// Execute runs the cargo CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. Every invocation carries a short run id so log lines
// from overlapping invocations can be told apart.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:           "cargo",
		Short:         "cargo builds packages from a unit dependency graph",
		Long:          `cargo plans builds as a graph of units (one discrete compilation each), dumps that graph to a portable document, and re-executes previously dumped documents.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			logger.Debugf("run id %s", uuid.NewString()[:8])
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBuildUnitGraphCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newBrowseCmd())

	err := root.ExecuteContext(ctx)
	if err != nil && !stderrors.Is(err, context.Canceled) {
		printError("%s", errors.UserMessage(err))
	}
	return err
}
