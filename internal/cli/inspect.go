package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwollen/cargo/pkg/cache"
	"github.com/jwollen/cargo/pkg/errors"
	"github.com/jwollen/cargo/pkg/unit"
	"github.com/jwollen/cargo/pkg/unitgraph"
)

// Inspection output formats.
const (
	formatSummary = "summary"
	formatDot     = "dot"
	formatSVG     = "svg"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	format   string
	output   string
	detailed bool
	noCache  bool
}

// newInspectCmd creates the inspect command for examining a dumped unit
// graph document without executing it.
func newInspectCmd() *cobra.Command {
	opts := inspectOpts{format: formatSummary}

	cmd := &cobra.Command{
		Use:   "inspect <path>",
		Short: "Inspect a dumped unit graph",
		Long: `Inspect a dumped unit graph.

The document is validated (with the same pruning a build would perform)
and then summarized, or exported as Graphviz DOT or a rendered SVG.
Rendered SVGs are cached locally keyed by document content.

Examples:
  cargo inspect target/unit-graph.json
  cargo inspect --format dot unit-graph.json
  cargo inspect --format svg -o graph.svg unit-graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runInspect(c, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: summary, dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include profiles, features, and edge names")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	doc, err := unitgraph.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(logger); err != nil {
		return err
	}

	switch opts.format {
	case formatSummary:
		printSummary(doc)
		return nil
	case formatDot:
		dot := unitgraph.ToDOT(doc, unitgraph.DotOptions{Detailed: opts.detailed})
		return writeOutput([]byte(dot), opts.output)
	case formatSVG:
		svg, err := renderSVG(cmd, doc, opts)
		if err != nil {
			return err
		}
		if opts.output == "" {
			opts.output = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".svg"
		}
		if err := writeOutput(svg, opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (available: summary, dot, svg)", opts.format)
	}
}

// renderSVG renders the document via Graphviz, consulting the artifact
// cache first. The cache key is the hash of the document content, so a
// stale hit is impossible.
func renderSVG(cmd *cobra.Command, doc *unitgraph.Document, opts inspectOpts) ([]byte, error) {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store, err := renderCache(opts.noCache)
	if err != nil {
		logger.Warnf("render cache disabled: %v", err)
		store = cache.NewNullCache()
	}
	defer store.Close()

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash document")
	}
	key := cache.ArtifactKey(cache.Hash(raw), fmt.Sprintf("svg-detailed=%t", opts.detailed))

	if svg, ok, err := store.Get(ctx, key); err == nil && ok {
		printInfo("Using cached render")
		return svg, nil
	}

	prog := newProgress(logger)
	dot := unitgraph.ToDOT(doc, unitgraph.DotOptions{Detailed: opts.detailed})
	svg, err := unitgraph.RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Rendered %d units", len(doc.Units)))

	if err := store.Set(ctx, key, svg, 0); err != nil {
		logger.Debugf("render cache write failed: %v", err)
	}
	return svg, nil
}

// renderCache opens the file-backed artifact cache under the user cache
// directory.
func renderCache(disabled bool) (cache.Cache, error) {
	if disabled {
		return cache.NewNullCache(), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(filepath.Join(base, "cargo", "render"))
}

// printSummary prints the styled overview of a validated document.
func printSummary(doc *unitgraph.Document) {
	fmt.Println(styleTitle.Render("Unit Graph"))
	printKeyValue("version", fmt.Sprintf("%d", doc.Version))
	printKeyValue("units", fmt.Sprintf("%d", len(doc.Units)))
	printKeyValue("edges", fmt.Sprintf("%d", doc.EdgeCount()))
	printKeyValue("roots", fmt.Sprintf("%d", len(doc.Roots)))

	counts := doc.ModeCounts()
	modes := make([]unit.Mode, 0, len(counts))
	for mode := range counts {
		modes = append(modes, mode)
	}
	slices.Sort(modes)
	for _, mode := range modes {
		printKeyValue(string(mode), fmt.Sprintf("%d", counts[mode]))
	}

	for _, root := range doc.Roots {
		printFile(doc.Units[root].PkgID.String())
	}
}

func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
