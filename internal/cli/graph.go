package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docweave/docweave/pkg/include"
	"github.com/docweave/docweave/pkg/render"
	"github.com/docweave/docweave/pkg/source"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	boundary string // root boundary directory
	format   string // output format: "dot" or "svg"
	output   string // output file path (stdout if empty)
}

// newGraphCmd creates the graph command for visualizing inclusion graphs.
// Cycle edges are drawn dashed and failed edges dotted, so a quick look at
// the picture shows where a memory-file tree went wrong.
func newGraphCmd() *cobra.Command {
	opts := graphOpts{format: "dot"}

	cmd := &cobra.Command{
		Use:   "graph <document>",
		Short: "Export the inclusion graph as DOT or SVG",
		Long: `Build the inclusion graph reachable from a root document and export it
for visualization.

Examples:
  docweave graph memory.md                     # DOT to stdout
  docweave graph memory.md -f svg -o graph.svg # rendered SVG`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.boundary, "boundary", "b", "", "root boundary directory (default: config, then cwd)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot (default), svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func runGraph(ctx context.Context, root string, opts *graphOpts) error {
	logger := loggerFromContext(ctx)

	switch opts.format {
	case "dot", "svg":
	default:
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg)", opts.format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	boundary, err := resolveBoundary(opts.boundary, cfg)
	if err != nil {
		return err
	}
	root, err = rebaseRoot(root, boundary)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	g, err := include.NewBuilder(source.NewDirReader(boundary)).Build(root)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built graph with %d documents", g.DocumentCount()))
	printDiagnostics(g.Diags)

	dot := render.ToDOT(g)

	var data []byte
	switch opts.format {
	case "svg":
		data, err = render.RenderSVG(dot)
		if err != nil {
			return fmt.Errorf("render SVG: %w", err)
		}
	default:
		data = []byte(dot)
	}

	if opts.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0644); err != nil {
		return err
	}
	printSuccess("Wrote %s (%s)", opts.output, strings.ToUpper(opts.format))
	return nil
}
