package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docweave/docweave/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	mode     string // render mode: "flat" or "hierarchical"
	boundary string // root boundary directory (defaults to config, then cwd)
	output   string // output file path (stdout if empty)
	refresh  bool   // bypass the render cache
	noCache  bool   // disable the render cache entirely
}

// newRenderCmd creates the render command.
//
// The root document is given as a path relative to the boundary; absolute
// paths under the boundary are accepted and rebased. When no document is
// given and stdin is a terminal, an interactive picker lists candidate
// context files found under the boundary.
func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Resolve a root document into one rendered context document",
		Long: `Resolve every @-directive reachable from the root document and render
the result to stdout (or --output).

Examples:
  docweave render memory.md                          # flat mode, boundary = cwd
  docweave render memory.md --mode hierarchical      # in-place substitution
  docweave render docs/setup.md --boundary ~/proj    # explicit boundary
  docweave render                                    # pick a document interactively`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := ""
			if len(args) > 0 {
				root = args[0]
			}
			return runRender(cmd.Context(), root, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "render mode: flat (default), hierarchical")
	cmd.Flags().StringVarP(&opts.boundary, "boundary", "b", "", "root boundary directory (default: config, then cwd)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the render cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func runRender(ctx context.Context, root string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	boundary, err := resolveBoundary(opts.boundary, cfg)
	if err != nil {
		return err
	}
	mode := opts.mode
	if mode == "" {
		mode = cfg.Mode
	}

	if root == "" {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return fmt.Errorf("no root document given")
		}
		root, err = pickRootDocument(boundary)
		if err != nil {
			return err
		}
	}
	root, err = rebaseRoot(root, boundary)
	if err != nil {
		return err
	}

	cacheCfg := cfg.Cache
	if opts.noCache {
		cacheCfg.Backend = "none"
	}
	c, err := openCache(ctx, cacheCfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Resolving %s", root))
	spin.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Root:     root,
		Mode:     mode,
		Boundary: boundary,
		Refresh:  opts.refresh,
		Logger:   logger,
	})
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d documents", result.Stats.Documents))

	if err := writeOutput(opts.output, result.Output); err != nil {
		return err
	}

	printDiagnostics(result.Diagnostics)
	printSuccess("Rendered %d documents, %d directives (%s mode)",
		result.Stats.Documents, result.Stats.Edges, mode)
	if result.CacheInfo.RenderHit {
		printDetail("Output served from cache (run %s)", result.RunID)
	}
	return nil
}

// resolveBoundary picks the root boundary: flag, then config, then cwd.
func resolveBoundary(flag string, cfg Config) (string, error) {
	b := flag
	if b == "" {
		b = cfg.Boundary
	}
	if b == "" {
		return os.Getwd()
	}
	return filepath.Abs(b)
}

// rebaseRoot turns an absolute root document path into a boundary-relative
// one. Relative paths are passed through untouched.
func rebaseRoot(root, boundary string) (string, error) {
	if !filepath.IsAbs(root) {
		return filepath.ToSlash(root), nil
	}
	rel, err := filepath.Rel(boundary, root)
	if err != nil {
		return "", fmt.Errorf("root document %s is not under boundary %s", root, boundary)
	}
	return filepath.ToSlash(rel), nil
}

// writeOutput writes the rendered document to path, or stdout when empty.
func writeOutput(path, output string) error {
	if path == "" {
		_, err := fmt.Print(output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0644); err != nil {
		return err
	}
	printInfo("Wrote %s", path)
	return nil
}
