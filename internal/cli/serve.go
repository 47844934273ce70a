package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/docweave/docweave/internal/api"
	"github.com/docweave/docweave/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	boundary string // root boundary directory
}

// newServeCmd creates the serve command exposing the pipeline over HTTP.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the render pipeline over HTTP",
		Long: `Start an HTTP server exposing POST /api/render and GET /healthz.

The server is sandboxed to one root boundary fixed at startup; requests
select the root document and mode but can never move the boundary.

Example:
  docweave serve --boundary ~/proj --addr :8080
  curl -d '{"root":"memory.md","mode":"flat"}' localhost:8080/api/render`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVarP(&opts.boundary, "boundary", "b", "", "root boundary directory (default: config, then cwd)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	boundary, err := resolveBoundary(opts.boundary, cfg)
	if err != nil {
		return err
	}

	c, err := openCache(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, boundary, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", opts.addr, "boundary", boundary)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
