// Package pipeline provides the resolution pipeline for docweave.
//
// This package implements the complete build → render flow used by both
// the CLI and the HTTP API. Centralizing it ensures consistent behavior
// across all entry points: the inclusion graph is always built fresh (so
// diagnostics are always complete), while rendered output may be served
// from a cross-run cache keyed by the content of the reachable document
// set.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Root:     "memory.md",
//	    Mode:     render.ModeFlat,
//	    Boundary: "/home/user/project",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(result.Output)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/docweave/docweave/pkg/errors"
	"github.com/docweave/docweave/pkg/include"
	"github.com/docweave/docweave/pkg/render"
	"github.com/docweave/docweave/pkg/source"
)

// DefaultMode is the render mode used when none is specified. Flat mode is
// the default because its output is bounded by the total size of the
// distinct reachable documents.
const DefaultMode = render.ModeFlat

// Options contains all configuration for a resolution run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Root is the root document path, relative to the boundary.
	Root string `json:"root"`

	// Mode selects the rendering strategy: "flat" or "hierarchical".
	Mode string `json:"mode,omitempty"`

	// Boundary is the root boundary directory. Resolution is sandboxed to
	// it: directives can never read outside. Ignored when Reader is set.
	Boundary string `json:"boundary,omitempty"`

	// Refresh bypasses the render cache.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Reader source.Reader `json:"-"` // overrides the boundary-backed reader
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Root == "" {
		return errors.New(errors.ErrCodeInvalidPath, "root document is required")
	}
	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if err := errors.ValidateMode(o.Mode); err != nil {
		return err
	}
	if o.Reader == nil && o.Boundary == "" {
		return errors.New(errors.ErrCodeInvalidPath, "root boundary is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// reader returns the document source for the run.
func (o *Options) reader() source.Reader {
	if o.Reader != nil {
		return o.Reader
	}
	return source.NewDirReader(o.Boundary)
}

// Result contains the outputs of a resolution run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Output is the rendered document.
	Output string `json:"output"`

	// Diagnostics lists every recoverable problem, in traversal order.
	Diagnostics []include.Diagnostic `json:"diagnostics"`

	// Graph is the inclusion graph the output was rendered from.
	Graph *include.Graph `json:"-"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks whether the render came from cache.
	CacheInfo CacheInfo `json:"cache_info"`
}

// Stats contains run execution statistics.
type Stats struct {
	Documents  int           `json:"documents"`
	Edges      int           `json:"edges"`
	BuildTime  time.Duration `json:"build_time"`
	RenderTime time.Duration `json:"render_time"`
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool `json:"render_hit"`
}
