package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/docweave/docweave/pkg/cache"
	"github.com/docweave/docweave/pkg/include"
	"github.com/docweave/docweave/pkg/observability"
	"github.com/docweave/docweave/pkg/render"
)

// Runner executes resolution runs with render-output caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options. Each
// Execute call builds its own inclusion graph, so the engine's per-run
// document cache never leaks across runs.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete build → render pipeline.
//
// The graph is always built fresh so the diagnostics list is complete;
// only the render stage is served from cache. The single fatal condition
// is an unreadable root document.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{RunID: uuid.NewString()}

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Root)
	g, err := include.NewBuilder(opts.reader()).Build(opts.Root)
	observability.Pipeline().OnBuildComplete(ctx, opts.Root,
		graphDocs(g), graphEdges(g), time.Since(buildStart), err)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Diagnostics = g.Diags
	result.Stats.Documents = g.DocumentCount()
	result.Stats.Edges = g.EdgeCount()
	result.Stats.BuildTime = time.Since(buildStart)

	logger.Info("built inclusion graph",
		"root", g.Root,
		"documents", g.DocumentCount(),
		"edges", g.EdgeCount(),
		"diagnostics", len(g.Diags),
		"duration", result.Stats.BuildTime)

	renderStart := time.Now()
	output, hit := r.renderCached(ctx, g, opts)
	result.Output = output
	result.CacheInfo.RenderHit = hit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered output",
		"mode", opts.Mode,
		"bytes", len(output),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// renderCached renders the graph in the requested mode, serving the
// output from cache when the reachable document set is unchanged.
func (r *Runner) renderCached(ctx context.Context, g *include.Graph, opts Options) (string, bool) {
	key := cache.RenderKey(contentHash(g), opts.Mode)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "render")
			return string(data), true
		}
		observability.Cache().OnCacheMiss(ctx, "render")
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Mode)
	start := time.Now()
	var output string
	switch opts.Mode {
	case render.ModeHierarchical:
		output = render.Hierarchical(g)
	default:
		output = render.Flat(g)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Mode, len(output), time.Since(start), nil)

	if err := r.Cache.Set(ctx, key, []byte(output), cache.TTLRender); err == nil {
		observability.Cache().OnCacheSet(ctx, "render", len(output))
	}
	return output, false
}

// contentHash digests the reachable document set: every canonical path and
// its text in first-encounter order, plus the diagnostics. Any change to
// any reachable document, or to the shape of the graph, changes the key.
func contentHash(g *include.Graph) string {
	var b strings.Builder
	b.WriteString(g.Root)
	for _, doc := range g.Documents() {
		b.WriteByte(0)
		b.WriteString(doc.Path)
		b.WriteByte(0)
		b.WriteString(doc.Text)
	}
	for _, d := range g.Diags {
		b.WriteByte(0)
		b.WriteString(string(d.Kind))
		b.WriteString(d.Path)
	}
	return cache.Hash([]byte(b.String()))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func graphDocs(g *include.Graph) int {
	if g == nil {
		return 0
	}
	return g.DocumentCount()
}

func graphEdges(g *include.Graph) int {
	if g == nil {
		return 0
	}
	return g.EdgeCount()
}
