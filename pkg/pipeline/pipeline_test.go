package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/docweave/docweave/pkg/cache"
	"github.com/docweave/docweave/pkg/errors"
	"github.com/docweave/docweave/pkg/render"
	"github.com/docweave/docweave/pkg/source"
)

func testDocs() source.MapReader {
	return source.MapReader{
		"memory.md":     "# Memory\n@docs/setup.md\n@missing.md\n",
		"docs/setup.md": "setup\n",
	}
}

func TestExecuteFlat(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Root:   "memory.md",
		Reader: testDocs(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.RunID == "" {
		t.Error("RunID should be set")
	}
	if result.Stats.Documents != 2 {
		t.Errorf("Documents = %d, want 2", result.Stats.Documents)
	}
	if result.Stats.Edges != 2 {
		t.Errorf("Edges = %d, want 2", result.Stats.Edges)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Kind != errors.ErrCodeFileNotFound {
		t.Errorf("Diagnostics = %+v, want one FILE_NOT_FOUND", result.Diagnostics)
	}
	if !strings.Contains(result.Output, "--- File: memory.md ---") {
		t.Errorf("flat output missing root block:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "--- File: docs/setup.md ---") {
		t.Errorf("flat output missing included block:\n%s", result.Output)
	}
	if result.CacheInfo.RenderHit {
		t.Error("first run should not be a cache hit")
	}
}

func TestExecuteHierarchical(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{
		Root:   "memory.md",
		Mode:   render.ModeHierarchical,
		Reader: testDocs(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !strings.Contains(result.Output, "<!-- Imported from: docs/setup.md -->") {
		t.Errorf("hierarchical output missing substitution:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "<!-- Failed to import: missing.md (FILE_NOT_FOUND) -->") {
		t.Errorf("hierarchical output missing error marker:\n%s", result.Output)
	}
}

func TestExecuteValidation(t *testing.T) {
	r := NewRunner(nil, nil)
	defer r.Close()

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing root", Options{Reader: testDocs()}, errors.ErrCodeInvalidPath},
		{"missing boundary", Options{Root: "memory.md"}, errors.ErrCodeInvalidPath},
		{"bad mode", Options{Root: "memory.md", Mode: "tree", Reader: testDocs()}, errors.ErrCodeInvalidMode},
		{"unreadable root", Options{Root: "nope.md", Reader: source.MapReader{}}, errors.ErrCodeRootUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Execute(context.Background(), tt.opts)
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestExecuteRenderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	opts := Options{Root: "memory.md", Reader: testDocs()}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss the render cache")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run with unchanged content should hit the render cache")
	}
	if second.Output != first.Output {
		t.Error("cached output differs from fresh output")
	}
	// Diagnostics come from the fresh graph build, not the cache.
	if len(second.Diagnostics) != len(first.Diagnostics) {
		t.Errorf("cached run diagnostics = %d, want %d", len(second.Diagnostics), len(first.Diagnostics))
	}

	refreshed, err := r.Execute(context.Background(), Options{
		Root: "memory.md", Reader: testDocs(), Refresh: true,
	})
	if err != nil {
		t.Fatalf("refresh Execute error: %v", err)
	}
	if refreshed.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the render cache")
	}
}

func TestExecuteCacheKeyedByContent(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	if _, err := r.Execute(context.Background(), Options{
		Root: "a.md", Reader: source.MapReader{"a.md": "v1\n"},
	}); err != nil {
		t.Fatal(err)
	}

	changed, err := r.Execute(context.Background(), Options{
		Root: "a.md", Reader: source.MapReader{"a.md": "v2\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if changed.CacheInfo.RenderHit {
		t.Error("changed content must not hit the render cache")
	}
	if !strings.Contains(changed.Output, "v2") {
		t.Errorf("output not rebuilt from changed content:\n%s", changed.Output)
	}
}

func TestExecuteModeDistinctCacheKeys(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil)
	defer r.Close()

	docs := source.MapReader{"a.md": "hi\n"}
	if _, err := r.Execute(context.Background(), Options{Root: "a.md", Reader: docs}); err != nil {
		t.Fatal(err)
	}

	hier, err := r.Execute(context.Background(), Options{
		Root: "a.md", Mode: render.ModeHierarchical, Reader: docs,
	})
	if err != nil {
		t.Fatal(err)
	}
	if hier.CacheInfo.RenderHit {
		t.Error("hierarchical run must not reuse the flat cache entry")
	}
	if !strings.Contains(hier.Output, "<!-- Imported from: a.md -->") {
		t.Errorf("hierarchical output wrong:\n%s", hier.Output)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Root: "a.md", Boundary: "/tmp"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}
	if opts.Mode != render.ModeFlat {
		t.Errorf("default mode = %q, want flat", opts.Mode)
	}
	if opts.Logger == nil {
		t.Error("default logger should be set")
	}
}
