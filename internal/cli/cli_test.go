package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, dir, name, text string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRebaseRoot(t *testing.T) {
	boundary := filepath.FromSlash("/home/user/project")

	tests := []struct {
		name string
		root string
		want string
	}{
		{"relative passthrough", "memory.md", "memory.md"},
		{"relative nested", filepath.FromSlash("docs/setup.md"), "docs/setup.md"},
		{"absolute under boundary", filepath.Join(boundary, "docs", "setup.md"), "docs/setup.md"},
		{"absolute at boundary root", filepath.Join(boundary, "memory.md"), "memory.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := rebaseRoot(tt.root, boundary)
			if err != nil {
				t.Fatalf("rebaseRoot(%q) error: %v", tt.root, err)
			}
			if got != tt.want {
				t.Errorf("rebaseRoot(%q) = %q, want %q", tt.root, got, tt.want)
			}
		})
	}
}

func TestResolveBoundaryPrecedence(t *testing.T) {
	cfg := Config{Boundary: filepath.FromSlash("/from/config")}

	got, err := resolveBoundary(filepath.FromSlash("/from/flag"), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.FromSlash("/from/flag") {
		t.Errorf("flag should win: got %q", got)
	}

	got, err = resolveBoundary("", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.FromSlash("/from/config") {
		t.Errorf("config should win over cwd: got %q", got)
	}

	got, err = resolveBoundary("", Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got == "" || !filepath.IsAbs(got) {
		t.Errorf("cwd fallback should be absolute: got %q", got)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Mode != "flat" {
		t.Errorf("default mode = %q, want flat", cfg.Mode)
	}
	if cfg.Cache.Backend != "file" {
		t.Errorf("default cache backend = %q, want file", cfg.Cache.Backend)
	}
}

func TestFindCandidates(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, dir, "memory.md", "m")
	mustWrite(t, dir, "notes.txt", "n")
	mustWrite(t, dir, "docs/setup.md", "s")
	mustWrite(t, dir, "image.png", "binary")
	mustWrite(t, dir, ".hidden/secret.md", "h")
	mustWrite(t, dir, "node_modules/pkg/readme.md", "r")

	got, err := findCandidates(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"docs/setup.md", "memory.md", "notes.txt"}
	if len(got) != len(want) {
		t.Fatalf("candidates = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d = %q, want %q", i, got[i], want[i])
		}
	}
}
