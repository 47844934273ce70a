// Package resolve turns raw directive paths into canonical document paths.
//
// A canonical path is the normalized, root-relative identity of a document.
// It uniquely identifies a document regardless of how it was referenced:
// relative references, boundary-absolute references, and differing ..
// forms all normalize to the same canonical path.
//
// Resolution is sandboxed by a configured root boundary. Paths that
// normalize outside the boundary fail with a typed error and are never
// opened.
package resolve

import (
	"path"
	"strings"

	"github.com/docweave/docweave/pkg/errors"
)

// Resolver canonicalizes directive paths within a root boundary.
//
// All canonical paths are slash-separated and relative to the boundary,
// with no leading separator ("memory.md", "docs/setup.md"). The zero value
// is usable.
type Resolver struct{}

// Canonical resolves a raw directive path against the directory of the
// referencing document (itself canonical, "" for the boundary root) and
// returns the canonical path of the target.
//
// Rules:
//   - A path beginning with "/" resolves relative to the root boundary,
//     not the real filesystem root.
//   - Any other path resolves against baseDir.
//   - Escaped whitespace in the raw path is unescaped before resolution.
//   - http://, https:// and file:// paths fail with UNSUPPORTED_SCHEME.
//   - A result that normalizes outside the boundary fails with
//     PATH_TRAVERSAL.
func (Resolver) Canonical(rawPath, baseDir string) (string, error) {
	if err := errors.ValidateDirectivePath(rawPath); err != nil {
		return "", err
	}
	if errors.HasScheme(rawPath) {
		return "", errors.New(errors.ErrCodeUnsupportedScheme, "unsupported scheme in %q", rawPath)
	}

	p := Unescape(rawPath)

	var joined string
	if strings.HasPrefix(p, "/") {
		joined = strings.TrimPrefix(p, "/")
	} else {
		joined = path.Join(baseDir, p)
	}

	cleaned := path.Clean(joined)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.New(errors.ErrCodePathTraversal, "path escapes root boundary: %q", rawPath)
	}
	if cleaned == "." || cleaned == "" {
		return "", errors.New(errors.ErrCodeInvalidPath, "directive path names no file: %q", rawPath)
	}
	return cleaned, nil
}

// Dir returns the canonical directory of a canonical path, suitable as the
// baseDir for resolving that document's own directives. The boundary root
// directory is "".
func Dir(canonical string) string {
	d := path.Dir(canonical)
	if d == "." {
		return ""
	}
	return d
}

// Unescape removes backslash escapes before whitespace, turning an
// as-written directive path into the filesystem name it refers to.
func Unescape(raw string) string {
	if !strings.Contains(raw, "\\") {
		return raw
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) && (raw[i+1] == ' ' || raw[i+1] == '\t') {
			continue
		}
		b.WriteByte(raw[i])
	}
	return b.String()
}
