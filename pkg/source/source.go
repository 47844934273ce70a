// Package source provides the document read capability for the resolution
// engine.
//
// The engine is parameterized over a [Reader] and binds to no concrete I/O
// implementation. [DirReader] serves documents from a filesystem directory
// (the root boundary); [MapReader] serves them from memory and is the
// standard test double.
package source

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/docweave/docweave/pkg/errors"
)

// Reader retrieves a document's text by canonical path.
type Reader interface {
	// ReadDocument returns the text of the document at the given canonical
	// (root-relative) path. Missing files yield FILE_NOT_FOUND; files whose
	// bytes fail text decoding yield BINARY_FILE.
	ReadDocument(canonical string) (string, error)
}

// DirReader reads documents from a directory on the local filesystem.
// The directory is the root boundary: canonical paths are joined onto it
// and, because canonicalization already rejects escaping paths, a DirReader
// never opens anything outside it.
type DirReader struct {
	root string
}

// NewDirReader creates a reader rooted at dir.
func NewDirReader(dir string) *DirReader {
	return &DirReader{root: dir}
}

// Root returns the boundary directory.
func (r *DirReader) Root() string { return r.root }

// ReadDocument implements Reader.
func (r *DirReader) ReadDocument(canonical string) (string, error) {
	full := filepath.Join(r.root, filepath.FromSlash(canonical))
	data, err := os.ReadFile(full)
	if os.IsNotExist(err) {
		return "", errors.New(errors.ErrCodeFileNotFound, "file not found: %s", canonical)
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", canonical)
	}
	return Decode(canonical, data)
}

// Decode validates that data is text and returns it as a string.
// Extension is never used to gate eligibility; any text-decodable file may
// be included. Bytes that are not valid UTF-8, or that contain NUL, fail
// with BINARY_FILE.
func Decode(canonical string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New(errors.ErrCodeBinaryFile, "not a text file: %s", canonical)
	}
	for _, b := range data {
		if b == 0 {
			return "", errors.New(errors.ErrCodeBinaryFile, "not a text file: %s", canonical)
		}
	}
	return string(data), nil
}

// MapReader serves documents from an in-memory map keyed by canonical path.
type MapReader map[string]string

// ReadDocument implements Reader.
func (m MapReader) ReadDocument(canonical string) (string, error) {
	text, ok := m[canonical]
	if !ok {
		return "", errors.New(errors.ErrCodeFileNotFound, "file not found: %s", canonical)
	}
	return text, nil
}

// Ensure implementations satisfy Reader.
var (
	_ Reader = (*DirReader)(nil)
	_ Reader = (MapReader)(nil)
)
