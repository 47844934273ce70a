// Package include builds the inclusion graph for a resolution run.
//
// Starting from a root document, the builder follows every @-directive,
// reading and scanning each distinct canonical path exactly once, and
// records a directed graph of documents and directive edges. Cycles are
// detected during traversal and flagged on the specific edge that closes
// them; the run itself always terminates and never aborts on a recoverable
// problem.
package include

import (
	"github.com/docweave/docweave/pkg/errors"
	"github.com/docweave/docweave/pkg/scan"
)

// State is the visitation state of a graph node during traversal.
//
// A node is StateInProgress only while it is on the depth-first traversal
// stack. An edge into an in-progress node signals a cycle on that edge
// alone; the node still reaches StateDone when its owning branch completes.
type State int

const (
	StateUnvisited State = iota
	StateInProgress
	StateDone
)

// Document is one parsed document in the inclusion graph. Identity is the
// canonical path; Spans preserve the document's text in written order, and
// Edges holds one entry per directive span, in the same order.
type Document struct {
	Path  string      // canonical, root-relative
	Text  string      // raw text as read
	Spans []scan.Span // ordered literal and directive spans
	Edges []Edge      // one per directive span, in directive order
}

// Edge is a directive occurrence in a source document. Exactly one of the
// outcomes holds: a resolved target (To set, Err nil, Cycle false), a
// resolution or read failure (Err set), or a cycle (To set, Cycle true).
type Edge struct {
	From    string // canonical path of the containing document
	RawPath string // path argument as written, escapes intact
	Line    int    // 1-based source line of the directive

	To    string        // canonical target, empty if resolution failed
	Err   *errors.Error // resolution or read failure, nil on success
	Cycle bool          // edge re-entered a node on the traversal stack
}

// Diagnostic is one recoverable problem found during a run.
type Diagnostic struct {
	Kind   errors.Code `json:"kind"`
	Path   string      `json:"path"`   // affected path (canonical when known, else raw)
	Detail string      `json:"detail"` // human-readable description
	Source string      `json:"source"` // canonical path of the referencing document
	Line   int         `json:"line"`   // source line of the offending directive
}

// Graph is the inclusion graph of one resolution run. Documents are keyed
// by canonical path; Order records the first-encounter (depth-first
// preorder) sequence of distinct paths, root first, which is the emission
// order of flat rendering.
type Graph struct {
	Root  string // canonical path of the root document
	Order []string
	Diags []Diagnostic

	docs map[string]*Document
}

// Document returns the parsed document for a canonical path.
func (g *Graph) Document(path string) (*Document, bool) {
	d, ok := g.docs[path]
	return d, ok
}

// Documents returns all parsed documents in first-encounter order.
func (g *Graph) Documents() []*Document {
	out := make([]*Document, 0, len(g.Order))
	for _, p := range g.Order {
		if d, ok := g.docs[p]; ok {
			out = append(out, d)
		}
	}
	return out
}

// Edges returns every directive edge in the graph, grouped by source
// document in first-encounter order and by directive order within each.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, d := range g.Documents() {
		out = append(out, d.Edges...)
	}
	return out
}

// DocumentCount returns the number of distinct documents scanned.
func (g *Graph) DocumentCount() int { return len(g.docs) }

// EdgeCount returns the number of directive edges in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, d := range g.docs {
		n += len(d.Edges)
	}
	return n
}
