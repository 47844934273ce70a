package render

import (
	"fmt"
	"strings"

	"github.com/docweave/docweave/pkg/include"
)

// Hierarchical renders the graph in in-place substitution mode.
//
// Every directive occurrence is replaced, in place within its source
// document's text, with the target document's fully recursively rendered
// content wrapped in import markers carrying the raw as-written path. No
// deduplication: a document referenced N times is substituted N times.
//
// Where the builder flagged a cycle, the substitution is a literal
// diagnostic marker instead of recursive expansion, which guarantees
// termination on arbitrarily connected cyclic graphs. Failed edges
// substitute an inline error marker; the surrounding document still
// renders in full.
//
// The root document's own content is wrapped in import markers too, so a
// render always yields exactly one outer marker-wrapped block.
func Hierarchical(g *include.Graph) string {
	var b strings.Builder
	root, ok := g.Document(g.Root)
	if !ok {
		return ""
	}
	writeImport(&b, g, root, g.Root)
	return b.String()
}

// writeImport emits one marker-wrapped substitution of doc under the given
// as-written path.
func writeImport(b *strings.Builder, g *include.Graph, doc *include.Document, rawPath string) {
	fmt.Fprintf(b, "<!-- Imported from: %s -->\n", rawPath)
	writeDocument(b, g, doc)
	fmt.Fprintf(b, "\n<!-- End of import from: %s -->", rawPath)
}

// writeDocument emits doc's spans in order, substituting each directive
// with its edge's outcome. Directive spans and edges are parallel
// sequences by construction.
func writeDocument(b *strings.Builder, g *include.Graph, doc *include.Document) {
	edge := 0
	for _, sp := range doc.Spans {
		if !sp.IsDirective() {
			b.WriteString(sp.Text)
			continue
		}
		e := doc.Edges[edge]
		edge++

		switch {
		case e.Cycle:
			fmt.Fprintf(b, "<!-- Cycle detected: %s -->", e.RawPath)
		case e.Err != nil:
			fmt.Fprintf(b, "<!-- Failed to import: %s (%s) -->", e.RawPath, e.Err.Code)
		default:
			target, ok := g.Document(e.To)
			if !ok {
				fmt.Fprintf(b, "<!-- Failed to import: %s (%s) -->", e.RawPath, "FILE_NOT_FOUND")
				continue
			}
			writeImport(b, g, target, e.RawPath)
		}
	}
}
