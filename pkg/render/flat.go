package render

import (
	"fmt"
	"strings"

	"github.com/docweave/docweave/pkg/include"
)

// Flat renders the graph in boundary-marker mode: one block per distinct
// canonical path, in first-encounter order, root first.
//
// Each block is the document's own literal text - directives stay exactly
// as written, flat mode never substitutes content inline - framed by begin
// and end markers carrying the canonical path. A path already emitted is
// never emitted again, regardless of how many directives reference it.
func Flat(g *include.Graph) string {
	var b strings.Builder
	for i, doc := range g.Documents() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "--- File: %s ---\n", doc.Path)
		b.WriteString(doc.Text)
		b.WriteByte('\n')
		fmt.Fprintf(&b, "--- End of File: %s ---\n", doc.Path)
	}
	return b.String()
}
