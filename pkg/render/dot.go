package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/docweave/docweave/pkg/include"
)

// ToDOT converts an inclusion graph to Graphviz DOT format.
// Documents become boxes; directive edges become arrows. Cycle edges are
// dashed red, failed edges are dotted grey and labelled with their error
// code. The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(g *include.Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph includes {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, doc := range g.Documents() {
		attrs := ""
		if doc.Path == g.Root {
			attrs = ", style=\"rounded,filled,bold\""
		}
		fmt.Fprintf(&buf, "  %q [label=%q%s];\n", doc.Path, doc.Path, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		switch {
		case e.Cycle:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=red];\n", e.From, e.To)
		case e.Err != nil:
			to := e.To
			if to == "" {
				to = e.RawPath
			}
			fmt.Fprintf(&buf, "  %q [style=\"rounded,dotted\", fontcolor=grey];\n", to)
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, color=grey, label=%q, fontsize=10];\n",
				e.From, to, string(e.Err.Code))
		default:
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
