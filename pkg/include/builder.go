package include

import (
	"fmt"

	"github.com/docweave/docweave/pkg/errors"
	"github.com/docweave/docweave/pkg/resolve"
	"github.com/docweave/docweave/pkg/scan"
	"github.com/docweave/docweave/pkg/source"
)

// Builder constructs inclusion graphs from a document source.
// A single Builder may be reused across runs; each Build call uses its own
// state and document cache, so nothing persists between runs.
type Builder struct {
	reader   source.Reader
	resolver resolve.Resolver
}

// NewBuilder creates a builder reading documents from r.
func NewBuilder(r source.Reader) *Builder {
	return &Builder{reader: r}
}

// Build discovers every document reachable from root via directives.
//
// root is resolved like a directive path against the boundary root. The
// only fatal condition is a root document that cannot be resolved or read;
// every other problem becomes a diagnostic on the offending edge and
// traversal continues past it.
func (b *Builder) Build(root string) (*Graph, error) {
	canonical, err := b.resolver.Canonical(root, "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRootUnreadable, err, "resolve root %q", root)
	}

	text, err := b.reader.ReadDocument(canonical)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRootUnreadable, err, "read root %q", root)
	}

	t := &traversal{
		builder:  b,
		graph:    &Graph{Root: canonical, docs: make(map[string]*Document)},
		states:   make(map[string]State),
		failures: make(map[string]*errors.Error),
	}
	t.visit(canonical, text)
	return t.graph, nil
}

// traversal is the per-run state of one Build call: the node-state map,
// the explicit depth-first stack, and the cache of read failures. The
// state map is the cycle guard; the stack exists so cycle diagnostics can
// name the chain that closed them.
type traversal struct {
	builder  *Builder
	graph    *Graph
	states   map[string]State
	failures map[string]*errors.Error
	stack    []string
}

// visit scans one document and recurses into its directive edges in
// document order. The document's text has already been read and decoded.
// On entry the path is unvisited; on return it is done.
func (t *traversal) visit(path, text string) {
	t.states[path] = StateInProgress
	t.stack = append(t.stack, path)
	t.graph.Order = append(t.graph.Order, path)

	doc := &Document{
		Path:  path,
		Text:  text,
		Spans: scan.Scan(text),
	}
	t.graph.docs[path] = doc

	for _, sp := range doc.Spans {
		if !sp.IsDirective() {
			continue
		}
		doc.Edges = append(doc.Edges, t.follow(path, sp))
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.states[path] = StateDone
}

// follow resolves one directive span and returns its edge. Recursion into
// unvisited targets happens here; in-progress targets are flagged as
// cycles and never re-entered.
func (t *traversal) follow(from string, sp scan.Span) Edge {
	edge := Edge{From: from, RawPath: sp.RawPath, Line: sp.Line}

	to, err := t.builder.resolver.Canonical(sp.RawPath, resolve.Dir(from))
	if err != nil {
		edge.Err = asError(err)
		t.diagnose(edge.Err.Code, sp.RawPath, errors.UserMessage(err), from, sp.Line)
		return edge
	}
	edge.To = to

	switch t.states[to] {
	case StateInProgress:
		edge.Cycle = true
		t.diagnose(errors.ErrCodeCycleDetected, to,
			fmt.Sprintf("cycle detected: %s -> %s", from, to), from, sp.Line)

	case StateDone:
		if ferr, ok := t.failures[to]; ok {
			edge.Err = ferr
			t.diagnose(ferr.Code, to, ferr.Message, from, sp.Line)
		}

	case StateUnvisited:
		text, rerr := t.builder.reader.ReadDocument(to)
		if rerr != nil {
			// Cache the failure so a path is read at most once per run
			// no matter how many edges point at it.
			ferr := asError(rerr)
			t.states[to] = StateDone
			t.failures[to] = ferr
			edge.Err = ferr
			t.diagnose(ferr.Code, to, ferr.Message, from, sp.Line)
			break
		}
		t.visit(to, text)
	}
	return edge
}

func (t *traversal) diagnose(kind errors.Code, path, detail, src string, line int) {
	t.graph.Diags = append(t.graph.Diags, Diagnostic{
		Kind:   kind,
		Path:   path,
		Detail: detail,
		Source: src,
		Line:   line,
	})
}

// asError normalizes any error into the package's structured form.
func asError(err error) *errors.Error {
	if e, ok := err.(*errors.Error); ok {
		return e
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "unexpected error")
}
