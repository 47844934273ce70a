// Package scan tokenizes document text into literal and directive spans.
//
// A directive is an @-prefixed token requesting inclusion of another
// document. The scanner is aware of Markdown code regions: fenced code
// blocks and inline code spans suppress directive recognition entirely, so
// an @ inside them is always literal text.
//
// Scanning is a pure function of the input text. The resulting span
// sequence preserves document order and concatenating the as-written text
// of all spans reproduces the input exactly.
package scan

import "strings"

// Kind distinguishes literal text from inclusion directives.
type Kind int

const (
	// KindLiteral is a run of plain document text.
	KindLiteral Kind = iota
	// KindDirective is an @-prefixed inclusion directive.
	KindDirective
)

// Span is a contiguous region of document text.
//
// For literal spans only Text and Line are meaningful. For directive spans
// Text holds the token exactly as written (including the @ and any escape
// backslashes), RawPath holds the path argument as written, and Escaped
// reports whether the path contains backslash-escaped whitespace.
type Span struct {
	Kind    Kind
	Text    string // as-written text of the span
	RawPath string // directive only: path argument, escapes intact
	Escaped bool   // directive only: path contains escaped whitespace
	Line    int    // 1-based source line where the span starts
}

// IsDirective reports whether the span is an inclusion directive.
func (s Span) IsDirective() bool { return s.Kind == KindDirective }

// Scan tokenizes text into an ordered span sequence.
//
// An @ begins a directive only when it starts a line or is preceded by
// whitespace; the path runs until the first unescaped whitespace. A
// backslash immediately before whitespace escapes it into the path. An @
// with nothing following on the line is literal text.
//
// Fence state is a single flag toggled on each triple-backtick delimiter
// line; inline code spans are detected per line by a balanced-backtick
// scan. Inside either region every @ is literal.
func Scan(text string) []Span {
	s := &scanner{}
	line := 1
	rest := text
	for len(rest) > 0 {
		var cur string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			cur, rest = rest[:i+1], rest[i+1:]
		} else {
			cur, rest = rest, ""
		}
		s.scanLine(cur, line)
		line++
	}
	s.flush()
	return s.spans
}

// Directives returns only the directive spans of a scan, in order.
func Directives(spans []Span) []Span {
	var out []Span
	for _, sp := range spans {
		if sp.IsDirective() {
			out = append(out, sp)
		}
	}
	return out
}

type scanner struct {
	spans   []Span
	inFence bool

	lit     strings.Builder
	litLine int
}

// isFenceDelimiter reports whether a line opens or closes a fenced code
// block. Leading whitespace before the backticks is tolerated, matching
// indented fences.
func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t"), "```")
}

func (s *scanner) scanLine(line string, lineNo int) {
	if isFenceDelimiter(line) {
		s.inFence = !s.inFence
		s.literal(line, lineNo)
		return
	}
	if s.inFence {
		s.literal(line, lineNo)
		return
	}

	inCode := false // inside an inline code span on this line
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '`' {
			inCode = !inCode
			s.literal(string(c), lineNo)
			i++
			continue
		}
		if c == '@' && !inCode && startsToken(line, i) {
			raw, escaped, n := scanPath(line[i+1:])
			if n > 0 {
				s.flush()
				s.spans = append(s.spans, Span{
					Kind:    KindDirective,
					Text:    line[i : i+1+n],
					RawPath: raw,
					Escaped: escaped,
					Line:    lineNo,
				})
				i += 1 + n
				continue
			}
		}
		s.literal(string(c), lineNo)
		i++
	}
}

// startsToken reports whether an @ at offset i can begin a directive:
// it must start the line or follow whitespace, never appear mid-word.
func startsToken(line string, i int) bool {
	if i == 0 {
		return true
	}
	switch line[i-1] {
	case ' ', '\t':
		return true
	}
	return false
}

// scanPath consumes a directive path starting just after the @. It returns
// the as-written path (escape backslashes intact), whether any whitespace
// was escaped, and the number of bytes consumed. A zero length means the @
// was not followed by a path and stays literal.
func scanPath(rest string) (raw string, escaped bool, n int) {
	for n < len(rest) {
		c := rest[n]
		if c == '\\' && n+1 < len(rest) && isSpace(rest[n+1]) {
			escaped = true
			n += 2
			continue
		}
		if isSpace(c) || c == '\n' || c == '\r' {
			break
		}
		n++
	}
	return rest[:n], escaped, n
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// literal appends text to the pending literal run.
func (s *scanner) literal(text string, lineNo int) {
	if s.lit.Len() == 0 {
		s.litLine = lineNo
	}
	s.lit.WriteString(text)
}

// flush emits the pending literal run as a span.
func (s *scanner) flush() {
	if s.lit.Len() == 0 {
		return
	}
	s.spans = append(s.spans, Span{Kind: KindLiteral, Text: s.lit.String(), Line: s.litLine})
	s.lit.Reset()
}
