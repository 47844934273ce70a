package scan

import (
	"strings"
	"testing"
)

func TestScanDirectives(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		paths []string // expected directive raw paths, in order
	}{
		{
			name:  "single directive on own line",
			text:  "@docs/header.md\n",
			paths: []string{"docs/header.md"},
		},
		{
			name:  "directive after whitespace",
			text:  "see @notes.md for details\n",
			paths: []string{"notes.md"},
		},
		{
			name:  "mid-word at is literal",
			text:  "mail me at user@example.com\n",
			paths: nil,
		},
		{
			name:  "at end of line is literal",
			text:  "just an @\n",
			paths: nil,
		},
		{
			name:  "at before whitespace is literal",
			text:  "@ not-a-path\n",
			paths: nil,
		},
		{
			name:  "multiple directives on one line",
			text:  "see @a.md and @b.md here\n",
			paths: []string{"a.md", "b.md"},
		},
		{
			name:  "boundary-absolute path",
			text:  "@/shared/style.md\n",
			paths: []string{"/shared/style.md"},
		},
		{
			name:  "escaped whitespace in path",
			text:  "@my\\ notes.md\n",
			paths: []string{"my\\ notes.md"},
		},
		{
			name:  "fenced code block suppresses recognition",
			text:  "before\n```\n@inside.md\n```\n@after.md\n",
			paths: []string{"after.md"},
		},
		{
			name:  "fence with language tag",
			text:  "```go\n@pkg.md\n```\n",
			paths: nil,
		},
		{
			name:  "inline code suppresses recognition",
			text:  "use `@cmd.md` here but @real.md works\n",
			paths: []string{"real.md"},
		},
		{
			name:  "tab before directive",
			text:  "\t@indent.md\n",
			paths: []string{"indent.md"},
		},
		{
			name:  "no trailing newline",
			text:  "@last.md",
			paths: []string{"last.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, sp := range Directives(Scan(tt.text)) {
				got = append(got, sp.RawPath)
			}
			if len(got) != len(tt.paths) {
				t.Fatalf("directive paths = %v, want %v", got, tt.paths)
			}
			for i := range got {
				if got[i] != tt.paths[i] {
					t.Errorf("directive %d = %q, want %q", i, got[i], tt.paths[i])
				}
			}
		})
	}
}

func TestScanRoundTrip(t *testing.T) {
	// Concatenating the as-written text of all spans must reproduce the
	// input exactly, whatever the mix of directives and code regions.
	texts := []string{
		"",
		"plain text only\n",
		"a @b.md c @d.md\n",
		"```\nfenced @x.md\n```\nafter @y.md\n",
		"inline `@a.md` and @b.md\nsecond @c.md line\n",
		"@only.md",
		"trailing @\n@\\ spaced.md\n",
	}
	for _, text := range texts {
		var b strings.Builder
		for _, sp := range Scan(text) {
			b.WriteString(sp.Text)
		}
		if b.String() != text {
			t.Errorf("round trip mismatch:\n got %q\nwant %q", b.String(), text)
		}
	}
}

func TestScanEscapedFlag(t *testing.T) {
	spans := Directives(Scan("@with\\ space.md and @plain.md\n"))
	if len(spans) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(spans))
	}
	if !spans[0].Escaped {
		t.Error("escaped path should have Escaped set")
	}
	if spans[1].Escaped {
		t.Error("plain path should not have Escaped set")
	}
}

func TestScanLineNumbers(t *testing.T) {
	spans := Directives(Scan("first\nsecond @a.md\nthird\n@b.md\n"))
	if len(spans) != 2 {
		t.Fatalf("expected 2 directives, got %d", len(spans))
	}
	if spans[0].Line != 2 {
		t.Errorf("first directive line = %d, want 2", spans[0].Line)
	}
	if spans[1].Line != 4 {
		t.Errorf("second directive line = %d, want 4", spans[1].Line)
	}
}

func TestScanFenceToggles(t *testing.T) {
	// Two fenced blocks: recognition resumes between and after them.
	text := "```\n@a.md\n```\n@b.md\n```\n@c.md\n```\n@d.md\n"
	var got []string
	for _, sp := range Directives(Scan(text)) {
		got = append(got, sp.RawPath)
	}
	want := []string{"b.md", "d.md"}
	if len(got) != len(want) {
		t.Fatalf("directives = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("directive %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestScanDirectiveText(t *testing.T) {
	spans := Directives(Scan("x @a.md y\n"))
	if len(spans) != 1 {
		t.Fatalf("expected 1 directive, got %d", len(spans))
	}
	if spans[0].Text != "@a.md" {
		t.Errorf("directive Text = %q, want %q", spans[0].Text, "@a.md")
	}
}
