package metaparse

import (
	"testing"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

func TestTriggered(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"meta fence", "--- meta ---\n", true},
		{"meta fence trailing space", "--- meta ---   \n", true},
		{"thematic break", "---\n", false},
		{"heading", "# H\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cursor.New([]byte(tt.src))
			if got := Triggered(c); got != tt.want {
				t.Errorf("Triggered(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestParse_ScalarKinds(t *testing.T) {
	src := "--- meta ---\n" +
		"title: \"Doc\"\n" +
		"tags: [a, b]\n" +
		"n: 42\n" +
		"pi: 3.5\n" +
		"draft: true\n" +
		"---\n"
	c := cursor.New([]byte(src))
	meta, diags := Parse(c)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}

	title, ok := meta.Get("title")
	if !ok || title.Kind != ast.AttrString || title.Str != "Doc" {
		t.Errorf("title = %+v, ok=%v", title, ok)
	}

	tags, ok := meta.Get("tags")
	if !ok || tags.Kind != ast.AttrList || len(tags.List) != 2 {
		t.Fatalf("tags = %+v, ok=%v", tags, ok)
	}
	if tags.List[0].Str != "a" || tags.List[1].Str != "b" {
		t.Errorf("tags list = %+v", tags.List)
	}

	n, ok := meta.Get("n")
	if !ok || n.Kind != ast.AttrInt || n.Int != 42 {
		t.Errorf("n = %+v, ok=%v", n, ok)
	}

	pi, ok := meta.Get("pi")
	if !ok || pi.Kind != ast.AttrFloat || pi.Flt != 3.5 {
		t.Errorf("pi = %+v, ok=%v", pi, ok)
	}

	draft, ok := meta.Get("draft")
	if !ok || draft.Kind != ast.AttrBool || draft.Bool != true {
		t.Errorf("draft = %+v, ok=%v", draft, ok)
	}
}

func TestParse_MalformedLineRecordsDiagnosticAndSkips(t *testing.T) {
	src := "--- meta ---\n" +
		"not a valid line\n" +
		"title: \"Doc\"\n" +
		"---\n"
	c := cursor.New([]byte(src))
	meta, diags := Parse(c)
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d: %+v", len(diags), diags)
	}
	if diags[0].Kind != ast.DiagMalformedMetadata {
		t.Errorf("diagnostic kind = %v, want DiagMalformedMetadata", diags[0].Kind)
	}
	if title, ok := meta.Get("title"); !ok || title.Str != "Doc" {
		t.Error("expected the valid line after the malformed one to still be parsed")
	}
}

func TestParse_InvalidIdentifierKey(t *testing.T) {
	src := "--- meta ---\n" +
		"bad key: x\n" +
		"---\n"
	c := cursor.New([]byte(src))
	_, diags := Parse(c)
	if len(diags) != 1 || diags[0].Kind != ast.DiagMalformedMetadata {
		t.Errorf("diags = %+v, want one DiagMalformedMetadata", diags)
	}
}

func TestParse_UnterminatedFence(t *testing.T) {
	src := "--- meta ---\ntitle: \"Doc\"\n"
	c := cursor.New([]byte(src))
	_, diags := Parse(c)
	if len(diags) != 1 || diags[0].Kind != ast.DiagUnexpectedEOF {
		t.Errorf("diags = %+v, want one DiagUnexpectedEOF", diags)
	}
}

func TestParse_QuotedStringWithEscapes(t *testing.T) {
	src := "--- meta ---\n" +
		"note: \"a \\\"quote\\\" and a backslash \\\\\"\n" +
		"---\n"
	c := cursor.New([]byte(src))
	meta, diags := Parse(c)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	note, ok := meta.Get("note")
	if !ok {
		t.Fatal("expected a note attribute")
	}
	want := `a "quote" and a backslash \`
	if note.Str != want {
		t.Errorf("note = %q, want %q", note.Str, want)
	}
}

func TestParse_BareStringValue(t *testing.T) {
	src := "--- meta ---\n" +
		"status: draft\n" +
		"---\n"
	c := cursor.New([]byte(src))
	meta, diags := Parse(c)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	status, ok := meta.Get("status")
	if !ok || status.Kind != ast.AttrString || status.Str != "draft" {
		t.Errorf("status = %+v, ok=%v", status, ok)
	}
}
