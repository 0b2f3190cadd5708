package blockparse

import (
	"testing"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

func parseAll(t *testing.T, src string, profile ast.Profile, modules ast.ModuleSet) ([]ast.Block, []ast.Diagnostic) {
	t.Helper()
	c := cursor.New([]byte(src))
	return Parse(c, profile, modules, nil)
}

func TestParse_Heading(t *testing.T) {
	blocks, diags := parseAll(t, "# Hello\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	h, ok := blocks[0].(*ast.Heading)
	if !ok {
		t.Fatalf("expected *ast.Heading, got %T", blocks[0])
	}
	if h.Level != 1 {
		t.Errorf("Level = %d, want 1", h.Level)
	}
	if len(h.Content) != 1 {
		t.Fatalf("expected 1 inline, got %d", len(h.Content))
	}
	text, ok := h.Content[0].(*ast.Text)
	if !ok || text.Content != "Hello" {
		t.Errorf("content = %+v", h.Content[0])
	}
}

func TestParse_HeadingLevels(t *testing.T) {
	for level := 1; level <= 6; level++ {
		src := string(make([]byte, level))
		raw := []byte(src)
		for i := range raw {
			raw[i] = '#'
		}
		line := string(raw) + " T\n"
		blocks, _ := parseAll(t, line, ast.Litedoc, 0)
		h := blocks[0].(*ast.Heading)
		if h.Level != level {
			t.Errorf("for %q, Level = %d, want %d", line, h.Level, level)
		}
	}
}

func TestParse_ParagraphStopsAtBlockStart(t *testing.T) {
	blocks, _ := parseAll(t, "first line\nsecond line\n# Heading\n", ast.Litedoc, 0)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d: %+v", len(blocks), blocks)
	}
	p, ok := blocks[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected *ast.Paragraph, got %T", blocks[0])
	}
	if len(p.Content) == 0 {
		t.Fatal("expected paragraph content")
	}
	if _, ok := blocks[1].(*ast.Heading); !ok {
		t.Errorf("expected second block to be a Heading, got %T", blocks[1])
	}
}

func TestParse_ThematicBreak(t *testing.T) {
	blocks, diags := parseAll(t, "para\n\n---\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if _, ok := blocks[1].(*ast.ThematicBreak); !ok {
		t.Errorf("expected ThematicBreak, got %T", blocks[1])
	}
}

func TestParse_CodeBlockWithLanguage(t *testing.T) {
	blocks, diags := parseAll(t, "```go\nfmt.Println(1)\n```\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	cb, ok := blocks[0].(*ast.CodeBlock)
	if !ok {
		t.Fatalf("expected *ast.CodeBlock, got %T", blocks[0])
	}
	if cb.Lang != "go" {
		t.Errorf("Lang = %q, want go", cb.Lang)
	}
	if cb.Content != "fmt.Println(1)\n" {
		t.Errorf("Content = %q", cb.Content)
	}
}

func TestParse_CodeBlockMissingLanguageUnderLitedocProfile(t *testing.T) {
	_, diags := parseAll(t, "```\nbare\n```\n", ast.Litedoc, 0)
	if len(diags) != 1 || diags[0].Kind != ast.DiagMissingLanguage {
		t.Errorf("diags = %+v, want one DiagMissingLanguage", diags)
	}
}

func TestParse_CodeBlockMissingLanguageToleratedUnderMdProfile(t *testing.T) {
	_, diags := parseAll(t, "```\nbare\n```\n", ast.Md, 0)
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics under md profile: %+v", diags)
	}
}

func TestParse_CodeBlockUnterminatedStillYieldsCodeBlock(t *testing.T) {
	blocks, diags := parseAll(t, "```go\nfmt.Println(1)\n", ast.Litedoc, 0)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	cb, ok := blocks[0].(*ast.CodeBlock)
	if !ok {
		t.Fatalf("expected *ast.CodeBlock even when unterminated, got %T", blocks[0])
	}
	if cb.Content != "fmt.Println(1)\n" {
		t.Errorf("Content = %q", cb.Content)
	}
	if len(diags) != 1 || diags[0].Kind != ast.DiagUnterminatedCodeFence {
		t.Errorf("diags = %+v, want one DiagUnterminatedCodeFence", diags)
	}
}

func TestParse_QuoteFence(t *testing.T) {
	blocks, diags := parseAll(t, "::quote\ninner text\n::\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	q, ok := blocks[0].(*ast.Quote)
	if !ok {
		t.Fatalf("expected *ast.Quote, got %T", blocks[0])
	}
	if len(q.Blocks) != 1 {
		t.Fatalf("expected 1 nested block, got %d", len(q.Blocks))
	}
	if _, ok := q.Blocks[0].(*ast.Paragraph); !ok {
		t.Errorf("expected nested Paragraph, got %T", q.Blocks[0])
	}
}

func TestParse_CalloutFenceWithAttrs(t *testing.T) {
	blocks, _ := parseAll(t, "::callout type=warning title=\"Careful\"\nwatch out\n::\n", ast.Litedoc, 0)
	co, ok := blocks[0].(*ast.Callout)
	if !ok {
		t.Fatalf("expected *ast.Callout, got %T", blocks[0])
	}
	if co.Kind != "warning" {
		t.Errorf("Kind = %q, want warning", co.Kind)
	}
	if co.Title != "Careful" {
		t.Errorf("Title = %q, want Careful", co.Title)
	}
}

func TestParse_ListWithOrderedStart(t *testing.T) {
	blocks, diags := parseAll(t, "::list ordered start=3\n- first\n- second\n::\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	l, ok := blocks[0].(*ast.List)
	if !ok {
		t.Fatalf("expected *ast.List, got %T", blocks[0])
	}
	if l.Kind != ast.Ordered {
		t.Errorf("Kind = %v, want Ordered", l.Kind)
	}
	if l.Start == nil || *l.Start != 3 {
		t.Errorf("Start = %v, want 3", l.Start)
	}
	if len(l.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(l.Items))
	}
}

func TestParse_ListItemContinuationRecursesAndShiftsSpans(t *testing.T) {
	src := "::list\n- one\n| continued\n::\n"
	blocks, diags := parseAll(t, src, ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	l := blocks[0].(*ast.List)
	item := l.Items[0]
	if len(item.Blocks) != 1 {
		t.Fatalf("expected 1 nested block, got %d", len(item.Blocks))
	}
	p, ok := item.Blocks[0].(*ast.Paragraph)
	if !ok {
		t.Fatalf("expected nested Paragraph, got %T", item.Blocks[0])
	}
	span := p.Span()
	if span.Start < item.Span().Start || span.End > item.Span().End {
		t.Errorf("nested span %+v escaped item span %+v", span, item.Span())
	}
	reconstructed := string([]byte(src)[span.Start:span.End])
	if reconstructed != "one\n| continued" && reconstructed != "one\n| continued\n" {
		t.Errorf("shifted span does not point back at real source, got %q", reconstructed)
	}
}

func TestParse_TableWithHeaderRow(t *testing.T) {
	src := "::table\na | b\n- | -\n1 | 2\n::\n"
	blocks, diags := parseAll(t, src, ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	tbl, ok := blocks[0].(*ast.Table)
	if !ok {
		t.Fatalf("expected *ast.Table, got %T", blocks[0])
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 rows (delimiter row discarded), got %d", len(tbl.Rows))
	}
	if !tbl.Rows[0].Header {
		t.Error("expected first row to be marked Header")
	}
	if tbl.Rows[1].Header {
		t.Error("expected second row to not be marked Header")
	}
}

func TestParse_TableMismatchedColumnsRecordsDiagnostic(t *testing.T) {
	src := "::table\na | b\n1\n::\n"
	blocks, diags := parseAll(t, src, ast.Litedoc, 0)
	found := false
	for _, d := range diags {
		if d.Kind == ast.DiagBadTable {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a DiagBadTable diagnostic, got %+v", diags)
	}
	if _, ok := blocks[0].(*ast.RawBlock); !ok {
		t.Errorf("expected a RawBlock when column counts mismatch, got %T", blocks[0])
	}
}

func TestParse_FigureRequiresSrc(t *testing.T) {
	blocks, diags := parseAll(t, "::figure alt=\"x\"\n::\n", ast.Litedoc, 0)
	if len(diags) != 1 || diags[0].Kind != ast.DiagMalformedAttribute {
		t.Errorf("diags = %+v, want one DiagMalformedAttribute", diags)
	}
	if _, ok := blocks[0].(*ast.RawBlock); !ok {
		t.Errorf("expected a RawBlock when src is missing, got %T", blocks[0])
	}
}

func TestParse_FigureWithSrc(t *testing.T) {
	blocks, diags := parseAll(t, "::figure src=\"a.png\" alt=\"x\" caption=\"c\"\n::\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	fig := blocks[0].(*ast.Figure)
	if fig.Src != "a.png" || fig.Alt != "x" || fig.Caption != "c" {
		t.Errorf("Figure = %+v", fig)
	}
}

func TestParse_MathBlockDisplay(t *testing.T) {
	blocks, diags := parseAll(t, "::math display\nx^2\n::\n", ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	m := blocks[0].(*ast.MathBlock)
	if !m.Display {
		t.Error("expected Display = true")
	}
	if m.Content != "x^2\n" {
		t.Errorf("Content = %q", m.Content)
	}
}

func TestParse_FootnotesFence(t *testing.T) {
	src := "::footnotes\n[^a]: first note\n[^b]: second note\n::\n"
	blocks, diags := parseAll(t, src, ast.Litedoc, 0)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %+v", diags)
	}
	fn := blocks[0].(*ast.Footnotes)
	if len(fn.Defs) != 2 {
		t.Fatalf("expected 2 defs, got %d", len(fn.Defs))
	}
	if fn.Defs[0].Label != "a" || fn.Defs[1].Label != "b" {
		t.Errorf("labels = %q, %q", fn.Defs[0].Label, fn.Defs[1].Label)
	}
}

func TestParse_UnterminatedFenceRecoversToRawBlock(t *testing.T) {
	src := "::list\n- A\n"
	blocks, diags := parseAll(t, src, ast.Litedoc, 0)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	raw, ok := blocks[0].(*ast.RawBlock)
	if !ok {
		t.Fatalf("expected *ast.RawBlock recovery, got %T", blocks[0])
	}
	if raw.Content != src {
		t.Errorf("raw content = %q, want %q", raw.Content, src)
	}
	if len(diags) != 1 || diags[0].Kind != ast.DiagUnterminatedFence {
		t.Errorf("diags = %+v, want one DiagUnterminatedFence", diags)
	}
}

func TestParse_HTMLBlockRequiresModule(t *testing.T) {
	blocks, _ := parseAll(t, "<div>x</div>\n", ast.Litedoc, 0)
	if _, ok := blocks[0].(*ast.HtmlBlock); ok {
		t.Error("html block should not be recognized without the html module enabled")
	}
	if _, ok := blocks[0].(*ast.Paragraph); !ok {
		t.Errorf("expected fallback to Paragraph, got %T", blocks[0])
	}

	var modules ast.ModuleSet
	modules = modules.With(ast.ModuleHTML)
	blocks2, _ := parseAll(t, "<div>x</div>\n", ast.Litedoc, modules)
	if _, ok := blocks2[0].(*ast.HtmlBlock); !ok {
		t.Errorf("expected HtmlBlock when html module enabled, got %T", blocks2[0])
	}
}
