package blockparse

import (
	"regexp"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

var footnoteDefRE = regexp.MustCompile(`^\[\^([^\]]+)\]:[ \t]*`)

// buildFence dispatches a `::NAME (attrs)` opener to the matching body
// parser. The opener line has already been peeked (not consumed).
func buildFence(c *cursor.Cursor, name, attrText string, profile ast.Profile, modules ast.ModuleSet) (ast.Block, []ast.Diagnostic, bool) {
	start := c.Offset()
	c.ConsumeLine()
	attrs := parseFenceAttrs(attrText)
	var adiags []ast.Diagnostic

	closer := func(line []byte) bool { return fenceCloseRE.Match(line) }

	switch name {
	case "list":
		return buildList(c, attrs, adiags, profile, modules, start, closer)
	case "table":
		return buildTable(c, adiags, modules, start, closer)
	case "callout":
		return buildCallout(c, attrs, adiags, profile, modules, start, closer)
	case "quote":
		return buildQuote(c, adiags, profile, modules, start, closer)
	case "figure":
		return buildFigure(c, attrs, adiags, start, closer)
	case "math":
		return buildMath(c, attrs, adiags, start, closer)
	case "footnotes":
		return buildFootnotes(c, adiags, profile, modules, start, closer)
	}
	// fenceOpenRE only matches the seven names above.
	panic("blockparse: unreachable fence name " + name)
}

// unterminatedFenceDiag builds the diagnostic for a fence whose closer
// was never found before EOF: the recovered span runs from start to the
// cursor's current offset (which recoverToBoundary will leave unchanged
// in this case, since it stops as soon as it sees EOF).
func unterminatedFenceDiag(start, end int) ast.Diagnostic {
	return ast.Diagnostic{
		Kind:    ast.DiagUnterminatedFence,
		Span:    ast.Span{Start: start, End: end},
		Message: "block is not terminated before end of input",
	}
}

func buildCallout(c *cursor.Cursor, attrs *fenceAttrs, adiags []ast.Diagnostic, profile ast.Profile, modules ast.ModuleSet, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	kind, _ := attrs.Get("type")
	title, _ := attrs.Get("title")
	blocks, bdiags := Parse(c, profile, modules, closer)
	diags := append(adiags, bdiags...)
	if c.Eof() {
		diags = append(diags, unterminatedFenceDiag(start, c.Offset()))
		return nil, diags, true
	}
	c.ConsumeLine()
	return ast.NewCallout(kind, title, blocks, c.Mint(start)), diags, false
}

func buildQuote(c *cursor.Cursor, adiags []ast.Diagnostic, profile ast.Profile, modules ast.ModuleSet, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	blocks, bdiags := Parse(c, profile, modules, closer)
	diags := append(adiags, bdiags...)
	if c.Eof() {
		diags = append(diags, unterminatedFenceDiag(start, c.Offset()))
		return nil, diags, true
	}
	c.ConsumeLine()
	return ast.NewQuote(blocks, c.Mint(start)), diags, false
}

func buildFigure(c *cursor.Cursor, attrs *fenceAttrs, adiags []ast.Diagnostic, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	c.SkipBlankLines()
	if c.Eof() || !closer(c.PeekLine()) {
		adiags = append(adiags, unterminatedFenceDiag(start, c.Offset()))
		return nil, adiags, true
	}

	src, _ := attrs.Get("src")
	alt, _ := attrs.Get("alt")
	caption, _ := attrs.Get("caption")
	if src == "" {
		// Closer left unconsumed so the recovery scan stops at the end
		// of the fence.
		adiags = append(adiags, ast.Diagnostic{
			Kind:    ast.DiagMalformedAttribute,
			Span:    c.Mint(start),
			Message: "figure requires a \"src\" attribute",
		})
		return nil, adiags, true
	}
	c.ConsumeLine()
	return ast.NewFigure(src, alt, caption, c.Mint(start)), adiags, false
}

func buildMath(c *cursor.Cursor, attrs *fenceAttrs, adiags []ast.Diagnostic, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	display := attrs.Has("display")
	bodyStart := c.Offset()
	for !c.Eof() && !closer(c.PeekLine()) {
		c.ConsumeLine()
	}
	if c.Eof() {
		adiags = append(adiags, unterminatedFenceDiag(start, c.Offset()))
		return nil, adiags, true
	}
	content := string(c.Source()[bodyStart:c.Offset()])
	c.ConsumeLine()
	return ast.NewMathBlock(display, content, c.Mint(start)), adiags, false
}

func buildFootnotes(c *cursor.Cursor, adiags []ast.Diagnostic, profile ast.Profile, modules ast.ModuleSet, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	defs, ddiags := parseFootnoteDefs(c, profile, modules, closer)
	diags := append(adiags, ddiags...)
	if c.Eof() {
		diags = append(diags, unterminatedFenceDiag(start, c.Offset()))
		return nil, diags, true
	}
	c.ConsumeLine()
	return ast.NewFootnotes(defs, c.Mint(start)), diags, false
}

// parseFootnoteDefs splits a `::footnotes` body on `[^label]:` opener
// lines. A definition's body is the text after the opener's prefix
// through the next def opener or the closer: that span is contiguous in
// the real source except for the stripped `[^label]:` prefix on its own
// first line, so it is re-parsed from a two-segment synthetic buffer and
// the result's spans are shifted back onto the real source, the same
// technique list-item continuations use.
func parseFootnoteDefs(c *cursor.Cursor, profile ast.Profile, modules ast.ModuleSet, closer StopFunc) ([]ast.FootnoteDef, []ast.Diagnostic) {
	var defs []ast.FootnoteDef
	var diags []ast.Diagnostic

	isDefOpener := func(line []byte) bool { return footnoteDefRE.Match(line) }
	stop := func(line []byte) bool { return closer(line) || isDefOpener(line) }

	for {
		c.SkipBlankLines()
		if c.Eof() || closer(c.PeekLine()) {
			return defs, diags
		}
		lineStart := c.Offset()
		raw := c.PeekLine()
		m := footnoteDefRE.FindSubmatchIndex(raw)
		if m == nil {
			diags = append(diags, ast.Diagnostic{
				Kind:    ast.DiagMalformedAttribute,
				Span:    ast.Span{Start: lineStart, End: lineStart + len(raw)},
				Message: "expected a \"[^label]:\" footnote definition",
			})
			c.ConsumeLine()
			continue
		}
		label := string(raw[m[2]:m[3]])
		restOfFirst := raw[m[1]:]
		prefixEnd := lineStart + m[1]
		c.ConsumeLine()
		bodyRestStart := c.Offset()

		regionEnd := scanRegionEnd(c, stop)

		var synth strings.Builder
		synth.Write(restOfFirst)
		synth.WriteByte('\n')
		seg1Start := synth.Len()
		synth.Write(c.Source()[bodyRestStart:regionEnd])

		shift := ast.ShiftFunc(func(o int) int {
			if o < seg1Start {
				return prefixEnd + o
			}
			return bodyRestStart + (o - seg1Start)
		})

		sc := cursor.New([]byte(synth.String()))
		blocks, bdiags := Parse(sc, profile, modules, nil)
		blocks = ast.ShiftBlocks(blocks, shift)
		diags = append(diags, bdiags...)

		c.Advance(regionEnd - c.Offset())

		defs = append(defs, ast.FootnoteDef{Label: label, Blocks: blocks})
	}
}

// scanRegionEnd finds, without consuming from c, the offset at which
// stop first matches, scanning line by line on a private copy.
func scanRegionEnd(c *cursor.Cursor, stop StopFunc) int {
	cpy := *c
	for !cpy.Eof() {
		if stop(cpy.PeekLine()) {
			break
		}
		cpy.ConsumeLine()
	}
	return cpy.Offset()
}
