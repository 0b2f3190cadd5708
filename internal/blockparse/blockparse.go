// Package blockparse implements the Block Parser component: the
// top-level loop that classifies each non-blank region of a document (or
// a fenced container's body) and dispatches to the matching block
// constructor, with an error-recovery wrapper around every attempt that
// replaces a failed block with a RawBlock rather than aborting the parse.
package blockparse

import (
	"regexp"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
	"github.com/nssalian/litedoc-go/internal/inlineparse"
)

var (
	headingRE       = regexp.MustCompile(`^(#{1,6})[ \t](.*)$`)
	fenceOpenRE     = regexp.MustCompile(`^::(list|table|callout|quote|figure|math|footnotes)\b(.*)$`)
	fenceCloseRE    = regexp.MustCompile(`^::\s*$`)
	codeFenceOpenRE = regexp.MustCompile("^```[ \t]*([^ \t]*)[ \t]*$")
	codeFenceEndRE  = regexp.MustCompile("^```\\s*$")
	thematicBreakRE = regexp.MustCompile(`^---\s*$`)
	htmlOpenRE      = regexp.MustCompile(`^<[A-Za-z!]`)
)

// StopFunc reports whether line — as returned by cursor.PeekLine — marks
// the end of the current recursive region. The matching line is left
// unconsumed; the caller is responsible for it (typically consuming a
// fence closer).
type StopFunc func(line []byte) bool

// Parse runs the Block Parser's top-level loop over c until EOF or stop
// reports true, returning the resulting blocks and any diagnostics
// recorded along the way. profile gates the code-block "language
// required" rule; modules gates html block recognition and is threaded
// down into the Inline Parser.
func Parse(c *cursor.Cursor, profile ast.Profile, modules ast.ModuleSet, stop StopFunc) ([]ast.Block, []ast.Diagnostic) {
	var blocks []ast.Block
	var diags []ast.Diagnostic
	for {
		c.SkipBlankLines()
		if c.Eof() {
			break
		}
		if stop != nil && stop(c.PeekLine()) {
			break
		}
		b, d := recoverBlock(c, profile, modules, stop)
		blocks = append(blocks, b)
		diags = append(diags, d...)
	}
	return blocks, diags
}

// recoverBlock is the Error Recovery wrapper: on a fatal classification
// failure it advances to the next block boundary and emits a RawBlock
// instead of propagating the failure. The failing constructor is itself
// responsible for appending the diagnostic that explains why (so its
// kind and span stay specific to the actual problem — an unterminated
// fence, a malformed attribute, a bad table row — rather than being
// collapsed into one generic message here).
func recoverBlock(c *cursor.Cursor, profile ast.Profile, modules ast.ModuleSet, outerStop StopFunc) (ast.Block, []ast.Diagnostic) {
	start := c.Offset()
	block, diags, fatal := classifyAndBuild(c, profile, modules, outerStop)
	if !fatal {
		return block, diags
	}
	recoverToBoundary(c, outerStop)
	raw := string(c.Source()[start:c.Offset()])
	return ast.NewRawBlock(raw, ast.Span{Start: start, End: c.Offset()}), diags
}

// recoverToBoundary advances c to the next block boundary: the matching
// `::` closer if one exists before EOF, the next blank-line-separated
// region otherwise, or EOF.
func recoverToBoundary(c *cursor.Cursor, stop StopFunc) {
	for !c.Eof() {
		line := c.PeekLine()
		if fenceCloseRE.Match(line) {
			c.ConsumeLine()
			return
		}
		if stop != nil && stop(line) {
			return
		}
		c.ConsumeLine()
		if c.Eof() {
			return
		}
		if isBlankBytes(c.PeekLine()) {
			return
		}
	}
}

// classifyAndBuild classifies the cursor's current line against the
// block-opener patterns and dispatches to the matching builder. The bool
// result reports whether the failure is fatal (requires full RawBlock
// recovery); a non-fatal result may still carry soft diagnostics
// alongside a successfully constructed block (e.g. MissingLanguage).
// stop is the enclosing region's StopFunc; a paragraph ends before a line
// it matches.
func classifyAndBuild(c *cursor.Cursor, profile ast.Profile, modules ast.ModuleSet, stop StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	line := c.PeekLine()

	if headingRE.Match(line) {
		return buildHeading(c, modules)
	}
	if codeFenceOpenRE.Match(line) {
		return buildCodeBlock(c, profile)
	}
	if m := fenceOpenRE.FindSubmatch(line); m != nil {
		return buildFence(c, string(m[1]), strings.TrimSpace(string(m[2])), profile, modules)
	}
	if thematicBreakRE.Match(line) {
		start := c.Offset()
		c.ConsumeLine()
		return ast.NewThematicBreak(c.Mint(start)), nil, false
	}
	if modules.Has(ast.ModuleHTML) && htmlOpenRE.Match(line) {
		return buildHTMLBlock(c)
	}
	return buildParagraph(c, modules, stop)
}

func looksLikeBlockStart(line []byte, modules ast.ModuleSet) bool {
	if headingRE.Match(line) {
		return true
	}
	if codeFenceOpenRE.Match(line) {
		return true
	}
	if fenceOpenRE.Match(line) {
		return true
	}
	if thematicBreakRE.Match(line) {
		return true
	}
	if modules.Has(ast.ModuleHTML) && htmlOpenRE.Match(line) {
		return true
	}
	return false
}

func isBlankBytes(line []byte) bool {
	return len(strings.TrimSpace(string(line))) == 0
}

func buildHeading(c *cursor.Cursor, modules ast.ModuleSet) (ast.Block, []ast.Diagnostic, bool) {
	start := c.Offset()
	raw := c.PeekLine()
	m := headingRE.FindSubmatchIndex(raw)
	level := m[3] - m[2]
	contentStart := start + m[4]
	content := raw[m[4]:m[5]]
	c.ConsumeLine()
	inlines, idiags := inlineparse.Parse(content, contentStart, modules)
	return ast.NewHeading(level, inlines, c.Mint(start)), idiags, false
}

func buildParagraph(c *cursor.Cursor, modules ast.ModuleSet, stop StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	start := c.Offset()
	for !c.Eof() {
		line := c.PeekLine()
		if isBlankBytes(line) || looksLikeBlockStart(line, modules) || (stop != nil && stop(line)) {
			break
		}
		c.ConsumeLine()
	}
	span := c.Mint(start)
	content := trimTrailingNewline(c.Source()[start:span.End])
	inlines, idiags := inlineparse.Parse(content, start, modules)
	return ast.NewParagraph(inlines, span), idiags, false
}

func trimTrailingNewline(b []byte) []byte {
	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		n--
		if n > 0 && b[n-1] == '\r' {
			n--
		}
	}
	return b[:n]
}

// buildCodeBlock implements a narrower recovery for fenced code: an
// EOF before the closing ``` still yields a CodeBlock with whatever was
// captured, flagged with UnterminatedCodeFence, rather than degrading to
// a RawBlock.
func buildCodeBlock(c *cursor.Cursor, profile ast.Profile) (ast.Block, []ast.Diagnostic, bool) {
	start := c.Offset()
	opener := c.PeekLine()
	m := codeFenceOpenRE.FindSubmatch(opener)
	lang := string(m[1])
	c.ConsumeLine()

	var diags []ast.Diagnostic
	if lang == "" && profile == ast.Litedoc {
		diags = append(diags, ast.Diagnostic{
			Kind:    ast.DiagMissingLanguage,
			Span:    c.Mint(start),
			Message: "code block is missing a required language tag",
		})
	}

	contentStart := c.Offset()
	for !c.Eof() {
		lineStart := c.Offset()
		line := c.PeekLine()
		if codeFenceEndRE.Match(line) {
			content := string(c.Source()[contentStart:lineStart])
			c.ConsumeLine()
			return ast.NewCodeBlock(lang, content, c.Mint(start)), diags, false
		}
		c.ConsumeLine()
	}

	content := string(c.Source()[contentStart:c.Offset()])
	diags = append(diags, ast.Diagnostic{
		Kind:    ast.DiagUnterminatedCodeFence,
		Span:    ast.Span{Start: start, End: c.Offset()},
		Message: "code block is not terminated by a closing \"```\" line",
	})
	return ast.NewCodeBlock(lang, content, c.Mint(start)), diags, false
}

func buildHTMLBlock(c *cursor.Cursor) (ast.Block, []ast.Diagnostic, bool) {
	start := c.Offset()
	for !c.Eof() {
		if isBlankBytes(c.PeekLine()) {
			break
		}
		c.ConsumeLine()
	}
	content := string(c.Source()[start:c.Offset()])
	return ast.NewHtmlBlock(content, c.Mint(start)), nil, false
}
