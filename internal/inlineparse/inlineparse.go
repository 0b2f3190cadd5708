// Package inlineparse implements the Inline Parser component: a greedy,
// left-to-right, single-pass conversion of a block's source content into a
// sequence of ast.Inline nodes. No backtracking is performed; the
// emphasis/strong marker stack makes a single forward pass sufficient.
package inlineparse

import (
	"regexp"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

// delimBytes extends cursor.InlineDelimiters with the newline byte, which
// the inline parser treats as a potential soft/hard break boundary.
const delimBytes = cursor.InlineDelimiters + "\n"

var autolinkRE = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9+.\-]*:[^\s>]+)>`)

// opener is one entry of the emphasis/strong/strikethrough delimiter
// stack: the index into the in-progress output slice holding its literal
// placeholder text, and the run's identity (byte + length).
type opener struct {
	idx    int
	ch     byte
	length int
	span   ast.Span
}

// Parse converts content (a borrowed slice of the source buffer starting
// at absolute offset base) into an inline sequence.
func Parse(content []byte, base int, modules ast.ModuleSet) ([]ast.Inline, []ast.Diagnostic) {
	return parse(content, base, modules, true)
}

// parse is the internal entry point; allowLink is false while parsing a
// Link's label, enforcing the invariant that a Link.Label contains no
// nested Link or AutoLink.
func parse(content []byte, base int, modules ast.ModuleSet, allowLink bool) ([]ast.Inline, []ast.Diagnostic) {
	var out []ast.Inline
	var delims []opener
	var diags []ast.Diagnostic

	n := len(content)
	i := 0
	for i < n {
		rel := strings.IndexAny(string(content[i:]), delimBytes)
		if rel < 0 {
			appendText(&out, delims, content[i:n], base+i)
			break
		}
		if rel > 0 {
			appendText(&out, delims, content[i:i+rel], base+i)
			i += rel
		}

		b := content[i]
		switch {
		case b == '\n':
			i = handleBreak(&out, content, i, base)
		case b == '`':
			next, node, ok := scanCodeSpan(content, i, base)
			if ok {
				out = append(out, node)
				i = next
			} else {
				appendText(&out, delims, content[i:i+1], base+i)
				i++
			}
		case b == '*':
			i = handleRun(content, i, base, '*', &out, &delims)
		case b == '~' && modules.Has(ast.ModuleStrikethrough):
			i = handleStrikeRun(content, i, base, &out, &delims)
		case b == '[' && allowLink && i+1 < n && content[i+1] == '[':
			next, node, d, ok := scanLink(content, i, base, modules)
			if ok {
				out = append(out, node)
				diags = append(diags, d...)
				i = next
			} else {
				diags = append(diags, ast.Diagnostic{
					Kind:    ast.DiagUnterminatedFence,
					Span:    ast.Span{Start: base + i, End: base + n},
					Message: "unterminated [[ link",
				})
				appendText(&out, delims, content[i:i+2], base+i)
				i += 2
			}
		case b == '[' && i+1 < n && content[i+1] == '^':
			next, node, ok := scanFootnoteRef(content, i, base)
			if ok {
				out = append(out, node)
				i = next
			} else {
				appendText(&out, delims, content[i:i+1], base+i)
				i++
			}
		case b == '<' && allowLink && modules.Has(ast.ModuleAutolink):
			if m := autolinkRE.FindSubmatchIndex(content[i:]); m != nil {
				url := string(content[i+m[2] : i+m[3]])
				end := i + m[1]
				out = append(out, ast.NewAutoLink(url, ast.Span{Start: base + i, End: base + end}))
				i = end
			} else {
				appendText(&out, delims, content[i:i+1], base+i)
				i++
			}
		case b == '\\':
			if i+1 < n && isEscapable(content[i+1]) {
				appendText(&out, delims, content[i+1:i+2], base+i+1)
				i += 2
			} else {
				appendText(&out, delims, content[i:i+1], base+i)
				i++
			}
		default:
			appendText(&out, delims, content[i:i+1], base+i)
			i++
		}
	}

	// Any opener still on the stack is already present in out as its
	// literal placeholder text; the final coalesce pass folds those
	// demoted markers into their neighboring runs.
	return coalesceTexts(out), diags
}

func isEscapable(b byte) bool {
	switch b {
	case '*', '_', '`', '~', '[', ']', '<', '>', '\\':
		return true
	}
	return false
}

// appendText appends a literal run, coalescing with a trailing Text node
// if one is already present. A Text node that is an active opener's
// placeholder is never coalesced into — resolveCloser identifies the
// opener by its index in out and takes everything after it as the
// bracketed content, so merging text into the placeholder would swallow
// that content. The final coalesceTexts pass merges demoted placeholders
// once the stack is settled.
func appendText(out *[]ast.Inline, delims []opener, raw []byte, start int) {
	if len(raw) == 0 {
		return
	}
	if n := len(*out); n > 0 && !isOpenerIndex(delims, n-1) {
		if t, ok := (*out)[n-1].(*ast.Text); ok {
			(*out)[n-1] = ast.NewText(t.Content+string(raw), ast.Span{Start: t.Span().Start, End: start + len(raw)})
			return
		}
	}
	*out = append(*out, ast.NewText(string(raw), ast.Span{Start: start, End: start + len(raw)}))
}

func isOpenerIndex(delims []opener, idx int) bool {
	for j := len(delims) - 1; j >= 0; j-- {
		if delims[j].idx == idx {
			return true
		}
		if delims[j].idx < idx {
			return false
		}
	}
	return false
}

// coalesceTexts merges adjacent Text nodes so no two Text siblings ever
// appear back to back.
func coalesceTexts(in []ast.Inline) []ast.Inline {
	if len(in) < 2 {
		return in
	}
	out := in[:0]
	for _, node := range in {
		if t, ok := node.(*ast.Text); ok && len(out) > 0 {
			if prev, ok := out[len(out)-1].(*ast.Text); ok {
				out[len(out)-1] = ast.NewText(prev.Content+t.Content, ast.Span{Start: prev.Span().Start, End: t.Span().End})
				continue
			}
		}
		out = append(out, node)
	}
	return out
}

// handleBreak processes a '\n' byte: a trailing "  " on the preceding
// literal text yields a HardBreak (and those two spaces are trimmed from
// the text); otherwise a SoftBreak.
func handleBreak(out *[]ast.Inline, content []byte, i, base int) int {
	hard := false
	if n := len(*out); n > 0 {
		if t, ok := (*out)[n-1].(*ast.Text); ok && strings.HasSuffix(t.Content, "  ") {
			hard = true
			trimmed := t.Content[:len(t.Content)-2]
			sp := t.Span()
			if trimmed == "" {
				*out = (*out)[:n-1]
			} else {
				(*out)[n-1] = ast.NewText(trimmed, ast.Span{Start: sp.Start, End: sp.End - 2})
			}
		}
	}
	start := base + i
	end := base + i + 1
	if hard {
		*out = append(*out, ast.NewHardBreak(ast.Span{Start: start, End: end}))
	} else {
		*out = append(*out, ast.NewSoftBreak(ast.Span{Start: start, End: end}))
	}
	return i + 1
}

func scanRun(content []byte, i int, b byte) int {
	j := i
	for j < len(content) && content[j] == b {
		j++
	}
	return j - i
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isPunct(b byte) bool {
	return !isAlnum(b) && !isSpace(b)
}

// flank computes the left/right-flanking status of a run [i, i+runLen)
// per the CommonMark-style flanking rules.
func flank(content []byte, i, runLen int) (left, right bool) {
	var before, after byte
	hasBefore := i > 0
	if hasBefore {
		before = content[i-1]
	}
	hasAfter := i+runLen < len(content)
	if hasAfter {
		after = content[i+runLen]
	}

	left = hasAfter && !isSpace(after) &&
		(!hasBefore || isSpace(before) || isPunct(before) || (isAlnum(after) && !isAlnum(before)))
	right = hasBefore && !isSpace(before) &&
		(!hasAfter || isSpace(after) || isPunct(after) || (isAlnum(before) && !isAlnum(after)))
	return left, right
}

// handleRun processes a run of the marker byte ch (currently only '*' is
// used for Emphasis/Strong) starting at i, chunking it into length-2
// (Strong) and length-1 (Emphasis) markers and resolving closers against
// the open delimiter stack.
func handleRun(content []byte, i, base int, ch byte, out *[]ast.Inline, delims *[]opener) int {
	runLen := scanRun(content, i, ch)
	left, right := flank(content, i, runLen)

	pos := i
	remaining := runLen
	for remaining > 0 {
		length := 1
		if remaining >= 2 {
			length = 2
		}
		segStart, segEnd := pos, pos+length

		if right {
			if resolveCloser(out, delims, ch, length, base+segEnd) {
				pos = segEnd
				remaining -= length
				continue
			}
		}

		idx := len(*out)
		*out = append(*out, ast.NewText(string(content[segStart:segEnd]), ast.Span{Start: base + segStart, End: base + segEnd}))
		if left {
			*delims = append(*delims, opener{idx: idx, ch: ch, length: length, span: ast.Span{Start: base + segStart, End: base + segEnd}})
		}
		pos = segEnd
		remaining -= length
	}
	return pos
}

// handleStrikeRun is the strikethrough-module analogue of handleRun: only
// the exact run length 2 is a recognized marker; any leftover single '~'
// is literal text.
func handleStrikeRun(content []byte, i, base int, out *[]ast.Inline, delims *[]opener) int {
	runLen := scanRun(content, i, '~')
	if runLen < 2 {
		appendText(out, *delims, content[i:i+runLen], base+i)
		return i + runLen
	}
	left, right := flank(content, i, 2)
	pos := i
	remaining := runLen
	for remaining >= 2 {
		segStart, segEnd := pos, pos+2
		if right && resolveCloser(out, delims, '~', 2, base+segEnd) {
			pos = segEnd
			remaining -= 2
			continue
		}
		idx := len(*out)
		*out = append(*out, ast.NewText(string(content[segStart:segEnd]), ast.Span{Start: base + segStart, End: base + segEnd}))
		if left {
			*delims = append(*delims, opener{idx: idx, ch: '~', length: 2, span: ast.Span{Start: base + segStart, End: base + segEnd}})
		}
		pos = segEnd
		remaining -= 2
	}
	if remaining == 1 {
		appendText(out, *delims, content[pos:pos+1], base+pos)
		pos++
	}
	return pos
}

// resolveCloser searches delims from the top (innermost, most recently
// opened) for a matching opener and, if found, replaces the bracketed
// range of out with a single Strong/Emphasis/Strikethrough node.
func resolveCloser(out *[]ast.Inline, delims *[]opener, ch byte, length int, closeEnd int) bool {
	for j := len(*delims) - 1; j >= 0; j-- {
		d := (*delims)[j]
		if d.ch != ch || d.length != length {
			continue
		}
		inner := coalesceTexts(append([]ast.Inline(nil), (*out)[d.idx+1:]...))
		span := ast.Span{Start: d.span.Start, End: closeEnd}
		var node ast.Inline
		switch {
		case ch == '~':
			node = ast.NewStrikethrough(inner, span)
		case length == 2:
			node = ast.NewStrong(inner, span)
		default:
			node = ast.NewEmphasis(inner, span)
		}
		*out = append((*out)[:d.idx], node)
		*delims = (*delims)[:j]
		return true
	}
	return false
}

// scanCodeSpan attempts to match a backtick run at i against a
// same-length closing run. On success it returns the offset just past the
// closer and the constructed CodeSpan.
func scanCodeSpan(content []byte, i, base int) (next int, node *ast.CodeSpan, ok bool) {
	openLen := scanRun(content, i, '`')
	search := i + openLen
	for search < len(content) {
		rel := strings.IndexByte(string(content[search:]), '`')
		if rel < 0 {
			return 0, nil, false
		}
		candStart := search + rel
		candLen := scanRun(content, candStart, '`')
		if candLen == openLen {
			inner := content[i+openLen : candStart]
			end := candStart + candLen
			return end, ast.NewCodeSpan(string(inner), ast.Span{Start: base + i, End: base + end}), true
		}
		search = candStart + candLen
	}
	return 0, nil, false
}

// scanLink parses a `[[label|url]]` or `[[url]]` construct starting at i
// (content[i:i+2] == "[[").
func scanLink(content []byte, i, base int, modules ast.ModuleSet) (next int, node *ast.Link, diags []ast.Diagnostic, ok bool) {
	j := i + 2
	closeIdx := indexOfDouble(content, j, ']')
	if closeIdx < 0 {
		return 0, nil, nil, false
	}
	pipeIdx := indexOfSingleBefore(content, j, '|', closeIdx)

	var label []ast.Inline
	var url string
	if pipeIdx >= 0 {
		labelInlines, labelDiags := parse(content[j:pipeIdx], base+j, modules, false)
		label = labelInlines
		diags = labelDiags
		url = string(content[pipeIdx+1 : closeIdx])
	} else {
		raw := content[j:closeIdx]
		url = string(raw)
		label = []ast.Inline{ast.NewText(string(raw), ast.Span{Start: base + j, End: base + closeIdx})}
	}

	end := closeIdx + 2
	return end, ast.NewLink(label, url, "", ast.Span{Start: base + i, End: base + end}), diags, true
}

// indexOfDouble finds the offset of the next "]]" at or after from.
func indexOfDouble(content []byte, from int, b byte) int {
	for k := from; k+1 < len(content); k++ {
		if content[k] == b && content[k+1] == b {
			return k
		}
	}
	return -1
}

// indexOfSingleBefore finds the offset of the next single occurrence of b
// strictly before limit, or -1.
func indexOfSingleBefore(content []byte, from int, b byte, limit int) int {
	for k := from; k < limit; k++ {
		if content[k] == b {
			return k
		}
	}
	return -1
}

// scanFootnoteRef parses a `[^label]` construct starting at i
// (content[i:i+2] == "[^").
func scanFootnoteRef(content []byte, i, base int) (next int, node *ast.FootnoteRef, ok bool) {
	j := i + 2
	rel := strings.IndexByte(string(content[j:]), ']')
	if rel < 0 {
		return 0, nil, false
	}
	label := string(content[j : j+rel])
	end := j + rel + 1
	return end, ast.NewFootnoteRef(label, ast.Span{Start: base + i, End: base + end}), true
}
