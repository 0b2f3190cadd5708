// Package cursor implements the Source Cursor component: UTF-8-safe
// byte/line/column positioning, span minting, and delimiter scanning over a
// read-only source buffer. A Cursor never rewinds past a position it has
// already yielded to a caller — callers that need to "look behind" keep
// their own remembered offsets and mint spans from them instead.
package cursor

import (
	"bytes"

	"github.com/nssalian/litedoc-go/ast"
)

// InlineDelimiters is the set of ASCII bytes the inline parser dispatches
// on. Every LiteDoc inline marker is ASCII, so delimiter scans operate on
// raw bytes rather than runes — a SIMD-friendly byte search; Go's
// standard library bytes.IndexByte/IndexAny already lower to vectorized
// implementations on amd64/arm64, so no hand-written assembly is needed
// to get that property.
const InlineDelimiters = "*_`~[<\\"

// Cursor is a forward-only scanner over a source buffer. Line and column
// are maintained for diagnostics only; no grammar decision ever consults
// them.
type Cursor struct {
	src    []byte
	offset int
	line   int // 1-based
	col    int // 1-based
}

// New returns a Cursor positioned at the start of src.
func New(src []byte) *Cursor {
	return &Cursor{src: src, line: 1, col: 1}
}

// Source returns the full underlying buffer (not just the remainder).
func (c *Cursor) Source() []byte { return c.src }

// Offset returns the current byte offset.
func (c *Cursor) Offset() int { return c.offset }

// Line returns the current 1-based line number.
func (c *Cursor) Line() int { return c.line }

// Column returns the current 1-based column number.
func (c *Cursor) Column() int { return c.col }

// Eof reports whether the cursor has consumed the entire buffer.
func (c *Cursor) Eof() bool { return c.offset >= len(c.src) }

// Remaining returns the unconsumed tail of the source buffer.
func (c *Cursor) Remaining() []byte { return c.src[c.offset:] }

// PeekByte returns the byte at the current offset plus n, and whether that
// position is within bounds.
func (c *Cursor) PeekByte(n int) (byte, bool) {
	i := c.offset + n
	if i < 0 || i >= len(c.src) {
		return 0, false
	}
	return c.src[i], true
}

// HasPrefix reports whether the remaining buffer starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	return bytes.HasPrefix(c.Remaining(), []byte(s))
}

// Advance moves the cursor forward n bytes, updating line/column
// bookkeeping. n must not exceed the remaining buffer length.
func (c *Cursor) Advance(n int) {
	end := c.offset + n
	if end > len(c.src) {
		end = len(c.src)
	}
	for i := c.offset; i < end; i++ {
		if c.src[i] == '\n' {
			c.line++
			c.col = 1
		} else {
			c.col++
		}
	}
	c.offset = end
}

// ConsumeLine consumes and returns the bytes up to and including the
// terminating '\n' (or up to EOF if the buffer does not end with one).
// The returned slice is a borrowed view into the source buffer.
func (c *Cursor) ConsumeLine() []byte {
	rest := c.Remaining()
	if len(rest) == 0 {
		return nil
	}
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		line := rest[:i+1]
		c.Advance(len(line))
		return line
	}
	c.Advance(len(rest))
	return rest
}

// PeekLine returns the bytes up to (but not including) the next '\n', or to
// EOF, without advancing the cursor. The trailing line ending, if any, is
// not included.
func (c *Cursor) PeekLine() []byte {
	rest := c.Remaining()
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		if i > 0 && rest[i-1] == '\r' {
			return rest[:i-1]
		}
		return rest[:i]
	}
	if n := len(rest); n > 0 && rest[n-1] == '\r' {
		return rest[:n-1]
	}
	return rest
}

// SkipBlankLines advances past any run of lines that are empty or
// consist only of whitespace.
func (c *Cursor) SkipBlankLines() {
	for !c.Eof() {
		line := c.PeekLine()
		if !isBlank(line) {
			return
		}
		c.ConsumeLine()
	}
}

func isBlank(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}

// Mint returns the Span from the given start offset to the cursor's
// current offset.
func (c *Cursor) Mint(start int) ast.Span {
	return ast.Span{Start: start, End: c.offset}
}

// IndexAny returns the offset (relative to the cursor's current position)
// of the first byte in the remaining buffer that appears in set, or -1 if
// none does. This is the delegated byte-search primitive for delimiter
// scans over the cursor's remaining buffer.
func (c *Cursor) IndexAny(set string) int {
	return bytes.IndexAny(c.Remaining(), set)
}

// IndexByte returns the offset (relative to the cursor's current position)
// of the first occurrence of b in the remaining buffer, or -1.
func (c *Cursor) IndexByte(b byte) int {
	return bytes.IndexByte(c.Remaining(), b)
}

// LineCol re-locates a byte offset into src as a 1-based (line, column)
// pair, for rendering a diagnostic's span after parsing has finished (the
// Cursor that produced the span is long gone by then). offset is clamped
// to [0, len(src)].
func LineCol(src []byte, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	line, col = 1, 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
