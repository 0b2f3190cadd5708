package blockparse

import (
	"strconv"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

// stripItemPrefix recognizes a `- ` item opener.
func stripItemPrefix(line []byte) (rest []byte, ok bool) {
	if len(line) >= 2 && line[0] == '-' && line[1] == ' ' {
		return line[2:], true
	}
	return nil, false
}

// stripContPrefix recognizes a `| ` item-continuation marker. A bare `|`
// with no trailing space is also accepted, for an otherwise-empty
// continuation line.
func stripContPrefix(line []byte) (rest []byte, prefixLen int, ok bool) {
	if len(line) >= 2 && line[0] == '|' && line[1] == ' ' {
		return line[2:], 2, true
	}
	if len(line) == 1 && line[0] == '|' {
		return line[1:], 1, true
	}
	return nil, 0, false
}

// buildList parses a `::list` body: `- ` opens an item, `| ` continues the
// current item feeding its stripped content back into the block parser,
// recursively.
func buildList(c *cursor.Cursor, attrs *fenceAttrs, adiags []ast.Diagnostic, profile ast.Profile, modules ast.ModuleSet, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	kind := ast.Unordered
	if attrs.Has("ordered") {
		kind = ast.Ordered
	}

	// start only applies to ordered lists.
	var startNum *uint64
	if v, ok := attrs.Get("start"); ok && kind == ast.Ordered {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			startNum = &n
		} else {
			adiags = append(adiags, ast.Diagnostic{
				Kind:    ast.DiagMalformedAttribute,
				Span:    c.Mint(start),
				Message: "list \"start\" attribute is not a non-negative integer",
			})
		}
	}

	var items []*ast.ListItem
	for {
		c.SkipBlankLines()
		if c.Eof() {
			adiags = append(adiags, unterminatedFenceDiag(start, c.Offset()))
			return nil, adiags, true
		}
		if closer(c.PeekLine()) {
			break
		}
		if _, ok := stripItemPrefix(c.PeekLine()); !ok {
			adiags = append(adiags, ast.Diagnostic{
				Kind:    ast.DiagMalformedAttribute,
				Span:    c.Mint(c.Offset()),
				Message: "expected a \"- \" list item",
			})
			c.ConsumeLine()
			continue
		}
		item, idiags := buildListItem(c, profile, modules)
		adiags = append(adiags, idiags...)
		items = append(items, item)
	}
	c.ConsumeLine()
	return ast.NewList(kind, startNum, items, c.Mint(start)), adiags, false
}

// listSeg is one physical line (or run of blank lines) contributed to a
// list item's synthetic re-parse buffer.
type listSeg struct {
	text      string
	realStart int
}

// buildListItem gathers the item-opener line and every following `| `
// continuation (blank lines are absorbed when immediately followed by
// another continuation line), re-parses the stripped content as a fresh
// block sequence, and remaps the result's spans back onto the real
// source via ast.ShiftBlocks.
func buildListItem(c *cursor.Cursor, profile ast.Profile, modules ast.ModuleSet) (*ast.ListItem, []ast.Diagnostic) {
	itemStart := c.Offset()

	lineStart := c.Offset()
	raw := c.ConsumeLine()
	stripped, _ := stripItemPrefix(raw)
	segs := []listSeg{{text: string(stripped), realStart: lineStart + 2}}

	for !c.Eof() {
		peek := c.PeekLine()
		if rest, n, ok := stripContPrefix(peek); ok {
			ls := c.Offset()
			c.ConsumeLine()
			segs = append(segs, listSeg{text: string(rest) + "\n", realStart: ls + n})
			continue
		}
		if isBlankBytes(peek) {
			cpy := *c
			cpy.SkipBlankLines()
			if !cpy.Eof() {
				if _, _, ok := stripContPrefix(cpy.PeekLine()); ok {
					blankStart := c.Offset()
					c.SkipBlankLines()
					segs = append(segs, listSeg{text: string(c.Source()[blankStart:c.Offset()]), realStart: blankStart})
					continue
				}
			}
		}
		break
	}

	itemEnd := c.Offset()

	var synth strings.Builder
	synthStarts := make([]int, len(segs))
	realStarts := make([]int, len(segs))
	off := 0
	for i, s := range segs {
		synthStarts[i] = off
		realStarts[i] = s.realStart
		synth.WriteString(s.text)
		off += len(s.text)
	}

	shift := ast.ShiftFunc(func(o int) int {
		idx := 0
		for i := range synthStarts {
			if synthStarts[i] <= o {
				idx = i
			} else {
				break
			}
		}
		return realStarts[idx] + (o - synthStarts[idx])
	})

	sc := cursor.New([]byte(synth.String()))
	blocks, idiags := Parse(sc, profile, modules, nil)
	blocks = ast.ShiftBlocks(blocks, shift)

	return ast.NewListItem(blocks, ast.Span{Start: itemStart, End: itemEnd}), idiags
}
