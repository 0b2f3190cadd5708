package ast

// ShiftFunc maps an offset in a synthetically constructed buffer back to
// the corresponding offset in the true source buffer. It is used by the
// block parser's list-item continuation recursion, where "| " prefixes
// are stripped before a nested parse, and by the footnote-definition
// splitter, where the "[^label]:" prefix is stripped; either would
// otherwise leave every produced Span pointing at the wrong buffer.
type ShiftFunc func(int) int

func (f ShiftFunc) span(s Span) Span {
	return Span{Start: f(s.Start), End: f(s.End)}
}

// ShiftBlocks rewrites every Span reachable from blocks (including nested
// inline content) through f, returning a new slice of equivalent blocks
// pointing at the real source.
func ShiftBlocks(blocks []Block, f ShiftFunc) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = shiftBlock(b, f)
	}
	return out
}

// ShiftInlines is the Inline analogue of ShiftBlocks.
func ShiftInlines(inlines []Inline, f ShiftFunc) []Inline {
	if inlines == nil {
		return nil
	}
	out := make([]Inline, len(inlines))
	for i, in := range inlines {
		out[i] = shiftInline(in, f)
	}
	return out
}

func shiftBlock(b Block, f ShiftFunc) Block {
	switch v := b.(type) {
	case *Heading:
		return NewHeading(v.Level, ShiftInlines(v.Content, f), f.span(v.span))
	case *Paragraph:
		return NewParagraph(ShiftInlines(v.Content, f), f.span(v.span))
	case *ListItem:
		return NewListItem(ShiftBlocks(v.Blocks, f), f.span(v.span))
	case *List:
		items := make([]*ListItem, len(v.Items))
		for i, it := range v.Items {
			items[i] = shiftBlock(it, f).(*ListItem)
		}
		return NewList(v.Kind, v.Start, items, f.span(v.span))
	case *CodeBlock:
		return NewCodeBlock(v.Lang, v.Content, f.span(v.span))
	case *Callout:
		return NewCallout(v.Kind, v.Title, ShiftBlocks(v.Blocks, f), f.span(v.span))
	case *Quote:
		return NewQuote(ShiftBlocks(v.Blocks, f), f.span(v.span))
	case *Figure:
		return NewFigure(v.Src, v.Alt, v.Caption, f.span(v.span))
	case *Table:
		rows := make([]TableRow, len(v.Rows))
		for i, r := range v.Rows {
			cells := make([]TableCell, len(r.Cells))
			for j, c := range r.Cells {
				cells[j] = TableCell{Content: ShiftInlines(c.Content, f)}
			}
			rows[i] = TableRow{Cells: cells, Header: r.Header}
		}
		return NewTable(rows, f.span(v.span))
	case *Footnotes:
		defs := make([]FootnoteDef, len(v.Defs))
		for i, d := range v.Defs {
			defs[i] = FootnoteDef{Label: d.Label, Blocks: ShiftBlocks(d.Blocks, f)}
		}
		return NewFootnotes(defs, f.span(v.span))
	case *MathBlock:
		return NewMathBlock(v.Display, v.Content, f.span(v.span))
	case *ThematicBreak:
		return NewThematicBreak(f.span(v.span))
	case *HtmlBlock:
		return NewHtmlBlock(v.Content, f.span(v.span))
	case *RawBlock:
		return NewRawBlock(v.Content, f.span(v.span))
	default:
		return b
	}
}

func shiftInline(in Inline, f ShiftFunc) Inline {
	switch v := in.(type) {
	case *Text:
		return NewText(v.Content, f.span(v.span))
	case *Emphasis:
		return NewEmphasis(ShiftInlines(v.Content, f), f.span(v.span))
	case *Strong:
		return NewStrong(ShiftInlines(v.Content, f), f.span(v.span))
	case *Strikethrough:
		return NewStrikethrough(ShiftInlines(v.Content, f), f.span(v.span))
	case *CodeSpan:
		return NewCodeSpan(v.Content, f.span(v.span))
	case *Link:
		return NewLink(ShiftInlines(v.Label, f), v.URL, v.Title, f.span(v.span))
	case *AutoLink:
		return NewAutoLink(v.URL, f.span(v.span))
	case *FootnoteRef:
		return NewFootnoteRef(v.Label, f.span(v.span))
	case *HardBreak:
		return NewHardBreak(f.span(v.span))
	case *SoftBreak:
		return NewSoftBreak(f.span(v.span))
	default:
		return in
	}
}
