package ast

// Block is the sum type of every top-level structural unit: Heading,
// Paragraph, List, CodeBlock, Callout, Quote, Figure, Table, Footnotes,
// MathBlock, ThematicBreak, HtmlBlock, and RawBlock (recovery only).
//
// The unexported blockNode method seals the interface to this package's
// concrete types, the idiomatic Go stand-in for a closed sum type — no
// visitor hierarchy is needed.
type Block interface {
	Span() Span
	blockNode()
}

// ListKind discriminates an ordered from an unordered List.
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

// Heading is a `#{1..6}` block; Level is the number of leading `#` bytes.
type Heading struct {
	Level   int
	Content []Inline
	span    Span
}

func NewHeading(level int, content []Inline, span Span) *Heading {
	return &Heading{Level: level, Content: content, span: span}
}
func (h *Heading) Span() Span { return h.span }
func (*Heading) blockNode()   {}

// Paragraph is a run of consecutive non-blank lines that do not themselves
// classify as another block.
type Paragraph struct {
	Content []Inline
	span    Span
}

func NewParagraph(content []Inline, span Span) *Paragraph {
	return &Paragraph{Content: content, span: span}
}
func (p *Paragraph) Span() Span { return p.span }
func (*Paragraph) blockNode()   {}

// ListItem is one entry of a List; Blocks holds its nested block content.
type ListItem struct {
	Blocks []Block
	span   Span
}

func NewListItem(blocks []Block, span Span) *ListItem {
	return &ListItem{Blocks: blocks, span: span}
}
func (i *ListItem) Span() Span { return i.span }
func (*ListItem) blockNode()   {}

// List is a fenced `::list` block. Start is present iff Kind is Ordered
// and an explicit `start=` attribute was given.
type List struct {
	Kind  ListKind
	Start *uint64
	Items []*ListItem
	span  Span
}

func NewList(kind ListKind, start *uint64, items []*ListItem, span Span) *List {
	return &List{Kind: kind, Start: start, Items: items, span: span}
}
func (l *List) Span() Span { return l.span }
func (*List) blockNode()   {}

// CodeBlock is a fenced ``` block. Lang is empty when no language tag was
// given on the opener.
type CodeBlock struct {
	Lang    string
	Content string
	span    Span
}

func NewCodeBlock(lang, content string, span Span) *CodeBlock {
	return &CodeBlock{Lang: lang, Content: content, span: span}
}
func (c *CodeBlock) Span() Span { return c.span }
func (*CodeBlock) blockNode()   {}

// Callout is a fenced `::callout` block with an optional kind/title.
type Callout struct {
	Kind   string
	Title  string
	Blocks []Block
	span   Span
}

func NewCallout(kind, title string, blocks []Block, span Span) *Callout {
	return &Callout{Kind: kind, Title: title, Blocks: blocks, span: span}
}
func (c *Callout) Span() Span { return c.span }
func (*Callout) blockNode()   {}

// Quote is a fenced `::quote` block.
type Quote struct {
	Blocks []Block
	span   Span
}

func NewQuote(blocks []Block, span Span) *Quote {
	return &Quote{Blocks: blocks, span: span}
}
func (q *Quote) Span() Span { return q.span }
func (*Quote) blockNode()   {}

// Figure is a self-contained fenced `::figure` block.
type Figure struct {
	Src     string
	Alt     string
	Caption string
	span    Span
}

func NewFigure(src, alt, caption string, span Span) *Figure {
	return &Figure{Src: src, Alt: alt, Caption: caption, span: span}
}
func (f *Figure) Span() Span { return f.span }
func (*Figure) blockNode()   {}

// TableCell is one cell of a Table row.
type TableCell struct {
	Content []Inline
}

// TableRow is one row of a Table; Header marks the row as a header row
// (the row immediately preceding a `:?-+:?` delimiter row).
type TableRow struct {
	Cells  []TableCell
	Header bool
}

// Table is a fenced `::table` block of pipe-separated rows.
type Table struct {
	Rows []TableRow
	span Span
}

func NewTable(rows []TableRow, span Span) *Table {
	return &Table{Rows: rows, span: span}
}
func (t *Table) Span() Span { return t.span }
func (*Table) blockNode()   {}

// FootnoteDef is one `[^label]:` entry of a Footnotes block.
type FootnoteDef struct {
	Label  string
	Blocks []Block
}

// Footnotes is a fenced `::footnotes` block.
type Footnotes struct {
	Defs []FootnoteDef
	span Span
}

func NewFootnotes(defs []FootnoteDef, span Span) *Footnotes {
	return &Footnotes{Defs: defs, span: span}
}
func (f *Footnotes) Span() Span { return f.span }
func (*Footnotes) blockNode()   {}

// MathBlock is a fenced `::math` block; Display marks block-display math.
// Content is captured verbatim (no inline parsing, no escape processing).
type MathBlock struct {
	Display bool
	Content string
	span    Span
}

func NewMathBlock(display bool, content string, span Span) *MathBlock {
	return &MathBlock{Display: display, Content: content, span: span}
}
func (m *MathBlock) Span() Span { return m.span }
func (*MathBlock) blockNode()   {}

// ThematicBreak is a lone `---` line outside the metadata-first position.
type ThematicBreak struct {
	span Span
}

func NewThematicBreak(span Span) *ThematicBreak { return &ThematicBreak{span: span} }
func (t *ThematicBreak) Span() Span             { return t.span }
func (*ThematicBreak) blockNode()               {}

// HtmlBlock is a raw HTML block, recognized only when the html module is
// enabled.
type HtmlBlock struct {
	Content string
	span    Span
}

func NewHtmlBlock(content string, span Span) *HtmlBlock {
	return &HtmlBlock{Content: content, span: span}
}
func (h *HtmlBlock) Span() Span { return h.span }
func (*HtmlBlock) blockNode()   {}

// RawBlock carries the source slice of a region the parser could not
// construct a typed block for. It is emitted only by the Error Recovery
// component.
type RawBlock struct {
	Content string
	span    Span
}

func NewRawBlock(content string, span Span) *RawBlock {
	return &RawBlock{Content: content, span: span}
}
func (r *RawBlock) Span() Span { return r.span }
func (*RawBlock) blockNode()   {}
