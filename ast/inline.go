package ast

// Inline is the sum type of every structural unit within a block's textual
// content: Text, Emphasis, Strong, Strikethrough, CodeSpan, Link, AutoLink,
// FootnoteRef, HardBreak, SoftBreak.
type Inline interface {
	Span() Span
	inlineNode()
}

// Text is a run of literal text. Adjacent Text nodes are always coalesced
// by the inline parser, so no two Text siblings ever appear back to back.
type Text struct {
	Content string
	span    Span
}

func NewText(content string, span Span) *Text { return &Text{Content: content, span: span} }
func (t *Text) Span() Span                    { return t.span }
func (*Text) inlineNode()                     {}

// Emphasis is a `*...*` run.
type Emphasis struct {
	Content []Inline
	span    Span
}

func NewEmphasis(content []Inline, span Span) *Emphasis {
	return &Emphasis{Content: content, span: span}
}
func (e *Emphasis) Span() Span { return e.span }
func (*Emphasis) inlineNode()  {}

// Strong is a `**...**` run.
type Strong struct {
	Content []Inline
	span    Span
}

func NewStrong(content []Inline, span Span) *Strong {
	return &Strong{Content: content, span: span}
}
func (s *Strong) Span() Span { return s.span }
func (*Strong) inlineNode()  {}

// Strikethrough is a `~~...~~` run (strikethrough module only).
type Strikethrough struct {
	Content []Inline
	span    Span
}

func NewStrikethrough(content []Inline, span Span) *Strikethrough {
	return &Strikethrough{Content: content, span: span}
}
func (s *Strikethrough) Span() Span { return s.span }
func (*Strikethrough) inlineNode()  {}

// CodeSpan is a backtick-delimited inline code run. Content is borrowed
// from source and contains no unescaped inline markers — backtick runs
// suppress all other inline dispatch between the opener and its matching
// closer.
type CodeSpan struct {
	Content string
	span    Span
}

func NewCodeSpan(content string, span Span) *CodeSpan {
	return &CodeSpan{Content: content, span: span}
}
func (c *CodeSpan) Span() Span { return c.span }
func (*CodeSpan) inlineNode()  {}

// Link is a `[[label|url]]` or `[[url]]` construct. Label contains no
// nested Link or AutoLink (link nesting is forbidden while parsing the
// label side).
type Link struct {
	Label []Inline
	URL   string
	Title string
	span  Span
}

func NewLink(label []Inline, url, title string, span Span) *Link {
	return &Link{Label: label, URL: url, Title: title, span: span}
}
func (l *Link) Span() Span { return l.span }
func (*Link) inlineNode()  {}

// AutoLink is a `<scheme:...>` construct recognized only when the
// autolink module is enabled.
type AutoLink struct {
	URL  string
	span Span
}

func NewAutoLink(url string, span Span) *AutoLink {
	return &AutoLink{URL: url, span: span}
}
func (a *AutoLink) Span() Span { return a.span }
func (*AutoLink) inlineNode()  {}

// FootnoteRef is a `[^label]` reference.
type FootnoteRef struct {
	Label string
	span  Span
}

func NewFootnoteRef(label string, span Span) *FootnoteRef {
	return &FootnoteRef{Label: label, span: span}
}
func (f *FootnoteRef) Span() Span { return f.span }
func (*FootnoteRef) inlineNode()  {}

// HardBreak is a line break produced by a trailing "  " before a newline.
type HardBreak struct {
	span Span
}

func NewHardBreak(span Span) *HardBreak { return &HardBreak{span: span} }
func (h *HardBreak) Span() Span         { return h.span }
func (*HardBreak) inlineNode()          {}

// SoftBreak is a single line break within a paragraph with no trailing
// hard-break marker.
type SoftBreak struct {
	span Span
}

func NewSoftBreak(span Span) *SoftBreak { return &SoftBreak{span: span} }
func (s *SoftBreak) Span() Span         { return s.span }
func (*SoftBreak) inlineNode()          {}
