package ast

// Document is the root of a parsed LiteDoc tree. It owns the declared
// Profile, the enabled Module set, an optional Metadata node, and an
// ordered sequence of top-level Blocks.
//
// All nodes reachable from a Document are created during a single parser
// pass and never mutated afterward. Dropping the Document releases all
// owned strings; borrowed string payloads remain backed by the original
// source slice for as long as that slice is alive (Go's garbage collector
// keeps the backing array reachable through any live substring, so no
// explicit lifetime management is required here — unlike a language with
// manual memory management, "the source must stay alive for as long as
// the tree is in use" is enforced by the runtime itself rather than by
// the caller).
type Document struct {
	Profile  Profile
	Modules  ModuleSet
	Metadata *Metadata
	Blocks   []Block
	span     Span
}

func NewDocument(profile Profile, modules ModuleSet, meta *Metadata, blocks []Block, span Span) *Document {
	return &Document{Profile: profile, Modules: modules, Metadata: meta, Blocks: blocks, span: span}
}

func (d *Document) Span() Span { return d.span }
