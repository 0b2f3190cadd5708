// Package ast defines the LiteDoc document model: source spans, attributes,
// the Document root, and the Block/Inline node sums produced by the parser.
package ast

import "encoding/json"

// Span is a half-open byte interval [Start, End) into the original source
// buffer. Every node carries exactly one Span covering all bytes it parsed,
// including fence markers and the trailing newline of a closing fence.
//
// Spans never overlap their siblings; a parent Span encloses every
// descendant Span.
type Span struct {
	Start int
	End   int
}

// MarshalJSON renders a Span as the canonical two-element array
// `[start, end]` required by the serialization format, rather than the
// field-name object Go's default struct encoding would produce.
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{s.Start, s.End})
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// Slice returns the bytes of src covered by s.
func (s Span) Slice(src []byte) []byte {
	return src[s.Start:s.End]
}

// Cover returns the smallest Span enclosing both s and o.
func Cover(s, o Span) Span {
	out := s
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}
