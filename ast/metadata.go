package ast

// Metadata is the typed key/value map produced by the leading
// `--- meta ---` fence, if present. It is always the first child of a
// Document when non-nil.
type Metadata struct {
	Attrs AttrMap
	span  Span
}

func NewMetadata(attrs AttrMap, span Span) *Metadata {
	return &Metadata{Attrs: attrs, span: span}
}
func (m *Metadata) Span() Span { return m.span }

// Get returns the value of the last metadata entry with the given key.
func (m *Metadata) Get(key string) (AttrValue, bool) {
	if m == nil {
		return AttrValue{}, false
	}
	return m.Attrs.Get(key)
}
