// Package serialize converts a parsed Document into the canonical JSON
// form: "type" first, then semantic fields in Document/Block/Inline
// declaration order, then "span" last. Go's
// encoding/json preserves struct field declaration order, so each node
// kind is converted to a small anonymous struct literal in that order
// rather than a map (map keys would be sorted alphabetically, losing the
// required ordering).
package serialize

import (
	"encoding/json"

	"github.com/nssalian/litedoc-go/ast"
)

// Marshal renders doc as canonical JSON.
func Marshal(doc *ast.Document) ([]byte, error) {
	return json.Marshal(documentJSON(doc))
}

// MarshalIndent is Marshal with indentation, for human-facing CLI output.
func MarshalIndent(doc *ast.Document, prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(documentJSON(doc), prefix, indent)
}

func documentJSON(d *ast.Document) any {
	return struct {
		Type     string   `json:"type"`
		Profile  string   `json:"profile"`
		Modules  []string `json:"modules"`
		Metadata any      `json:"metadata,omitempty"`
		Blocks   []any    `json:"blocks"`
		Span     ast.Span `json:"span"`
	}{
		Type:     "document",
		Profile:  string(d.Profile),
		Modules:  d.Modules.Names(),
		Metadata: metadataJSON(d.Metadata),
		Blocks:   blocksJSON(d.Blocks),
		Span:     d.Span(),
	}
}

func metadataJSON(m *ast.Metadata) any {
	if m == nil {
		return nil
	}
	return struct {
		Type  string      `json:"type"`
		Attrs ast.AttrMap `json:"attrs"`
		Span  ast.Span    `json:"span"`
	}{"metadata", m.Attrs, m.Span()}
}

func blocksJSON(blocks []ast.Block) []any {
	out := make([]any, len(blocks))
	for i, b := range blocks {
		out[i] = blockJSON(b)
	}
	return out
}

func inlinesJSON(inlines []ast.Inline) []any {
	out := make([]any, len(inlines))
	for i, in := range inlines {
		out[i] = inlineJSON(in)
	}
	return out
}

func blockJSON(b ast.Block) any {
	switch v := b.(type) {
	case *ast.Heading:
		return struct {
			Type    string   `json:"type"`
			Level   int      `json:"level"`
			Content []any    `json:"content"`
			Span    ast.Span `json:"span"`
		}{"heading", v.Level, inlinesJSON(v.Content), v.Span()}
	case *ast.Paragraph:
		return struct {
			Type    string   `json:"type"`
			Content []any    `json:"content"`
			Span    ast.Span `json:"span"`
		}{"paragraph", inlinesJSON(v.Content), v.Span()}
	case *ast.List:
		return struct {
			Type  string   `json:"type"`
			Kind  string   `json:"kind"`
			Start *uint64  `json:"start,omitempty"`
			Items []any    `json:"items"`
			Span  ast.Span `json:"span"`
		}{"list", listKindName(v.Kind), v.Start, listItemsJSON(v.Items), v.Span()}
	case *ast.ListItem:
		return listItemJSON(v)
	case *ast.CodeBlock:
		return struct {
			Type    string   `json:"type"`
			Lang    string   `json:"lang,omitempty"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"code_block", v.Lang, v.Content, v.Span()}
	case *ast.Callout:
		return struct {
			Type   string   `json:"type"`
			Kind   string   `json:"kind,omitempty"`
			Title  string   `json:"title,omitempty"`
			Blocks []any    `json:"blocks"`
			Span   ast.Span `json:"span"`
		}{"callout", v.Kind, v.Title, blocksJSON(v.Blocks), v.Span()}
	case *ast.Quote:
		return struct {
			Type   string   `json:"type"`
			Blocks []any    `json:"blocks"`
			Span   ast.Span `json:"span"`
		}{"quote", blocksJSON(v.Blocks), v.Span()}
	case *ast.Figure:
		return struct {
			Type    string   `json:"type"`
			Src     string   `json:"src"`
			Alt     string   `json:"alt,omitempty"`
			Caption string   `json:"caption,omitempty"`
			Span    ast.Span `json:"span"`
		}{"figure", v.Src, v.Alt, v.Caption, v.Span()}
	case *ast.Table:
		return struct {
			Type string   `json:"type"`
			Rows []any    `json:"rows"`
			Span ast.Span `json:"span"`
		}{"table", tableRowsJSON(v.Rows), v.Span()}
	case *ast.Footnotes:
		return struct {
			Type string   `json:"type"`
			Defs []any    `json:"defs"`
			Span ast.Span `json:"span"`
		}{"footnotes", footnoteDefsJSON(v.Defs), v.Span()}
	case *ast.MathBlock:
		return struct {
			Type    string   `json:"type"`
			Display bool     `json:"display"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"math_block", v.Display, v.Content, v.Span()}
	case *ast.ThematicBreak:
		return struct {
			Type string   `json:"type"`
			Span ast.Span `json:"span"`
		}{"thematic_break", v.Span()}
	case *ast.HtmlBlock:
		return struct {
			Type    string   `json:"type"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"html_block", v.Content, v.Span()}
	case *ast.RawBlock:
		return struct {
			Type    string   `json:"type"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"raw_block", v.Content, v.Span()}
	default:
		return nil
	}
}

func listKindName(k ast.ListKind) string {
	if k == ast.Ordered {
		return "ordered"
	}
	return "unordered"
}

func listItemsJSON(items []*ast.ListItem) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = listItemJSON(it)
	}
	return out
}

func listItemJSON(it *ast.ListItem) any {
	return struct {
		Type   string   `json:"type"`
		Blocks []any    `json:"blocks"`
		Span   ast.Span `json:"span"`
	}{"list_item", blocksJSON(it.Blocks), it.Span()}
}

func tableRowsJSON(rows []ast.TableRow) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		cells := make([]any, len(r.Cells))
		for j, c := range r.Cells {
			cells[j] = struct {
				Content []any `json:"content"`
			}{inlinesJSON(c.Content)}
		}
		out[i] = struct {
			Cells  []any `json:"cells"`
			Header bool  `json:"header"`
		}{cells, r.Header}
	}
	return out
}

func footnoteDefsJSON(defs []ast.FootnoteDef) []any {
	out := make([]any, len(defs))
	for i, d := range defs {
		out[i] = struct {
			Label  string `json:"label"`
			Blocks []any  `json:"blocks"`
		}{d.Label, blocksJSON(d.Blocks)}
	}
	return out
}

func inlineJSON(in ast.Inline) any {
	switch v := in.(type) {
	case *ast.Text:
		return struct {
			Type    string   `json:"type"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"text", v.Content, v.Span()}
	case *ast.Emphasis:
		return struct {
			Type    string   `json:"type"`
			Content []any    `json:"content"`
			Span    ast.Span `json:"span"`
		}{"emphasis", inlinesJSON(v.Content), v.Span()}
	case *ast.Strong:
		return struct {
			Type    string   `json:"type"`
			Content []any    `json:"content"`
			Span    ast.Span `json:"span"`
		}{"strong", inlinesJSON(v.Content), v.Span()}
	case *ast.Strikethrough:
		return struct {
			Type    string   `json:"type"`
			Content []any    `json:"content"`
			Span    ast.Span `json:"span"`
		}{"strikethrough", inlinesJSON(v.Content), v.Span()}
	case *ast.CodeSpan:
		return struct {
			Type    string   `json:"type"`
			Content string   `json:"content"`
			Span    ast.Span `json:"span"`
		}{"code_span", v.Content, v.Span()}
	case *ast.Link:
		return struct {
			Type  string   `json:"type"`
			Label []any    `json:"label"`
			URL   string   `json:"url"`
			Title string   `json:"title,omitempty"`
			Span  ast.Span `json:"span"`
		}{"link", inlinesJSON(v.Label), v.URL, v.Title, v.Span()}
	case *ast.AutoLink:
		return struct {
			Type string   `json:"type"`
			URL  string   `json:"url"`
			Span ast.Span `json:"span"`
		}{"autolink", v.URL, v.Span()}
	case *ast.FootnoteRef:
		return struct {
			Type  string   `json:"type"`
			Label string   `json:"label"`
			Span  ast.Span `json:"span"`
		}{"footnote_ref", v.Label, v.Span()}
	case *ast.HardBreak:
		return struct {
			Type string   `json:"type"`
			Span ast.Span `json:"span"`
		}{"hard_break", v.Span()}
	case *ast.SoftBreak:
		return struct {
			Type string   `json:"type"`
			Span ast.Span `json:"span"`
		}{"soft_break", v.Span()}
	default:
		return nil
	}
}
