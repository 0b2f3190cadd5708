// Package metaparse implements the Metadata Parser component: recognizing
// the leading `--- meta ---` fence and producing a typed ast.Metadata node.
package metaparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
)

var (
	metaOpenRE  = regexp.MustCompile(`^---\s+meta\s+---\s*$`)
	metaCloseRE = regexp.MustCompile(`^---\s*$`)
	identRE     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	intRE       = regexp.MustCompile(`^[+-]?[0-9]+$`)
	floatRE     = regexp.MustCompile(`^[+-]?[0-9]+\.[0-9]+$`)
	floatExpRE  = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?[eE][+-]?[0-9]+$`)
)

// Triggered reports whether the cursor's current line is exactly
// `--- meta ---` (trailing whitespace tolerated), without consuming
// anything. Leading blank lines are not skipped here; the caller does that.
func Triggered(c *cursor.Cursor) bool {
	return metaOpenRE.Match(c.PeekLine())
}

// Parse consumes a metadata fence starting at the cursor's current
// position (the caller must have already confirmed Triggered). It returns
// the parsed Metadata node and any diagnostics recorded while classifying
// malformed lines or an unterminated fence.
func Parse(c *cursor.Cursor) (*ast.Metadata, []ast.Diagnostic) {
	start := c.Offset()
	var diags []ast.Diagnostic

	// Consume the opening `--- meta ---` line.
	c.ConsumeLine()

	var attrs ast.AttrMap
	closed := false
	for !c.Eof() {
		lineStart := c.Offset()
		raw := c.PeekLine()
		if metaCloseRE.Match(raw) {
			c.ConsumeLine()
			closed = true
			break
		}
		c.ConsumeLine()

		line := strings.TrimSpace(string(raw))
		if line == "" {
			continue
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			diags = append(diags, ast.Diagnostic{
				Kind:    ast.DiagMalformedMetadata,
				Span:    ast.Span{Start: lineStart, End: c.Offset()},
				Message: "metadata line missing ':' separator",
			})
			continue
		}

		key := strings.TrimSpace(line[:idx])
		rawValue := strings.TrimSpace(line[idx+1:])

		if !identRE.MatchString(key) {
			diags = append(diags, ast.Diagnostic{
				Kind:    ast.DiagMalformedMetadata,
				Span:    ast.Span{Start: lineStart, End: c.Offset()},
				Message: "metadata key \"" + key + "\" is not a valid identifier",
			})
			continue
		}

		value, ok := classifyValue(rawValue)
		if !ok {
			diags = append(diags, ast.Diagnostic{
				Kind:    ast.DiagMalformedMetadata,
				Span:    ast.Span{Start: lineStart, End: c.Offset()},
				Message: "metadata value for \"" + key + "\" is malformed",
			})
			continue
		}

		attrs = append(attrs, ast.Attr{Key: key, Value: value})
	}

	if !closed {
		diags = append(diags, ast.Diagnostic{
			Kind:    ast.DiagUnexpectedEOF,
			Span:    ast.Span{Start: start, End: c.Offset()},
			Message: "metadata fence is not terminated by a closing \"---\" line",
		})
	}

	return ast.NewMetadata(attrs, c.Mint(start)), diags
}

// classifyValue classifies rawValue by trying, in order: quoted
// string, list, boolean, integer, float, bare string.
func classifyValue(raw string) (ast.AttrValue, bool) {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		s, ok := unquote(raw[1 : len(raw)-1])
		if !ok {
			return ast.AttrValue{}, false
		}
		return ast.StringAttr(s), true
	}

	if len(raw) >= 2 && raw[0] == '[' && raw[len(raw)-1] == ']' {
		items, ok := classifyList(raw[1 : len(raw)-1])
		if !ok {
			return ast.AttrValue{}, false
		}
		return ast.ListAttr(items), true
	}

	if raw == "true" {
		return ast.BoolAttr(true), true
	}
	if raw == "false" {
		return ast.BoolAttr(false), true
	}

	if intRE.MatchString(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			return ast.IntAttr(n), true
		}
	}

	if floatRE.MatchString(raw) {
		f, err := strconv.ParseFloat(raw, 64)
		if err == nil {
			return ast.FloatAttr(f), true
		}
	}

	// Exponent-form numbers (e.g. 1e10) are not accepted as floats, and are
	// reported as malformed rather than read as a bare string.
	if floatExpRE.MatchString(raw) {
		return ast.AttrValue{}, false
	}

	// Bare string: must contain none of the characters reserved for other
	// shapes, and must not have residual leading/trailing whitespace.
	trimmed := strings.TrimSpace(raw)
	if trimmed != raw || strings.ContainsAny(trimmed, ":#[],") {
		return ast.AttrValue{}, false
	}
	return ast.StringAttr(trimmed), true
}

// classifyList classifies the comma-separated scalar contents of a
// `[...]` metadata value.
func classifyList(inner string) ([]ast.AttrValue, bool) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return nil, true
	}
	parts := splitListItems(inner)
	items := make([]ast.AttrValue, 0, len(parts))
	for _, p := range parts {
		v, ok := classifyValue(strings.TrimSpace(p))
		if !ok {
			return nil, false
		}
		items = append(items, v)
	}
	return items, true
}

// splitListItems splits a list's inner content on top-level commas,
// respecting quoted strings so a comma inside a quoted scalar is not a
// separator.
func splitListItems(inner string) []string {
	var parts []string
	var buf strings.Builder
	inQuote := false
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '"' && (i == 0 || inner[i-1] != '\\'):
			inQuote = !inQuote
			buf.WriteByte(ch)
		case ch == ',' && !inQuote:
			parts = append(parts, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(ch)
		}
	}
	parts = append(parts, buf.String())
	return parts
}

// unquote decodes a quoted string's interior, processing \" and \\
// escapes; any other escape sequence is invalid.
func unquote(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", false
		}
		switch s[i] {
		case '"', '\\':
			b.WriteByte(s[i])
		default:
			return "", false
		}
	}
	return b.String(), true
}
