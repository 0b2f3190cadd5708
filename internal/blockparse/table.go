package blockparse

import (
	"regexp"
	"strings"

	"github.com/nssalian/litedoc-go/ast"
	"github.com/nssalian/litedoc-go/internal/cursor"
	"github.com/nssalian/litedoc-go/internal/inlineparse"
)

var delimCellRE = regexp.MustCompile(`^:?-+:?$`)

// rawCell is one pipe-separated cell of a table row, together with the
// byte offset (relative to the row's line) of its first non-whitespace
// content byte, so inline spans remain accurate.
type rawCell struct {
	text string
	off  int
}

func splitTableRow(line []byte) []rawCell {
	trimmed := line
	leadAdj := 0
	if len(trimmed) > 0 && trimmed[0] == '|' {
		trimmed = trimmed[1:]
		leadAdj = 1
	}
	if len(trimmed) > 0 && trimmed[len(trimmed)-1] == '|' {
		trimmed = trimmed[:len(trimmed)-1]
	}

	var cells []rawCell
	start := 0
	for i := 0; i <= len(trimmed); i++ {
		if i == len(trimmed) || trimmed[i] == '|' {
			raw := trimmed[start:i]
			text := strings.TrimSpace(string(raw))
			leading := len(raw) - len(strings.TrimLeft(string(raw), " \t"))
			cells = append(cells, rawCell{text: text, off: leadAdj + start + leading})
			start = i + 1
		}
	}
	return cells
}

func isDelimiterRow(cells []rawCell) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !delimCellRE.MatchString(c.text) {
			return false
		}
	}
	return true
}

type tableRawRow struct {
	cells     []rawCell
	lineStart int
	lineEnd   int
}

// buildTable parses a `::table` body: pipe-separated rows, with the
// second row (if composed entirely of delimiter cells) marking the
// preceding row as header and then being discarded.
func buildTable(c *cursor.Cursor, adiags []ast.Diagnostic, modules ast.ModuleSet, start int, closer StopFunc) (ast.Block, []ast.Diagnostic, bool) {
	var rows []tableRawRow
	for {
		c.SkipBlankLines()
		if c.Eof() {
			adiags = append(adiags, unterminatedFenceDiag(start, c.Offset()))
			return nil, adiags, true
		}
		if closer(c.PeekLine()) {
			break
		}
		lineStart := c.Offset()
		line := c.PeekLine()
		cells := splitTableRow(line)
		c.ConsumeLine()
		rows = append(rows, tableRawRow{cells: cells, lineStart: lineStart, lineEnd: c.Offset()})
	}

	headerIdx := -1
	if len(rows) >= 2 && isDelimiterRow(rows[1].cells) {
		headerIdx = 0
	}
	expectedCols := 0
	if len(rows) > 0 {
		expectedCols = len(rows[0].cells)
	}

	// A row with a different cell count than the first row makes the
	// whole table malformed: rather than keep a semantic Table with a
	// ragged row inside it, bail out through the fatal-recovery path so
	// the caller replaces the entire block with a RawBlock. The closer
	// is still unconsumed here, so the recovery scan stops exactly at
	// the end of the fence.
	for i, r := range rows {
		if headerIdx == 0 && i == 1 {
			continue
		}
		if len(r.cells) != expectedCols {
			adiags = append(adiags, ast.Diagnostic{
				Kind:    ast.DiagBadTable,
				Span:    ast.Span{Start: r.lineStart, End: r.lineEnd},
				Message: "table row has a different number of cells than the first row",
			})
			return nil, adiags, true
		}
	}
	c.ConsumeLine()

	var out []ast.TableRow
	for i, r := range rows {
		if headerIdx == 0 && i == 1 {
			continue
		}
		var tcells []ast.TableCell
		for _, rc := range r.cells {
			inlines, idiags := inlineparse.Parse([]byte(rc.text), r.lineStart+rc.off, modules)
			adiags = append(adiags, idiags...)
			tcells = append(tcells, ast.TableCell{Content: inlines})
		}
		out = append(out, ast.TableRow{Cells: tcells, Header: headerIdx == 0 && i == 0})
	}
	return ast.NewTable(out, c.Mint(start)), adiags, false
}
