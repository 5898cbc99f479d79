package rstfmt

import (
	"strings"

	"github.com/muesli/reflow/ansi"
)

// renderTable renders a grid table. Column widths come from the widest
// rendered line per column; the header section is closed with an "=" rule.
func (s *renderState) renderTable(n *Node, ctx context, path string) ([]string, error) {
	type cell struct {
		lines []string
	}
	var rows [][]cell
	var header []bool

	cols := 0
	for _, row := range n.Children {
		if row.Kind == KindRow && len(row.Children) > cols {
			cols = len(row.Children)
		}
	}
	if cols == 0 {
		return nil, treeErrorf(ErrMalformedTree, path, "table without rows")
	}

	// Provisional wrap width per cell, refined below by actual content.
	avail := ctx.width - ansi.PrintableRuneWidth(ctx.indent) - 1
	cellWidth := avail/cols - 3
	if cellWidth < 1 {
		cellWidth = 1
	}

	for i, row := range n.Children {
		rowPath := childPath(path, row, i)
		if row.Kind != KindRow {
			return nil, treeErrorf(ErrMalformedTree, rowPath, "%s inside a table", row.Kind)
		}
		cells := make([]cell, cols)
		for j, entry := range row.Children {
			entryPath := childPath(rowPath, entry, j)
			if entry.Kind != KindEntry {
				return nil, treeErrorf(ErrMalformedTree, entryPath, "%s inside a row", entry.Kind)
			}
			lines, err := s.renderBlocks(entry.Children, context{width: cellWidth}, entryPath)
			if err != nil {
				return nil, err
			}
			cells[j] = cell{lines: lines}
		}
		rows = append(rows, cells)
		header = append(header, row.Header)
	}

	widths := make([]int, cols)
	for _, row := range rows {
		for j, c := range row {
			for _, line := range c.lines {
				if w := ansi.PrintableRuneWidth(line); w > widths[j] {
					widths[j] = w
				}
			}
		}
	}

	rule := func(dash string) string {
		var b strings.Builder
		b.WriteString(ctx.indent)
		b.WriteByte('+')
		for _, w := range widths {
			b.WriteString(strings.Repeat(dash, w+2))
			b.WriteByte('+')
		}
		return b.String()
	}

	out := []string{rule("-")}
	for i, row := range rows {
		height := 0
		for _, c := range row {
			if len(c.lines) > height {
				height = len(c.lines)
			}
		}
		for li := 0; li < height; li++ {
			var b strings.Builder
			b.WriteString(ctx.indent)
			b.WriteByte('|')
			for j, c := range row {
				line := ""
				if li < len(c.lines) {
					line = c.lines[li]
				}
				pad := widths[j] - ansi.PrintableRuneWidth(line)
				b.WriteString(" " + line + strings.Repeat(" ", pad) + " |")
			}
			out = append(out, b.String())
		}
		if header[i] && (i+1 >= len(rows) || !header[i+1]) {
			out = append(out, rule("="))
		} else {
			out = append(out, rule("-"))
		}
	}
	return out, nil
}
