package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one table column. MaxWidth <= 0 means unbounded.
type Column struct {
	Title      string
	RightAlign bool
	MaxWidth   int
}

// FormatTable lays out rows under columns, padded to the widest cell by display
// width. Cells wider than a column's MaxWidth are cut with an ellipsis.
func FormatTable(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(columns))
	for i, c := range columns {
		header[i] = c.Title
	}
	cells = append(cells, header)
	for _, row := range rows {
		line := make([]string, len(columns))
		copy(line, row)
		cells = append(cells, line)
	}

	widths := make([]int, len(columns))
	for _, line := range cells {
		for i, cell := range line {
			if limit := columns[i].MaxWidth; limit > 0 && runewidth.StringWidth(cell) > limit {
				cell = runewidth.Truncate(cell, limit, "…")
				line[i] = cell
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := make([]string, 0, len(cells))
	for _, line := range cells {
		var b strings.Builder
		for i, cell := range line {
			if i > 0 {
				b.WriteByte(' ')
			}
			if columns[i].RightAlign {
				b.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				b.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return out
}
