// Package table pads rows of text cells into aligned columns. The context
// menu uses it to line up visibility marks with entry labels.
package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Layout describes how rows are padded: one alignment per column (missing
// entries default to left) and the text separating adjacent columns.
type Layout struct {
	Alignments []Alignment
	Gutter     string
}

// Render pads every cell to the widest entry in its column. Rows may be
// ragged; a short row only contributes to the columns it has. The last
// cell of a left-aligned row is left unpadded so styled menu labels don't
// drag trailing spaces into their highlight.
func (l Layout) Render(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for c, cell := range row {
			pad := widths[c] - len([]rune(cell))
			if pad < 0 {
				pad = 0
			}
			switch {
			case l.alignment(c) == AlignRight:
				cells[c] = strings.Repeat(" ", pad) + cell
			case c == len(row)-1:
				cells[c] = cell
			default:
				cells[c] = cell + strings.Repeat(" ", pad)
			}
		}
		out[i] = strings.Join(cells, l.Gutter)
	}
	return out
}

func (l Layout) alignment(c int) Alignment {
	if c < len(l.Alignments) {
		return l.Alignments[c]
	}
	return AlignLeft
}

func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for c, cell := range row {
			for len(widths) <= c {
				widths = append(widths, 0)
			}
			if w := len([]rune(cell)); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}
