package jsontab

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

type borderChars struct {
	topLeft, topRight, bottomLeft, bottomRight string
	horizontal, vertical                       string
	topTee, bottomTee, leftTee, rightTee       string
	cross                                      string
}

var borderSets = map[BorderStyle]borderChars{
	BorderRounded: {
		topLeft: "╭", topRight: "╮", bottomLeft: "╰", bottomRight: "╯",
		horizontal: "─", vertical: "│",
		topTee: "┬", bottomTee: "┴", leftTee: "├", rightTee: "┤",
		cross: "┼",
	},
	BorderASCII: {
		topLeft: "+", topRight: "+", bottomLeft: "+", bottomRight: "+",
		horizontal: "-", vertical: "|",
		topTee: "+", bottomTee: "+", leftTee: "+", rightTee: "+",
		cross: "+",
	},
	BorderHeavy: {
		topLeft: "┏", topRight: "┓", bottomLeft: "┗", bottomRight: "┛",
		horizontal: "━", vertical: "┃",
		topTee: "┳", bottomTee: "┻", leftTee: "┣", rightTee: "┫",
		cross: "╋",
	},
	BorderDouble: {
		topLeft: "╔", topRight: "╗", bottomLeft: "╚", bottomRight: "╝",
		horizontal: "═", vertical: "║",
		topTee: "╦", bottomTee: "╩", leftTee: "╠", rightTee: "╣",
		cross: "╬",
	},
}

// writeTable draws t as a console table. Widths are measured on the
// unstyled text; cell styles are applied after padding so ANSI codes never
// affect layout.
func writeTable(w io.Writer, t Table, opts Options) error {
	if len(t) == 0 {
		return nil
	}
	if _, ok := borderSets[opts.Border]; !ok && opts.Border != BorderNone {
		return fmt.Errorf("%w: %d", ErrUnsupportedBorder, opts.Border)
	}
	widths := computeWidths(t)
	aligns := extendAligns(opts.Alignments, len(widths))

	if opts.Border == BorderNone {
		return renderPlainTable(w, t, widths, aligns)
	}
	return renderBorderedTable(w, t, widths, aligns, borderSets[opts.Border])
}

func computeWidths(t Table) []int {
	n := 0
	for _, row := range t {
		if len(row) > n {
			n = len(row)
		}
	}
	widths := make([]int, n)
	for _, row := range t {
		for i, cell := range row {
			for _, line := range cellLines(cell.Text()) {
				if w := runewidth.StringWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// cellLines splits cell text into the physical lines it occupies.
func cellLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

func extendAligns(aligns []Alignment, numCols int) []Alignment {
	if len(aligns) >= numCols {
		return aligns[:numCols]
	}
	extended := make([]Alignment, numCols)
	copy(extended, aligns)
	return extended
}

// formatCells pads every cell to its column width and applies its style.
// A cell holding several lines makes the row that many lines tall; the
// result has one entry per line.
func formatCells(row Row, widths []int, aligns []Alignment) [][]string {
	cols := make([][]string, len(widths))
	height := 1
	for i := range widths {
		if i < len(row) {
			cols[i] = cellLines(row[i].Text())
		}
		height = max(height, len(cols[i]))
	}
	lines := make([][]string, height)
	for l := range lines {
		lines[l] = make([]string, len(widths))
		for i, width := range widths {
			var text string
			var style Style
			if l < len(cols[i]) {
				text = cols[i][l]
			}
			if i < len(row) {
				style = row[i].Style
			}
			lines[l][i] = style.Apply(alignCell(text, width, aligns[i]))
		}
	}
	return lines
}

// --- Plain table (BorderNone) ---

func renderPlainTable(w io.Writer, t Table, widths []int, aligns []Alignment) error {
	if err := writePlainRow(w, t[0], widths, aligns); err != nil {
		return err
	}
	sep := make([]string, len(widths))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	if _, err := fmt.Fprintln(w, strings.Join(sep, "  ")); err != nil {
		return err
	}
	for _, row := range t.Body() {
		if err := writePlainRow(w, row, widths, aligns); err != nil {
			return err
		}
	}
	return nil
}

func writePlainRow(w io.Writer, row Row, widths []int, aligns []Alignment) error {
	for _, cells := range formatCells(row, widths, aligns) {
		line := strings.TrimRight(strings.Join(cells, "  "), " ")
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// --- Bordered table ---

func renderBorderedTable(w io.Writer, t Table, widths []int, aligns []Alignment, bc borderChars) error {
	if err := drawHLine(w, widths, bc.topLeft, bc.horizontal, bc.topTee, bc.topRight); err != nil {
		return err
	}
	if err := drawBorderedRow(w, t[0], widths, aligns, bc.vertical); err != nil {
		return err
	}
	if err := drawHLine(w, widths, bc.leftTee, bc.horizontal, bc.cross, bc.rightTee); err != nil {
		return err
	}
	for _, row := range t.Body() {
		if err := drawBorderedRow(w, row, widths, aligns, bc.vertical); err != nil {
			return err
		}
	}
	return drawHLine(w, widths, bc.bottomLeft, bc.horizontal, bc.bottomTee, bc.bottomRight)
}

func drawHLine(w io.Writer, widths []int, left, fill, mid, right string) error {
	var sb strings.Builder
	sb.WriteString(left)
	for i, width := range widths {
		sb.WriteString(strings.Repeat(fill, width+2))
		if i < len(widths)-1 {
			sb.WriteString(mid)
		}
	}
	sb.WriteString(right)
	_, err := fmt.Fprintln(w, sb.String())
	return err
}

func drawBorderedRow(w io.Writer, row Row, widths []int, aligns []Alignment, vert string) error {
	for _, cells := range formatCells(row, widths, aligns) {
		var sb strings.Builder
		sb.WriteString(vert)
		for i, cell := range cells {
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(" ")
			if i < len(widths)-1 {
				sb.WriteString(vert)
			}
		}
		sb.WriteString(vert)
		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func alignCell(s string, width int, align Alignment) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}
