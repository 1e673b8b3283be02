package jsontab

import "github.com/muesli/termenv"

// MissingValue replaces falsy cells in a finished table.
const MissingValue = "NO VALUE"

// Style is the terminal styling of a cell.
type Style int

const (
	StyleNone Style = iota
	StyleBold
	StyleRed
)

// Apply wraps s in the ANSI sequences for the style.
func (s Style) Apply(text string) string {
	switch s {
	case StyleBold:
		return termenv.ANSI.String(text).Bold().String()
	case StyleRed:
		return termenv.ANSI.String(text).Foreground(termenv.ANSIRed).String()
	default:
		return text
	}
}

// Cell is one table cell: a raw value plus the style to render it with.
type Cell struct {
	Value any
	Style Style
}

// Text returns the unstyled cell text.
func (c Cell) Text() string { return formatValue(c.Value) }

// String returns the cell text with its style applied.
func (c Cell) String() string { return c.Style.Apply(c.Text()) }

// Row is an ordered sequence of cells, one per column.
type Row []Cell

// Texts returns the unstyled text of every cell.
func (r Row) Texts() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.Text()
	}
	return out
}

// Styles returns each cell's style.
func (r Row) Styles() []Style {
	out := make([]Style, len(r))
	for i, c := range r {
		out[i] = c.Style
	}
	return out
}

// Table is a header row followed by data rows. An empty Table has no header.
type Table []Row

// Header returns the header row, or nil for an empty table.
func (t Table) Header() Row {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Body returns the data rows.
func (t Table) Body() []Row {
	if len(t) == 0 {
		return nil
	}
	return t[1:]
}

// Strings returns every row as styled strings, header first.
func (t Table) Strings() [][]string {
	out := make([][]string, len(t))
	for i, row := range t {
		out[i] = make([]string, len(row))
		for j, c := range row {
			out[i][j] = c.String()
		}
	}
	return out
}
