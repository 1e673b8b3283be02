package jsontab

// Column describes how one table column is extracted from a collection
// element. It is implemented by [Path], [Dataset] and [Datasets].
type Column interface {
	column()
}

// Path extracts the first value matched by a path expression.
type Path string

// Dataset extracts one value and optionally transforms it.
type Dataset struct {
	// Path is the expression resolved against each collection element.
	Path string

	// Transform, when set, receives the resolved value (nil when nothing
	// matched) and returns the cell value.
	Transform func(any) any

	// HideRowIfFalsy drops the whole row when the cell value is falsy.
	HideRowIfFalsy bool
}

// Datasets resolves several paths and combines them with Transform, which
// receives the resolved values in the order of Paths.
type Datasets struct {
	Paths          []string
	Transform      func(...any) any
	HideRowIfFalsy bool
}

func (Path) column()     {}
func (Dataset) column()  {}
func (Datasets) column() {}

// Options configures a table.
type Options struct {
	// Headers labels the columns. Must have the same length as Columns.
	Headers []string

	// Columns extracts one cell per header from each collection element.
	Columns []Column

	// Collection locates the row collection inside the data. Empty means
	// the data itself is the collection.
	Collection string

	// Resolver compiles path expressions. Default: DefaultResolver.
	Resolver Resolver

	// Border is the console border style. Default: BorderRounded.
	Border BorderStyle

	// Alignments sets per-column alignment for console and Markdown output.
	// Default: AlignLeft.
	Alignments []Alignment
}

// BorderStyle controls console table border characters.
type BorderStyle int

const (
	BorderRounded BorderStyle = iota // ╭─╮╰╯│┬┴├┤┼
	BorderNone                       // No borders, space-separated columns
	BorderASCII                      // +-+|
	BorderHeavy                      // ┏━┓┗┛┃┳┻┣┫╋
	BorderDouble                     // ╔═╗╚╝║╦╩╠╣╬
)

var borderNames = map[string]BorderStyle{
	"rounded": BorderRounded,
	"none":    BorderNone,
	"ascii":   BorderASCII,
	"heavy":   BorderHeavy,
	"double":  BorderDouble,
}

// Alignment controls column text alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)
