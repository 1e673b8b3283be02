package jsontab

import "fmt"

// extractor produces one cell value per collection element. hide is true
// when the row must be dropped.
type extractor func(elem any) (value any, hide bool)

// Tabulate projects data into a table using opts. When style is true the
// header cells are bold and missing values are red.
//
// Configuration mistakes are reported before any value is extracted and
// wrap [ErrConfig]. Missing data is not an error: a falsy cell becomes
// [MissingValue], or drops its row when the column sets HideRowIfFalsy.
// If no row survives, the result is empty and has no header.
func Tabulate(data any, opts Options, style bool) (Table, error) {
	if data == nil || !isContainer(data) {
		return nil, ErrMissingData
	}
	if opts.Headers == nil {
		return nil, ErrMissingHeaders
	}
	if opts.Columns == nil {
		return nil, ErrMissingColumns
	}
	if len(opts.Headers) != len(opts.Columns) {
		return nil, fmt.Errorf("%w: %d headers, %d columns", ErrColumnMismatch, len(opts.Headers), len(opts.Columns))
	}

	resolver := opts.Resolver
	if resolver == nil {
		resolver = DefaultResolver
	}

	extractors := make([]extractor, len(opts.Columns))
	for i, col := range opts.Columns {
		ex, err := compileColumn(resolver, col)
		if err != nil {
			return nil, fmt.Errorf("column %d (%q): %w", i, opts.Headers[i], err)
		}
		extractors[i] = ex
	}

	collection := data
	if opts.Collection != "" {
		q, err := resolver.Compile(opts.Collection)
		if err != nil {
			return nil, fmt.Errorf("collection: %w", err)
		}
		collection, _ = q.First(data)
	}
	elems, ok := entries(collection)
	if !ok {
		return nil, fmt.Errorf("%w: %q resolves to %T", ErrInvalidCollection, opts.Collection, collection)
	}

	headerStyle, missingStyle := StyleNone, StyleNone
	if style {
		headerStyle, missingStyle = StyleBold, StyleRed
	}

	var rows []Row
	for _, elem := range elems {
		row := make(Row, len(extractors))
		hidden := false
		for i, ex := range extractors {
			v, hide := ex(elem)
			if hide {
				hidden = true
				break
			}
			if Falsy(v) {
				row[i] = Cell{Value: MissingValue, Style: missingStyle}
				continue
			}
			row[i] = Cell{Value: v}
		}
		if !hidden {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return Table{}, nil
	}

	header := make(Row, len(opts.Headers))
	for i, h := range opts.Headers {
		header[i] = Cell{Value: h, Style: headerStyle}
	}
	table := make(Table, 0, len(rows)+1)
	table = append(table, header)
	return append(table, rows...), nil
}

func compileColumn(r Resolver, col Column) (extractor, error) {
	switch c := col.(type) {
	case Path:
		q, err := r.Compile(string(c))
		if err != nil {
			return nil, err
		}
		return func(elem any) (any, bool) {
			v, _ := q.First(elem)
			return v, false
		}, nil
	case Dataset:
		if c.Path == "" {
			return nil, fmt.Errorf("%w: dataset path is empty", ErrInvalidColumn)
		}
		q, err := r.Compile(c.Path)
		if err != nil {
			return nil, err
		}
		return func(elem any) (any, bool) {
			v, _ := q.First(elem)
			if c.Transform != nil {
				v = c.Transform(v)
			}
			return v, c.HideRowIfFalsy && Falsy(v)
		}, nil
	case Datasets:
		if len(c.Paths) == 0 {
			return nil, fmt.Errorf("%w: no dataset paths", ErrInvalidColumn)
		}
		if c.Transform == nil {
			return nil, ErrTransformRequired
		}
		qs := make([]Query, len(c.Paths))
		for i, p := range c.Paths {
			q, err := r.Compile(p)
			if err != nil {
				return nil, err
			}
			qs[i] = q
		}
		return func(elem any) (any, bool) {
			args := make([]any, len(qs))
			for i, q := range qs {
				args[i], _ = q.First(elem)
			}
			v := c.Transform(args...)
			return v, c.HideRowIfFalsy && Falsy(v)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidColumn, col)
	}
}
