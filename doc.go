// Package jsontab turns nested JSON-like data into tables.
//
// [Tabulate] projects a value onto rows using [Options]: a list of header
// labels, one [Column] per header, and an optional collection path naming
// the part of the data that holds the rows. Mappings contribute one row per
// value, sequences one row per item. [RenderConsole] and [RenderMarkdown]
// render the result.
//
//	data, _ := jsontab.Decode(stats)
//	out, err := jsontab.RenderMarkdown(data, jsontab.Options{
//		Collection: "..assets",
//		Headers:    []string{"Asset", "Parsed", "Gzipped"},
//		Columns: []jsontab.Column{
//			jsontab.Path("name"),
//			jsontab.Path("sizes.parsed"),
//			jsontab.Dataset{Path: "sizes.gzipped", HideRowIfFalsy: true},
//		},
//	})
//
// # Columns
//
// A column is one of:
//
//   - [Path]: the first value matched by a path expression
//   - [Dataset]: one path with an optional transform
//   - [Datasets]: several paths combined by a required transform
//
// Falsy cells (nil, false, "", zero) render as [MissingValue]. A [Dataset]
// or [Datasets] column with HideRowIfFalsy drops the whole row instead.
// When every row is dropped the table is empty and has no header.
//
// # Paths
//
// Expressions are resolved by a [Resolver]. Plain names ("a.b") and rooted
// paths ("$.a") are accepted, as are bracket selectors ("a[0]",
// "['a.b']"), wildcards and recursive descent ("..a"). When several values
// match, the first wins. [DefaultResolver] honours the key order of
// [Object] values produced by [Decode]; [JSONPathResolver] supports the
// full JSONPath language.
//
// # Options files
//
// [LoadOptions] reads options from YAML or JSON. Transforms are referenced
// by name; [BuiltinTransforms] provides a starter set.
//
// # Errors
//
// All configuration errors wrap [ErrConfig] and are reported before any
// value is extracted:
//
//   - [ErrMissingData]: data is not a mapping or sequence
//   - [ErrMissingHeaders], [ErrMissingColumns]: nil headers or columns
//   - [ErrColumnMismatch]: header and column counts differ
//   - [ErrInvalidColumn]: a column has no usable path
//   - [ErrTransformRequired]: [Datasets] without a transform
//   - [ErrInvalidPath]: an expression does not compile
//   - [ErrInvalidCollection]: the collection is not a mapping or sequence
//   - [ErrUnknownTransform]: an options file names an unknown transform
package jsontab
