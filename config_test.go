package jsontab_test

import (
	"strings"
	"testing"

	"github.com/bjaus/jsontab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const optionsYAML = `
collection: ..assets
tableHeaders: [Asset, Parsed, Gzipped, Saved]
columns:
  - name
  - datasets: sizes.parsed
    hideRowIfFalsy: true
  - datasets: sizes.gzipped
    valueTransform: kilobytes
  - datasets: [sizes.parsed, sizes.gzipped]
    valueTransform: diff
border: ascii
align: [left, right]
`

const bundleJSON = `{
	"build": {"assets": [
		{"name": "main.js", "sizes": {"parsed": 5000, "gzipped": 1500}},
		{"name": "empty.js", "sizes": {"parsed": 0, "gzipped": 0}},
		{"name": "vendor.js", "sizes": {"parsed": 12000, "gzipped": 4000}}
	]}
}`

func TestLoadOptions(t *testing.T) {
	t.Parallel()
	opts, err := jsontab.LoadOptions(strings.NewReader(optionsYAML), jsontab.BuiltinTransforms())
	require.NoError(t, err)
	assert.Equal(t, "..assets", opts.Collection)
	assert.Equal(t, []string{"Asset", "Parsed", "Gzipped", "Saved"}, opts.Headers)
	assert.Equal(t, jsontab.BorderASCII, opts.Border)
	assert.Equal(t, []jsontab.Alignment{jsontab.AlignLeft, jsontab.AlignRight}, opts.Alignments)
	assert.Nil(t, opts.Resolver)
	require.Len(t, opts.Columns, 4)
	assert.Equal(t, jsontab.Path("name"), opts.Columns[0])
	assert.Equal(t, jsontab.Dataset{Path: "sizes.parsed", HideRowIfFalsy: true}, opts.Columns[1])

	ds, ok := opts.Columns[2].(jsontab.Dataset)
	require.True(t, ok)
	assert.Equal(t, "sizes.gzipped", ds.Path)
	require.NotNil(t, ds.Transform)

	multi, ok := opts.Columns[3].(jsontab.Datasets)
	require.True(t, ok)
	assert.Equal(t, []string{"sizes.parsed", "sizes.gzipped"}, multi.Paths)
	require.NotNil(t, multi.Transform)

	tbl, err := jsontab.Tabulate(decode(t, bundleJSON), opts, false)
	require.NoError(t, err)
	assert.Equal(t, [][]any{
		{"Asset", "Parsed", "Gzipped", "Saved"},
		{"main.js", 5000, 1.5, 3500.0},
		{"vendor.js", 12000, 4.0, 8000.0},
	}, values(tbl))
}

func TestLoadOptionsJSON(t *testing.T) {
	t.Parallel()
	doc := `{"tableHeaders": ["Asset"], "columns": ["name"], "resolver": "jsonpath"}`
	opts, err := jsontab.LoadOptions(strings.NewReader(doc), nil)
	require.NoError(t, err)
	assert.Equal(t, []jsontab.Column{jsontab.Path("name")}, opts.Columns)
	assert.Equal(t, jsontab.JSONPathResolver, opts.Resolver)
}

func TestLoadOptionsMissingKeysLeftNil(t *testing.T) {
	t.Parallel()
	opts, err := jsontab.LoadOptions(strings.NewReader("collection: assets\n"), nil)
	require.NoError(t, err)
	assert.Nil(t, opts.Headers)
	assert.Nil(t, opts.Columns)

	_, err = jsontab.Tabulate(decode(t, assetsJSON), opts, false)
	assert.ErrorIs(t, err, jsontab.ErrMissingHeaders)
}

func TestLoadOptionsEmpty(t *testing.T) {
	t.Parallel()
	opts, err := jsontab.LoadOptions(strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Equal(t, jsontab.Options{}, opts)
}

func TestLoadOptionsMultipleDatasetsWithoutTransform(t *testing.T) {
	t.Parallel()
	doc := "tableHeaders: [A]\ncolumns:\n  - datasets: [a, b]\n"
	opts, err := jsontab.LoadOptions(strings.NewReader(doc), nil)
	require.NoError(t, err)
	_, err = jsontab.Tabulate(decode(t, assetsJSON), opts, false)
	assert.ErrorIs(t, err, jsontab.ErrTransformRequired)
}

func TestLoadOptionsErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"unknown transform", "columns:\n  - datasets: a\n    valueTransform: nope\n", jsontab.ErrUnknownTransform},
		{"mapping without datasets", "columns:\n  - valueTransform: sum\n", jsontab.ErrInvalidColumn},
		{"numeric column", "columns:\n  - 42\n", jsontab.ErrInvalidColumn},
		{"nested list column", "columns:\n  - [a, b]\n", jsontab.ErrInvalidColumn},
		{"datasets mapping", "columns:\n  - datasets: {a: b}\n", jsontab.ErrInvalidColumn},
		{"unknown resolver", "resolver: xpath\n", jsontab.ErrConfig},
		{"unknown alignment", "align: [middle]\n", jsontab.ErrConfig},
		{"unknown border", "border: dotted\n", jsontab.ErrUnsupportedBorder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := jsontab.LoadOptions(strings.NewReader(tt.doc), jsontab.BuiltinTransforms())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadOptionsSyntaxError(t *testing.T) {
	t.Parallel()
	_, err := jsontab.LoadOptions(strings.NewReader("columns: [a, b\n"), nil)
	assert.Error(t, err)
}
