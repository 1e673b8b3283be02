package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/jsontab"
	"github.com/bjaus/jsontab/internal/cli"
)

const assetsJSON = `{
	"asset1": {"name": "asset1", "parsed": 2, "gzipped": 1},
	"asset2": {"name": "asset2", "parsed": 4, "gzipped": 3}
}`

func newApp(stdin string) (*cli.App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	app := &cli.App{
		Stdin:   strings.NewReader(stdin),
		Stdout:  &stdout,
		Stderr:  &stderr,
		Version: "test",
	}
	return app, &stdout, &stderr
}

func TestColumnsFromFlags(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(assetsJSON)
	err := app.Execute(context.Background(), []string{
		"--format", "markdown",
		"--column", "Asset=name",
		"--column", "Parsed=parsed",
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"| Asset  | Parsed |",
		"| ------ | ------ |",
		"| asset1 | 2      |",
		"| asset2 | 4      |",
	}, "\n")+"\n", stdout.String())
}

func TestColumnWithoutHeaderUsesPath(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(assetsJSON)
	err := app.Execute(context.Background(), []string{"-f", "markdown", "--column", "name"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout.String(), "| name   |\n"), stdout.String())
}

func TestDefaultFormatIsMarkdownWhenNotATerminal(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(assetsJSON)
	require.NoError(t, app.Execute(context.Background(), []string{"--column", "Asset=name"}))
	assert.Contains(t, stdout.String(), "| ------ |")
}

func TestConsoleFormat(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(assetsJSON)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "console", "--border", "ascii", "--column", "Asset=name"}))
	bold := jsontab.StyleBold.Apply
	assert.Equal(t, strings.Join([]string{
		"+--------+",
		"| " + bold("Asset ") + " |",
		"+--------+",
		"| asset1 |",
		"| asset2 |",
		"+--------+",
	}, "\n")+"\n", stdout.String())
}

func TestOptionsFileAndInputFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	optsPath := filepath.Join(dir, "table.yaml")
	dataPath := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(optsPath, []byte(`
collection: ..assets
tableHeaders: [Asset, Saved]
columns:
  - name
  - datasets: [parsed, gzipped]
    valueTransform: diff
`), 0o600))
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"stats": {"assets": `+assetsJSON+`}}`), 0o600))

	app, stdout, _ := newApp("")
	require.NoError(t, app.Execute(context.Background(), []string{"-c", optsPath, "-f", "markdown", dataPath}))
	assert.Equal(t, strings.Join([]string{
		"| Asset  | Saved |",
		"| ------ | ----- |",
		"| asset1 | 1     |",
		"| asset2 | 1     |",
	}, "\n")+"\n", stdout.String())
}

func TestCollectionFlagOverridesOptions(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(`{"old": [{"n": "old"}], "new": [{"n": "new"}]}`)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "markdown", "--collection", "new", "--column", "N=n"}))
	assert.Contains(t, stdout.String(), "| new |")
	assert.NotContains(t, stdout.String(), "old")
}

func TestQueryFlag(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(`{"report": {"assets": [{"name": "a"}, {"name": "b"}]}}`)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "markdown", "-q", ".report.assets", "--column", "Name=name"}))
	assert.Equal(t, "| Name |\n| ---- |\n| a    |\n| b    |\n", stdout.String())
}

func TestQueryFlagInvalid(t *testing.T) {
	t.Parallel()
	app, _, stderr := newApp(assetsJSON)
	err := app.Execute(context.Background(), []string{"-q", ".[", "--column", "Name=name"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --query")
	assert.Contains(t, stderr.String(), "jsontab failed")
}

func TestJSONPathFlag(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(`{"items": [{"id": 1, "tags": ["x", "y"]}]}`)
	require.NoError(t, app.Execute(context.Background(), []string{
		"-f", "markdown", "--jsonpath", "--collection", "items", "--column", "Tag=tags[*]",
	}))
	assert.Contains(t, stdout.String(), "| x   |")
}

func TestMissingColumns(t *testing.T) {
	t.Parallel()
	app, stdout, stderr := newApp(assetsJSON)
	err := app.Execute(context.Background(), []string{"-f", "markdown"})
	require.ErrorIs(t, err, jsontab.ErrMissingColumns)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `"level":"error"`)
}

func TestInvalidFormat(t *testing.T) {
	t.Parallel()
	app, _, _ := newApp(assetsJSON)
	err := app.Execute(context.Background(), []string{"-f", "html", "--column", "A=name"})
	assert.ErrorIs(t, err, jsontab.ErrUnsupportedFormat)
}

func TestInvalidInput(t *testing.T) {
	t.Parallel()
	app, _, _ := newApp(`{"a": [1, 2}`)
	err := app.Execute(context.Background(), []string{"--column", "A=a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin")
}

func TestMissingInputFile(t *testing.T) {
	t.Parallel()
	app, _, _ := newApp("")
	err := app.Execute(context.Background(), []string{"--column", "A=a", filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read input")
}

func TestEmptyTableWritesNothing(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(`[]`)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "markdown", "--column", "A=a"}))
	assert.Empty(t, stdout.String())
}

func TestVerboseLogsDebug(t *testing.T) {
	t.Parallel()
	app, _, stderr := newApp(assetsJSON)
	require.NoError(t, app.Execute(context.Background(), []string{"-v", "-f", "markdown", "--column", "A=name"}))
	assert.Contains(t, stderr.String(), "rendering table")
	assert.Contains(t, stderr.String(), `"format":"markdown"`)
}

func TestVersionFlag(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp("")
	require.NoError(t, app.Execute(context.Background(), []string{"--version"}))
	assert.Contains(t, stdout.String(), "test")
}

func TestFormatFromEnvironment(t *testing.T) {
	t.Setenv("JSONTAB_FORMAT", "console")
	t.Setenv("JSONTAB_BORDER", "ascii")
	app, stdout, _ := newApp(assetsJSON)
	require.NoError(t, app.Execute(context.Background(), []string{"--column", "Asset=name"}))
	assert.True(t, strings.HasPrefix(stdout.String(), "+--------+\n"), stdout.String())
}

func TestFlagBeatsEnvironment(t *testing.T) {
	t.Setenv("JSONTAB_FORMAT", "console")
	app, stdout, _ := newApp(assetsJSON)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "markdown", "--column", "Asset=name"}))
	assert.True(t, strings.HasPrefix(stdout.String(), "| Asset  |\n"), stdout.String())
}

func TestRootCommandFlags(t *testing.T) {
	t.Parallel()
	app, _, _ := newApp("")
	cmd := app.RootCommand()
	assert.Equal(t, "jsontab", cmd.Name())
	for _, name := range []string{"config", "column", "collection", "format", "border", "jsonpath", "query", "log-level", "log-format", "verbose", "quiet", "no-color"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	assert.Equal(t, "f", cmd.Flags().Lookup("format").Shorthand)
}

func TestEscapedSlashInput(t *testing.T) {
	t.Parallel()
	app, stdout, _ := newApp(`[{"name": "a\/b"}]`)
	require.NoError(t, app.Execute(context.Background(), []string{"-f", "markdown", "--column", "Name=name"}))
	assert.Equal(t, "| Name |\n| ---- |\n| a/b  |\n", stdout.String())
}
