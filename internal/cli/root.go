package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bjaus/jsontab"
)

const rootLong = `Render nested JSON or YAML as a console or Markdown table.

Columns come from an options file (--config) or from repeated
--column "Header=path" flags. Paths are dotted ("stats.size"), bracketed
("files[0]") or recursive ("..gzipped"); the first match wins.

Every flag can also be set through a JSONTAB_* environment variable,
e.g. JSONTAB_FORMAT=markdown.`

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "jsontab [file]",
		Short:         "Render JSON data as a table",
		Long:          rootLong,
		Args:          cobra.MaximumNArgs(1),
		Version:       app.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			app.logger = NewLogger(&cfg.Log, app.Stderr)
			app.loggerReady = true
			return run(app, cfg, args)
		},
	}
	cmd.SetIn(app.Stdin)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	f := cmd.Flags()
	f.StringP("config", "c", "", "table options file (YAML or JSON)")
	f.StringArray("column", nil, `column as "Header=path"; repeatable, used without --config`)
	f.String("collection", "", "path to the row collection (overrides the options file)")
	f.StringP("format", "f", "", "output format: console or markdown (default: console on a terminal)")
	f.String("border", "", "console border: rounded, ascii, heavy, double or none")
	f.Bool("jsonpath", false, "resolve paths with the full JSONPath language")
	f.StringP("query", "q", "", "jq expression applied to the input first")
	f.String("log-level", "", "log level: trace, debug, info, warn or error")
	f.String("log-format", "auto", "log format: auto, console or json")
	f.BoolP("verbose", "v", false, "debug logging")
	f.Bool("quiet", false, "only log warnings and errors")
	f.Bool("no-color", false, "disable colored logs")
	return cmd
}

func run(app *App, cfg *Config, args []string) error {
	log := app.logger

	raw, source, err := readInput(app.Stdin, args)
	if err != nil {
		return err
	}
	data, err := jsontab.Decode(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	log.Debug().Str("source", source).Int("bytes", len(raw)).Msg("input decoded")

	if cfg.Query != "" {
		data, err = applyQuery(cfg.Query, data)
		if err != nil {
			return err
		}
		log.Debug().Str("query", cfg.Query).Msg("query applied")
	}

	opts, err := buildOptions(cfg)
	if err != nil {
		return err
	}

	format, err := resolveFormat(cfg.Format, app.Stdout)
	if err != nil {
		return err
	}
	log.Debug().
		Str("format", format.String()).
		Int("columns", len(opts.Columns)).
		Str("collection", opts.Collection).
		Msg("rendering table")

	return jsontab.Write(app.Stdout, format, data, opts)
}

func readInput(stdin io.Reader, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return raw, "stdin", nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return raw, args[0], nil
}

func buildOptions(cfg *Config) (jsontab.Options, error) {
	var opts jsontab.Options
	switch {
	case cfg.OptionsFile != "":
		f, err := os.Open(cfg.OptionsFile)
		if err != nil {
			return opts, fmt.Errorf("open options: %w", err)
		}
		defer f.Close()
		opts, err = jsontab.LoadOptions(f, jsontab.BuiltinTransforms())
		if err != nil {
			return opts, fmt.Errorf("%s: %w", cfg.OptionsFile, err)
		}
	case len(cfg.Columns) > 0:
		opts = columnOptions(cfg.Columns)
	default:
		return opts, fmt.Errorf("%w: pass --config or at least one --column", jsontab.ErrMissingColumns)
	}

	if cfg.Collection != "" {
		opts.Collection = cfg.Collection
	}
	if cfg.JSONPath {
		opts.Resolver = jsontab.JSONPathResolver
	}
	if cfg.Border != "" {
		b, err := jsontab.ParseBorder(cfg.Border)
		if err != nil {
			return opts, err
		}
		opts.Border = b
	}
	return opts, nil
}

// columnOptions builds options from "Header=path" specs. A spec without
// "=" uses the path as its header.
func columnOptions(specs []string) jsontab.Options {
	opts := jsontab.Options{
		Headers: make([]string, len(specs)),
		Columns: make([]jsontab.Column, len(specs)),
	}
	for i, spec := range specs {
		header, path, ok := strings.Cut(spec, "=")
		if !ok {
			path = header
		}
		opts.Headers[i] = strings.TrimSpace(header)
		opts.Columns[i] = jsontab.Path(strings.TrimSpace(path))
	}
	return opts
}

// resolveFormat picks the explicit format, or console when out is a
// terminal and markdown otherwise.
func resolveFormat(explicit string, out io.Writer) (jsontab.Format, error) {
	if explicit != "" {
		return jsontab.ParseFormat(explicit)
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return jsontab.Console, nil
	}
	return jsontab.Markdown, nil
}
