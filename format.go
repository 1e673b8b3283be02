package jsontab

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Sentinel errors for programmatic error handling. Every configuration
// error wraps ErrConfig.
var (
	ErrConfig            = errors.New("invalid table configuration")
	ErrMissingData       = fmt.Errorf("%w: missing data object", ErrConfig)
	ErrMissingHeaders    = fmt.Errorf("%w: missing headers", ErrConfig)
	ErrMissingColumns    = fmt.Errorf("%w: missing columns", ErrConfig)
	ErrColumnMismatch    = fmt.Errorf("%w: header/column count mismatch", ErrConfig)
	ErrInvalidCollection = fmt.Errorf("%w: invalid collection", ErrConfig)
	ErrInvalidColumn     = fmt.Errorf("%w: invalid column spec", ErrConfig)
	ErrTransformRequired = fmt.Errorf("%w: transform required for multiple datasets", ErrConfig)
	ErrInvalidPath       = fmt.Errorf("%w: invalid path expression", ErrConfig)
	ErrUnknownTransform  = fmt.Errorf("%w: unknown transform", ErrConfig)

	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedBorder = errors.New("unsupported border style")
)

// Format represents an output format.
type Format string

const (
	Console  Format = "console"
	Markdown Format = "markdown"
)

var formats = []Format{Console, Markdown}

// String returns the format name.
func (f Format) String() string { return string(f) }

// Formats returns all supported format names.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ParseBorder parses a border style name: rounded, none, ascii, heavy or
// double.
func ParseBorder(s string) (BorderStyle, error) {
	if b, ok := borderNames[strings.ToLower(s)]; ok {
		return b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedBorder, s)
}

// Write tabulates data and writes it to w in format f, followed by a
// newline. Nothing is written when the table is empty.
func Write(w io.Writer, f Format, data any, opts Options) error {
	switch f {
	case Console:
		t, err := Tabulate(data, opts, true)
		if err != nil {
			return err
		}
		return writeTable(w, t, opts)
	case Markdown:
		t, err := Tabulate(data, opts, false)
		if err != nil {
			return err
		}
		return writeMarkdown(w, t, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Render returns data rendered in format f without a trailing newline.
// The result is empty when no row survives.
func Render(f Format, data any, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, data, opts); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// RenderConsole renders data as a bordered console table with bold headers
// and red missing values.
func RenderConsole(data any, opts Options) (string, error) {
	return Render(Console, data, opts)
}

// RenderMarkdown renders data as an unstyled GitHub-flavored Markdown table.
func RenderMarkdown(data any, opts Options) (string, error) {
	return Render(Markdown, data, opts)
}
