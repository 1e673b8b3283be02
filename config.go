package jsontab

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileOptions is the on-disk shape of table options. JSON files decode too.
type fileOptions struct {
	Collection string       `yaml:"collection"`
	Headers    []string     `yaml:"tableHeaders"`
	Columns    []fileColumn `yaml:"columns"`
	Resolver   string       `yaml:"resolver"`
	Border     string       `yaml:"border"`
	Align      []string     `yaml:"align"`
}

// fileColumn is either a path string or a mapping with datasets.
type fileColumn struct {
	node *yaml.Node
}

func (c *fileColumn) UnmarshalYAML(value *yaml.Node) error {
	c.node = value
	return nil
}

type fileDataset struct {
	Datasets       yaml.Node `yaml:"datasets"`
	ValueTransform string    `yaml:"valueTransform"`
	HideRowIfFalsy bool      `yaml:"hideRowIfFalsy"`
}

// LoadOptions reads table options from YAML or JSON:
//
//	collection: ..assets
//	tableHeaders: [Parsed, Gzipped, Asset]
//	columns:
//	  - parsed
//	  - datasets: gzipped
//	    hideRowIfFalsy: true
//	  - datasets: [parsed, gzipped]
//	    valueTransform: diff
//	resolver: jsonpath    # optional, default path resolver otherwise
//	border: ascii         # optional console border
//	align: [right, right] # optional per-column alignment
//
// valueTransform names an entry in transforms. Missing tableHeaders or
// columns keys are left nil and rejected by [Tabulate].
func LoadOptions(r io.Reader, transforms Transforms) (Options, error) {
	var raw fileOptions
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}

	opts := Options{
		Headers:    raw.Headers,
		Collection: raw.Collection,
	}

	switch strings.ToLower(raw.Resolver) {
	case "", "default":
	case "jsonpath":
		opts.Resolver = JSONPathResolver
	default:
		return Options{}, fmt.Errorf("%w: unknown resolver %q", ErrConfig, raw.Resolver)
	}

	if raw.Border != "" {
		b, err := ParseBorder(raw.Border)
		if err != nil {
			return Options{}, err
		}
		opts.Border = b
	}

	for _, a := range raw.Align {
		align, err := parseAlignment(a)
		if err != nil {
			return Options{}, err
		}
		opts.Alignments = append(opts.Alignments, align)
	}

	if raw.Columns != nil {
		opts.Columns = make([]Column, len(raw.Columns))
		for i, fc := range raw.Columns {
			col, err := fc.column(transforms)
			if err != nil {
				return Options{}, fmt.Errorf("column %d: %w", i, err)
			}
			opts.Columns[i] = col
		}
	}
	return opts, nil
}

func (c fileColumn) column(transforms Transforms) (Column, error) {
	n := c.node
	if n == nil {
		return nil, ErrInvalidColumn
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag != "!!str" {
			return nil, fmt.Errorf("%w: line %d: expected a path string", ErrInvalidColumn, n.Line)
		}
		return Path(n.Value), nil
	case yaml.MappingNode:
	default:
		return nil, fmt.Errorf("%w: line %d: expected a path or a mapping", ErrInvalidColumn, n.Line)
	}

	var fd fileDataset
	if err := n.Decode(&fd); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidColumn, n.Line, err)
	}

	var fn Transform
	if fd.ValueTransform != "" {
		t, ok := transforms[fd.ValueTransform]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, fd.ValueTransform)
		}
		fn = t
	}

	switch fd.Datasets.Kind {
	case yaml.ScalarNode:
		ds := Dataset{Path: fd.Datasets.Value, HideRowIfFalsy: fd.HideRowIfFalsy}
		if fn != nil {
			ds.Transform = func(v any) any { return fn(v) }
		}
		return ds, nil
	case yaml.SequenceNode:
		var paths []string
		if err := fd.Datasets.Decode(&paths); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidColumn, fd.Datasets.Line, err)
		}
		ds := Datasets{Paths: paths, HideRowIfFalsy: fd.HideRowIfFalsy}
		if fn != nil {
			ds.Transform = fn
		}
		return ds, nil
	default:
		return nil, fmt.Errorf("%w: line %d: datasets must be a path or a list of paths", ErrInvalidColumn, n.Line)
	}
}

// parseAlignment parses left, center or right.
func parseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return AlignLeft, nil
	case "center":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	default:
		return 0, fmt.Errorf("%w: unknown alignment %q", ErrConfig, s)
	}
}
