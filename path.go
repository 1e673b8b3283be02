package jsontab

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Resolver compiles path expressions into queries.
type Resolver interface {
	Compile(expr string) (Query, error)
}

// Query is a compiled path expression.
type Query interface {
	// First returns the first value matched in v. ok is false when nothing
	// matches.
	First(v any) (value any, ok bool)
}

// DefaultResolver walks values directly. *Object mappings are searched in
// insertion order, map[string]any in sorted key order, sequences by index.
//
// Supported syntax: "$" root, ".name", "['name']", "[N]" (negative N counts
// from the end), "*" and "[*]" wildcards, and ".." recursive descent. Where
// several values match, the first one in a depth-first, leftmost walk wins.
var DefaultResolver Resolver = pathResolver{}

// normalizePath roots an expression: "$..." is kept, ".a" and "[0]" get
// "$" prepended, anything else gets "$.".
func normalizePath(expr string) string {
	trimmed := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(trimmed, "$"):
		return trimmed
	case strings.HasPrefix(trimmed, "."), strings.HasPrefix(trimmed, "["):
		return "$" + trimmed
	default:
		return "$." + trimmed
	}
}

type segKind int

const (
	segName segKind = iota
	segIndex
	segWild
)

type segment struct {
	kind      segKind
	name      string
	index     int
	recursive bool
}

type pathResolver struct{}

func (pathResolver) Compile(expr string) (Query, error) {
	segs, err := parsePath(normalizePath(expr))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, expr, err)
	}
	return pathQuery(segs), nil
}

func parsePath(p string) ([]segment, error) {
	if p == "" || p[0] != '$' {
		return nil, fmt.Errorf("path must start with $")
	}
	var segs []segment
	i := 1
	for i < len(p) {
		recursive := false
		switch {
		case strings.HasPrefix(p[i:], ".."):
			recursive = true
			i += 2
			if i >= len(p) {
				return nil, fmt.Errorf("recursive descent needs a selector")
			}
			if p[i] == '[' {
				seg, n, err := parseBracket(p[i:])
				if err != nil {
					return nil, err
				}
				seg.recursive = true
				segs = append(segs, seg)
				i += n
				continue
			}
		case p[i] == '.':
			i++
		case p[i] == '[':
			seg, n, err := parseBracket(p[i:])
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			i += n
			continue
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d", p[i], i)
		}
		end := i
		for end < len(p) && p[end] != '.' && p[end] != '[' {
			end++
		}
		name := p[i:end]
		if name == "" {
			return nil, fmt.Errorf("empty name at offset %d", i)
		}
		seg := segment{kind: segName, name: name, recursive: recursive}
		if name == "*" {
			seg.kind = segWild
		}
		segs = append(segs, seg)
		i = end
	}
	return segs, nil
}

// parseBracket parses a "[...]" selector at the start of s and returns the
// segment and the number of bytes consumed.
func parseBracket(s string) (segment, int, error) {
	if len(s) > 1 && (s[1] == '\'' || s[1] == '"') {
		quote := s[1]
		end := strings.IndexByte(s[2:], quote)
		if end < 0 || 2+end+1 >= len(s) || s[2+end+1] != ']' {
			return segment{}, 0, fmt.Errorf("unterminated quoted selector %q", s)
		}
		return segment{kind: segName, name: s[2 : 2+end]}, 2 + end + 2, nil
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return segment{}, 0, fmt.Errorf("unterminated selector %q", s)
	}
	body := strings.TrimSpace(s[1:end])
	if body == "*" {
		return segment{kind: segWild}, end + 1, nil
	}
	n, err := strconv.Atoi(body)
	if err != nil {
		return segment{}, 0, fmt.Errorf("invalid index %q", body)
	}
	return segment{kind: segIndex, index: n}, end + 1, nil
}

type pathQuery []segment

func (q pathQuery) First(v any) (any, bool) {
	return firstMatch(v, q)
}

func firstMatch(v any, segs []segment) (any, bool) {
	if len(segs) == 0 {
		return v, true
	}
	seg, rest := segs[0], segs[1:]
	if seg.recursive {
		return descend(v, seg, rest)
	}
	for _, c := range selectChildren(v, seg) {
		if r, ok := firstMatch(c, rest); ok {
			return r, true
		}
	}
	return nil, false
}

// descend applies seg to v and then to every descendant of v, parents
// before children and earlier entries before later ones.
func descend(v any, seg segment, rest []segment) (any, bool) {
	for _, c := range selectChildren(v, seg) {
		if r, ok := firstMatch(c, rest); ok {
			return r, true
		}
	}
	children, _ := entries(v)
	for _, c := range children {
		if r, ok := descend(c, seg, rest); ok {
			return r, true
		}
	}
	return nil, false
}

func selectChildren(v any, seg segment) []any {
	switch seg.kind {
	case segWild:
		out, _ := entries(v)
		return out
	case segIndex:
		items, ok := sequence(v)
		if !ok {
			return nil
		}
		i := seg.index
		if i < 0 {
			i += len(items)
		}
		if i < 0 || i >= len(items) {
			return nil
		}
		return []any{items[i]}
	default:
		if e, ok := lookup(v, seg.name); ok {
			return []any{e}
		}
		return nil
	}
}

func sequence(v any) ([]any, bool) {
	switch v.(type) {
	case *Object, map[string]any:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return nil, false
	}
	return entries(v)
}

func lookup(v any, key string) (any, bool) {
	switch t := v.(type) {
	case *Object:
		return t.Get(key)
	case map[string]any:
		e, ok := t[key]
		return e, ok
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	e := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
	if !e.IsValid() {
		return nil, false
	}
	return e.Interface(), true
}
