package jsontab

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// JSONPathResolver evaluates expressions with the full JSONPath language,
// including filters, unions and slices. Input is converted with [Native]
// first, so mapping order follows the library rather than insertion order.
// Lookups of unknown keys or out-of-range indexes count as no match.
var JSONPathResolver Resolver = jsonPathResolver{}

type jsonPathResolver struct{}

func (jsonPathResolver) Compile(expr string) (Query, error) {
	normalized := doubleQuoted(normalizePath(expr))
	eval, err := jsonpath.New(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPath, expr, err)
	}
	ambiguous := isAmbiguousPath(normalized)
	return queryFunc(func(v any) (any, bool) {
		out, err := eval(context.Background(), Native(v))
		if err != nil {
			return nil, false
		}
		matches, isList := out.([]any)
		if !ambiguous || !isList {
			return out, true
		}
		if len(matches) == 0 {
			return nil, false
		}
		return matches[0], true
	}), nil
}

type queryFunc func(v any) (any, bool)

func (f queryFunc) First(v any) (any, bool) { return f(v) }

// doubleQuoted rewrites single-quoted strings as double-quoted ones, which
// is the only form jsonpath accepts: ['a.b'] becomes ["a.b"].
func doubleQuoted(p string) string {
	if !strings.ContainsRune(p, '\'') {
		return p
	}
	var sb strings.Builder
	var quote rune
	escaped := false
	for _, r := range p {
		switch {
		case escaped:
			escaped = false
		case quote != 0 && r == '\\':
			escaped = true
		case quote == 0 && (r == '\'' || r == '"'):
			quote = r
			r = '"'
		case quote != 0 && r == quote:
			quote = 0
			r = '"'
		case quote == '\'' && r == '"':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// isAmbiguousPath reports whether the expression can select more than one
// value, in which case jsonpath returns a list of matches. Quoted keys are
// skipped.
func isAmbiguousPath(p string) bool {
	inBracket := false
	var quote, prev rune
	escaped := false
	for _, r := range p {
		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == quote:
				quote = 0
			}
			prev = r
			continue
		}
		switch r {
		case '"', '\'':
			quote = r
		case '[':
			inBracket = true
		case ']':
			inBracket = false
		case '*', '?':
			return true
		case '.':
			if prev == '.' {
				return true
			}
		case ',', ':':
			if inBracket {
				return true
			}
		}
		prev = r
	}
	return false
}
