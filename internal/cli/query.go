package cli

import (
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/bjaus/jsontab"
)

// applyQuery runs a jq expression over data and returns its first result.
// gojq only understands plain maps, so key order is lost for the result.
func applyQuery(query string, data any) (any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}

	iter := code.Run(normalizeForQuery(jsontab.Native(data)))
	v, ok := iter.Next()
	if !ok {
		return nil, fmt.Errorf("query %q produced no result", query)
	}
	if qerr, isErr := v.(error); isErr {
		return nil, fmt.Errorf("query error: %w", qerr)
	}
	return v, nil
}

// normalizeForQuery widens integer types gojq does not accept.
func normalizeForQuery(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeForQuery(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = normalizeForQuery(e)
		}
		return t
	case int64:
		return int(t)
	case uint64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
