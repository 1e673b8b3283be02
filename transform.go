package jsontab

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Transform combines resolved dataset values into a cell value. It is
// referenced by name from options files.
type Transform func(args ...any) any

// Transforms maps transform names to functions.
type Transforms map[string]Transform

// BuiltinTransforms returns the transforms available to every options file:
//
//   - sum: adds all operands
//   - diff: subtracts the remaining operands from the first
//   - ratio: divides the first operand by the second
//   - percent: ratio as a percentage string with two decimals
//   - bytes: formats a byte count with binary units (1.5 KiB)
//   - sibytes: formats a byte count with decimal units (1.5 kB)
//   - kilobytes: divides a byte count by 1000
//   - comma: a number with thousands separators
//   - coalesce: first non-empty operand
//   - join: joins non-empty operands with " / "
//   - not: true when the operand is empty
//   - len: length of a string, sequence or mapping
//
// Numeric transforms return nil, which renders as [MissingValue], when an
// operand is missing or not a number.
func BuiltinTransforms() Transforms {
	return Transforms{
		"sum":       sumTransform,
		"diff":      diffTransform,
		"ratio":     ratioTransform,
		"percent":   percentTransform,
		"bytes":     bytesTransform,
		"sibytes":   siBytesTransform,
		"kilobytes": kilobytesTransform,
		"comma":     commaTransform,
		"coalesce":  coalesceTransform,
		"join":      joinTransform,
		"not":       notTransform,
		"len":       lenTransform,
	}
}

func numbers(args []any) ([]float64, bool) {
	if len(args) == 0 {
		return nil, false
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, ok := toNumber(a)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

func toNumber(v any) (float64, bool) {
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func sumTransform(args ...any) any {
	ns, ok := numbers(args)
	if !ok {
		return nil
	}
	var total float64
	for _, n := range ns {
		total += n
	}
	return total
}

func diffTransform(args ...any) any {
	ns, ok := numbers(args)
	if !ok {
		return nil
	}
	total := ns[0]
	for _, n := range ns[1:] {
		total -= n
	}
	return total
}

func ratioTransform(args ...any) any {
	ns, ok := numbers(args)
	if !ok || len(ns) != 2 || ns[1] == 0 {
		return nil
	}
	return ns[0] / ns[1]
}

func percentTransform(args ...any) any {
	r, ok := ratioTransform(args...).(float64)
	if !ok {
		return nil
	}
	return strconv.FormatFloat(r*100, 'f', 2, 64) + "%"
}

func bytesTransform(args ...any) any {
	return byteSize(args, humanize.IBytes)
}

func siBytesTransform(args ...any) any {
	return byteSize(args, humanize.Bytes)
}

func byteSize(args []any, format func(uint64) string) any {
	ns, ok := numbers(args)
	if !ok {
		return nil
	}
	if ns[0] < 0 {
		return "-" + format(uint64(-ns[0]))
	}
	return format(uint64(ns[0]))
}

func commaTransform(args ...any) any {
	ns, ok := numbers(args)
	if !ok {
		return nil
	}
	return humanize.Commaf(ns[0])
}

func kilobytesTransform(args ...any) any {
	ns, ok := numbers(args)
	if !ok {
		return nil
	}
	return math.Round(ns[0]/1000*100) / 100
}

func coalesceTransform(args ...any) any {
	for _, a := range args {
		if !Falsy(a) {
			return a
		}
	}
	return nil
}

func joinTransform(args ...any) any {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if !Falsy(a) {
			parts = append(parts, formatValue(a))
		}
	}
	return strings.Join(parts, " / ")
}

func notTransform(args ...any) any {
	if len(args) == 0 {
		return true
	}
	return Falsy(args[0])
}

func lenTransform(args ...any) any {
	if len(args) == 0 {
		return nil
	}
	switch t := args[0].(type) {
	case string:
		return len([]rune(t))
	case *Object:
		return t.Len()
	}
	if items, ok := entries(args[0]); ok {
		return len(items)
	}
	return nil
}
