package jsxpdf

import (
	"math"
	"strconv"
)

// isText reports whether v is a text primitive: a string or a number other
// than NaN.
func isText(v any) bool {
	switch x := v.(type) {
	case string, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case float32:
		return !math.IsNaN(float64(x))
	case float64:
		return !math.IsNaN(x)
	}
	return false
}

// isAbsent reports whether v resolves to nothing. Booleans count as absence
// in both polarities, and so does NaN; empty strings and zero do not.
func isAbsent(v any) bool {
	switch x := v.(type) {
	case nil, bool:
		return true
	case float32:
		return math.IsNaN(float64(x))
	case float64:
		return math.IsNaN(x)
	case []any:
		return x == nil
	case map[string]any:
		return x == nil
	}
	return false
}

// toText renders a text primitive the way it is concatenated.
func toText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return formatFloat(float64(x), 32)
	case float64:
		return formatFloat(x, 64)
	}
	return ""
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// appendChild merges a resolved child into acc. Adjacent text primitives are
// concatenated into the last entry; absent values are dropped.
func appendChild(acc []any, v any) []any {
	if isAbsent(v) {
		return acc
	}
	if n := len(acc); n > 0 && isText(acc[n-1]) && isText(v) {
		acc[n-1] = toText(acc[n-1]) + toText(v)
		return acc
	}
	return append(acc, v)
}
