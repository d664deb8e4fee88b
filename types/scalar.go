package types

import (
	"math"
	"strconv"
	"strings"
)

// Scalar is a flag value: a string, a number, or a boolean. Numbers are
// normalized to float64 for comparison regardless of how a decoder produced
// them (encoding/json yields float64, yaml.v3 yields int for whole numbers).
type Scalar = any

// ScalarNumber converts a Scalar to float64 if it is numeric.
func ScalarNumber(v Scalar) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// ScalarEqual compares two scalars by strict equality: same type class and
// same value. Numbers compare numerically across integer widths.
func ScalarEqual(a, b Scalar) bool {
	if an, ok := ScalarNumber(a); ok {
		bn, ok := ScalarNumber(b)
		return ok && an == bn
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	default:
		return false
	}
}

// Coerce converts a scalar to a number using loose numeric coercion: bools
// become 0/1, blank strings become 0, unparseable strings and missing values
// (ok == false) become NaN. Every ordered comparison against NaN is false,
// which is exactly the behavior conditions rely on for unset flags.
func Coerce(v Scalar, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	if n, isNum := ScalarNumber(v); isNum {
		return n
	}
	switch s := v.(type) {
	case bool:
		if s {
			return 1
		}
		return 0
	case string:
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return 0
		}
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return n
	default:
		return math.NaN()
	}
}

// Truthy reports whether a scalar counts as true: missing values, false,
// zero, and the empty string are all falsy.
func Truthy(v Scalar, ok bool) bool {
	if !ok || v == nil {
		return false
	}
	if n, isNum := ScalarNumber(v); isNum {
		return n != 0 && !math.IsNaN(n)
	}
	switch s := v.(type) {
	case bool:
		return s
	case string:
		return s != ""
	default:
		return true
	}
}
