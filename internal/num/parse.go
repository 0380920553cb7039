// Package num provides exact decimal arithmetic for JSON numbers.
//
// JSON Schema numeric keywords compare mathematical values, not lexical or
// floating-point representations: 1, 1.0 and 1e0 are the same number, and
// multipleOf must not fall back to float division. All comparisons here go
// through big.Rat.
package num

import (
	"math/big"
	"strconv"

	"github.com/goccy/go-json"
)

// Rat converts a decoded JSON number to an exact rational.
// It accepts json.Number and the native Go numeric types a decoder may
// produce. The second result reports whether v is a number.
func Rat(v any) (*big.Rat, bool) {
	switch v := v.(type) {
	case json.Number:
		return ratFromString(string(v))
	case float64:
		return new(big.Rat).SetFloat64(v), true
	case float32:
		return new(big.Rat).SetFloat64(float64(v)), true
	case int:
		return new(big.Rat).SetInt64(int64(v)), true
	case int8:
		return new(big.Rat).SetInt64(int64(v)), true
	case int16:
		return new(big.Rat).SetInt64(int64(v)), true
	case int32:
		return new(big.Rat).SetInt64(int64(v)), true
	case int64:
		return new(big.Rat).SetInt64(v), true
	case uint:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Rat).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Rat).SetUint64(v), true
	default:
		return nil, false
	}
}

func ratFromString(s string) (*big.Rat, bool) {
	// big.Rat.SetString accepts forms that are not valid JSON numbers
	// (fractions, hex floats), but s comes from a JSON decoder so the
	// lexical form is already constrained.
	if r, ok := new(big.Rat).SetString(s); ok {
		return r, true
	}
	return nil, false
}

// IsNumber reports whether v is a JSON number value.
func IsNumber(v any) bool {
	_, ok := Rat(v)
	return ok
}

// IsInteger reports whether v is a JSON number with zero fractional part.
// Integer-valued floats such as 1.0 and 1e2 count as integers.
func IsInteger(v any) bool {
	if n, ok := v.(json.Number); ok {
		// fast path: no fraction, no exponent
		if _, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return true
		}
	}
	r, ok := Rat(v)
	return ok && r.IsInt()
}
