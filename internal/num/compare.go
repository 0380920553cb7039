package num

import "math/big"

// Equal reports whether two JSON numbers are mathematically equal.
// It returns false if either value is not a number.
func Equal(a, b any) bool {
	ra, ok := Rat(a)
	if !ok {
		return false
	}
	rb, ok := Rat(b)
	if !ok {
		return false
	}
	return ra.Cmp(rb) == 0
}

// IsMultipleOf reports whether v is an integral multiple of m.
// The quotient is computed exactly.
func IsMultipleOf(v, m *big.Rat) bool {
	return new(big.Rat).Quo(v, m).IsInt()
}
