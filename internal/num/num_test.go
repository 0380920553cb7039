package num

import (
	"math/big"
	"testing"

	"github.com/goccy/go-json"
)

func TestRat(t *testing.T) {
	tests := []struct {
		v    any
		want string
		ok   bool
	}{
		{json.Number("1"), "1", true},
		{json.Number("1.5"), "3/2", true},
		{json.Number("1e2"), "100", true},
		{json.Number("-0.001"), "-1/1000", true},
		{json.Number("bogus"), "", false},
		{float64(2.5), "5/2", true},
		{int(7), "7", true},
		{int64(-3), "-3", true},
		{uint64(18446744073709551615), "18446744073709551615", true},
		{"1", "", false},
		{nil, "", false},
		{true, "", false},
	}
	for _, tt := range tests {
		r, ok := Rat(tt.v)
		if ok != tt.ok {
			t.Errorf("Rat(%v) ok = %v, want %v", tt.v, ok, tt.ok)
			continue
		}
		if ok && r.RatString() != tt.want {
			t.Errorf("Rat(%v) = %s, want %s", tt.v, r.RatString(), tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{json.Number("1"), json.Number("1.0"), true},
		{json.Number("1"), json.Number("1e0"), true},
		{json.Number("0.1"), json.Number("1e-1"), true},
		{json.Number("1"), json.Number("1.0000000000000001"), false},
		{json.Number("1"), float64(1), true},
		{json.Number("1"), "1", false},
		{"1", "1", false},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsMultipleOf(t *testing.T) {
	rat := func(s string) *big.Rat {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			t.Fatalf("SetString(%q) failed", s)
		}
		return r
	}
	tests := []struct {
		v, m string
		want bool
	}{
		{"19.99", "0.01", true},
		{"9", "3", true},
		{"10", "3", false},
		{"0.0075", "0.0001", true},
		{"1", "0.3", false},
	}
	for _, tt := range tests {
		if got := IsMultipleOf(rat(tt.v), rat(tt.m)); got != tt.want {
			t.Errorf("IsMultipleOf(%s, %s) = %v, want %v", tt.v, tt.m, got, tt.want)
		}
	}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{json.Number("1"), true},
		{json.Number("1.0"), true},
		{json.Number("1e2"), true},
		{json.Number("98249283749234923498293171823948729348710298301928331"), true},
		{json.Number("1.5"), false},
		{json.Number("1e-1"), false},
		{float64(3), true},
		{float64(3.5), false},
		{"1", false},
	}
	for _, tt := range tests {
		if got := IsInteger(tt.v); got != tt.want {
			t.Errorf("IsInteger(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestIsNumber(t *testing.T) {
	if !IsNumber(json.Number("1.5")) {
		t.Error("IsNumber(1.5) = false, want true")
	}
	if IsNumber("1.5") {
		t.Error(`IsNumber("1.5") = true, want false`)
	}
}
