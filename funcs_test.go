package calcexpr_test

import (
	"strings"
	"testing"

	"github.com/kephrin/calcexpr"
)

func TestFunctions(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		dec    string
		prefix bool
	}{
		// trig at exact points
		{name: "sin-zero", src: "sin(0)", dec: "0"},
		{name: "cos-zero", src: "cos(0)", dec: "1"},
		{name: "tan-zero", src: "tan(0)", dec: "0"},
		// trig series values
		{name: "sin-one", src: "sin(1)", dec: "0.8414709848078965", prefix: true},
		{name: "cos-one", src: "cos(1)", dec: "0.5403023058681397", prefix: true},
		{name: "tan-one", src: "tan(1)", dec: "1.5574077246549022", prefix: true},
		{name: "sin-negative", src: "sin(0 - 1)", dec: "-0.8414709848078965", prefix: true},
		// argument reduction keeps the series in range
		{name: "sin-big", src: "sin(100)", dec: "-0.50636564110975879365", prefix: true},
		// log and exp
		{name: "log-one", src: "log(1)", dec: "0"},
		{name: "exp-zero", src: "exp(0)", dec: "1"},
		{name: "exp-one", src: "exp(1)", dec: "2.718281828459045", prefix: true},
		// roots
		{name: "sqrt-exact", src: "sqrt(16)", dec: "4"},
		{name: "sqrt-two", src: "sqrt(2)", dec: "1.4142135623730950", prefix: true},
		{name: "sqrt-zero", src: "sqrt(0)", dec: "0"},
		// magnitude and integer rounding
		{name: "abs-fraction", src: "abs(-3.5)", dec: "3.5"},
		{name: "floor-negative", src: "floor(-3.2)", dec: "-4"},
		{name: "ceil-negative", src: "ceil(-3.2)", dec: "-3"},
		// round ties go to even, which has to be set explicitly: apd's
		// zero-value rounding is half-up
		{name: "round-half-even-down", src: "round(2.5)", dec: "2"},
		{name: "round-half-even-up", src: "round(3.5)", dec: "4"},
		{name: "round-half-even-negative", src: "round(-2.5)", dec: "-2"},
		{name: "round-half-even-places", src: "round(0.125, 2)", dec: "0.12"},
		{name: "round-negative", src: "round(-3.6)", dec: "-4"},
		// the places argument truncates toward zero and clamps at zero
		{name: "round-places-fractional", src: "round(3.14159, 2.9)", dec: "3.14"},
		{name: "round-places-negative", src: "round(3.14159, -2)", dec: "3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcexpr.EvalString(c.src)
			if err != nil {
				t.Fatalf("%q failed to evaluate: %v", c.src, err)
			}
			if c.prefix {
				if !strings.HasPrefix(r.Decimal, c.dec) {
					t.Errorf("%q: decimal %q does not start with %q", c.src, r.Decimal, c.dec)
				}
			} else if r.Decimal != c.dec {
				t.Errorf("%q: decimal %q, want %q", c.src, r.Decimal, c.dec)
			}
		})
	}
}

// TestConstantsPrecision checks that the constants carry well beyond float64
// precision, since they are fixed decimal literals rather than computed
// values.
func TestConstantsPrecision(t *testing.T) {
	cases := []struct {
		src    string
		prefix string
	}{
		{"pi", "3.14159265358979323846264338327950"},
		{"e", "2.71828182845904523536028747135266"},
	}
	for _, c := range cases {
		r, err := calcexpr.EvalString(c.src)
		if err != nil {
			t.Fatalf("%q failed to evaluate: %v", c.src, err)
		}
		if !strings.HasPrefix(r.Decimal, c.prefix) {
			t.Errorf("%q: decimal %q does not carry the constant's digits", c.src, r.Decimal)
		}
		if r.Hex != nil || r.Binary != nil {
			t.Errorf("%q: hex and binary must be absent for a non-integer", c.src)
		}
	}
}
