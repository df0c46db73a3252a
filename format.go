package calcexpr

import (
	"strconv"

	"github.com/cockroachdb/apd/v3"
)

// Result is the formatted value of an expression. Decimal is always present.
// Hex and Binary are present only when the value is a non-negative integer
// representable in 64 bits; otherwise they are nil and serialize to null.
type Result struct {
	Decimal string  `json:"decimal"`
	Hex     *string `json:"hex"`
	Binary  *string `json:"binary"`
}

// Format renders a decimal value in every base that applies. The decimal
// string is plain positional notation with trailing zeros removed, so an
// exact 4.00 renders as "4". The sign of zero is normalized: -0 renders as
// "0", with the integer bases present.
func Format(d *apd.Decimal) Result {
	var red apd.Decimal
	red.Reduce(d)
	r := Result{Decimal: red.Text('f')}
	if u, ok := bitOperand(&red); ok {
		h := "0x" + strconv.FormatUint(u, 16)
		b := "0b" + strconv.FormatUint(u, 2)
		r.Hex = &h
		r.Binary = &b
	}
	return r
}

// String renders the result for terminal display: the decimal value,
// followed by the hex and binary forms when they apply.
func (r Result) String() string {
	s := r.Decimal
	if r.Hex != nil && r.Binary != nil {
		s += "  " + *r.Hex + "  " + *r.Binary
	}
	return s
}
