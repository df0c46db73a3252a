package calcexpr

import (
	"github.com/cockroachdb/apd/v3"
)

// Constants are fixed decimal literals, held to well past the working
// precision so that they are never the limiting factor. They are not
// computed at runtime.
const (
	piDigits = "3.14159265358979323846264338327950288419716939937510"
	eDigits  = "2.71828182845904523536028747135266249775724709369995"
)

var constants = map[string]string{
	"pi": piDigits,
	"e":  eDigits,
}

// constant loads a named constant, rounded to the working precision.
func (ev *evaluator) constant(name string) *apd.Decimal {
	s, ok := constants[name]
	if !ok {
		panic("calcexpr: unknown constant " + name)
	}
	x, _, err := apd.NewFromString(s)
	if err != nil {
		panic("calcexpr: invalid constant literal: " + s)
	}
	d := new(apd.Decimal)
	ev.ctx.Round(d, x)
	return d
}

// funcDef describes one entry of the fixed function catalog.
type funcDef struct {
	// min and max bound the accepted argument count.
	min, max int
	// want describes the accepted argument count for call errors.
	want string
	// apply computes the function from already-evaluated arguments.
	apply func(ev *evaluator, args []*apd.Decimal) (*apd.Decimal, error)
}

var catalog = map[string]funcDef{
	"sin":   {1, 1, "1 argument", (*evaluator).sin},
	"cos":   {1, 1, "1 argument", (*evaluator).cos},
	"tan":   {1, 1, "1 argument", (*evaluator).tan},
	"log":   {1, 1, "1 argument", (*evaluator).log},
	"exp":   {1, 1, "1 argument", (*evaluator).exp},
	"sqrt":  {1, 1, "1 argument", (*evaluator).sqrt},
	"abs":   {1, 1, "1 argument", (*evaluator).abs},
	"floor": {1, 1, "1 argument", (*evaluator).floor},
	"ceil":  {1, 1, "1 argument", (*evaluator).ceil},
	"round": {1, 2, "1 or 2 arguments", (*evaluator).round},
}

// dispatch validates a call against the catalog and computes its result.
// Function names are case-sensitive; SIN is not a function.
func (ev *evaluator) dispatch(name string, args []*apd.Decimal) (*apd.Decimal, error) {
	fn, ok := catalog[name]
	if !ok {
		return nil, &CallError{Func: name, Args: len(args)}
	}
	if len(args) < fn.min || len(args) > fn.max {
		return nil, &CallError{Func: name, Args: len(args), Want: fn.want}
	}
	return fn.apply(ev, args)
}

// log computes the natural logarithm. The argument must be positive.
func (ev *evaluator) log(args []*apd.Decimal) (*apd.Decimal, error) {
	x := args[0]
	if x.Sign() <= 0 {
		return nil, &DomainError{Op: "log", X: x, Reason: "log() argument must be positive"}
	}
	d := new(apd.Decimal)
	_, err := ev.ctx.Ln(d, x)
	return ev.check(d, "log", err)
}

// exp computes e raised to the argument.
func (ev *evaluator) exp(args []*apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := ev.ctx.Exp(d, args[0])
	return ev.check(d, "exp", err)
}

// sqrt computes the non-negative square root. The argument must be
// non-negative.
func (ev *evaluator) sqrt(args []*apd.Decimal) (*apd.Decimal, error) {
	x := args[0]
	if x.Sign() < 0 {
		return nil, &DomainError{Op: "sqrt", X: x, Reason: "sqrt() argument must be non-negative"}
	}
	d := new(apd.Decimal)
	_, err := ev.ctx.Sqrt(d, x)
	return ev.check(d, "sqrt", err)
}

func (ev *evaluator) abs(args []*apd.Decimal) (*apd.Decimal, error) {
	return new(apd.Decimal).Abs(args[0]), nil
}

func (ev *evaluator) floor(args []*apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := ev.ctx.Floor(d, args[0])
	return ev.check(d, "floor", err)
}

func (ev *evaluator) ceil(args []*apd.Decimal) (*apd.Decimal, error) {
	d := new(apd.Decimal)
	_, err := ev.ctx.Ceil(d, args[0])
	return ev.check(d, "ceil", err)
}

// round rounds to a number of decimal places, zero if not given. Ties go to
// the even neighbor. A fractional places argument is truncated toward zero; a
// negative one is clamped to zero.
func (ev *evaluator) round(args []*apd.Decimal) (*apd.Decimal, error) {
	places := int64(0)
	if len(args) == 2 {
		var integ, frac apd.Decimal
		args[1].Modf(&integ, &frac)
		p, err := integ.Int64()
		switch {
		case err != nil:
			// Out of int64 range entirely.
			if integ.Sign() > 0 {
				p = Precision
			}
		case p < 0:
			p = 0
		case p > Precision:
			p = Precision
		}
		places = p
	}
	d := new(apd.Decimal)
	_, err := ev.ctx.Quantize(d, args[0], int32(-places))
	return ev.check(d, "round", err)
}

// Trigonometry is not among apd's transcendental operations, so it is
// computed here the way decimal libraries do: reduce the argument modulo 2π,
// then sum the Maclaurin series at guard precision.

// work returns a context with guard digits for intermediate series sums.
func (ev *evaluator) work() *apd.Context {
	return workContext(Precision + 8)
}

func (ev *evaluator) sin(args []*apd.Decimal) (*apd.Decimal, error) {
	return ev.trig("sin", args[0], sinSeries)
}

func (ev *evaluator) cos(args []*apd.Decimal) (*apd.Decimal, error) {
	return ev.trig("cos", args[0], cosSeries)
}

func (ev *evaluator) tan(args []*apd.Decimal) (*apd.Decimal, error) {
	w := ev.work()
	r := new(apd.Decimal)
	if !reduceAngle(w, r, args[0]) {
		return nil, &DomainError{Op: "tan", X: args[0], Reason: "tan() argument too large to reduce"}
	}
	s := sinSeries(w, r)
	c := cosSeries(w, r)
	if c.IsZero() {
		return nil, &DomainError{Op: "tan", X: args[0], Reason: "tan() undefined at odd multiples of pi/2"}
	}
	d := new(apd.Decimal)
	w.Quo(d, s, c)
	res := new(apd.Decimal)
	ev.ctx.Round(res, d)
	return ev.check(res, "tan", nil)
}

func (ev *evaluator) trig(name string, x *apd.Decimal, series func(*apd.Context, *apd.Decimal) *apd.Decimal) (*apd.Decimal, error) {
	w := ev.work()
	r := new(apd.Decimal)
	if !reduceAngle(w, r, x) {
		return nil, &DomainError{Op: name, X: x, Reason: name + "() argument too large to reduce"}
	}
	d := new(apd.Decimal)
	ev.ctx.Round(d, series(w, r))
	return ev.check(d, name, nil)
}

// reduceAngle sets r to x modulo 2π so that the series converge quickly.
// Reduction fails when the quotient has too many digits to represent, which
// only happens for astronomically large arguments.
func reduceAngle(c *apd.Context, r, x *apd.Decimal) bool {
	pi, _, err := apd.NewFromString(piDigits)
	if err != nil {
		panic("calcexpr: invalid pi literal")
	}
	tau := new(apd.Decimal)
	c.Mul(tau, pi, apd.New(2, 0))
	c.Rem(r, x, tau)
	return r.Form == apd.Finite
}

// sinSeries sums x - x³/3! + x⁵/5! - ... until the sum stops changing.
func sinSeries(c *apd.Context, x *apd.Decimal) *apd.Decimal {
	sum := new(apd.Decimal).Set(x)
	term := new(apd.Decimal).Set(x)
	x2 := new(apd.Decimal)
	c.Mul(x2, x, x)
	prev := new(apd.Decimal)
	for k := int64(1); k <= 120; k++ {
		c.Mul(term, term, x2)
		c.Quo(term, term, apd.New(2*k*(2*k+1), 0))
		term.Neg(term)
		prev.Set(sum)
		c.Add(sum, sum, term)
		if sum.Cmp(prev) == 0 {
			break
		}
	}
	return sum
}

// cosSeries sums 1 - x²/2! + x⁴/4! - ... until the sum stops changing.
func cosSeries(c *apd.Context, x *apd.Decimal) *apd.Decimal {
	sum := apd.New(1, 0)
	term := apd.New(1, 0)
	x2 := new(apd.Decimal)
	c.Mul(x2, x, x)
	prev := new(apd.Decimal)
	for k := int64(1); k <= 120; k++ {
		c.Mul(term, term, x2)
		c.Quo(term, term, apd.New((2*k-1)*(2*k), 0))
		term.Neg(term)
		prev.Set(sum)
		c.Add(sum, sum, term)
		if sum.Cmp(prev) == 0 {
			break
		}
	}
	return sum
}
