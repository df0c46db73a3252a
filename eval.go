package calcexpr

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Precision is the number of significant decimal digits carried through
// every arithmetic operation.
const Precision = 34

// evaluator evaluates the nodes of one expression. A fresh evaluator is made
// for each evaluation, so expressions share no state and may be evaluated
// concurrently.
type evaluator struct {
	ctx *apd.Context
}

// Eval evaluates the expression and returns its exact decimal result. If a
// value falls outside the domain of an operation, or a function call does not
// match the catalog, the result is nil and the error is a DomainError or
// CallError.
func (e *Expr) Eval() (*apd.Decimal, error) {
	ev := evaluator{ctx: workContext(Precision)}
	return ev.eval(e.n)
}

// workContext makes an arithmetic context at the given precision. Ties round
// to the even neighbor; apd's zero-value rounding is half-up, so this is set
// explicitly.
func workContext(precision uint32) *apd.Context {
	ctx := apd.BaseContext.WithPrecision(precision)
	ctx.Rounding = apd.RoundHalfEven
	return ctx
}

// Eval is a shortcut to parse an expression and format its result.
func Eval(src io.RuneScanner) (Result, error) {
	e, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	d, err := e.Eval()
	if err != nil {
		return Result{}, err
	}
	return Format(d), nil
}

// EvalString is a shortcut to parse and evaluate a string expression,
// ignoring surrounding whitespace.
func EvalString(src string) (Result, error) {
	return Eval(strings.NewReader(strings.TrimSpace(src)))
}

func (ev *evaluator) eval(n *node) (*apd.Decimal, error) {
	switch n.kind {
	case nodeNum:
		d := new(apd.Decimal)
		ev.ctx.Round(d, n.val)
		return d, nil
	case nodeConst:
		return ev.constant(n.name), nil
	case nodeCall:
		args := make([]*apd.Decimal, len(n.args))
		for i, a := range n.args {
			v, err := ev.eval(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ev.dispatch(n.name, args)
	case nodeNeg:
		v, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}
		return new(apd.Decimal).Neg(v), nil
	case nodeNop:
		return ev.eval(n.left)
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeRem, nodePow:
		l, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(n.right)
		if err != nil {
			return nil, err
		}
		return ev.arith(n.kind, l, r)
	case nodeAnd, nodeOr:
		l, err := ev.eval(n.left)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(n.right)
		if err != nil {
			return nil, err
		}
		return ev.bitwise(n.kind, l, r)
	default:
		panic("calcexpr: invalid AST node " + n.kind.String())
	}
}

// arith applies a binary arithmetic operator with its domain checks.
func (ev *evaluator) arith(kind nodeKind, l, r *apd.Decimal) (*apd.Decimal, error) {
	op := kind.binopText()
	d := new(apd.Decimal)
	var err error
	switch kind {
	case nodeAdd:
		_, err = ev.ctx.Add(d, l, r)
	case nodeSub:
		_, err = ev.ctx.Sub(d, l, r)
	case nodeMul:
		_, err = ev.ctx.Mul(d, l, r)
	case nodeDiv:
		if r.IsZero() {
			return nil, &DomainError{Op: op, Reason: "division by zero"}
		}
		_, err = ev.ctx.Quo(d, l, r)
	case nodeRem:
		if r.IsZero() {
			return nil, &DomainError{Op: op, Reason: "modulo by zero"}
		}
		_, err = ev.ctx.Rem(d, l, r)
	case nodePow:
		if l.Sign() < 0 && !isIntegral(r) {
			return nil, &DomainError{Op: op, X: r, Reason: "exponent must be an integer when the base is negative"}
		}
		if l.IsZero() && r.Sign() < 0 {
			return nil, &DomainError{Op: op, Reason: "zero cannot be raised to a negative power"}
		}
		_, err = ev.ctx.Pow(d, l, r)
	default:
		panic("calcexpr: not an arithmetic operator: " + kind.String())
	}
	return ev.check(d, op, err)
}

// bitwise applies & or |. Both operands must be non-negative integers
// representable in 64 bits.
func (ev *evaluator) bitwise(kind nodeKind, l, r *apd.Decimal) (*apd.Decimal, error) {
	op := kind.binopText()
	lu, ok := bitOperand(l)
	if !ok {
		return nil, &DomainError{Op: op, X: l, Reason: "bitwise operand must be a non-negative integer below 2^64"}
	}
	ru, ok := bitOperand(r)
	if !ok {
		return nil, &DomainError{Op: op, X: r, Reason: "bitwise operand must be a non-negative integer below 2^64"}
	}
	var u uint64
	switch kind {
	case nodeAnd:
		u = lu & ru
	case nodeOr:
		u = lu | ru
	default:
		panic("calcexpr: not a bitwise operator: " + kind.String())
	}
	return uintDecimal(u), nil
}

// check turns operation failures and non-finite results into domain errors.
// apd reports overflow by producing an infinity rather than failing, and
// nothing here may format an infinity as a result.
func (ev *evaluator) check(d *apd.Decimal, op string, err error) (*apd.Decimal, error) {
	if err != nil {
		return nil, &DomainError{Op: op, Reason: err.Error()}
	}
	if d.Form != apd.Finite {
		return nil, &DomainError{Op: op, Reason: "result out of range"}
	}
	return d, nil
}

// isIntegral reports whether d is finite with a zero fractional part.
func isIntegral(d *apd.Decimal) bool {
	if d.Form != apd.Finite {
		return false
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	return frac.Sign() == 0
}

// bitOperand converts d to an unsigned 64-bit integer. The conversion is
// exact: fractional, negative, non-finite, and out-of-range values are all
// rejected.
func bitOperand(d *apd.Decimal) (uint64, bool) {
	if d.Form != apd.Finite || d.Sign() < 0 {
		return 0, false
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	if frac.Sign() != 0 {
		return 0, false
	}
	if integ.IsZero() {
		return 0, true
	}
	var r apd.Decimal
	r.Reduce(&integ)
	// 2^64-1 has 20 digits; anything longer cannot fit.
	if r.NumDigits()+int64(r.Exponent) > 20 {
		return 0, false
	}
	u, err := strconv.ParseUint(r.Text('f'), 10, 64)
	if err != nil {
		return 0, false
	}
	return u, true
}

// uintDecimal converts an unsigned 64-bit integer to a decimal, losslessly.
func uintDecimal(u uint64) *apd.Decimal {
	return apd.NewWithBigInt(new(apd.BigInt).SetUint64(u), 0)
}

// DomainError is an error returned when an operator or function is applied
// to values outside its mathematically valid domain.
type DomainError struct {
	// Op is the operator or function that failed.
	Op string
	// X is the offending value, when a single value is to blame.
	X *apd.Decimal
	// Reason describes the violated constraint.
	Reason string
}

func (err *DomainError) Error() string {
	s := "domain error: " + err.Reason
	if err.X != nil {
		s += " (got " + err.X.String() + ")"
	}
	return s
}

// CallError is an error returned for a call to an unknown function or a call
// with the wrong number of arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Args is the number of arguments the call supplied.
	Args int
	// Want describes the accepted argument counts. It is empty when Func is
	// not in the catalog.
	Want string
}

func (err *CallError) Error() string {
	if err.Want == "" {
		return "unknown function " + strconv.Quote(err.Func)
	}
	return err.Func + "() expects " + err.Want + ", got " + strconv.Itoa(err.Args)
}
