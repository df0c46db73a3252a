package calcexpr

import "strconv"

// OperatorError is an error indicating an operator token in a position where
// it cannot apply, such as "*" at the start of a term. It implements
// InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the offending token.
	Col int
	// Left is the opening parenthesis, if one was open.
	Left string
	// Right is the token found where a closing parenthesis was required, or
	// the empty string at end of input.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	if err.Right == "" {
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "expected closing bracket, found "+strconv.Quote(err.Right))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating text left over after an otherwise
// complete expression. It implements InputError.
type TrailingError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Text is the first unconsumed token.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected text after expression: "+strconv.Quote(err.Text))
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// LiteralError is an error indicating a numeric literal whose value cannot be
// represented, such as a hexadecimal literal exceeding 64 bits. It implements
// InputError.
type LiteralError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal itself.
	Text string
}

func (err *LiteralError) Error() string {
	return errpos(err.Col, "numeric literal out of range: "+strconv.Quote(err.Text))
}

func (err *LiteralError) Pos() int {
	return err.Col
}

// NameError is an error indicating an identifier that names neither a
// constant nor a function call. It implements InputError.
type NameError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown name "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// NestingError is an error indicating that an expression nests subexpressions
// beyond the supported depth. It implements InputError.
type NestingError struct {
	// Col is the position at which the limit was exceeded.
	Col int
}

func (err *NestingError) Error() string {
	return errpos(err.Col, "expression nests too deeply")
}

func (err *NestingError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every syntax error
// resulting from invalid input implements InputError. Evaluation failures
// (DomainError, CallError) do not: a well-formed expression that parses
// cleanly can still fail to evaluate.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*LiteralError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*NestingError)(nil)
	_ InputError = (*LexError)(nil)
)
