package calcexpr

import (
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Expr = BitOr
// BitOr = BitAnd { '|' BitAnd }
// BitAnd = Add { '&' Add }
// Add = Mul { ('+' | '-') Mul }
// Mul = Pow { ('*' | '/' | '%') Pow }
// Pow = Unary [ '^' Pow ]
// Unary = ('+' | '-') Unary | Primary
// Primary = num | const | name '(' [ Expr { ',' Expr } ] ')' | '(' Expr ')'

// Expr is a parsed expression that can be evaluated.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// maxDepth bounds the nesting of subexpressions so that adversarial input
// cannot exhaust the stack.
const maxDepth = 512

type parser struct {
	scan  *lexer
	depth int
}

// Parse parses a single expression. The entire input must be consumed;
// trailing text is a TrailingError. All returned errors implement InputError.
func Parse(src io.RuneScanner) (*Expr, error) {
	p := parser{scan: lex(src)}
	n, err := p.expression()
	if err != nil {
		return nil, err
	}
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenEOF {
		return nil, &TrailingError{Col: tok.pos, Text: tok.text}
	}
	return &Expr{n: n}, nil
}

// ParseString is a shortcut to parse an expression from a string, trimming
// surrounding whitespace.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(strings.TrimSpace(src)))
}

// String creates a string representation of the parsed expression, with
// brackets grouping each term.
func (e *Expr) String() string {
	return e.n.String()
}

// enter counts a recursion into a subexpression.
func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &NestingError{Col: p.scan.pos()}
	}
	return nil
}

// expression parses the lowest-precedence level, a chain of bitwise ORs.
func (p *parser) expression() (*node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	n, err := p.bitand()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "|" {
			p.scan.push(tok)
			return n, nil
		}
		rhs, err := p.bitand()
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeOr, left: n, right: rhs}
	}
}

// bitand parses a chain of bitwise ANDs over additive terms.
func (p *parser) bitand() (*node, error) {
	n, err := p.additive()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != "&" {
			p.scan.push(tok)
			return n, nil
		}
		rhs, err := p.additive()
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeAnd, left: n, right: rhs}
	}
}

// additive parses a chain of additions and subtractions.
func (p *parser) additive() (*node, error) {
	n, err := p.multiplicative()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		var kind nodeKind
		switch {
		case tok.kind != tokenOp:
			p.scan.push(tok)
			return n, nil
		case tok.text == "+":
			kind = nodeAdd
		case tok.text == "-":
			kind = nodeSub
		default:
			p.scan.push(tok)
			return n, nil
		}
		rhs, err := p.multiplicative()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

// multiplicative parses a chain of multiplications, divisions, and
// remainders.
func (p *parser) multiplicative() (*node, error) {
	n, err := p.power()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		var kind nodeKind
		switch {
		case tok.kind != tokenOp:
			p.scan.push(tok)
			return n, nil
		case tok.text == "*":
			kind = nodeMul
		case tok.text == "/":
			kind = nodeDiv
		case tok.text == "%":
			kind = nodeRem
		default:
			p.scan.push(tok)
			return n, nil
		}
		rhs, err := p.power()
		if err != nil {
			return nil, err
		}
		n = &node{kind: kind, left: n, right: rhs}
	}
}

// power parses an exponentiation. Unlike every other level, it recurses to
// the right, so 2^3^2 is 2^(3^2).
func (p *parser) power() (*node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	n, err := p.unary()
	if err != nil {
		return nil, err
	}
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind != tokenOp || tok.text != "^" {
		p.scan.push(tok)
		return n, nil
	}
	rhs, err := p.power()
	if err != nil {
		return nil, err
	}
	return &node{kind: nodePow, left: n, right: rhs}, nil
}

// unary parses any number of prefix signs and falls through to primary.
func (p *parser) unary() (*node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer func() { p.depth-- }()
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenOp {
		var kind nodeKind
		switch tok.text {
		case "-":
			kind = nodeNeg
		case "+":
			kind = nodeNop
		default:
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &node{kind: kind, left: rhs}, nil
	}
	p.scan.push(tok)
	return p.primary()
}

// primary parses a literal, a constant, a function call, or a parenthesized
// subexpression.
func (p *parser) primary() (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		val, ok := literalValue(tok.text)
		if !ok {
			return nil, &LiteralError{Col: tok.pos, Text: tok.text}
		}
		return &node{kind: nodeNum, name: tok.text, val: val}, nil
	case tokenIdent:
		nxt, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if nxt.kind == tokenOpen {
			return p.call(tok)
		}
		p.scan.push(nxt)
		// Constants are case-insensitive; pi, PI, and Pi are all π.
		name := strings.ToLower(tok.text)
		if _, ok := constants[name]; ok {
			return &node{kind: nodeConst, name: name}, nil
		}
		return nil, &NameError{Col: tok.pos, Name: tok.text}
	case tokenOpen:
		n, err := p.expression()
		if err != nil {
			return nil, err
		}
		end, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if end.kind != tokenClose {
			if end.kind == tokenEOF {
				return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
			}
			return nil, &BracketError{Col: end.pos, Left: "(", Right: end.text}
		}
		return n, nil
	case tokenClose, tokenSep:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calcexpr: unknown token: " + tok.String())
	}
}

// call parses the argument list of a function call. The opening parenthesis
// has already been consumed; fname is the identifier token naming the
// function. Whether the name is known and the arity matches is checked at
// evaluation time, since those are failures of the expression's meaning
// rather than its form.
func (p *parser) call(fname lexToken) (*node, error) {
	n := &node{kind: nodeCall, name: fname.text}
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		return n, nil
	}
	p.scan.push(tok)
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		n.args = append(n.args, arg)
		end, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch end.kind {
		case tokenClose:
			return n, nil
		case tokenSep:
			continue
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: end.text}
		}
	}
}

// literalValue converts a numeric literal's text to its exact decimal value.
// Hexadecimal and binary literals are unsigned 64-bit integers; decimal
// literals are parsed exactly, with no detour through binary floating point.
func literalValue(text string) (*apd.Decimal, bool) {
	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		u, err := strconv.ParseUint(text[2:], 16, 64)
		if err != nil {
			return nil, false
		}
		return apd.NewWithBigInt(new(apd.BigInt).SetUint64(u), 0), true
	}
	if len(text) > 2 && text[0] == '0' && (text[1] == 'b' || text[1] == 'B') {
		u, err := strconv.ParseUint(text[2:], 2, 64)
		if err != nil {
			return nil, false
		}
		return apd.NewWithBigInt(new(apd.BigInt).SetUint64(u), 0), true
	}
	// The lexer admits a trailing point, as in "3.", which the decimal
	// parser does not.
	d, _, err := apd.NewFromString(strings.TrimSuffix(text, "."))
	if err != nil {
		return nil, false
	}
	return d, true
}
