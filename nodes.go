package calcexpr

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text for nodeNum, the lowercased constant name for
	// nodeConst, and the function name for nodeCall.
	name string
	// val is the exact literal value for nodeNum.
	val *apd.Decimal
	// args is the argument list for nodeCall.
	args []*node

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // literal; val holds the exact parsed value
	nodeConst // named constant, pi or e
	nodeCall  // function call; args holds the evaluated arguments

	nodeNeg // evaluate left, then negate
	nodeNop // evaluate left
	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeRem // evaluate left, remainder by right
	nodePow // evaluate left, exp by right
	nodeAnd // bitwise and of left and right
	nodeOr  // bitwise or of left and right
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeConst:
		return "Const"
	case nodeCall:
		return "Call"
	case nodeNeg:
		return "Neg"
	case nodeNop:
		return "Nop"
	case nodeAdd:
		return "Add"
	case nodeSub:
		return "Sub"
	case nodeMul:
		return "Mul"
	case nodeDiv:
		return "Div"
	case nodeRem:
		return "Rem"
	case nodePow:
		return "Pow"
	case nodeAnd:
		return "And"
	case nodeOr:
		return "Or"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// binopText gives the source text of a binary operator node kind.
func (k nodeKind) binopText() string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeRem:
		return "%"
	case nodePow:
		return "^"
	case nodeAnd:
		return "&"
	case nodeOr:
		return "|"
	default:
		return ""
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	case nodeNeg:
		b.WriteString("(-")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeNop:
		b.WriteString("(+")
		n.left.fmt(b)
		b.WriteByte(')')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeRem, nodePow, nodeAnd, nodeOr:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.kind.binopText())
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("calcexpr: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
