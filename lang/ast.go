package lang

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Position identifies a location in expression source text.
type Position struct {
	Offset int // byte offset, starting at 0
	Line   int // line number, starting at 1
	Column int // column number in runes, starting at 1
}

// String returns "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Node is an immutable expression tree node.
type Node interface {
	// Pos returns the position of the first token of the node.
	Pos() Position
	// String renders the node fully parenthesized.
	String() string

	node()
}

// Op is an arithmetic operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

func (o Op) String() string { return string(rune(o)) }

// NumberLiteral is a numeric constant.
type NumberLiteral struct {
	Text     string
	Value    float64
	Position Position
}

// UnitLiteral is a number scaled by a built-in unit, such as "1.55 eV".
type UnitLiteral struct {
	Unit     string
	Value    float64
	Position Position
}

// Identifier is a reference to a named value.
type Identifier struct {
	Name     string
	Position Position
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Left, Right Node
	Position    Position
	Op          Op
}

// UnaryOp applies Op to Operand. The only unary operator is negation.
type UnaryOp struct {
	Operand  Node
	Position Position
	Op       Op
}

// FunctionCall invokes a registered function.
type FunctionCall struct {
	Func     *Function
	Name     string
	Args     []Node
	Position Position
}

func (n *NumberLiteral) Pos() Position { return n.Position }
func (n *UnitLiteral) Pos() Position   { return n.Position }
func (n *Identifier) Pos() Position    { return n.Position }
func (n *BinaryOp) Pos() Position      { return n.Position }
func (n *UnaryOp) Pos() Position       { return n.Position }
func (n *FunctionCall) Pos() Position  { return n.Position }

func (*NumberLiteral) node() {}
func (*UnitLiteral) node()   {}
func (*Identifier) node()    {}
func (*BinaryOp) node()      {}
func (*UnaryOp) node()       {}
func (*FunctionCall) node()  {}

func (n *NumberLiteral) String() string {
	if n.Text != "" {
		return n.Text
	}

	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *UnitLiteral) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64) + " " + n.Unit
}

func (n *Identifier) String() string { return n.Name }

func (n *BinaryOp) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

func (n *UnaryOp) String() string { return "(" + n.Op.String() + n.Operand.String() + ")" }

func (n *FunctionCall) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}

	return n.Name + "(" + strings.Join(args, ", ") + ")"
}

// Walk calls fn for node and each of its descendants in depth-first order.
// Children are skipped when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *BinaryOp:
		Walk(n.Left, fn)
		Walk(n.Right, fn)

	case *UnaryOp:
		Walk(n.Operand, fn)

	case *FunctionCall:
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	}
}

// Expr is a parsed expression with its source text.
type Expr struct {
	Root   Node
	Source string
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string { return e.Source }

// Idents returns the distinct identifier names referenced by e, sorted.
func (e *Expr) Idents() []string {
	return Identifiers(e.Root)
}

// Identifiers returns the distinct identifier names referenced under node,
// sorted.
func Identifiers(node Node) []string {
	set := map[string]struct{}{}

	Walk(node, func(n Node) bool {
		if id, ok := n.(*Identifier); ok {
			set[id.Name] = struct{}{}
		}

		return true
	})

	return slices.Sorted(maps.Keys(set))
}
