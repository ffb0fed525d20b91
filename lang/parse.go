package lang

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Parse parses an expression.
//
// Malformed input fails with [ErrSyntax]; a call to a function missing from
// the registry fails with [ErrUndefinedSymbol].
func Parse(ctx context.Context, src string, opts ...Option) (*Expr, error) {
	o := makeOptions(opts...)

	toks, err := lex(src)
	if err != nil {
		return nil, err
	}

	p := &parser{src: src, toks: toks, functions: o.functions}

	if p.peek().typ == tokEOF {
		return nil, syntaxError(p.peek().pos, "", "empty expression")
	}

	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ != tokEOF {
		if tok.typ == tokRParen {
			return nil, syntaxError(tok.pos, p.near(tok), "unmatched ')'")
		}

		return nil, syntaxError(tok.pos, p.near(tok), "unexpected "+tok.describe())
	}

	o.logger.TraceContext(ctx, "parse complete",
		slog.String("source", src),
		slog.String("tree", root.String()))

	return &Expr{Root: root, Source: src}, nil
}

// MustParse is like [Parse] but panics on error.
// It simplifies initialization of expressions known to be valid.
func MustParse(src string) *Expr {
	e, err := Parse(context.Background(), src)
	if err != nil {
		panic(err)
	}

	return e
}

// parser is a recursive-descent parser over a token slice.
type parser struct {
	functions Functions
	src       string
	toks      []token
	pos       int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	tok := p.toks[p.pos]
	if tok.typ != tokEOF {
		p.pos++
	}

	return tok
}

// near returns the source text from tok to the end of its line, trimmed.
func (p *parser) near(tok token) string {
	rest := p.src[tok.pos.Offset:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}

	return strings.TrimSpace(rest)
}

func (p *parser) isOp(ops ...Op) (Op, bool) {
	tok := p.peek()
	if tok.typ != tokOp {
		return 0, false
	}

	for _, op := range ops {
		if tok.val == op.String() {
			return op, true
		}
	}

	return 0, false
}

// parseExpr parses: Term (('+' | '-') Term)*.
func (p *parser) parseExpr() (Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.isOp(OpAdd, OpSub)
		if !ok {
			return left, nil
		}

		tok := p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		left = &BinaryOp{Op: op, Left: left, Right: right, Position: tok.pos}
	}
}

// parseTerm parses: Power (('*' | '/') Power | Power)*.
// A number or identifier directly following an operand is an implicit '*'.
func (p *parser) parseTerm() (Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.isOp(OpMul, OpDiv)

		tok := p.peek()

		switch {
		case ok:
			p.advance()

		case tok.typ == tokNumber || tok.typ == tokIdent:
			op = OpMul

		default:
			return left, nil
		}

		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}

		left = p.multiply(op, left, right, tok.pos)
	}
}

// multiply builds left op right, folding a number times a built-in unit
// into a [UnitLiteral].
func (p *parser) multiply(op Op, left, right Node, pos Position) Node {
	if op == OpMul {
		num, isNum := left.(*NumberLiteral)
		id, isID := right.(*Identifier)

		if isNum && isID && Builtins().Has(id.Name) {
			return &UnitLiteral{Value: num.Value, Unit: id.Name, Position: num.Position}
		}
	}

	return &BinaryOp{Op: op, Left: left, Right: right, Position: pos}
}

// parsePower parses: Unary ('^' Power)?.
func (p *parser) parsePower() (Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if _, ok := p.isOp(OpPow); !ok {
		return base, nil
	}

	tok := p.advance()

	exp, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	return &BinaryOp{Op: OpPow, Left: base, Right: exp, Position: tok.pos}, nil
}

// parseUnary parses: '-' Unary | Primary.
func (p *parser) parseUnary() (Node, error) {
	if _, ok := p.isOp(OpSub); ok {
		tok := p.advance()

		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return &UnaryOp{Op: OpSub, Operand: operand, Position: tok.pos}, nil
	}

	return p.parsePrimary()
}

// parsePrimary parses a number, identifier, call, or parenthesized Expr.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.typ {
	case tokNumber:
		p.advance()

		v, err := strconv.ParseFloat(tok.val, 64)
		if err != nil {
			return nil, syntaxError(tok.pos, tok.val, "invalid number")
		}

		return &NumberLiteral{Value: v, Text: tok.val, Position: tok.pos}, nil

	case tokIdent:
		p.advance()

		if p.peek().typ == tokLParen {
			return p.parseCall(tok)
		}

		return &Identifier{Name: tok.val, Position: tok.pos}, nil

	case tokLParen:
		p.advance()

		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.peek().typ != tokRParen {
			return nil, syntaxError(tok.pos, p.near(tok), "missing ')'")
		}

		p.advance()

		return inner, nil

	case tokEOF:
		return nil, syntaxError(tok.pos, "", "unexpected end of expression")

	case tokRParen:
		return nil, syntaxError(tok.pos, p.near(tok), "unmatched ')'")
	}

	return nil, syntaxError(tok.pos, p.near(tok), "unexpected "+tok.describe())
}

// parseCall parses the argument list of a call to the function named by tok.
func (p *parser) parseCall(name token) (Node, error) {
	open := p.advance()

	var args []Node

	if p.peek().typ != tokRParen {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if p.peek().typ != tokComma {
				break
			}

			p.advance()
		}
	}

	if p.peek().typ != tokRParen {
		return nil, syntaxError(open.pos, p.near(name), "missing ')' in call")
	}

	p.advance()

	fn, ok := p.functions[name.val]
	if !ok {
		return nil, ErrUndefinedSymbol.
			With(
				slog.String("function", name.val),
				slog.Int("column", name.pos.Column),
			).
			Wrap(suggestError(
				fmt.Sprintf("unknown function %s", quote(name.val)),
				name.val, p.functions.Names(),
			))
	}

	if !fn.Accepts(len(args)) {
		want := strconv.Itoa(fn.Arity)
		if fn.Arity == Variadic {
			want = "at least 1"
		}

		return nil, syntaxError(name.pos, p.near(name),
			fmt.Sprintf("%s expects %s argument(s), got %d", name.val, want, len(args)))
	}

	return &FunctionCall{Func: fn, Name: name.val, Args: args, Position: name.pos}, nil
}
