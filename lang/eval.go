package lang

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/ardnew/qedcfg/pkg"
)

// Scope resolves names to values in canonical SI units.
type Scope interface {
	Lookup(name string) (float64, bool)
}

// Fields is a [Scope] over a plain map, used for per-particle values.
type Fields map[string]float64

// Lookup implements [Scope].
func (f Fields) Lookup(name string) (float64, bool) {
	v, ok := f[name]

	return v, ok
}

// Layers is a [Scope] searching each layer in order.
type Layers []Scope

// Lookup implements [Scope].
func (l Layers) Lookup(name string) (float64, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}

		if v, ok := s.Lookup(name); ok {
			return v, true
		}
	}

	return 0, false
}

// Eval evaluates node against scope.
//
// It never mutates node or scope and is safe for concurrent use when scope
// is. Unknown names fail with [ErrUndefinedSymbol], illegal arithmetic with
// [ErrDivisionByZero] or [ErrDomain]. A NaN or infinite result is always an
// error.
func Eval(node Node, scope Scope) (float64, error) {
	switch n := node.(type) {
	case *NumberLiteral:
		return n.Value, nil

	case *UnitLiteral:
		factor, ok := Builtins().Lookup(n.Unit)
		if !ok {
			return 0, undefined(n.Unit, n.Position)
		}

		return finite(n.Value*factor, n)

	case *Identifier:
		if scope != nil {
			if v, ok := scope.Lookup(n.Name); ok {
				return v, nil
			}
		}

		return 0, undefined(n.Name, n.Position)

	case *UnaryOp:
		v, err := Eval(n.Operand, scope)
		if err != nil {
			return 0, err
		}

		return -v, nil

	case *BinaryOp:
		l, err := Eval(n.Left, scope)
		if err != nil {
			return 0, err
		}

		r, err := Eval(n.Right, scope)
		if err != nil {
			return 0, err
		}

		v, err := Arith(n.Op, l, r)
		if err != nil {
			return 0, locate(err, n)
		}

		return finite(v, n)

	case *FunctionCall:
		args := make([]float64, len(n.Args))

		for i, arg := range n.Args {
			v, err := Eval(arg, scope)
			if err != nil {
				return 0, err
			}

			args[i] = v
		}

		v, err := n.Func.Call(args...)
		if err != nil {
			return 0, locate(err, n)
		}

		return finite(v, n)
	}

	return 0, ErrEvaluate.Wrap(fmt.Errorf("unsupported node %T", node))
}

// Arith applies a binary operator with the checks [Eval] performs.
func Arith(op Op, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil

	case OpSub:
		return l - r, nil

	case OpMul:
		return l * r, nil

	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero.With(slog.Float64("dividend", l))
		}

		return l / r, nil

	case OpPow:
		if l < 0 && r != math.Trunc(r) {
			return 0, ErrDomain.
				With(slog.Float64("base", l), slog.Float64("exponent", r)).
				Wrap(fmt.Errorf("negative base %g with non-integer exponent %g", l, r))
		}

		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero.With(slog.Float64("exponent", r))
		}

		return math.Pow(l, r), nil
	}

	return 0, ErrEvaluate.Wrap(fmt.Errorf("unknown operator %q", op))
}

func finite(v float64, n Node) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, locate(
			ErrDomain.Wrap(fmt.Errorf("%s is not finite (%g)", n.String(), v)), n)
	}

	return v, nil
}

func undefined(name string, pos Position) error {
	return ErrUndefinedSymbol.
		With(slog.String("symbol", name), slog.Int("column", pos.Column)).
		Wrap(fmt.Errorf("%s is not defined", quote(name)))
}

// locate attaches the expression text of n to err.
func locate(err error, n Node) error {
	if e, ok := err.(*pkg.Error); ok {
		return e.With(slog.String("expr", n.String()))
	}

	return err
}
