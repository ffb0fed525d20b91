package lang

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"sync"
)

// Variadic is the [Function.Arity] of a function accepting one or more
// arguments.
const Variadic = -1

// Function is a math function callable from expressions.
type Function struct {
	Call  func(args ...float64) (float64, error)
	Name  string
	Doc   string
	Arity int
}

// Accepts reports whether the function can be called with n arguments.
func (f *Function) Accepts(n int) bool {
	if f.Arity == Variadic {
		return n > 0
	}

	return n == f.Arity
}

// Functions is a read-only function registry.
type Functions map[string]*Function

// Names returns the sorted function names.
func (fs Functions) Names() []string { return slices.Sorted(maps.Keys(fs)) }

// domainError reports an argument outside the domain of fn.
func domainError(fn string, arg float64, domain string) error {
	return ErrDomain.
		With(
			slog.String("function", fn),
			slog.Float64("argument", arg),
			slog.String("domain", domain),
		).
		Wrap(fmt.Errorf("%s(%g) outside domain %s", fn, arg, domain))
}

func unary(name, doc string, fn func(float64) float64, valid func(float64) bool, domain string) *Function {
	return &Function{
		Name:  name,
		Doc:   doc,
		Arity: 1,
		Call: func(args ...float64) (float64, error) {
			if valid != nil && !valid(args[0]) {
				return 0, domainError(name, args[0], domain)
			}

			return fn(args[0]), nil
		},
	}
}

func binary(name, doc string, fn func(float64, float64) float64) *Function {
	return &Function{
		Name:  name,
		Doc:   doc,
		Arity: 2,
		Call: func(args ...float64) (float64, error) {
			return fn(args[0], args[1]), nil
		},
	}
}

func fold(name, doc string, fn func(float64, float64) float64) *Function {
	return &Function{
		Name:  name,
		Doc:   doc,
		Arity: Variadic,
		Call: func(args ...float64) (float64, error) {
			acc := args[0]
			for _, arg := range args[1:] {
				acc = fn(acc, arg)
			}

			return acc, nil
		},
	}
}

func positive(x float64) bool    { return x > 0 }
func nonNegative(x float64) bool { return x >= 0 }
func unitRange(x float64) bool   { return x >= -1 && x <= 1 }

// DefaultFunctions returns the built-in function registry.
var DefaultFunctions = sync.OnceValue(func() Functions {
	fs := Functions{}

	for _, fn := range []*Function{
		unary("sin", "sine", math.Sin, nil, ""),
		unary("cos", "cosine", math.Cos, nil, ""),
		unary("tan", "tangent", math.Tan, nil, ""),
		unary("asin", "inverse sine", math.Asin, unitRange, "[-1, 1]"),
		unary("acos", "inverse cosine", math.Acos, unitRange, "[-1, 1]"),
		unary("atan", "inverse tangent", math.Atan, nil, ""),
		unary("sinh", "hyperbolic sine", math.Sinh, nil, ""),
		unary("cosh", "hyperbolic cosine", math.Cosh, nil, ""),
		unary("tanh", "hyperbolic tangent", math.Tanh, nil, ""),
		unary("sqrt", "square root", math.Sqrt, nonNegative, "x >= 0"),
		unary("cbrt", "cube root", math.Cbrt, nil, ""),
		unary("exp", "exponential", math.Exp, nil, ""),
		unary("ln", "natural logarithm", math.Log, positive, "x > 0"),
		unary("log", "natural logarithm", math.Log, positive, "x > 0"),
		unary("log10", "base-10 logarithm", math.Log10, positive, "x > 0"),
		unary("log2", "base-2 logarithm", math.Log2, positive, "x > 0"),
		unary("abs", "absolute value", math.Abs, nil, ""),
		unary("floor", "round down", math.Floor, nil, ""),
		unary("ceil", "round up", math.Ceil, nil, ""),
		binary("atan2", "four-quadrant inverse tangent of y, x", math.Atan2),
		binary("hypot", "sqrt(x^2 + y^2)", math.Hypot),
		fold("min", "smallest argument", math.Min),
		fold("max", "largest argument", math.Max),
	} {
		fs[fn.Name] = fn
	}

	return fs
})
