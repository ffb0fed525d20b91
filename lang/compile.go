package lang

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/qedcfg/pkg"
)

// Prefixes keeping lowered names clear of expr-lang keywords and builtins.
const (
	identPrefix = "v_"
	funcPrefix  = "fn_"
)

// Kernel is an expression compiled for repeated evaluation over
// per-particle fields.
//
// Identifiers naming one of the dynamic fields given to [Compile] are read
// from the [Fields] passed to [Kernel.Run]; every other identifier is
// folded to its constant value at compile time. A Kernel is immutable and
// safe for concurrent use.
type Kernel struct {
	expr    *Expr
	table   *Table
	program *vm.Program
	fields  []string
	keys    []string
	source  string
}

// Compile lowers e to an expr-lang program.
//
// Names in fields shadow constants of the same name. Any other identifier
// must resolve through table, or through the built-in units when table is
// nil; otherwise Compile fails with [ErrUndefinedSymbol].
func Compile(
	ctx context.Context,
	e *Expr,
	table *Table,
	fields []string,
	opts ...Option,
) (*Kernel, error) {
	o := makeOptions(opts...)

	dynamic := map[string]bool{}
	for _, f := range fields {
		dynamic[f] = true
	}

	k := &Kernel{expr: e, table: table}
	consts := map[string]float64{}

	var errs pkg.Errors

	for _, id := range e.Idents() {
		if dynamic[id] {
			k.fields = append(k.fields, id)

			continue
		}

		v, ok := table.Lookup(id)
		if !ok {
			candidates := append(table.Symbols(), fields...)
			errs.Add(ErrUndefinedSymbol.
				With(slog.String("symbol", id), slog.String("expr", e.Source)).
				Wrap(suggestError(fmt.Sprintf("%s is not defined", quote(id)), id, candidates)))

			continue
		}

		consts[id] = v
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	var b strings.Builder

	calls := map[string]*Function{}
	lower(&b, e.Root, calls)

	k.source = b.String()

	env := make(map[string]any, len(k.fields))
	for _, f := range k.fields {
		key := identPrefix + f
		env[key] = 0.0
		k.keys = append(k.keys, key)
	}

	options := []expr.Option{
		expr.Env(env),
		expr.AsFloat64(),
		expr.Patch(&constantFolder{consts: consts, logger: o.logger}),
		expr.Function(funcPrefix+"div", arith(OpDiv), new(func(float64, float64) float64)),
		expr.Function(funcPrefix+"pow", arith(OpPow), new(func(float64, float64) float64)),
	}

	for _, name := range slices.Sorted(maps.Keys(calls)) {
		fn := calls[name]
		options = append(options,
			expr.Function(funcPrefix+name, call(fn), signature(fn)))
	}

	program, err := expr.Compile(k.source, options...)
	if err != nil {
		return nil, ErrCompile.
			With(slog.String("expr", e.Source), slog.String("lowered", k.source)).
			Wrap(err)
	}

	k.program = program

	o.logger.TraceContext(ctx, "kernel compiled",
		slog.String("expr", e.Source),
		slog.String("lowered", k.source),
		slog.Any("fields", k.fields),
		slog.Int("constants", len(consts)))

	return k, nil
}

// Run evaluates the kernel with the dynamic field values in fields.
func (k *Kernel) Run(fields Fields) (float64, error) {
	env := make(map[string]any, len(k.keys))

	for i, f := range k.fields {
		v, ok := fields[f]
		if !ok {
			return 0, ErrUndefinedSymbol.
				With(slog.String("symbol", f), slog.String("expr", k.expr.Source)).
				Wrap(fmt.Errorf("field %s has no value", quote(f)))
		}

		env[k.keys[i]] = v
	}

	out, err := expr.Run(k.program, env)
	if err != nil {
		// The tree walk recovers the typed error raised inside the program.
		if _, evalErr := Eval(k.expr.Root, Layers{fields, k.table}); evalErr != nil {
			return 0, evalErr
		}

		return 0, ErrEvaluate.With(slog.String("expr", k.expr.Source)).Wrap(err)
	}

	v, ok := out.(float64)
	if !ok {
		return 0, ErrEvaluate.
			With(slog.String("expr", k.expr.Source)).
			Wrap(fmt.Errorf("unexpected result type %T", out))
	}

	return finite(v, k.expr.Root)
}

// Expr returns the source expression.
func (k *Kernel) Expr() *Expr { return k.expr }

// Fields returns the dynamic fields the kernel reads, sorted.
func (k *Kernel) Fields() []string { return slices.Clone(k.fields) }

// Dynamic reports whether the kernel reads any dynamic field.
func (k *Kernel) Dynamic() bool { return len(k.fields) > 0 }

// Lowered returns the expr-lang source compiled for the kernel.
func (k *Kernel) Lowered() string { return k.source }

// String implements fmt.Stringer.
func (k *Kernel) String() string { return k.expr.Source }

// lower writes node as expr-lang source to b, recording every function
// called in calls. Division and exponentiation route through functions so
// that they fail the same way [Arith] does.
func lower(b *strings.Builder, node Node, calls map[string]*Function) {
	switch n := node.(type) {
	case *NumberLiteral:
		b.WriteString(floatLiteral(n.Value))

	case *UnitLiteral:
		factor, _ := Builtins().Lookup(n.Unit)
		b.WriteString(floatLiteral(n.Value * factor))

	case *Identifier:
		b.WriteString(identPrefix + n.Name)

	case *UnaryOp:
		b.WriteString("(-(")
		lower(b, n.Operand, calls)
		b.WriteString("))")

	case *BinaryOp:
		switch n.Op {
		case OpDiv, OpPow:
			name := "div"
			if n.Op == OpPow {
				name = "pow"
			}

			b.WriteString(funcPrefix + name + "(")
			lower(b, n.Left, calls)
			b.WriteString(", ")
			lower(b, n.Right, calls)
			b.WriteString(")")

		default:
			b.WriteString("(")
			lower(b, n.Left, calls)
			b.WriteString(" " + n.Op.String() + " ")
			lower(b, n.Right, calls)
			b.WriteString(")")
		}

	case *FunctionCall:
		calls[n.Name] = n.Func

		b.WriteString(funcPrefix + n.Name + "(")

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			lower(b, arg, calls)
		}

		b.WriteString(")")
	}
}

// floatLiteral formats v so that expr-lang always parses a float.
func floatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

func arith(op Op) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		args, err := floats(params)
		if err != nil {
			return nil, err
		}

		return Arith(op, args[0], args[1])
	}
}

func call(fn *Function) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		args, err := floats(params)
		if err != nil {
			return nil, err
		}

		return fn.Call(args...)
	}
}

// signature returns the expr-lang type declaration of fn.
func signature(fn *Function) any {
	f64 := reflect.TypeFor[float64]()
	out := []reflect.Type{f64}

	if fn.Arity == Variadic {
		return reflect.New(reflect.FuncOf(
			[]reflect.Type{reflect.SliceOf(f64)}, out, true)).Interface()
	}

	in := make([]reflect.Type, fn.Arity)
	for i := range in {
		in[i] = f64
	}

	return reflect.New(reflect.FuncOf(in, out, false)).Interface()
}

func floats(params []any) ([]float64, error) {
	out := make([]float64, len(params))

	for i, p := range params {
		switch v := p.(type) {
		case float64:
			out[i] = v
		case int:
			out[i] = float64(v)
		default:
			return nil, ErrEvaluate.Wrap(fmt.Errorf("argument %d has type %T", i+1, p))
		}
	}

	return out, nil
}
