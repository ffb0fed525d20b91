package lang

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/ardnew/qedcfg/pkg"
)

// Definition binds a user constant name to expression source text.
type Definition struct {
	Name   string
	Source string
	// Field locates the definition in its document, such as "constants.a0".
	Field string
	// Line and Column locate the definition in its document when known.
	Line   int
	Column int
}

// attrs returns the location attributes of d.
func (d Definition) attrs() []slog.Attr {
	attrs := []slog.Attr{slog.String("field", d.Field)}
	if d.Line > 0 {
		attrs = append(attrs, slog.Int("line", d.Line), slog.Int("column", d.Column))
	}

	return attrs
}

// Table is an immutable set of resolved constants layered over the
// built-in units. It is safe for concurrent use.
type Table struct {
	values map[string]float64
	exprs  map[string]*Expr
	deps   map[string][]string
	order  []string
}

// Lookup implements [Scope], searching user constants before built-ins.
func (t *Table) Lookup(name string) (float64, bool) {
	if t != nil {
		if v, ok := t.values[name]; ok {
			return v, true
		}
	}

	return Builtins().Lookup(name)
}

// Names returns the user constant names in evaluation order.
func (t *Table) Names() []string { return slices.Clone(t.order) }

// Expr returns the parsed definition of a user constant.
func (t *Table) Expr(name string) (*Expr, bool) {
	e, ok := t.exprs[name]

	return e, ok
}

// Deps returns the user constants that name references directly, sorted.
func (t *Table) Deps(name string) []string { return slices.Clone(t.deps[name]) }

// Constants iterates user constants in evaluation order.
func (t *Table) Constants() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, name := range t.order {
			if !yield(name, t.values[name]) {
				return
			}
		}
	}
}

// Map returns a copy of the user constants.
func (t *Table) Map() map[string]float64 { return maps.Clone(t.values) }

// Len returns the number of user constants.
func (t *Table) Len() int { return len(t.order) }

// Symbols returns every name resolvable through t, sorted.
func (t *Table) Symbols() []string {
	names := Builtins().Names()
	if t != nil {
		names = append(names, t.order...)
	}

	slices.Sort(names)

	return slices.Compact(names)
}

// visit states of the three-colour depth-first search.
const (
	white = iota // unvisited
	gray         // on the current path
	black        // finished
)

// resolver carries the state of one [Resolve] call.
type resolver struct {
	defs   map[string]Definition
	exprs  map[string]*Expr
	deps   map[string][]string
	broken map[string]bool
	color  map[string]int
	names  []string
	order  []string
	path   []string
	errs   pkg.Errors
}

// Resolve parses, orders, and evaluates defs.
//
// Order in defs is irrelevant; the result depends only on the set of
// definitions. Every independent problem is reported in a single
// [pkg.Errors]: syntax errors, references to undefined names, dependency
// cycles, redefinitions of built-ins, and evaluation errors. A definition
// that depends on a broken one is skipped without a further error.
func Resolve(ctx context.Context, defs []Definition, opts ...Option) (*Table, error) {
	o := makeOptions(opts...)

	r := &resolver{
		defs:   map[string]Definition{},
		exprs:  map[string]*Expr{},
		deps:   map[string][]string{},
		broken: map[string]bool{},
		color:  map[string]int{},
	}

	r.declare(defs)
	r.parse(ctx, opts...)
	r.link()

	o.logger.TraceContext(ctx, "graph built",
		slog.Int("constants", len(r.names)),
		slog.Int("errors", len(r.errs)))

	r.sort()

	o.logger.TraceContext(ctx, "plan ordered", slog.Any("order", r.order))

	values := r.evaluate(ctx, o)

	if err := r.errs.Err(); err != nil {
		o.logger.DebugContext(ctx, "constant resolution failed",
			slog.Int("errors", len(r.errs)))

		return nil, err
	}

	o.logger.DebugContext(ctx, "constants resolved", slog.Int("count", len(values)))

	return &Table{values: values, exprs: r.exprs, deps: r.deps, order: r.order}, nil
}

// declare records each definition, rejecting invalid, duplicate, and
// built-in names.
func (r *resolver) declare(defs []Definition) {
	for _, d := range defs {
		switch {
		case !IsIdentifier(d.Name):
			r.errs.Add(ErrSyntax.With(d.attrs()...).
				Wrap(fmt.Errorf("invalid constant name %s", quote(d.Name))))

			continue

		case Builtins().Has(d.Name):
			u, _ := Builtins().Unit(d.Name)
			r.errs.Add(ErrSymbolCollision.With(d.attrs()...).
				Wrap(fmt.Errorf("%s redefines the built-in %s", quote(d.Name), u.Doc)))

			continue
		}

		if prev, ok := r.defs[d.Name]; ok {
			r.errs.Add(ErrSymbolCollision.
				With(d.attrs()...).
				With(slog.String("previous", prev.Field)).
				Wrap(fmt.Errorf("%s is defined more than once", quote(d.Name))))

			continue
		}

		r.defs[d.Name] = d
	}

	r.names = slices.Sorted(maps.Keys(r.defs))
}

func (r *resolver) parse(ctx context.Context, opts ...Option) {
	for _, name := range r.names {
		d := r.defs[name]

		e, err := Parse(ctx, d.Source, opts...)
		if err != nil {
			r.fail(name, err)

			continue
		}

		r.exprs[name] = e
	}
}

// link records dependency edges and reports references to unknown names.
func (r *resolver) link() {
	for _, name := range r.names {
		e, ok := r.exprs[name]
		if !ok {
			continue
		}

		var deps []string

		for _, id := range e.Idents() {
			switch {
			case Builtins().Has(id):

			case r.has(id):
				deps = append(deps, id)

			default:
				r.fail(name, ErrUndefinedSymbol.
					With(slog.String("symbol", id), slog.String("referenced_by", name)).
					Wrap(suggestError(
						fmt.Sprintf("%s referenced by %s is not defined", quote(id), quote(name)),
						id, r.candidates(),
					)))
			}
		}

		r.deps[name] = deps
	}
}

// has reports whether name was declared, even if it failed to parse.
func (r *resolver) has(name string) bool {
	_, ok := r.defs[name]

	return ok
}

func (r *resolver) candidates() []string {
	return append(Builtins().Names(), r.names...)
}

// sort computes the evaluation order with a three-colour depth-first search
// over names in sorted order, reporting every cycle it closes.
func (r *resolver) sort() {
	for _, name := range r.names {
		if r.color[name] == white {
			r.visit(name)
		}
	}
}

func (r *resolver) visit(name string) {
	r.color[name] = gray
	r.path = append(r.path, name)

	for _, dep := range r.deps[name] {
		switch r.color[dep] {
		case white:
			r.visit(dep)

		case gray:
			start := slices.Index(r.path, dep)
			cycle := append(slices.Clone(r.path[start:]), dep)

			for _, member := range cycle {
				r.broken[member] = true
			}

			r.errs.Add(ErrCyclicDependency.
				With(r.defs[dep].attrs()...).
				With(slog.Any("cycle", cycle)).
				Wrap(errors.New(strings.Join(cycle, " -> "))))
		}
	}

	r.path = r.path[:len(r.path)-1]
	r.color[name] = black
	r.order = append(r.order, name)
}

// evaluate computes each constant in plan order.
func (r *resolver) evaluate(ctx context.Context, o options) map[string]float64 {
	values := make(map[string]float64, len(r.order))
	scope := Layers{Fields(values), Builtins()}

	for _, name := range r.order {
		if r.broken[name] || slices.ContainsFunc(r.deps[name], r.isBroken) {
			r.broken[name] = true

			continue
		}

		v, err := Eval(r.exprs[name].Root, scope)
		if err != nil {
			r.fail(name, err)

			continue
		}

		values[name] = v

		o.logger.TraceContext(ctx, "constant resolved",
			slog.String("name", name), slog.Float64("value", v))
	}

	return values
}

func (r *resolver) isBroken(name string) bool { return r.broken[name] }

// fail marks name broken and records err with the location of name.
func (r *resolver) fail(name string, err error) {
	r.broken[name] = true

	if e, ok := err.(*pkg.Error); ok {
		r.errs.Add(e.With(r.defs[name].attrs()...))

		return
	}

	r.errs.Add(ErrEvaluate.With(r.defs[name].attrs()...).Wrap(err))
}
