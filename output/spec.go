package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/pkg"
)

// MaxAxes is the largest number of axes in one entry.
const MaxAxes = 3

// Axis is one histogram dimension.
type Axis struct {
	Kernel *lang.Kernel `json:"-"     yaml:"-"`
	Range  Range        `json:"range" yaml:"range"`
	Var    string       `json:"var"   yaml:"var"`
}

// Predicate accepts particles whose variable lies in [Lo, Hi].
type Predicate struct {
	Kernel *lang.Kernel `json:"-"   yaml:"-"`
	Var    string       `json:"var" yaml:"var"`
	Lo     float64      `json:"lo"  yaml:"lo"`
	Hi     float64      `json:"hi"  yaml:"hi"`
}

// Test evaluates p for one particle.
func (p *Predicate) Test(fields lang.Fields) (bool, error) {
	v, err := p.Kernel.Run(fields)
	if err != nil {
		return false, err
	}

	return v >= p.Lo && v <= p.Hi, nil
}

func (p *Predicate) String() string {
	return p.Var + " in " + bound(&p.Lo) + ", " + bound(&p.Hi)
}

// Spec is a compiled output entry. It is immutable and safe for concurrent
// use.
type Spec struct {
	// Weight is the per-particle weight. Nil selects the weight field when a
	// particle provides it, otherwise 1.
	Weight     *lang.Kernel
	Species    string
	WeightExpr string
	line       string
	Axes       []Axis
	Predicates []*Predicate
	Bins       int
	Binning    Binning
}

// Sample is the contribution of one particle to an entry.
type Sample struct {
	Coords []float64
	Weight float64
}

// Compile parses one output entry for species.
//
// Axis variables, weights, and predicate variables are per-particle
// expressions; range and predicate bounds are constant expressions over
// table. Names that resolve nowhere fail with [ErrUnknownVariable];
// malformed clauses fail with [ErrAxisSpec].
func Compile(
	ctx context.Context,
	species, line string,
	table *lang.Table,
	opts ...Option,
) (*Spec, error) {
	o := makeOptions(table, opts...)

	s, err := compile(ctx, o, species, strings.TrimSpace(line), table)
	if err != nil {
		return nil, withAttrs(err, slog.String("species", species), slog.String("entry", line))
	}

	o.logger.DebugContext(ctx, "output compiled",
		slog.String("species", species),
		slog.Int("axes", len(s.Axes)),
		slog.String("line", s.line))

	return s, nil
}

// CompileLines compiles every entry for species, reporting all failures in
// one [pkg.Errors]. Each error carries the index of its entry.
func CompileLines(
	ctx context.Context,
	species string,
	lines []string,
	table *lang.Table,
	opts ...Option,
) ([]*Spec, error) {
	o := makeOptions(table, opts...)
	opts = append(opts, WithCache(o.cache))

	var (
		specs []*Spec
		errs  pkg.Errors
	)

	for i, line := range lines {
		s, err := Compile(ctx, species, line, table, opts...)
		if err != nil {
			errs.Add(withAttrs(err, slog.Int("index", i)))

			continue
		}

		specs = append(specs, s)
	}

	return specs, errs.Err()
}

// compiler carries the state of one entry.
type compiler struct {
	ctx    context.Context
	table  *lang.Table
	spec   *Spec
	ranges []Range
	opts   options
	bins   bool
	binned bool
}

func compile(
	ctx context.Context,
	o options,
	species, line string,
	table *lang.Table,
) (*Spec, error) {
	if line == "" {
		return nil, ErrAxisSpec.Wrap(errors.New("empty entry"))
	}

	parts := lang.Split(line, ':')

	var clauses []string

	// A lone part is always an axis, even when fully parenthesized.
	if n := len(parts); n > 1 && enclosed(parts[n-1]) {
		clauses = lang.Split(parts[n-1][1:len(parts[n-1])-1], ';')
		parts = parts[:n-1]
	}

	switch {
	case len(parts) == 0:
		return nil, ErrAxisSpec.Wrap(errors.New("no axis variable"))

	case len(parts) > MaxAxes:
		return nil, ErrAxisSpec.Wrap(
			fmt.Errorf("%d axes exceed the maximum of %d", len(parts), MaxAxes))
	}

	c := &compiler{
		ctx:   ctx,
		table: table,
		opts:  o,
		spec:  &Spec{Species: species, Bins: o.bins, Binning: Linear},
	}

	var errs pkg.Errors

	for _, v := range parts {
		if v == "" {
			errs.Add(ErrAxisSpec.Wrap(errors.New("empty axis variable")))

			continue
		}

		k, err := c.kernel(v)
		if err != nil {
			errs.Add(err)

			continue
		}

		c.spec.Axes = append(c.spec.Axes, Axis{Var: v, Kernel: k, Range: Auto{}})
	}

	for _, clause := range clauses {
		errs.Add(c.clause(clause))
	}

	if err := errs.Err(); err != nil {
		return nil, err
	}

	if len(c.ranges) > len(c.spec.Axes) {
		return nil, ErrAxisSpec.Wrap(fmt.Errorf(
			"%d ranges given for %d axes", len(c.ranges), len(c.spec.Axes)))
	}

	for i, r := range c.ranges {
		c.spec.Axes[i].Range = r
	}

	c.attach()
	c.spec.line = c.render()

	return c.spec, nil
}

// enclosed reports whether the parenthesis opening s is closed by its final
// byte, as in "(a; b)" but not "(a + b) * 2".
func enclosed(s string) bool {
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return false
	}

	depth := 0

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i == len(s)-1
			}
		}
	}

	return false
}

// clause classifies and compiles one clause.
func (c *compiler) clause(src string) error {
	if src == "" {
		return ErrAxisSpec.Wrap(errors.New("empty clause"))
	}

	head, rest, _ := strings.Cut(src, " ")

	switch {
	case src == "auto":
		c.ranges = append(c.ranges, Auto{})

		return nil

	case src == Linear.String() || src == Log.String():
		if c.binned {
			return ErrAxisSpec.Wrap(errors.New("binning given more than once"))
		}

		c.binned = true
		c.spec.Binning, _ = ParseBinning(src)

		return nil

	case head == "bins":
		return c.binCount(strings.TrimSpace(rest))
	}

	if v, bounds, ok := lang.CutWord(src, "in"); ok {
		return c.predicate(v, bounds)
	}

	if parts := lang.Split(src, ','); len(parts) > 1 {
		return c.rangeClause(src, parts)
	}

	if c.spec.Weight != nil {
		return ErrAxisSpec.Wrap(fmt.Errorf("second weight %q", src))
	}

	k, err := c.kernel(src)
	if err != nil {
		return err
	}

	c.spec.Weight, c.spec.WeightExpr = k, src

	return nil
}

func (c *compiler) binCount(src string) error {
	if c.bins {
		return ErrAxisSpec.Wrap(errors.New("bin count given more than once"))
	}

	n, err := strconv.Atoi(src)
	if err != nil || n <= 0 {
		return ErrAxisSpec.
			With(slog.String("bins", src)).
			Wrap(fmt.Errorf("bin count %q is not a positive integer", src))
	}

	c.bins = true
	c.spec.Bins = n

	return nil
}

func (c *compiler) rangeClause(src string, parts []string) error {
	if len(parts) != 2 {
		return ErrAxisSpec.
			With(slog.String("range", src)).
			Wrap(fmt.Errorf("range needs 2 bounds, got %d", len(parts)))
	}

	var (
		bounds [2]*float64
		errs   pkg.Errors
	)

	for i, part := range parts {
		if part == "auto" {
			continue
		}

		v, err := c.constant(part)
		if err != nil {
			errs.Add(err)

			continue
		}

		bounds[i] = &v
	}

	if err := errs.Err(); err != nil {
		return err
	}

	lo, hi := bounds[0], bounds[1]

	if lo != nil && hi != nil {
		if *lo >= *hi {
			return ErrAxisSpec.
				With(slog.String("range", src)).
				Wrap(fmt.Errorf("lower bound %g is not below upper bound %g", *lo, *hi))
		}

		c.ranges = append(c.ranges, Fixed{Lo: *lo, Hi: *hi})

		return nil
	}

	c.ranges = append(c.ranges, Auto{Lo: lo, Hi: hi})

	return nil
}

func (c *compiler) predicate(v, src string) error {
	if v == "" {
		return ErrAxisSpec.Wrap(errors.New("predicate without a variable"))
	}

	parts := lang.Split(src, ',')
	if len(parts) != 2 {
		return ErrAxisSpec.
			With(slog.String("predicate", v+" in "+src)).
			Wrap(fmt.Errorf("predicate needs 2 bounds, got %d", len(parts)))
	}

	k, err := c.kernel(v)
	if err != nil {
		return err
	}

	lo, err := c.constant(parts[0])
	if err != nil {
		return err
	}

	hi, err := c.constant(parts[1])
	if err != nil {
		return err
	}

	if lo > hi {
		return ErrAxisSpec.Wrap(fmt.Errorf("predicate lower bound %g exceeds upper bound %g", lo, hi))
	}

	c.spec.Predicates = append(c.spec.Predicates, &Predicate{Var: v, Kernel: k, Lo: lo, Hi: hi})

	return nil
}

// attach turns auto ranges on predicated axes into [AutoWithPredicate].
func (c *compiler) attach() {
	for i, axis := range c.spec.Axes {
		auto, ok := axis.Range.(Auto)
		if !ok {
			continue
		}

		for _, p := range c.spec.Predicates {
			if p.Var == axis.Var {
				c.spec.Axes[i].Range = AutoWithPredicate{Auto: auto, Pred: p}

				break
			}
		}
	}
}

// render returns the canonical form of the entry.
func (c *compiler) render() string {
	s := c.spec
	vars := make([]string, len(s.Axes))
	ranges := make([]string, len(s.Axes))

	for i, a := range s.Axes {
		vars[i] = a.Var
		ranges[i] = a.Range.String()
	}

	clauses := ranges

	for _, p := range s.Predicates {
		clauses = append(clauses, p.String())
	}

	if s.Weight != nil {
		clauses = append(clauses, s.WeightExpr)
	}

	clauses = append(clauses, s.Binning.String(), "bins "+strconv.Itoa(s.Bins))

	return strings.Join(vars, ":") + ":(" + strings.Join(clauses, "; ") + ")"
}

// kernel compiles a per-particle expression.
func (c *compiler) kernel(src string) (*lang.Kernel, error) {
	k, err := c.opts.cache.Kernel(c.ctx, src, c.opts.fields)
	if errors.Is(err, lang.ErrUndefinedSymbol) {
		return nil, ErrUnknownVariable.With(slog.String("expr", src)).Wrap(err)
	}

	return k, err
}

// constant evaluates a bound.
func (c *compiler) constant(src string) (float64, error) {
	e, err := lang.Parse(c.ctx, src, c.opts.lang...)
	if err != nil {
		return 0, ErrAxisSpec.With(slog.String("bound", src)).Wrap(err)
	}

	v, err := lang.Eval(e.Root, c.table)
	if err != nil {
		if errors.Is(err, lang.ErrUndefinedSymbol) {
			return 0, ErrUnknownVariable.With(slog.String("bound", src)).Wrap(err)
		}

		return 0, ErrAxisSpec.With(slog.String("bound", src)).Wrap(err)
	}

	return v, nil
}

// Dims returns the number of axes.
func (s *Spec) Dims() int { return len(s.Axes) }

// Deferred reports whether any axis range is computed from data.
func (s *Spec) Deferred() bool {
	for _, a := range s.Axes {
		if a.Range.Deferred() {
			return true
		}
	}

	return false
}

// Sample evaluates the entry for one particle. It reports false when a
// predicate rejects the particle.
func (s *Spec) Sample(fields lang.Fields) (Sample, bool, error) {
	for _, p := range s.Predicates {
		ok, err := p.Test(fields)
		if err != nil {
			return Sample{}, false, s.wrap(err)
		}

		if !ok {
			return Sample{}, false, nil
		}
	}

	out := Sample{Coords: make([]float64, len(s.Axes)), Weight: 1}

	for i, a := range s.Axes {
		v, err := a.Kernel.Run(fields)
		if err != nil {
			return Sample{}, false, s.wrap(err)
		}

		out.Coords[i] = v
	}

	switch {
	case s.Weight != nil:
		w, err := s.Weight.Run(fields)
		if err != nil {
			return Sample{}, false, s.wrap(err)
		}

		out.Weight = w

	default:
		if w, ok := fields["weight"]; ok {
			out.Weight = w
		}
	}

	return out, true, nil
}

// String returns the canonical form of the entry.
func (s *Spec) String() string { return s.line }

// MarshalText implements encoding.TextMarshaler.
func (s *Spec) MarshalText() ([]byte, error) { return []byte(s.line), nil }

func (s *Spec) wrap(err error) error {
	return withAttrs(err, slog.String("species", s.Species), slog.String("entry", s.line))
}

func withAttrs(err error, attrs ...slog.Attr) error {
	if e, ok := err.(*pkg.Error); ok {
		return e.With(attrs...)
	}

	return err
}
