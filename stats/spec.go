package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/pkg"
)

// formulaTag separates the name of a formula entry from its expression.
const formulaTag = "`formula"

// Interval is a closed range of accepted sample values.
type Interval struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Contains reports whether lo <= x <= hi.
func (i Interval) Contains(x float64) bool { return x >= i.Lo && x <= i.Hi }

// Spec is a compiled statistics entry. It is immutable and safe for
// concurrent use; the mutable state lives in the [Accumulator] passed to
// [Spec.Observe].
type Spec struct {
	// Quantity is the per-particle value reduced. Nil for formula entries
	// and for particle counts.
	Quantity *lang.Kernel
	// Weight is the per-particle weight. Nil selects the weight field when a
	// particle provides it, otherwise 1.
	Weight *lang.Kernel
	// Range restricts the accepted samples when not nil.
	Range   *Interval
	Species string
	Name    string
	Unit    string
	line    string
	scale   float64
	value   float64
	Kind    Kind
}

// Result is the reduced value of one [Spec].
type Result struct {
	Species string  `json:"species"        yaml:"species"`
	Name    string  `json:"name"           yaml:"name"`
	Unit    string  `json:"unit,omitempty" yaml:"unit,omitempty"`
	Value   float64 `json:"value"          yaml:"value"`
	Weight  float64 `json:"weight"         yaml:"weight"`
	Count   int64   `json:"count"          yaml:"count"`
	Kind    Kind    `json:"kind"           yaml:"kind"`
}

// Compile parses one statistics line for species.
//
// Unknown aggregate keywords and references to names that are neither
// dynamic fields nor resolvable through table fail with
// [ErrUnknownVariable]. Malformed entries fail with [ErrStatSpec] or
// [lang.ErrSyntax].
func Compile(
	ctx context.Context,
	species, line string,
	table *lang.Table,
	opts ...Option,
) (*Spec, error) {
	o := makeOptions(table, opts...)

	s, err := compile(ctx, o, species, strings.TrimSpace(line), table)
	if err != nil {
		return nil, locate(err, species, line)
	}

	o.logger.DebugContext(ctx, "statistic compiled",
		slog.String("species", species),
		slog.String("name", s.Name),
		slog.String("kind", s.Kind.String()),
		slog.String("line", s.line))

	return s, nil
}

// CompileLines compiles every line for species, reporting all failures in
// one [pkg.Errors]. Each error carries the index of its line.
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

func compile(
	ctx context.Context,
	o options,
	species, line string,
	table *lang.Table,
) (*Spec, error) {
	if line == "" {
		return nil, ErrStatSpec.Wrap(errors.New("empty entry"))
	}

	body, unit, err := cutUnit(line)
	if err != nil {
		return nil, err
	}

	s := &Spec{Species: species, Unit: unit, scale: 1}

	if unit != "" {
		v, ok := table.Lookup(unit)
		if !ok || v == 0 {
			return nil, ErrUnknownVariable.
				With(slog.String("unit", unit)).
				Wrap(fmt.Errorf("unknown unit %q%s", unit, hint(unit, table.Symbols())))
		}

		s.scale = v
	}

	if name, src, ok := cutFormula(body); ok {
		return s.formula(ctx, o, name, src)
	}

	head, rest := cutHead(body)

	kind, err := ParseKind(head)
	if err != nil {
		if lang.IsIdentifier(head) && rest != "" {
			if k, kerr := o.cache.Kernel(ctx, rest, o.fields); kerr == nil && !k.Dynamic() {
				return s.formula(ctx, o, head, rest)
			}
		}

		return nil, err
	}

	switch {
	case kind == Formula:
		return nil, ErrStatSpec.Wrap(
			errors.New("formula entries take the form name`formula expression"))

	case rest == "":
		return nil, ErrStatSpec.Wrap(fmt.Errorf("%s requires a variable", kind))
	}

	s.Kind = kind

	quantity, bounds, restricted := lang.CutWord(rest, "in")
	quantity, weight, weighted := strings.Cut(quantity, "`")
	quantity = strings.TrimSpace(quantity)
	weight = strings.TrimSpace(weight)

	canon := []string{kind.String(), quantity}

	if kind != Total || quantity != "number" {
		if s.Quantity, err = kernel(ctx, o, quantity); err != nil {
			return nil, err
		}
	}

	if weighted {
		if s.Weight, err = kernel(ctx, o, weight); err != nil {
			return nil, err
		}

		canon[1] += "`" + weight
	}

	if restricted {
		if s.Range, err = interval(ctx, o, bounds, table); err != nil {
			return nil, err
		}

		canon = append(canon, "in", bounds)
	}

	s.Name = strings.Join(canon[:2], " ")
	s.line = strings.Join(canon, " ") + s.unitSuffix()

	return s, nil
}

// formula compiles a constant-valued entry and evaluates it once.
func (s *Spec) formula(ctx context.Context, o options, name, src string) (*Spec, error) {
	if !lang.IsIdentifier(name) {
		return nil, ErrStatSpec.Wrap(fmt.Errorf("invalid formula name %q", name))
	}

	k, err := kernel(ctx, o, src)
	if err != nil {
		return nil, err
	}

	if k.Dynamic() {
		return nil, ErrStatSpec.
			With(slog.Any("fields", k.Fields())).
			Wrap(fmt.Errorf("formula %s depends on per-particle fields", name))
	}

	if s.value, err = k.Run(nil); err != nil {
		return nil, err
	}

	s.Kind = Formula
	s.Name = name
	s.line = name + formulaTag + " " + src + s.unitSuffix()

	return s, nil
}

func (s *Spec) unitSuffix() string {
	if s.Unit == "" {
		return ""
	}

	return " [" + s.Unit + "]"
}

// Observe feeds the particle described by fields to acc.
func (s *Spec) Observe(acc *Accumulator, fields lang.Fields) error {
	if s.Kind == Formula {
		return nil
	}

	w := 1.0

	switch {
	case s.Weight != nil:
		v, err := s.Weight.Run(fields)
		if err != nil {
			return s.wrap(err)
		}

		w = v

	default:
		if v, ok := fields["weight"]; ok {
			w = v
		}
	}

	x := 1.0

	if s.Quantity != nil {
		v, err := s.Quantity.Run(fields)
		if err != nil {
			return s.wrap(err)
		}

		x = v
	}

	if s.Range != nil && !s.Range.Contains(x) {
		acc.Skip(w)

		return nil
	}

	acc.Add(x, w)

	return nil
}

// Report reduces acc to the value of s in the requested unit.
//
// An empty accumulator reports 0. The circular standard deviation of
// samples with zero mean resultant length is +Inf.
func (s *Spec) Report(acc Accumulator) Result {
	r := Result{
		Species: s.Species,
		Name:    s.Name,
		Kind:    s.Kind,
		Unit:    s.Unit,
		Count:   acc.Count,
		Weight:  acc.Weight,
	}

	switch s.Kind {
	case Formula:
		r.Value = s.value / s.scale

	case Fraction, CircVar:
		r.Value = acc.Value(s.Kind)

	case Variance:
		r.Value = acc.Value(s.Kind) / (s.scale * s.scale)

	default:
		r.Value = acc.Value(s.Kind) / s.scale
	}

	return r
}

// String returns the canonical form of the entry.
func (s *Spec) String() string { return s.line }

// MarshalText implements encoding.TextMarshaler.
func (s *Spec) MarshalText() ([]byte, error) { return []byte(s.line), nil }

func (s *Spec) wrap(err error) error {
	return withAttrs(err,
		slog.String("species", s.Species),
		slog.String("statistic", s.Name))
}

// kernel compiles src, reporting unknown names as [ErrUnknownVariable].
func kernel(ctx context.Context, o options, src string) (*lang.Kernel, error) {
	k, err := o.cache.Kernel(ctx, src, o.fields)
	if errors.Is(err, lang.ErrUndefinedSymbol) {
		return nil, ErrUnknownVariable.With(slog.String("expr", src)).Wrap(err)
	}

	return k, err
}

// interval evaluates the constant bounds "lo, hi".
func interval(ctx context.Context, o options, src string, table *lang.Table) (*Interval, error) {
	parts := lang.Split(src, ',')
	if len(parts) != 2 {
		return nil, ErrStatSpec.
			With(slog.String("range", src)).
			Wrap(fmt.Errorf("range needs 2 bounds, got %d", len(parts)))
	}

	var bounds [2]float64

	for i, part := range parts {
		e, err := lang.Parse(ctx, part, o.lang...)
		if err != nil {
			return nil, err
		}

		if bounds[i], err = lang.Eval(e.Root, table); err != nil {
			if errors.Is(err, lang.ErrUndefinedSymbol) {
				return nil, ErrUnknownVariable.With(slog.String("expr", part)).Wrap(err)
			}

			return nil, err
		}
	}

	if bounds[0] > bounds[1] {
		return nil, ErrStatSpec.
			With(slog.String("range", src)).
			Wrap(fmt.Errorf("range lower bound %g exceeds upper bound %g", bounds[0], bounds[1]))
	}

	return &Interval{Lo: bounds[0], Hi: bounds[1]}, nil
}

// cutUnit splits a trailing "[unit]" from line.
func cutUnit(line string) (body, unit string, err error) {
	if !strings.HasSuffix(line, "]") {
		return line, "", nil
	}

	i := strings.LastIndexByte(line, '[')
	if i < 0 {
		return "", "", lang.ErrSyntax.Wrap(errors.New("unmatched ']'"))
	}

	unit = strings.TrimSpace(line[i+1 : len(line)-1])
	if !lang.IsIdentifier(unit) {
		return "", "", lang.ErrSyntax.Wrap(fmt.Errorf("invalid unit %q", unit))
	}

	return strings.TrimSpace(line[:i]), unit, nil
}

// cutHead splits the first word from s.
// cutFormula splits "name`formula expr" around the tag. The tag must follow
// an identifier directly and end at a space or the end of s, so a weight
// such as "mean energy`formula_w" is not mistaken for one.
func cutFormula(s string) (name, src string, found bool) {
	name, src, found = strings.Cut(strings.TrimSpace(s), formulaTag)
	if !found || !lang.IsIdentifier(name) {
		return "", "", false
	}

	if src != "" && !unicode.IsSpace(rune(src[0])) {
		return "", "", false
	}

	return name, strings.TrimSpace(src), true
}

func cutHead(s string) (head, rest string) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}

	return s[:i], strings.TrimSpace(s[i:])
}

// locate attaches the entry text to err.
func locate(err error, species, line string) error {
	return withAttrs(err, slog.String("species", species), slog.String("entry", line))
}

func withAttrs(err error, attrs ...slog.Attr) error {
	if e, ok := err.(*pkg.Error); ok {
		return e.With(attrs...)
	}

	return err
}
