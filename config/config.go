package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/output"
	"github.com/ardnew/qedcfg/pkg"
	"github.com/ardnew/qedcfg/stats"
)

// Section names.
const (
	SectionInclude   = "include"
	SectionConstants = "constants"
	SectionControl   = "control"
	SectionLaser     = "laser"
	SectionBeam      = "beam"
	SectionStats     = "stats"
	SectionOutput    = "output"
)

// Output holds the output section.
type Output struct {
	Entries []*output.Spec
	Options output.Options
}

// ResolvedConfig is a fully evaluated configuration. It is immutable and
// safe for concurrent use.
type ResolvedConfig struct {
	// Laser and Beam are nil when their section is absent.
	Laser   *Laser
	Beam    *Beam
	table   *lang.Table
	cache   *lang.Cache
	Stats   []*stats.Spec
	Output  Output
	Control Control
}

// Table returns the resolved constants.
func (c *ResolvedConfig) Table() *lang.Table { return c.table }

// Cache returns the kernel cache shared by every compiled entry.
func (c *ResolvedConfig) Cache() *lang.Cache { return c.cache }

// Statistics returns the statistics entries of species in document order.
func (c *ResolvedConfig) Statistics(species Species) []*stats.Spec {
	var out []*stats.Spec

	for _, s := range c.Stats {
		if s.Species == species.String() {
			out = append(out, s)
		}
	}

	return out
}

// Resolve interprets root.
//
// Constants are resolved first, including those of included documents.
// When they fail, their errors are returned alone. Otherwise every other
// section is read and all problems are returned together in one
// [pkg.Errors].
func Resolve(ctx context.Context, root *document.Node, opts ...Option) (*ResolvedConfig, error) {
	o := makeOptions(opts...)

	if root.IsNull() {
		root = document.NewMapping(0, 0)
	}

	if root.Kind != document.Mapping {
		return nil, ErrInvalidValue.
			With(slog.Int("line", root.Line), slog.Int("column", root.Column)).
			Wrap(fmt.Errorf("document root is a %s, not a mapping", root.Kind))
	}

	r := &reader{ctx: ctx, failed: map[string]bool{}}

	defs := r.definitions(root, o)
	if err := r.errs.Err(); err != nil {
		return nil, err
	}

	langOpts := append(slices.Clone(o.lang), lang.WithLogger(o.logger))

	table, err := lang.Resolve(ctx, defs, langOpts...)
	if err != nil {
		return nil, err
	}

	r.cache = lang.NewCache(table, langOpts...)

	cfg := &ResolvedConfig{
		table:  table,
		cache:  r.cache,
		Output: Output{Options: output.DefaultOptions()},
	}

	for key, n := range root.Entries() {
		switch key {
		case SectionInclude, SectionConstants, SectionControl:
			continue
		case SectionLaser, SectionBeam, SectionStats, SectionOutput:
		default:
			r.fail(errors.New("unknown section"), key, n)

			continue
		}

		sec := r.section(root, key)
		if sec.node == nil {
			continue
		}

		switch key {
		case SectionLaser:
			l := r.laser(sec)
			cfg.Laser = &l
		case SectionBeam:
			b := r.beam(sec)
			cfg.Beam = &b
		case SectionStats:
			cfg.Stats = r.stats(sec, o)
		case SectionOutput:
			cfg.Output = r.output(sec, o)
		}
	}

	cfg.Control = r.control(r.section(root, SectionControl))

	if err := r.errs.Err(); err != nil {
		o.logger.DebugContext(ctx, "configuration rejected", slog.Int("errors", len(r.errs)))

		return nil, err
	}

	o.logger.DebugContext(ctx, "configuration resolved",
		slog.Int("constants", table.Len()),
		slog.Int("stats", len(cfg.Stats)),
		slog.Int("outputs", len(cfg.Output.Entries)))

	return cfg, nil
}

func (r *reader) stats(s *section, o options) []*stats.Spec {
	var out []*stats.Spec

	opts := []stats.Option{
		stats.WithLogger(o.logger),
		stats.WithCache(r.cache),
		stats.WithFields(o.fields...),
		stats.WithLangOptions(o.lang...),
	}

	for key, n := range s.node.Entries() {
		s.used[key] = true

		sp, err := ParseSpecies(key)
		if err != nil {
			r.fail(err, s.field(key), n)

			continue
		}

		lines, nodes := r.lines(n, s.field(key))

		for i, line := range lines {
			spec, err := stats.Compile(r.ctx, sp.String(), line, r.cache.Table(), opts...)
			if err != nil {
				r.fail(err, fmt.Sprintf("%s[%d]", s.field(key), i), nodes[i])

				continue
			}

			out = append(out, spec)
		}
	}

	return out
}

// outputOptions are the keys of the output section that are not species.
var outputOptions = []string{
	"ident", "units", "coordinate_system", "file_format", "min_energy",
	"max_angle", "discard_background", "dump_all_particles", "bins",
}

func (r *reader) output(s *section, o options) Output {
	def := output.DefaultOptions()

	out := Output{Options: output.Options{
		Ident:             s.text("ident", def.Ident),
		MinEnergy:         s.number("min_energy", def.MinEnergy),
		MaxAngle:          s.number("max_angle", def.MaxAngle),
		Units:             parsed(s, "units", def.Units, output.ParseUnitSystem),
		CoordinateSystem:  parsed(s, "coordinate_system", def.CoordinateSystem, output.ParseCoordinateSystem),
		FileFormat:        parsed(s, "file_format", def.FileFormat, output.ParseFileFormat),
		DiscardBackground: s.boolean("discard_background", def.DiscardBackground),
		DumpAllParticles:  s.boolean("dump_all_particles", def.DumpAllParticles),
	}}

	bins := s.integer("bins", output.DefaultBins)
	if bins <= 0 {
		r.fail(errors.New("bins must be positive"), s.field("bins"), s.node)
	}

	opts := []output.Option{
		output.WithLogger(o.logger),
		output.WithCache(r.cache),
		output.WithFields(o.fields...),
		output.WithLangOptions(o.lang...),
		output.WithBins(int(bins)),
	}

	for key, n := range s.node.Entries() {
		if slices.Contains(outputOptions, key) {
			continue
		}

		s.used[key] = true

		sp, err := ParseSpecies(key)
		if err != nil {
			r.fail(err, s.field(key), n)

			continue
		}

		lines, nodes := r.lines(n, s.field(key))

		for i, line := range lines {
			spec, err := output.Compile(r.ctx, sp.String(), line, r.cache.Table(), opts...)
			if err != nil {
				r.fail(err, fmt.Sprintf("%s[%d]", s.field(key), i), nodes[i])

				continue
			}

			out.Entries = append(out.Entries, spec)
		}
	}

	s.unknown()

	return out
}

// view is the serialized form of a [ResolvedConfig].
type view struct {
	Constants map[string]float64       `json:"constants"       yaml:"constants"`
	Control   Control                  `json:"control"         yaml:"control"`
	Laser     *Laser                   `json:"laser,omitempty" yaml:"laser,omitempty"`
	Beam      *Beam                    `json:"beam,omitempty"  yaml:"beam,omitempty"`
	Stats     map[string][]*stats.Spec `json:"stats,omitempty" yaml:"stats,omitempty"`
	Output    outputView               `json:"output"          yaml:"output"`
}

type outputView struct {
	output.Options `yaml:",inline"`

	Entries map[string][]*output.Spec `json:"entries,omitempty" yaml:"entries,omitempty"`
}

func (c *ResolvedConfig) view() view {
	v := view{
		Constants: c.table.Map(),
		Control:   c.Control,
		Laser:     c.Laser,
		Beam:      c.Beam,
		Output:    outputView{Options: c.Output.Options},
	}

	for _, s := range c.Stats {
		if v.Stats == nil {
			v.Stats = map[string][]*stats.Spec{}
		}

		v.Stats[s.Species] = append(v.Stats[s.Species], s)
	}

	for _, s := range c.Output.Entries {
		if v.Output.Entries == nil {
			v.Output.Entries = map[string][]*output.Spec{}
		}

		v.Output.Entries[s.Species] = append(v.Output.Entries[s.Species], s)
	}

	return v
}

// MarshalJSON implements json.Marshaler.
func (c *ResolvedConfig) MarshalJSON() ([]byte, error) { return json.Marshal(c.view()) }

// MarshalYAML implements yaml.InterfaceMarshaler.
func (c *ResolvedConfig) MarshalYAML() (any, error) { return c.view(), nil }

// definitions collects the constants of every included document followed by
// the local constants. A later definition replaces an earlier one of the
// same name.
func (r *reader) definitions(root *document.Node, o options) []lang.Definition {
	var (
		order []string
		defs  = map[string]lang.Definition{}
	)

	add := func(d lang.Definition) {
		if prev, ok := defs[d.Name]; ok {
			o.logger.TraceContext(r.ctx, "constant overridden",
				slog.String("name", d.Name),
				slog.String("previous", prev.Field),
				slog.String("field", d.Field))
		} else {
			order = append(order, d.Name)
		}

		defs[d.Name] = d
	}

	for _, d := range r.include(root, o, nil) {
		add(d)
	}

	for _, d := range r.constants(root, "") {
		add(d)
	}

	out := make([]lang.Definition, 0, len(order))
	for _, name := range order {
		out = append(out, defs[name])
	}

	return out
}

// include loads the documents root includes, depth first. stack holds the
// names being included, to reject cycles.
func (r *reader) include(root *document.Node, o options, stack []string) []lang.Definition {
	n, ok := root.Get(SectionInclude)
	if !ok || n.IsNull() {
		return nil
	}

	names, nodes := r.lines(n, SectionInclude)

	var defs []lang.Definition

	for i, name := range names {
		field := fmt.Sprintf("%s[%d]", SectionInclude, i)

		if slices.Contains(stack, name) {
			r.fail(ErrInclude.With(slog.Any("stack", slices.Concat(stack, []string{name}))).
				Wrap(fmt.Errorf("%s includes itself", name)), field, nodes[i])

			continue
		}

		doc, err := o.loader(name, o.searchPath)
		if err != nil {
			r.fail(ErrInclude.With(slog.String("include", name)).Wrap(err), field, nodes[i])

			continue
		}

		o.logger.DebugContext(r.ctx, "document included", slog.String("include", name))

		defs = append(defs, r.include(doc, o, slices.Concat(stack, []string{name}))...)
		defs = append(defs, r.constants(doc, name)...)
	}

	return defs
}

// constants reads the constants section of root. A non-empty source prefixes
// each field path.
func (r *reader) constants(root *document.Node, source string) []lang.Definition {
	s := r.section(root, SectionConstants)

	var defs []lang.Definition

	for name, n := range s.node.Entries() {
		field := s.field(name)
		if source != "" {
			field = source + ":" + field
		}

		if n.Kind != document.Scalar {
			r.fail(fmt.Errorf("expected an expression, got %s", n.Kind), field, n)

			continue
		}

		defs = append(defs, lang.Definition{
			Name:   name,
			Source: n.String(),
			Field:  field,
			Line:   n.Line,
			Column: n.Column,
		})
	}

	return defs
}

// Errors returns the individual errors of err.
func Errors(err error) []error {
	var list pkg.Errors
	if errors.As(err, &list) {
		return list
	}

	if err == nil {
		return nil
	}

	return []error{err}
}
