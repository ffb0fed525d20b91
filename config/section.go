package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/pkg"
)

// reader accumulates the errors of one resolution.
type reader struct {
	ctx    context.Context
	cache  *lang.Cache
	failed map[string]bool // fields already reported
	errs   pkg.Errors
}

// at attaches the field path and document position of n to err.
func at(err error, field string, n *document.Node) error {
	attrs := []slog.Attr{slog.String("field", field)}
	if n != nil && n.Line > 0 {
		attrs = append(attrs, slog.Int("line", n.Line), slog.Int("column", n.Column))
	}

	var e *pkg.Error
	if errors.As(err, &e) {
		return e.With(attrs...)
	}

	return ErrInvalidValue.With(attrs...).Wrap(err)
}

func (r *reader) fail(err error, field string, n *document.Node) {
	r.failed[field] = true
	r.errs.Add(at(err, field, n))
}

// eval evaluates a scalar as a constant expression.
func (r *reader) eval(n *document.Node, field string) (float64, bool) {
	if n.Kind != document.Scalar {
		r.fail(fmt.Errorf("expected a number, got %s", n.Kind), field, n)

		return 0, false
	}

	switch v := n.Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case bool:
		r.fail(fmt.Errorf("expected a number, got %t", v), field, n)

		return 0, false
	}

	k, err := r.cache.Kernel(r.ctx, n.String(), nil)
	if err != nil {
		r.fail(err, field, n)

		return 0, false
	}

	v, err := k.Run(nil)
	if err != nil {
		r.fail(err, field, n)

		return 0, false
	}

	return v, true
}

// section reads the entries of one mapping and reports any it did not read.
type section struct {
	r    *reader
	node *document.Node
	name string
	used map[string]bool
}

func (r *reader) section(root *document.Node, name string) *section {
	s := &section{r: r, name: name, used: map[string]bool{}}

	n, ok := root.Get(name)
	switch {
	case !ok || n.IsNull():
	case n.Kind != document.Mapping:
		r.fail(fmt.Errorf("expected a mapping, got %s", n.Kind), name, n)
	default:
		s.node = n
	}

	return s
}

// failed reports whether key was missing or could not be read, in which
// case its value is a placeholder that range checks must not judge.
func (s *section) failed(key string) bool { return s.r.failed[s.field(key)] }

// field returns the dotted path of key.
func (s *section) field(key string) string { return s.name + "." + key }

func (s *section) get(key string) (*document.Node, bool) {
	s.used[key] = true

	n, ok := s.node.Get(key)
	if !ok || n.IsNull() {
		return nil, false
	}

	return n, true
}

func (s *section) has(key string) bool {
	_, ok := s.node.Get(key)

	return ok
}

func (s *section) number(key string, def float64) float64 {
	if v := s.optional(key); v != nil {
		return *v
	}

	return def
}

func (s *section) optional(key string) *float64 {
	n, ok := s.get(key)
	if !ok {
		return nil
	}

	if v, ok := s.r.eval(n, s.field(key)); ok {
		return &v
	}

	return nil
}

func (s *section) required(key string) float64 {
	if !s.has(key) {
		s.r.fail(errors.New("required"), s.field(key), s.node)
	}

	return s.number(key, 0)
}

func (s *section) integer(key string, def int64) int64 {
	n, ok := s.get(key)
	if !ok {
		return def
	}

	v, ok := s.r.eval(n, s.field(key))
	if !ok {
		return def
	}

	if v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		s.r.fail(fmt.Errorf("expected an integer, got %g", v), s.field(key), n)

		return def
	}

	return int64(v)
}

func (s *section) boolean(key string, def bool) bool {
	n, ok := s.get(key)
	if !ok {
		return def
	}

	if b, ok := n.Value.(bool); ok {
		return b
	}

	switch strings.ToLower(n.String()) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	s.r.fail(fmt.Errorf("expected a boolean, got %q", n.String()), s.field(key), n)

	return def
}

func (s *section) text(key, def string) string {
	n, ok := s.get(key)
	if !ok {
		return def
	}

	if n.Kind != document.Scalar {
		s.r.fail(fmt.Errorf("expected a string, got %s", n.Kind), s.field(key), n)

		return def
	}

	return n.String()
}

// vector reads a sequence of exactly size numbers.
func (s *section) vector(key string, size int) ([]float64, *document.Node, bool) {
	n, ok := s.get(key)
	if !ok {
		return nil, nil, false
	}

	if n.Kind != document.Sequence || n.Len() != size {
		s.r.fail(fmt.Errorf("expected a list of %d numbers", size), s.field(key), n)

		return nil, n, false
	}

	out := make([]float64, size)

	for i, item := range n.Items {
		v, ok := s.r.eval(item, fmt.Sprintf("%s[%d]", s.field(key), i))
		if !ok {
			return nil, n, false
		}

		out[i] = v
	}

	return out, n, true
}

// unknown reports every entry that was never read.
func (s *section) unknown() {
	for key, n := range s.node.Entries() {
		if !s.used[key] {
			s.r.fail(errors.New("unknown key"), s.field(key), n)
		}
	}
}

func enum[T interface {
	~int
	String() string
}](s *section, key, what string, def T, all []T) T {
	n, ok := s.get(key)
	if !ok {
		return def
	}

	v, err := parseEnum(n.String(), what, all)
	if err != nil {
		s.r.fail(err, s.field(key), n)

		return def
	}

	return v
}

// lines reads a sequence of strings, or a single string as one line.
func (r *reader) lines(n *document.Node, field string) ([]string, []*document.Node) {
	switch n.Kind {
	case document.Scalar:
		return []string{n.String()}, []*document.Node{n}
	case document.Sequence:
		out := make([]string, 0, n.Len())
		for i, item := range n.Items {
			if item.Kind != document.Scalar {
				r.fail(fmt.Errorf("expected a string, got %s", item.Kind),
					fmt.Sprintf("%s[%d]", field, i), item)

				return nil, nil
			}

			out = append(out, item.String())
		}

		return out, slices.Clone(n.Items)
	}

	r.fail(fmt.Errorf("expected a list of strings, got %s", n.Kind), field, n)

	return nil, nil
}

// parsed reads key with a parser from another package.
func parsed[T any](s *section, key string, def T, parse func(string) (T, error)) T {
	n, ok := s.get(key)
	if !ok {
		return def
	}

	v, err := parse(n.String())
	if err != nil {
		s.r.fail(err, s.field(key), n)

		return def
	}

	return v
}
