package repl

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/log"
)

// Session evaluates expressions against resolved constants and a set of
// per-particle fields assigned interactively.
type Session struct {
	cache  *lang.Cache
	fields lang.Fields
	logger log.Logger
}

// NewSession returns a session over the constants of cache.
func NewSession(cache *lang.Cache, logger log.Logger) *Session {
	return &Session{cache: cache, fields: lang.Fields{}, logger: logger}
}

// Table returns the resolved constants.
func (s *Session) Table() *lang.Table { return s.cache.Table() }

// Fields returns the assigned field names, sorted.
func (s *Session) Fields() []string { return slices.Sorted(maps.Keys(s.fields)) }

// Field returns the value assigned to name.
func (s *Session) Field(name string) (float64, bool) {
	v, ok := s.fields[name]

	return v, ok
}

// Unset removes the field name and reports whether it was assigned.
func (s *Session) Unset(name string) bool {
	_, ok := s.fields[name]
	delete(s.fields, name)

	return ok
}

// Eval evaluates one input line.
//
// "name = expr" assigns the value of expr to the field name, which shadows
// any constant of the same name in later expressions. Any other input is
// an expression, evaluated with the assigned fields.
func (s *Session) Eval(ctx context.Context, input string) (name string, v float64, err error) {
	src := input

	if lhs, rhs, ok := strings.Cut(input, "="); ok {
		name, src = strings.TrimSpace(lhs), strings.TrimSpace(rhs)

		if !lang.IsIdentifier(name) {
			return "", 0, ErrAssign.Wrap(fmt.Errorf("%q is not an identifier", name))
		}

		if lang.Builtins().Has(name) {
			return "", 0, ErrAssign.Wrap(fmt.Errorf("%s is a built-in unit", name))
		}
	}

	k, err := s.cache.Kernel(ctx, src, s.Fields())
	if err != nil {
		return "", 0, err
	}

	v, err = k.Run(s.fields)
	if err != nil {
		return "", 0, err
	}

	if name != "" {
		s.fields[name] = v

		s.logger.TraceContext(ctx, "repl assign",
			slog.String("field", name),
			slog.Float64("value", v))
	}

	return name, v, nil
}

// Format renders a value the way results are printed.
func Format(v float64) string { return strconv.FormatFloat(v, 'g', 12, 64) }
