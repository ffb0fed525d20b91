package stats

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/pkg"
)

// Kind selects the reduction a [Spec] applies.
type Kind int

// Kinds of aggregate.
const (
	Total    Kind = iota // total
	Fraction             // fraction
	Mean                 // mean
	Variance             // variance
	Minimum              // minimum
	Maximum              // maximum
	CircMean             // circmean
	CircVar              // circvar
	CircStd              // circstd
	Formula              // formula
)

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		Total, Fraction, Mean, Variance, Minimum, Maximum,
		CircMean, CircVar, CircStd, Formula,
	}
}

// ParseKind returns the kind named s, ignoring case.
func ParseKind(s string) (Kind, error) {
	if k, ok := pkg.ParseEnum(s, Kinds()); ok {
		return k, nil
	}

	return 0, ErrUnknownVariable.
		With(slog.String("keyword", s)).
		Wrap(fmt.Errorf("unknown aggregate %q%s", s, hint(s, pkg.EnumNames(Kinds()))))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// Circular reports whether k treats samples as angles.
func (k Kind) Circular() bool {
	return k == CircMean || k == CircVar || k == CircStd
}

// hint renders a "did you mean" suffix for name.
func hint(name string, candidates []string) string {
	if s := lang.Suggest(name, candidates); len(s) > 0 {
		return " (did you mean " + strings.Join(s, ", ") + "?)"
	}

	return ""
}
