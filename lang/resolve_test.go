package lang

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/ardnew/qedcfg/pkg"
)

func defs(pairs ...string) []Definition {
	out := make([]Definition, 0, len(pairs)/2)

	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Definition{
			Name:   pairs[i],
			Source: pairs[i+1],
			Field:  "constants." + pairs[i],
			Line:   i/2 + 1,
			Column: 3,
		})
	}

	return out
}

func TestResolve(t *testing.T) {
	table, err := Resolve(t.Context(), defs(
		"initial_gamma", "16.5*GeV/(me*c^2)",
		"a0", "5.0",
		"photon_energy", "1.55*eV",
		"chi", "2.*initial_gamma*a0*(photon_energy/(me*c^2))",
		"wavelength", "0.8 * micro",
	))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	mc2 := 9.1093837015e-31 * 299792458.0 * 299792458.0
	gamma := 16.5e9 * 1.602176634e-19 / mc2
	want := 2 * gamma * 5 * (1.55 * 1.602176634e-19 / mc2)

	got, ok := table.Lookup("chi")
	if !ok {
		t.Fatal("chi not resolved")
	}

	if !near(got, want, 1e-12) {
		t.Errorf("chi = %g, want %g", got, want)
	}

	if v, _ := table.Lookup("wavelength"); !near(v, 8e-7, 1e-12) {
		t.Errorf("wavelength = %g, want 8e-7", v)
	}

	if v, _ := table.Lookup("me"); v != 9.1093837015e-31 {
		t.Errorf("built-in me = %g", v)
	}

	if table.Len() != 5 {
		t.Errorf("Len() = %d, want 5", table.Len())
	}

	names := table.Names()
	if slices.Index(names, "chi") < slices.Index(names, "initial_gamma") ||
		slices.Index(names, "chi") < slices.Index(names, "photon_energy") {
		t.Errorf("chi evaluated before its dependencies: %v", names)
	}

	if deps := strings.Join(table.Deps("chi"), ","); deps != "a0,initial_gamma,photon_energy" {
		t.Errorf("Deps(chi) = %s", deps)
	}

	if !slices.Contains(table.Symbols(), "chi") || !slices.Contains(table.Symbols(), "GeV") {
		t.Error("Symbols() should list constants and built-ins")
	}
}

func TestResolve_OrderIndependent(t *testing.T) {
	base := defs(
		"a", "b + c",
		"b", "2 * c",
		"c", "3",
		"d", "a * b",
	)

	want, err := Resolve(t.Context(), base)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	for range 10 {
		shuffled := slices.Clone(base)
		slices.Reverse(shuffled)
		shuffled[0], shuffled[2] = shuffled[2], shuffled[0]

		got, err := Resolve(t.Context(), shuffled)
		if err != nil {
			t.Fatalf("Resolve error: %v", err)
		}

		for name, v := range want.Constants() {
			if g, _ := got.Lookup(name); g != v {
				t.Errorf("%s = %g, want %g", name, g, v)
			}
		}

		if !slices.Equal(got.Names(), want.Names()) {
			t.Errorf("plan %v differs from %v", got.Names(), want.Names())
		}

		base = shuffled
	}
}

func TestResolve_Cycle(t *testing.T) {
	_, err := Resolve(t.Context(), defs(
		"a", "b + 1",
		"b", "a * 2",
		"ok", "3",
	))
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("error = %v, want cyclic dependency", err)
	}

	msg := err.Error()
	if !strings.Contains(msg, "a -> b -> a") {
		t.Errorf("error %q should name the cycle a -> b -> a", msg)
	}
}

func TestResolve_SelfReference(t *testing.T) {
	_, err := Resolve(t.Context(), defs("x", "x + 1"))
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("error = %v, want cyclic dependency", err)
	}

	if !strings.Contains(err.Error(), "x -> x") {
		t.Errorf("error %q should name x -> x", err)
	}
}

func TestResolve_Undefined(t *testing.T) {
	_, err := Resolve(t.Context(), defs(
		"gamma", "energy / (me*c^2)",
		"energy", "10 GeV",
		"typo", "enrgy * 2",
	))
	if !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("error = %v, want undefined symbol", err)
	}

	var e *pkg.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not structured", err)
	}

	if v, _ := e.Attr("symbol"); v.String() != "enrgy" {
		t.Errorf("symbol = %s, want enrgy", v)
	}

	if v, _ := e.Attr("referenced_by"); v.String() != "typo" {
		t.Errorf("referenced_by = %s, want typo", v)
	}

	if !strings.Contains(err.Error(), "energy") {
		t.Errorf("error %q should suggest energy", err)
	}
}

func TestResolve_Collisions(t *testing.T) {
	tests := []struct {
		name   string
		defs   []Definition
		target error
	}{
		{"builtin", defs("c", "3e8"), ErrSymbolCollision},
		{"duplicate", defs("a", "1", "a", "2"), ErrSymbolCollision},
		{"invalid name", defs("2x", "1"), ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(t.Context(), tt.defs)
			if !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestResolve_AllErrors(t *testing.T) {
	_, err := Resolve(t.Context(), defs(
		"bad_syntax", "1 +",
		"loop1", "loop2",
		"loop2", "loop1",
		"missing", "nowhere",
		"zero", "1 / (2 - 2)",
		"depends_on_zero", "zero + 1",
		"fine", "1",
	))

	var errs pkg.Errors
	if !errors.As(err, &errs) {
		t.Fatalf("error %T is not an aggregate", err)
	}

	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4:\n%v", len(errs), err)
	}

	for _, target := range []error{ErrSyntax, ErrCyclicDependency, ErrUndefinedSymbol, ErrDivisionByZero} {
		if !errors.Is(err, target) {
			t.Errorf("aggregate does not report %v", target)
		}
	}
}

func TestResolve_Location(t *testing.T) {
	_, err := Resolve(t.Context(), []Definition{
		{Name: "a0", Source: "5 *", Field: "laser.a0", Line: 7, Column: 5},
	})

	var e *pkg.Error
	if !errors.As(err, &e) {
		t.Fatalf("error %T is not structured", err)
	}

	if v, _ := e.Attr("field"); v.String() != "laser.a0" {
		t.Errorf("field = %s", v)
	}

	if v, _ := e.Attr("line"); v.Int64() != 7 {
		t.Errorf("line = %d", v.Int64())
	}
}

func TestResolve_Empty(t *testing.T) {
	table, err := Resolve(t.Context(), nil)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	if table.Len() != 0 {
		t.Errorf("Len() = %d", table.Len())
	}

	if v, ok := table.Lookup("pi"); !ok || v <= 3 {
		t.Errorf("pi = %g, %v", v, ok)
	}
}
