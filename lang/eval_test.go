package lang

import (
	"errors"
	"math"
	"testing"
)

// near reports whether got is within rel relative tolerance of want.
func near(got, want, rel float64) bool {
	if want == 0 {
		return math.Abs(got) <= rel
	}

	return math.Abs(got-want) <= rel*math.Abs(want)
}

func TestEval(t *testing.T) {
	scope := Layers{Fields{"x": 3, "y": 4, "gamma": 100}, Builtins()}

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"unit prefix", "0.5 * micro", 5.0e-7},
		{"juxtaposed prefix", "100.0 pico", 1e-10},
		{"lorentz factor", "1.0 * GeV / (0.510999 * 1.0e6 * eV)", 1 / 0.510999e-3},
		{"pow right assoc", "2 ^ 3 ^ 2", 512},
		{"negated pow", "-2 ^ 2", 4},
		{"negative integer exponent", "(-2) ^ 3", -8},
		{"reciprocal", "2 ^ -1", 0.5},
		{"fields", "hypot(x, y)", 5},
		{"implicit product", "2 x y", 24},
		{"degrees", "180 degree", math.Pi},
		{"atan2", "atan2(y, x)", math.Atan2(4, 3)},
		{"min", "min(x, y, 1)", 1},
		{"max", "max(x, y)", 4},
		{"sqrt", "sqrt(16)", 4},
		{"ln", "ln(exp(2))", 2},
		{"electron rest energy", "me * c^2 / MeV", 0.51099895},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			got, err := Eval(e.Root, scope)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.input, err)
			}

			if !near(got, tt.want, 1e-9) {
				t.Errorf("Eval(%q) = %.12g, want %.12g", tt.input, got, tt.want)
			}
		})
	}
}

func TestEval_Errors(t *testing.T) {
	scope := Layers{Fields{"zero": 0, "neg": -2}, Builtins()}

	tests := []struct {
		name   string
		input  string
		target error
	}{
		{"undefined", "a0 * 2", ErrUndefinedSymbol},
		{"division", "1 / zero", ErrDivisionByZero},
		{"zero to negative power", "zero ^ -1", ErrDivisionByZero},
		{"negative base fractional exponent", "neg ^ 0.5", ErrDomain},
		{"sqrt negative", "sqrt(neg)", ErrDomain},
		{"log zero", "ln(zero)", ErrDomain},
		{"acos range", "acos(2)", ErrDomain},
		{"overflow", "exp(1000)", ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			_, err = Eval(e.Root, scope)
			if !errors.Is(err, tt.target) {
				t.Errorf("Eval(%q) error = %v, want %v", tt.input, err, tt.target)
			}
		})
	}
}

func TestEval_Reentrant(t *testing.T) {
	e := MustParse("gamma * me * c^2")

	for _, gamma := range []float64{1, 10, 1000} {
		got, err := Eval(e.Root, Layers{Fields{"gamma": gamma}, Builtins()})
		if err != nil {
			t.Fatalf("Eval error: %v", err)
		}

		want := gamma * 9.1093837015e-31 * 299792458 * 299792458
		if !near(got, want, 1e-12) {
			t.Errorf("gamma=%g: got %g, want %g", gamma, got, want)
		}
	}
}

func TestLayers_Order(t *testing.T) {
	l := Layers{Fields{"c": 1}, nil, Builtins()}

	if v, _ := l.Lookup("c"); v != 1 {
		t.Errorf("first layer should shadow built-in, got %g", v)
	}

	if _, ok := l.Lookup("nothing"); ok {
		t.Error("unexpected lookup success")
	}
}
