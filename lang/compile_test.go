package lang

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
)

var particleFields = []string{"gamma", "energy", "angle_x", "weight", "px", "py"}

func TestCompile(t *testing.T) {
	table, err := Resolve(t.Context(), defs(
		"a0", "5.0",
		"initial_gamma", "16.5*GeV/(me*c^2)",
		"photon_energy", "1.55*eV",
	))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	tests := []struct {
		name   string
		input  string
		fields Fields
	}{
		{"constant only", "2.*initial_gamma*a0*(photon_energy/(me*c^2))", nil},
		{"dynamic", "gamma * me * c^2 / MeV", Fields{"gamma": 1000}},
		{"mixed", "a0 * angle_x / mrad", Fields{"angle_x": 2e-3}},
		{"functions", "atan2(py, px) + hypot(px, py) + max(px, py, 1)", Fields{"px": 3, "py": 4}},
		{"powers", "2 ^ 3 ^ 2 - (-energy) ^ 2", Fields{"energy": 3}},
		{"unary", "-(-gamma)", Fields{"gamma": 7}},
		{"unit literal", "energy / (0.5 * MeV)", Fields{"energy": 1e-13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := Parse(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			k, err := Compile(t.Context(), e, table, particleFields)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.input, err)
			}

			got, err := k.Run(tt.fields)
			if err != nil {
				t.Fatalf("Run error: %v\nlowered: %s", err, k.Lowered())
			}

			want, err := Eval(e.Root, Layers{tt.fields, table})
			if err != nil {
				t.Fatalf("Eval error: %v", err)
			}

			if !near(got, want, 1e-12) {
				t.Errorf("Run = %.15g, Eval = %.15g\nlowered: %s", got, want, k.Lowered())
			}

			if got <= 0 || math.IsInf(got, 0) {
				t.Errorf("Run = %g, want finite positive", got)
			}
		})
	}
}

func TestCompile_FieldsShadowConstants(t *testing.T) {
	e := MustParse("c * 2")

	k, err := Compile(t.Context(), e, nil, []string{"c"})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	got, err := k.Run(Fields{"c": 1.5})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if got != 3 {
		t.Errorf("Run = %g, want 3", got)
	}

	if !k.Dynamic() || strings.Join(k.Fields(), ",") != "c" {
		t.Errorf("Fields() = %v", k.Fields())
	}
}

func TestCompile_ConstantsFolded(t *testing.T) {
	k, err := Compile(t.Context(), MustParse("gamma * me"), nil, particleFields)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if !strings.Contains(k.Lowered(), "v_me") {
		t.Errorf("lowered source %q should reference v_me before folding", k.Lowered())
	}

	if strings.Join(k.Fields(), ",") != "gamma" {
		t.Errorf("Fields() = %v, want [gamma]", k.Fields())
	}
}

func TestCompile_Undefined(t *testing.T) {
	_, err := Compile(t.Context(), MustParse("gama * 2"), nil, particleFields)
	if !errors.Is(err, ErrUndefinedSymbol) {
		t.Fatalf("error = %v, want undefined symbol", err)
	}

	if !strings.Contains(err.Error(), "gamma") {
		t.Errorf("error %q should suggest gamma", err)
	}
}

func TestKernel_RunErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		fields Fields
		target error
	}{
		{"missing field", "gamma + 1", Fields{}, ErrUndefinedSymbol},
		{"division", "1 / energy", Fields{"energy": 0}, ErrDivisionByZero},
		{"domain", "sqrt(energy)", Fields{"energy": -1}, ErrDomain},
		{"fractional power", "energy ^ 0.5", Fields{"energy": -4}, ErrDomain},
		{"overflow", "exp(energy)", Fields{"energy": 1000}, ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := Compile(t.Context(), MustParse(tt.input), nil, particleFields)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			_, err = k.Run(tt.fields)
			if !errors.Is(err, tt.target) {
				t.Errorf("Run error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestKernel_Concurrent(t *testing.T) {
	k, err := Compile(t.Context(), MustParse("gamma * 2 + energy"), nil, particleFields)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Go(func() {
			g := float64(i)

			got, err := k.Run(Fields{"gamma": g, "energy": 1})
			if err != nil {
				t.Errorf("Run error: %v", err)

				return
			}

			if got != 2*g+1 {
				t.Errorf("Run(%g) = %g", g, got)
			}
		})
	}

	wg.Wait()
}

func TestFloatLiteral(t *testing.T) {
	tests := map[float64]string{
		5:     "5.0",
		0.5:   "0.5",
		1e-7:  "1e-07",
		2e21:  "2e+21",
		100.0: "100.0",
	}

	for in, want := range tests {
		if got := floatLiteral(in); got != want {
			t.Errorf("floatLiteral(%g) = %s, want %s", in, got, want)
		}
	}
}
