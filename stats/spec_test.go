package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/pkg"
)

func table(t *testing.T) *lang.Table {
	t.Helper()

	tbl, err := lang.Resolve(t.Context(), []lang.Definition{
		{Name: "a0", Source: "5.0"},
		{Name: "initial_gamma", Source: "16.5*GeV/(me*c^2)"},
		{Name: "photon_energy", Source: "1.55*eV"},
		{Name: "max_theta", Source: "20 mrad"},
	})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	return tbl
}

func TestCompile(t *testing.T) {
	tbl := table(t)

	tests := []struct {
		line   string
		kind   Kind
		name   string
		canon  string
		weight bool
		ranged bool
	}{
		{"mean gamma", Mean, "mean gamma", "mean gamma", false, false},
		{"variance angle_x`energy", Variance, "variance angle_x`energy", "variance angle_x`energy", true, false},
		{"  circstd   phi  ", CircStd, "circstd phi", "circstd phi", false, false},
		{"total number", Total, "total number", "total number", false, false},
		{"fraction theta in 0, max_theta", Fraction, "fraction theta", "fraction theta in 0, max_theta", false, true},
		{"mean energy [MeV]", Mean, "mean energy", "mean energy [MeV]", false, false},
		{"maximum chi`weight*2 in 0, 10", Maximum, "maximum chi`weight*2", "maximum chi`weight*2 in 0, 10", true, true},
		{"MEAN px", Mean, "mean px", "mean px", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, err := Compile(t.Context(), "electron", tt.line, tbl)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.line, err)
			}

			if s.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", s.Kind, tt.kind)
			}

			if s.Name != tt.name {
				t.Errorf("Name = %q, want %q", s.Name, tt.name)
			}

			if s.String() != tt.canon {
				t.Errorf("String() = %q, want %q", s.String(), tt.canon)
			}

			if (s.Weight != nil) != tt.weight {
				t.Errorf("Weight set = %v, want %v", s.Weight != nil, tt.weight)
			}

			if (s.Range != nil) != tt.ranged {
				t.Errorf("Range set = %v, want %v", s.Range != nil, tt.ranged)
			}

			if s.Species != "electron" {
				t.Errorf("Species = %q", s.Species)
			}
		})
	}
}

func TestCompile_QuantumChi(t *testing.T) {
	tbl := table(t)

	s, err := Compile(t.Context(), "electron",
		"quantum_chi 2.*initial_gamma*a0*(photon_energy/(me*c^2))", tbl)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if s.Kind != Formula || s.Name != "quantum_chi" {
		t.Fatalf("got %s %q, want formula quantum_chi", s.Kind, s.Name)
	}

	mc2 := 9.1093837015e-31 * 299792458.0 * 299792458.0
	gamma := 16.5e9 * 1.602176634e-19 / mc2
	want := 2 * gamma * 5 * (1.55 * 1.602176634e-19 / mc2)

	got := s.Report(Accumulator{}).Value
	if math.IsNaN(got) || math.IsInf(got, 0) || got <= 0 {
		t.Fatalf("quantum_chi = %g, want finite positive", got)
	}

	if math.Abs(got-want) > 1e-12*want {
		t.Errorf("quantum_chi = %.15g, want %.15g", got, want)
	}
}

func TestCompile_FormulaTag(t *testing.T) {
	s, err := Compile(t.Context(), "photon",
		"synch_peak`formula 0.44 * initial_gamma^2 * photon_energy [MeV]", table(t))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if s.Kind != Formula || s.Name != "synch_peak" || s.Unit != "MeV" {
		t.Fatalf("got %s %q [%s]", s.Kind, s.Name, s.Unit)
	}

	if got := s.Report(Accumulator{}).Value; got <= 0 {
		t.Errorf("synch_peak = %g", got)
	}

	b, err := s.MarshalText()
	if err != nil || string(b) != "synch_peak`formula 0.44 * initial_gamma^2 * photon_energy [MeV]" {
		t.Errorf("MarshalText() = %q, %v", b, err)
	}
}

func TestCompile_FormulaPrefixedWeight(t *testing.T) {
	s, err := Compile(t.Context(), "electron", "mean energy`formula_w", table(t),
		WithFields("formula_w"))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	if s.Kind != Mean || s.Weight == nil {
		t.Fatalf("got kind %s, weighted %t, want weighted mean", s.Kind, s.Weight != nil)
	}

	var acc Accumulator

	for _, p := range []lang.Fields{
		{"energy": 1, "formula_w": 1},
		{"energy": 4, "formula_w": 3},
	} {
		if err := s.Observe(&acc, p); err != nil {
			t.Fatalf("Observe error: %v", err)
		}
	}

	if got := s.Report(acc).Value; got != 3.25 {
		t.Errorf("weighted mean = %g, want 3.25", got)
	}
}

func TestCutFormula(t *testing.T) {
	tests := []struct {
		in        string
		name, src string
		found     bool
	}{
		{"peak`formula 2 * gamma", "peak", "2 * gamma", true},
		{"  peak`formula\t1", "peak", "1", true},
		{"mean energy`formula_w", "", "", false},
		{"x`formula_w", "", "", false},
		{"mean energy`weight", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			name, src, found := cutFormula(tt.in)
			if name != tt.name || src != tt.src || found != tt.found {
				t.Errorf("cutFormula(%q) = %q, %q, %t, want %q, %q, %t",
					tt.in, name, src, found, tt.name, tt.src, tt.found)
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	tbl := table(t)

	tests := []struct {
		line   string
		target error
	}{
		{"", ErrStatSpec},
		{"median gamma", ErrUnknownVariable},
		{"mean", ErrStatSpec},
		{"mean gama", ErrUnknownVariable},
		{"mean gama", lang.ErrUndefinedSymbol},
		{"mean gamma`wieght", ErrUnknownVariable},
		{"mean gamma [furlong]", ErrUnknownVariable},
		{"mean gamma in 1", ErrStatSpec},
		{"mean gamma in 1, 2, 3", ErrStatSpec},
		{"mean gamma in 2, 1", ErrStatSpec},
		{"mean gamma in 0, nowhere", ErrUnknownVariable},
		{"mean (gamma", lang.ErrSyntax},
		{"mean gamma]", lang.ErrSyntax},
		{"formula 1 + 2", ErrStatSpec},
		{"peak`formula gamma * 2", ErrStatSpec},
		{"2bad`formula 1", ErrStatSpec},
		{"unknown_const * 2", ErrUnknownVariable},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := Compile(t.Context(), "electron", tt.line, tbl)
			if !errors.Is(err, tt.target) {
				t.Errorf("Compile(%q) error = %v, want %v", tt.line, err, tt.target)
			}
		})
	}
}

func TestCompileLines(t *testing.T) {
	specs, err := CompileLines(t.Context(), "positron", []string{
		"mean gamma",
		"mean nope",
		"variance energy",
		"bogus keyword here",
	}, table(t))

	var errs pkg.Errors
	if !errors.As(err, &errs) || len(errs) != 2 {
		t.Fatalf("error = %v, want 2 errors", err)
	}

	var e *pkg.Error
	if !errors.As(errs[1], &e) {
		t.Fatalf("error %T is not structured", errs[1])
	}

	if v, _ := e.Attr("index"); v.Int64() != 3 {
		t.Errorf("index = %v, want 3", v)
	}

	if len(specs) != 2 {
		t.Errorf("compiled %d specs, want 2", len(specs))
	}
}

func TestSpec_ObserveReport(t *testing.T) {
	tbl := table(t)

	particles := []lang.Fields{
		{"gamma": 10, "energy": 1e-13, "weight": 1, "theta": 0.001},
		{"gamma": 20, "energy": 2e-13, "weight": 3, "theta": 0.05},
		{"gamma": 30, "energy": 3e-13, "weight": 1, "theta": 0.01},
	}

	tests := []struct {
		line string
		want float64
	}{
		{"total number", 5},
		{"mean gamma", 20},
		{"mean gamma`1", 20},
		{"mean gamma`energy", (10*1 + 20*2 + 30*3) / 6.0},
		{"minimum gamma", 10},
		{"maximum gamma in 0, 25", 20},
		{"fraction theta in 0, max_theta", 2.0 / 5},
		{"total energy [MeV]", (1e-13 + 6e-13 + 3e-13) / 1.602176634e-13},
		{"variance gamma`1", 200.0 / 3},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, err := Compile(t.Context(), "electron", tt.line, tbl)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}

			var acc Accumulator

			for _, p := range particles {
				if err := s.Observe(&acc, p); err != nil {
					t.Fatalf("Observe error: %v", err)
				}
			}

			r := s.Report(acc)
			if math.Abs(r.Value-tt.want) > 1e-9*math.Max(1, math.Abs(tt.want)) {
				t.Errorf("%s = %.12g, want %.12g", tt.line, r.Value, tt.want)
			}
		})
	}
}

func TestSpec_ObserveParallelMerge(t *testing.T) {
	s, err := Compile(t.Context(), "photon", "circstd phi", table(t))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	var whole Accumulator

	workers := make([]Accumulator, 4)

	for i := range 100 {
		p := lang.Fields{"phi": 0.01 * float64(i%13), "weight": 1}

		if err := s.Observe(&whole, p); err != nil {
			t.Fatal(err)
		}

		if err := s.Observe(&workers[i%len(workers)], p); err != nil {
			t.Fatal(err)
		}
	}

	var merged Accumulator
	for _, w := range workers {
		merged.Merge(w)
	}

	if got, want := s.Report(merged).Value, s.Report(whole).Value; math.Abs(got-want) > 1e-12 {
		t.Errorf("merged circstd = %g, sequential = %g", got, want)
	}
}

func TestSpec_ObserveMissingField(t *testing.T) {
	s, err := Compile(t.Context(), "electron", "mean gamma", table(t))
	if err != nil {
		t.Fatal(err)
	}

	var acc Accumulator

	err = s.Observe(&acc, lang.Fields{"energy": 1})
	if !errors.Is(err, lang.ErrUndefinedSymbol) {
		t.Errorf("error = %v, want undefined symbol", err)
	}
}

func TestCompile_WithFields(t *testing.T) {
	s, err := Compile(t.Context(), "electron", "mean spin_z", table(t), WithFields("spin_z"))
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	var acc Accumulator

	_ = s.Observe(&acc, lang.Fields{"spin_z": 0.5})

	if got := s.Report(acc).Value; got != 0.5 {
		t.Errorf("mean spin_z = %g", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("circmean")); err != nil || k != CircMean {
		t.Errorf("UnmarshalText = %v, %v", k, err)
	}

	if !CircStd.Circular() || Mean.Circular() {
		t.Error("Circular() misreports")
	}
}

func TestFields(t *testing.T) {
	for _, name := range []string{"gamma", "energy", "angle_x", "theta", "weight", "number"} {
		if !IsField(name) {
			t.Errorf("%s should be a dynamic field", name)
		}
	}

	if IsField("a0") {
		t.Error("a0 is not a dynamic field")
	}

	if len(Fields()) != len(FieldNames()) {
		t.Error("Fields and FieldNames disagree")
	}
}
