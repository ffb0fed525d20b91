package config

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/lang"
	"github.com/ardnew/qedcfg/output"
	"github.com/ardnew/qedcfg/pkg"
	"github.com/ardnew/qedcfg/stats"
)

const fullDoc = `control:
  dt_multiplier: 0.5
  radiation_reaction: true
  lcfa: false
  rng_seed: 12
  equation_of_motion: landau-lifshitz

laser:
  a0: a0
  wavelength: wavelength
  waist: 4.0 * micro
  fwhm_duration: 30.0 * femto
  envelope: gaussian
  polarization: linear

beam:
  species: electron
  n: 10000
  charge: 1.0e-12
  gamma: initial_gamma
  sigma: 0.01 * initial_gamma
  radius: [1.0 * micro, trunc_normally_distributed, 3.0 * micro]
  length: 2.0 * micro
  collision_angle: 0.0
  offset: [0.0, 0.0, 0.0]
  polarization: unpolarized

stats:
  electron:
    - mean gamma
    - variance angle_x` + "`" + `energy
    - total number
  photon:
    - circstd phi
    - quantum_chi 2.*initial_gamma*a0*(photon_energy/(me*c^2))

output:
  ident: run
  units: hep
  min_energy: 1.0 * MeV
  electron:
    - energy:(auto; log; bins 200)
  photon:
    - angle_x:angle_y:(-max_theta, max_theta; auto)
    - theta:(auto; theta in 0, max_theta)

constants:
  a0: 5.0
  initial_gamma: 16.5*GeV/(me*c^2)
  photon_energy: 1.55*eV
  wavelength: 0.8 * micro
  max_theta: 20 mrad
`

func decode(t *testing.T, src string) *document.Node {
	t.Helper()

	root, err := document.DecodeYAML([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("DecodeYAML error: %v", err)
	}

	return root
}

func near(got, want float64) bool {
	return math.Abs(got-want) <= 1e-12*math.Max(math.Abs(want), 1)
}

func TestResolve(t *testing.T) {
	cfg, err := Resolve(t.Context(), decode(t, fullDoc))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	c, _ := lang.Builtins().Lookup("c")
	e, _ := lang.Builtins().Lookup("e")

	if cfg.Control.DtMultiplier != 0.5 || cfg.Control.RNGSeed != 12 {
		t.Errorf("control = %+v", cfg.Control)
	}

	if cfg.Control.EquationOfMotion != LandauLifshitz || !cfg.Control.PairCreation {
		t.Errorf("control = %+v", cfg.Control)
	}

	l := cfg.Laser
	if l == nil {
		t.Fatal("laser not resolved")
	}

	if l.A0 != 5 || !near(l.Wavelength, 8e-7) || l.PlaneWave() {
		t.Errorf("laser = %+v", *l)
	}

	if !near(l.Cycles, 30e-15*c/8e-7) {
		t.Errorf("cycles = %g", l.Cycles)
	}

	if !near(l.Omega, 2*math.Pi*c/8e-7) {
		t.Errorf("omega = %g", l.Omega)
	}

	if l.Envelope != Gaussian || l.Polarization != Linear {
		t.Errorf("envelope, polarization = %s, %s", l.Envelope, l.Polarization)
	}

	b := cfg.Beam
	if b == nil {
		t.Fatal("beam not resolved")
	}

	gamma, _ := cfg.Table().Lookup("initial_gamma")

	if b.N != 10000 || b.Spectrum != Normal || b.Gamma != gamma {
		t.Errorf("beam = %+v", *b)
	}

	if !near(b.Weight, 1e-12/(e*10000)) {
		t.Errorf("weight = %g", b.Weight)
	}

	if b.Radius.Distribution != TruncNormallyDistributed || b.Radius.Max == nil ||
		!near(*b.Radius.Max, 3e-6) {
		t.Errorf("radius = %+v", b.Radius)
	}

	if got := len(cfg.Statistics(Electron)); got != 3 {
		t.Errorf("electron stats = %d, want 3", got)
	}

	photon := cfg.Statistics(Photon)
	if len(photon) != 2 || photon[1].Kind != stats.Formula {
		t.Fatalf("photon stats = %v", photon)
	}

	if len(cfg.Output.Entries) != 3 {
		t.Fatalf("output entries = %d, want 3", len(cfg.Output.Entries))
	}

	if cfg.Output.Entries[0].Binning != output.Log || cfg.Output.Entries[0].Bins != 200 {
		t.Errorf("entry 0 = %s", cfg.Output.Entries[0])
	}

	if cfg.Output.Options.Units != output.HEP || !near(cfg.Output.Options.MinEnergy, 1e6*e) {
		t.Errorf("output options = %+v", cfg.Output.Options)
	}
}

func TestResolveDefaults(t *testing.T) {
	cfg, err := Resolve(t.Context(), decode(t, "constants:\n  x: 2\n"))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	want := Control{
		DtMultiplier:       1,
		IncreasePairRateBy: 1,
		RadiationReaction:  true,
		PairCreation:       true,
	}

	if cfg.Control != want {
		t.Errorf("control = %+v, want %+v", cfg.Control, want)
	}

	if cfg.Laser != nil || cfg.Beam != nil {
		t.Error("absent sections resolved")
	}

	if cfg.Output.Options != output.DefaultOptions() {
		t.Errorf("output options = %+v", cfg.Output.Options)
	}
}

func TestResolveErrors(t *testing.T) {
	src := `laser:
  a0: 5
  wavelength: 0.8 * micro
  n_cycles: 10
  envelope: square
  colour: red
beam:
  n: 1.5
  gamma: 1000
  gamma_min: 10
stats:
  electron:
    - mean gamma
    - median gamma
  muon:
    - mean gamma
output:
  photon:
    - energy:(0, 1, 2)
bogus: 1
constants:
  a0: 5
`

	_, err := Resolve(t.Context(), decode(t, src))
	if err == nil {
		t.Fatal("Resolve succeeded")
	}

	var list pkg.Errors
	if !errors.As(err, &list) {
		t.Fatalf("error %T is not pkg.Errors", err)
	}

	fields := map[string]bool{}

	for _, e := range list {
		var pe *pkg.Error
		if !errors.As(e, &pe) {
			t.Errorf("error %v is not *pkg.Error", e)

			continue
		}

		if v, ok := pe.Attr("field"); ok {
			fields[v.String()] = true
		}
	}

	for _, want := range []string{
		"laser.envelope",
		"laser.colour",
		"beam.n",
		"beam.gamma",
		"stats.electron[1]",
		"stats.muon",
		"output.photon[0]",
		"bogus",
	} {
		if !fields[want] {
			t.Errorf("no error for %s in:\n%v", want, err)
		}
	}

	if !errors.Is(err, stats.ErrUnknownVariable) || !errors.Is(err, output.ErrAxisSpec) {
		t.Errorf("error kinds missing: %v", err)
	}
}

func TestResolveErrorsNotCascaded(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"wavelength", "laser:\n  a0: 1\n  wavelength: 1/0\n  n_cycles: 4\n", "laser.wavelength"},
		{"wavelength missing", "laser:\n  a0: 1\n  n_cycles: 4\n", "laser.wavelength"},
		{"beam n", "beam:\n  n: sqrt(-1)\n  gamma: 100\n", "beam.n"},
		{"gamma_min", "beam:\n  n: 10\n  gamma_min: 1/0\n  gamma_max: 100\n", "beam.gamma_min"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(t.Context(), decode(t, tt.src))
			if err == nil {
				t.Fatal("Resolve succeeded")
			}

			count := 0

			for _, e := range Errors(err) {
				var pe *pkg.Error
				if !errors.As(e, &pe) {
					continue
				}

				if v, ok := pe.Attr("field"); ok && v.String() == tt.field {
					count++
				}
			}

			if count != 1 {
				t.Errorf("%d errors for %s, want 1:\n%v", count, tt.field, err)
			}
		})
	}
}

func TestResolveConstantErrors(t *testing.T) {
	src := "constants:\n  a: b + 1\n  b: a + 1\nlaser:\n  a0: a\n"

	_, err := Resolve(t.Context(), decode(t, src))
	if !errors.Is(err, lang.ErrCyclicDependency) {
		t.Fatalf("error = %v, want ErrCyclicDependency", err)
	}

	if strings.Contains(err.Error(), "laser") {
		t.Errorf("sections read after constants failed: %v", err)
	}
}

func TestResolveInclude(t *testing.T) {
	docs := map[string]string{
		"common.yaml": "include: [units.yaml]\nconstants:\n  a0: 2\n  b: 3\n",
		"units.yaml":  "constants:\n  b: 4\n  um: micro\n",
		"loop.yaml":   "include: [loop.yaml]\n",
	}

	loader := func(name string, _ []string) (*document.Node, error) {
		src, ok := docs[name]
		if !ok {
			return nil, document.ErrNotFound
		}

		return document.DecodeYAML([]byte(src), name)
	}

	src := "include: [common.yaml]\nconstants:\n  a0: 7\n  w: 0.8 um\n"

	cfg, err := Resolve(t.Context(), decode(t, src), WithLoader(loader))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	tests := []struct {
		name string
		want float64
	}{
		{"a0", 7},
		{"b", 3},
		{"w", 8e-7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := cfg.Table().Lookup(tt.name); !near(got, tt.want) {
				t.Errorf("%s = %g, want %g", tt.name, got, tt.want)
			}
		})
	}

	_, err = Resolve(t.Context(), decode(t, "include: loop.yaml\n"), WithLoader(loader))
	if !errors.Is(err, ErrInclude) {
		t.Errorf("error = %v, want ErrInclude", err)
	}

	_, err = Resolve(t.Context(), decode(t, "include: nowhere.yaml\n"), WithLoader(loader))
	if !errors.Is(err, document.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolvedConfigMarshal(t *testing.T) {
	cfg, err := Resolve(t.Context(), decode(t, fullDoc))
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	js, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("json.Marshal error: %v", err)
	}

	var got struct {
		Constants map[string]float64  `json:"constants"`
		Laser     map[string]any      `json:"laser"`
		Stats     map[string][]string `json:"stats"`
		Output    map[string]any      `json:"output"`
	}

	if err := json.Unmarshal(js, &got); err != nil {
		t.Fatalf("json.Unmarshal error: %v", err)
	}

	if got.Constants["a0"] != 5 {
		t.Errorf("constants.a0 = %v", got.Constants["a0"])
	}

	if got.Laser["envelope"] != "gaussian" {
		t.Errorf("laser.envelope = %v", got.Laser["envelope"])
	}

	if s := got.Stats["electron"]; len(s) != 3 || s[0] != "mean gamma" {
		t.Errorf("stats.electron = %v", s)
	}

	if got.Output["units"] != "hep" {
		t.Errorf("output.units = %v", got.Output["units"])
	}

	ym, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("yaml.Marshal error: %v", err)
	}

	if !strings.Contains(string(ym), "envelope: gaussian") {
		t.Errorf("yaml output missing envelope:\n%s", ym)
	}
}
