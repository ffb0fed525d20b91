package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/ardnew/qedcfg/document"
	"github.com/ardnew/qedcfg/lang"
)

// Radius is the transverse size of the beam.
type Radius struct {
	// Max truncates the distribution when not nil.
	Max          *float64     `json:"max,omitempty" yaml:"max,omitempty"`
	R            float64      `json:"r"             yaml:"r"`
	Distribution Distribution `json:"distribution"  yaml:"distribution"`
}

// Beam describes the colliding particle beam.
type Beam struct {
	// Charge is the total charge when given; Weight is derived from it.
	Charge              *float64   `json:"charge,omitempty"      yaml:"charge,omitempty"`
	Radius              Radius     `json:"radius"                yaml:"radius"`
	Polarization        [3]float64 `json:"polarization"          yaml:"polarization"`
	Offset              [3]float64 `json:"offset"                yaml:"offset"`
	N                   int64      `json:"n"                     yaml:"n"`
	Weight              float64    `json:"weight"                yaml:"weight"`
	Gamma               float64    `json:"gamma,omitempty"       yaml:"gamma,omitempty"`
	Sigma               float64    `json:"sigma,omitempty"       yaml:"sigma,omitempty"`
	GammaMin            float64    `json:"gamma_min,omitempty"   yaml:"gamma_min,omitempty"`
	GammaMax            float64    `json:"gamma_max,omitempty"   yaml:"gamma_max,omitempty"`
	Length              float64    `json:"length"                yaml:"length"`
	EnergyChirp         float64    `json:"energy_chirp"          yaml:"energy_chirp"`
	CollisionAngle      float64    `json:"collision_angle"       yaml:"collision_angle"`
	CollisionPlaneAngle float64    `json:"collision_plane_angle" yaml:"collision_plane_angle"`
	RMSDivergence       float64    `json:"rms_divergence"        yaml:"rms_divergence"`
	InitialZ            float64    `json:"initial_z"             yaml:"initial_z"`
	Species             Species    `json:"species"               yaml:"species"`
	Spectrum            Spectrum   `json:"spectrum"              yaml:"spectrum"`
}

// unpolarized is the keyword for a beam with a zero Stokes vector.
const unpolarized = "unpolarized"

func (r *reader) beam(s *section) Beam {
	b := Beam{
		Species:             enum(s, "species", "species", Electron, AllSpecies()),
		N:                   s.integer("n", 0),
		Length:              s.number("length", 0),
		EnergyChirp:         s.number("energy_chirp", 0),
		CollisionAngle:      s.number("collision_angle", 0),
		CollisionPlaneAngle: s.number("collision_plane_angle", 0),
		RMSDivergence:       s.number("rms_divergence", 0),
		InitialZ:            s.number("initial_z", 0),
	}

	if !s.has("n") {
		r.fail(errors.New("required"), s.field("n"), s.node)
	} else if b.N <= 0 && !s.failed("n") {
		r.fail(errors.New("n must be positive"), s.field("n"), s.node)
	}

	r.weight(s, &b)
	r.spectrum(s, &b)
	b.Radius = r.radius(s)

	if v, _, ok := s.vector("offset", 3); ok {
		copy(b.Offset[:], v)
	}

	b.Polarization = r.stokes(s)

	if math.Abs(b.EnergyChirp) > 1 {
		r.fail(errors.New("energy_chirp must lie in [-1, 1]"), s.field("energy_chirp"), s.node)
	}

	s.unknown()

	return b
}

// weight derives the macroparticle weight from charge when it is given.
func (r *reader) weight(s *section, b *Beam) {
	if s.has("charge") && s.has("weight") {
		r.fail(errors.New("charge and weight are exclusive"), s.field("weight"), s.node)
	}

	b.Weight = s.number("weight", 1)
	b.Charge = s.optional("charge")

	if b.Charge != nil && b.N > 0 {
		e, _ := lang.Builtins().Lookup("e")
		b.Weight = math.Abs(*b.Charge) / (e * float64(b.N))
	}

	if b.Weight <= 0 {
		r.fail(errors.New("weight must be positive"), s.field("weight"), s.node)
	}
}

// spectrum reads either a normal or a bremsstrahlung energy spectrum.
func (r *reader) spectrum(s *section, b *Beam) {
	normal := s.has("gamma") || s.has("sigma")
	brem := s.has("gamma_min") || s.has("gamma_max")

	switch {
	case normal && brem:
		r.fail(errors.New("gamma/sigma and gamma_min/gamma_max are exclusive"),
			s.field("gamma"), s.node)
	case brem:
		b.Spectrum = Bremsstrahlung
		b.GammaMin = s.required("gamma_min")
		b.GammaMax = s.required("gamma_max")

		if s.failed("gamma_min") || s.failed("gamma_max") {
			break
		}

		if b.GammaMin <= 0 || b.GammaMax <= b.GammaMin {
			r.fail(errors.New("need 0 < gamma_min < gamma_max"), s.field("gamma_min"), s.node)
		}
	default:
		b.Spectrum = Normal
		b.Gamma = s.required("gamma")
		b.Sigma = s.number("sigma", 0)

		if b.Gamma < 1 && !s.failed("gamma") {
			r.fail(errors.New("gamma must be at least 1"), s.field("gamma"), s.node)
		}

		if b.Sigma < 0 {
			r.fail(errors.New("sigma must not be negative"), s.field("sigma"), s.node)
		}
	}
}

// radius reads "r" or "[r, distribution]" or "[r, distribution, r_max]".
func (r *reader) radius(s *section) Radius {
	out := Radius{Distribution: NormallyDistributed}

	n, ok := s.get("radius")
	if !ok {
		return out
	}

	field := s.field("radius")

	if n.Kind == document.Scalar {
		out.R, _ = r.eval(n, field)

		return out
	}

	if n.Kind != document.Sequence || n.Len() < 2 || n.Len() > 3 {
		r.fail(errors.New("expected r or [r, distribution, r_max]"), field, n)

		return out
	}

	out.R, _ = r.eval(n.Items[0], field+"[0]")

	d, err := parseEnum(n.Items[1].String(), "distribution", distributions())
	if err != nil {
		r.fail(err, field+"[1]", n.Items[1])

		return out
	}

	out.Distribution = d

	if n.Len() == 3 {
		if v, ok := r.eval(n.Items[2], field+"[2]"); ok {
			out.Max = &v
		}
	}

	if d == TruncNormallyDistributed && out.Max == nil {
		r.fail(fmt.Errorf("%s requires r_max", d), field, n)
	}

	if out.R < 0 {
		r.fail(errors.New("radius must not be negative"), field, n)
	}

	return out
}

// stokes reads "unpolarized" or a Stokes vector [s1, s2, s3].
func (r *reader) stokes(s *section) [3]float64 {
	var out [3]float64

	n, ok := s.get("polarization")
	if !ok {
		return out
	}

	if n.Kind == document.Scalar && n.String() == unpolarized {
		return out
	}

	v, n, ok := s.vector("polarization", 3)
	if !ok {
		return out
	}

	copy(out[:], v)

	if out[0]*out[0]+out[1]*out[1]+out[2]*out[2] > 1+1e-12 {
		r.fail(errors.New("degree of polarization exceeds 1"), s.field("polarization"), n)
	}

	return out
}
