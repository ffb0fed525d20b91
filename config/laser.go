package config

import (
	"errors"
	"math"

	"github.com/ardnew/qedcfg/lang"
)

// Laser describes the driving field.
type Laser struct {
	// Waist is the focal spot size; nil selects a plane wave.
	Waist        *float64     `json:"waist,omitempty" yaml:"waist,omitempty"`
	A0           float64      `json:"a0"              yaml:"a0"`
	Wavelength   float64      `json:"wavelength"      yaml:"wavelength"`
	FWHMDuration float64      `json:"fwhm_duration"   yaml:"fwhm_duration"`
	Cycles       float64      `json:"n_cycles"        yaml:"n_cycles"`
	ChirpCoeff   float64      `json:"chirp_coeff"     yaml:"chirp_coeff"`
	Omega        float64      `json:"omega"           yaml:"omega"`
	K            float64      `json:"k"               yaml:"k"`
	Envelope     Envelope     `json:"envelope"        yaml:"envelope"`
	Polarization Polarization `json:"polarization"    yaml:"polarization"`
}

// PlaneWave reports whether the laser has no focal spot.
func (l Laser) PlaneWave() bool { return l.Waist == nil }

func (r *reader) laser(s *section) Laser {
	l := Laser{
		A0:           s.required("a0"),
		Wavelength:   s.required("wavelength"),
		Waist:        s.optional("waist"),
		ChirpCoeff:   s.number("chirp_coeff", 0),
		Envelope:     enum(s, "envelope", "envelope", Cos2, envelopes()),
		Polarization: enum(s, "polarization", "polarization", Circular, polarizations()),
	}

	duration, cycles := s.optional("fwhm_duration"), s.optional("n_cycles")

	c, _ := lang.Builtins().Lookup("c")

	switch {
	case s.failed("wavelength"):
	case l.Wavelength <= 0:
		r.fail(errors.New("wavelength must be positive"), s.field("wavelength"), s.node)
	case duration != nil && cycles != nil:
		r.fail(errors.New("fwhm_duration and n_cycles are exclusive"), s.field("n_cycles"), s.node)
	case duration != nil:
		l.FWHMDuration = *duration
		l.Cycles = *duration * c / l.Wavelength
	case cycles != nil:
		l.Cycles = *cycles
		l.FWHMDuration = *cycles * l.Wavelength / c
	case s.node != nil:
		r.fail(errors.New("one of fwhm_duration or n_cycles is required"), s.field("fwhm_duration"), s.node)
	}

	if l.Wavelength > 0 {
		l.K = 2 * math.Pi / l.Wavelength
		l.Omega = c * l.K
	}

	if l.A0 < 0 && !s.failed("a0") {
		r.fail(errors.New("a0 must not be negative"), s.field("a0"), s.node)
	}

	if l.Waist != nil && *l.Waist <= 0 {
		r.fail(errors.New("waist must be positive"), s.field("waist"), s.node)
	}

	s.unknown()

	return l
}
