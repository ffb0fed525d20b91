package config

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/qedcfg/pkg"
)

//go:generate go tool stringer --linecomment --type RadiationMode,EquationOfMotion,Envelope,Polarization,Species,Spectrum,Distribution --output enum_string.go

// RadiationMode selects how emission is modelled.
type RadiationMode int

// Radiation modes.
const (
	Quantum   RadiationMode = iota // quantum
	Classical                      // classical
)

// EquationOfMotion selects the classical particle pusher.
type EquationOfMotion int

// Equations of motion.
const (
	Lorentz                EquationOfMotion = iota // lorentz
	LandauLifshitz                                 // landau-lifshitz
	ModifiedLandauLifshitz                         // modified-landau-lifshitz
)

// Envelope is the temporal profile of the laser pulse.
type Envelope int

// Envelopes.
const (
	Cos2     Envelope = iota // cos^2
	Flattop                  // flattop
	Gaussian                 // gaussian
)

// Polarization is the laser polarization.
type Polarization int

// Polarizations.
const (
	Circular Polarization = iota // circular
	Linear                       // linear
)

// Species names a particle type.
type Species int

// Species.
const (
	Electron Species = iota // electron
	Positron                // positron
	Photon                  // photon
)

// Spectrum is the shape of the beam energy spectrum.
type Spectrum int

// Spectra.
const (
	Normal         Spectrum = iota // normal
	Bremsstrahlung                 // bremsstrahlung
)

// Distribution is the transverse profile of the beam.
type Distribution int

// Radial distributions.
const (
	NormallyDistributed      Distribution = iota // normally_distributed
	UniformlyDistributed                         // uniformly_distributed
	TruncNormallyDistributed                     // trunc_normally_distributed
)

func radiationModes() []RadiationMode { return []RadiationMode{Quantum, Classical} }

func equationsOfMotion() []EquationOfMotion {
	return []EquationOfMotion{Lorentz, LandauLifshitz, ModifiedLandauLifshitz}
}

func envelopes() []Envelope         { return []Envelope{Cos2, Flattop, Gaussian} }
func polarizations() []Polarization { return []Polarization{Circular, Linear} }
func spectra() []Spectrum           { return []Spectrum{Normal, Bremsstrahlung} }

func distributions() []Distribution {
	return []Distribution{NormallyDistributed, UniformlyDistributed, TruncNormallyDistributed}
}

// AllSpecies returns every species in declaration order.
func AllSpecies() []Species { return []Species{Electron, Positron, Photon} }

// ParseSpecies returns the species named s, ignoring case.
func ParseSpecies(s string) (Species, error) { return parseEnum(s, "species", AllSpecies()) }

func parseEnum[T interface {
	~int
	String() string
}](s, what string, all []T) (T, error) {
	if v, ok := pkg.ParseEnum(s, all); ok {
		return v, nil
	}

	var zero T

	return zero, ErrInvalidValue.
		With(slog.Any("accepted", pkg.EnumNames(all))).
		Wrap(fmt.Errorf("unknown %s %q", what, s))
}

// MarshalText implements encoding.TextMarshaler.
func (m RadiationMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (e EquationOfMotion) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (e Envelope) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (p Polarization) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (s Species) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (s Spectrum) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (d Distribution) MarshalText() ([]byte, error) { return []byte(d.String()), nil }
