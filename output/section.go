package output

import (
	"fmt"
	"log/slog"

	"github.com/ardnew/qedcfg/pkg"
)

// DefaultBins is the bin count of an entry without a bins clause.
const DefaultBins = 100

// Binning selects how bin edges are spaced.
type Binning int

// Binning strategies.
const (
	Linear Binning = iota // linear
	Log                   // log
)

// UnitSystem selects the units of written values.
type UnitSystem int

// Unit systems.
const (
	SI  UnitSystem = iota // si
	HEP                   // hep
)

// CoordinateSystem selects the frame of written positions and momenta.
type CoordinateSystem int

// Coordinate systems.
const (
	LaserFrame CoordinateSystem = iota // laser
	BeamFrame                          // beam
)

// FileFormat names the encoding of written files. The encoders themselves
// are external; the format is carried through resolution unchanged.
type FileFormat int

// File formats.
const (
	Plain FileFormat = iota // plain
	HDF5                    // hdf5
	FITS                    // fits
)

// Options are the settings of the output section shared by every entry.
type Options struct {
	Ident             string           `json:"ident,omitempty"      yaml:"ident,omitempty"`
	MinEnergy         float64          `json:"min_energy"           yaml:"min_energy"`
	MaxAngle          float64          `json:"max_angle,omitempty"  yaml:"max_angle,omitempty"`
	Units             UnitSystem       `json:"units"                yaml:"units"`
	CoordinateSystem  CoordinateSystem `json:"coordinate_system"    yaml:"coordinate_system"`
	FileFormat        FileFormat       `json:"file_format"          yaml:"file_format"`
	DiscardBackground bool             `json:"discard_background"   yaml:"discard_background"`
	DumpAllParticles  bool             `json:"dump_all_particles"   yaml:"dump_all_particles"`
}

// DefaultOptions returns the options of an output section with no settings.
func DefaultOptions() Options {
	return Options{Units: SI, CoordinateSystem: LaserFrame, FileFormat: Plain}
}

// ParseBinning returns the binning named s.
func ParseBinning(s string) (Binning, error) { return parse(s, "binning", Linear, Log) }

// ParseUnitSystem returns the unit system named s.
func ParseUnitSystem(s string) (UnitSystem, error) { return parse(s, "units", SI, HEP) }

// ParseCoordinateSystem returns the coordinate system named s.
func ParseCoordinateSystem(s string) (CoordinateSystem, error) {
	return parse(s, "coordinate_system", LaserFrame, BeamFrame)
}

// ParseFileFormat returns the file format named s.
func ParseFileFormat(s string) (FileFormat, error) {
	return parse(s, "file_format", Plain, HDF5, FITS)
}

func parse[T interface {
	~int
	String() string
}](s, what string, all ...T) (T, error) {
	if v, ok := pkg.ParseEnum(s, all); ok {
		return v, nil
	}

	var zero T

	return zero, ErrAxisSpec.
		With(slog.String(what, s), slog.Any("accepted", pkg.EnumNames(all))).
		Wrap(fmt.Errorf("unknown %s %q", what, s))
}

// MarshalText implements encoding.TextMarshaler.
func (b Binning) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (u UnitSystem) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (c CoordinateSystem) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// MarshalText implements encoding.TextMarshaler.
func (f FileFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
