package lang

//go:generate go tool stringer --linecomment --type Dimension --output dimension_string.go

import (
	"iter"
	"maps"
	"math"
	"slices"
	"sync"
)

// UnitsVersion identifies the revision of the built-in symbol table.
// Configurations are portable only between builds sharing this value.
const UnitsVersion = "codata-2018.1"

// Dimension tags the physical dimension of a built-in symbol.
type Dimension int

const (
	Dimensionless Dimension = iota // dimensionless
	Length                         // length
	Time                           // time
	Mass                           // mass
	Energy                         // energy
	Charge                         // charge
	Angle                          // angle
	Velocity                       // velocity
	Action                         // action
)

// MarshalText renders the dimension by name.
func (d Dimension) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Unit is a built-in constant or unit with its SI magnitude.
type Unit struct {
	Name   string    `json:"name"   yaml:"name"`
	Doc    string    `json:"doc"    yaml:"doc"`
	Factor float64   `json:"factor" yaml:"factor"`
	Dim    Dimension `json:"dim"    yaml:"dim"`
}

// Units is a read-only set of built-in symbols.
type Units struct {
	byName map[string]Unit
	names  []string
}

// Builtins returns the process-wide built-in symbol table.
var Builtins = sync.OnceValue(func() *Units {
	const electronVolt = 1.602176634e-19

	u := &Units{byName: map[string]Unit{}}

	for _, unit := range []Unit{
		{"e", "elementary charge", 1.602176634e-19, Charge},
		{"me", "electron mass", 9.1093837015e-31, Mass},
		{"mp", "proton mass", 1.67262192369e-27, Mass},
		{"c", "speed of light in vacuum", 299792458, Velocity},
		{"hbar", "reduced Planck constant", 1.054571817e-34, Action},
		{"alpha", "fine-structure constant", 7.2973525693e-3, Dimensionless},
		{"pi", "ratio of circumference to diameter", math.Pi, Dimensionless},

		{"eV", "electronvolt", electronVolt, Energy},
		{"keV", "kiloelectronvolt", 1e3 * electronVolt, Energy},
		{"MeV", "megaelectronvolt", 1e6 * electronVolt, Energy},
		{"GeV", "gigaelectronvolt", 1e9 * electronVolt, Energy},
		{"TeV", "teraelectronvolt", 1e12 * electronVolt, Energy},

		{"giga", "SI prefix 1e9", 1e9, Dimensionless},
		{"mega", "SI prefix 1e6", 1e6, Dimensionless},
		{"kilo", "SI prefix 1e3", 1e3, Dimensionless},
		{"milli", "SI prefix 1e-3", 1e-3, Dimensionless},
		{"micro", "SI prefix 1e-6", 1e-6, Dimensionless},
		{"nano", "SI prefix 1e-9", 1e-9, Dimensionless},
		{"pico", "SI prefix 1e-12", 1e-12, Dimensionless},
		{"femto", "SI prefix 1e-15", 1e-15, Dimensionless},
		{"atto", "SI prefix 1e-18", 1e-18, Dimensionless},

		{"degree", "plane angle, pi/180 radians", math.Pi / 180, Angle},
		{"mrad", "milliradian", 1e-3, Angle},
		{"urad", "microradian", 1e-6, Angle},
	} {
		u.byName[unit.Name] = unit
	}

	u.names = slices.Sorted(maps.Keys(u.byName))

	return u
})

// Lookup implements [Scope].
func (u *Units) Lookup(name string) (float64, bool) {
	unit, ok := u.byName[name]

	return unit.Factor, ok
}

// Unit returns the named built-in.
func (u *Units) Unit(name string) (Unit, bool) {
	unit, ok := u.byName[name]

	return unit, ok
}

// Has reports whether name is a built-in symbol.
func (u *Units) Has(name string) bool {
	_, ok := u.byName[name]

	return ok
}

// Names returns the sorted built-in names.
func (u *Units) Names() []string { return slices.Clone(u.names) }

// All iterates the built-ins in name order.
func (u *Units) All() iter.Seq[Unit] {
	return func(yield func(Unit) bool) {
		for _, name := range u.names {
			if !yield(u.byName[name]) {
				return
			}
		}
	}
}

// Len returns the number of built-ins.
func (u *Units) Len() int { return len(u.names) }
