package stats

import (
	"maps"
	"slices"
	"sync"
)

// Field describes a per-particle quantity available to statistics and
// output expressions at run time.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Doc  string `json:"doc"  yaml:"doc"`
}

// registry holds the built-in dynamic fields.
type registry struct {
	byName map[string]Field
	names  []string
}

var fields = sync.OnceValue(func() *registry {
	r := &registry{byName: map[string]Field{}}

	for _, f := range []Field{
		{"number", "particle count, 1 per particle"},
		{"weight", "macroparticle weight"},
		{"energy", "kinetic energy, or photon energy"},
		{"gamma", "Lorentz factor"},
		{"px", "momentum along x"},
		{"py", "momentum along y"},
		{"pz", "momentum along z"},
		{"p_perp", "momentum transverse to the beam axis"},
		{"p_minus", "lightfront momentum, energy/c - pz"},
		{"p_plus", "lightfront momentum, energy/c + pz"},
		{"r_perp", "distance from the beam axis"},
		{"x", "position along x"},
		{"y", "position along y"},
		{"z", "position along z"},
		{"t", "time"},
		{"angle_x", "angle between momentum and the beam axis in the x-z plane"},
		{"angle_y", "angle between momentum and the beam axis in the y-z plane"},
		{"theta", "polar angle of momentum about the beam axis"},
		{"phi", "azimuthal angle of momentum about the beam axis"},
		{"chi", "quantum nonlinearity parameter"},
		{"a_eff", "effective field amplitude at emission"},
		{"absorption", "energy absorbed from the laser"},
		{"s1", "Stokes parameter S1"},
		{"s2", "Stokes parameter S2"},
		{"s3", "Stokes parameter S3"},
		{"helicity", "longitudinal spin projection"},
	} {
		r.byName[f.Name] = f
	}

	r.names = slices.Sorted(maps.Keys(r.byName))

	return r
})

// FieldNames returns the built-in dynamic field names, sorted.
func FieldNames() []string { return slices.Clone(fields().names) }

// Fields returns the built-in dynamic fields sorted by name.
func Fields() []Field {
	r := fields()
	out := make([]Field, len(r.names))

	for i, name := range r.names {
		out[i] = r.byName[name]
	}

	return out
}

// IsField reports whether name is a built-in dynamic field.
func IsField(name string) bool {
	_, ok := fields().byName[name]

	return ok
}
