// Package config interprets a decoded configuration document.
//
// [Resolve] reads the sections of a [document.Node] tree:
//
//	include    documents whose constants are merged in first
//	constants  named expressions, resolved once into a [lang.Table]
//	control    integrator and radiation settings
//	laser      the driving field
//	beam       the colliding particle beam
//	stats      per-species statistics lines
//	output     output options and per-species axis entries
//
// Every scalar may be a literal or an expression over the built-in units and
// the resolved constants. All problems found while reading are reported
// together in one [pkg.Errors], each tagged with the dotted path of its field
// (for example "laser.a0" or "stats.electron[2]") and its document position.
//
// The resulting [ResolvedConfig] holds SI values only and is immutable.
package config
