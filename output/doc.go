// Package output compiles output entries into histogram and particle dump
// layouts.
//
// An entry lists one to three axis variables separated by colons, followed
// by an optional parenthesized clause list:
//
//	energy
//	energy:(auto; log; bins 200)
//	angle_x:angle_y:(-20 mrad, 20 mrad; auto; energy)
//	theta:(0, max_theta; theta in 0, max_theta)
//	p_perp:(auto, 10 MeV/c; weight * energy)
//
// Clauses are separated by semicolons. A range clause is auto or a pair of
// bounds where either bound may be auto; range clauses bind to axes in
// order. A clause "<expr> in <lo>, <hi>" is an inclusion predicate. A
// clause "bins <n>", "log", or "linear" sets the binning. Any other clause
// is the weight expression.
//
// An auto bound is recorded, never computed: the output writer fills it in
// from the extrema of the emitted particles.
package output
