// Package stats compiles per-species statistics lines into runnable
// aggregation descriptors.
//
// A line names an aggregate and the per-particle quantity it reduces:
//
//	mean gamma
//	variance angle_x`energy
//	circstd phi in 0, pi [mrad]
//	total number
//	synch_peak`formula 0.44 * hbar * initial_gamma^2 / me
//
// Quantities are [lang] expressions over dynamic particle fields and
// resolved constants. The backtick suffix gives the weight expression, the
// in clause restricts the samples counted, and the bracketed unit divides
// the reported value. A formula entry is evaluated once from constants.
//
// Each worker feeds particles to its own [Accumulator] with [Spec.Observe].
// Accumulators merge associatively, so reduction order affects results
// only through floating-point rounding.
package stats
