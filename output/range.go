package output

import (
	"strconv"
)

// Range is the binning range of one axis: [Fixed], [Auto], or
// [AutoWithPredicate].
type Range interface {
	// Bounds returns the range with every auto bound replaced by the
	// matching empirical extremum.
	Bounds(lo, hi float64) (float64, float64)
	// Deferred reports whether any bound is computed from data.
	Deferred() bool
	String() string

	isRange()
}

// Fixed is a range with both bounds known at configuration time.
type Fixed struct {
	Lo float64 `json:"lo" yaml:"lo"`
	Hi float64 `json:"hi" yaml:"hi"`
}

// Auto is a range with at least one bound computed from data. A nil bound
// is auto.
type Auto struct {
	Lo *float64 `json:"lo,omitempty" yaml:"lo,omitempty"`
	Hi *float64 `json:"hi,omitempty" yaml:"hi,omitempty"`
}

// AutoWithPredicate is an [Auto] range on an axis whose variable is also
// restricted by a predicate. The extrema are taken over the particles the
// predicate accepts.
type AutoWithPredicate struct {
	Pred *Predicate `json:"predicate" yaml:"predicate"`
	Auto `yaml:",inline"`
}

func (Fixed) isRange()             {}
func (Auto) isRange()              {}
func (AutoWithPredicate) isRange() {}

// Bounds implements [Range].
func (r Fixed) Bounds(float64, float64) (float64, float64) { return r.Lo, r.Hi }

// Bounds implements [Range].
func (r Auto) Bounds(lo, hi float64) (float64, float64) {
	if r.Lo != nil {
		lo = *r.Lo
	}

	if r.Hi != nil {
		hi = *r.Hi
	}

	return lo, hi
}

// Bounds implements [Range]. Data extrema are clamped to the predicate
// interval.
func (r AutoWithPredicate) Bounds(lo, hi float64) (float64, float64) {
	if r.Pred != nil {
		lo, hi = max(lo, r.Pred.Lo), min(hi, r.Pred.Hi)
	}

	return r.Auto.Bounds(lo, hi)
}

// Deferred implements [Range].
func (Fixed) Deferred() bool { return false }

// Deferred implements [Range].
func (Auto) Deferred() bool { return true }

// Deferred implements [Range].
func (AutoWithPredicate) Deferred() bool { return true }

func (r Fixed) String() string { return bound(&r.Lo) + ", " + bound(&r.Hi) }

func (r Auto) String() string {
	if r.Lo == nil && r.Hi == nil {
		return "auto"
	}

	return bound(r.Lo) + ", " + bound(r.Hi)
}

func (r AutoWithPredicate) String() string { return r.Auto.String() }

func bound(v *float64) string {
	if v == nil {
		return "auto"
	}

	return strconv.FormatFloat(*v, 'g', -1, 64)
}
