package stats

import (
	"math"
)

// Accumulator is a mergeable running summary of weighted samples.
//
// The zero Accumulator is empty and ready for use. Accumulators are not
// safe for concurrent use; give each worker its own and combine them with
// [Accumulator.Merge].
type Accumulator struct {
	// Count is the number of accepted samples.
	Count int64 `json:"count"`
	// Seen is the total weight of every observed sample, accepted or not.
	Seen float64 `json:"seen"`
	// Weight is the total weight of accepted samples.
	Weight float64 `json:"weight"`
	// Sum is the weighted sum of accepted samples.
	Sum float64 `json:"sum"`
	// Mean and M2 are the running weighted mean and sum of squared
	// deviations from it.
	Mean float64 `json:"mean"`
	M2   float64 `json:"m2"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	// Sin and Cos are weighted sums of the unit vectors of the samples.
	Sin float64 `json:"sin"`
	Cos float64 `json:"cos"`
}

// Add accepts sample x with weight w.
func (a *Accumulator) Add(x, w float64) {
	a.Seen += w

	a.Weight += w
	a.Sum += w * x

	switch {
	case a.Count == 0:
		a.Min, a.Max = x, x
		a.Mean = x

	default:
		a.Min, a.Max = math.Min(a.Min, x), math.Max(a.Max, x)

		if a.Weight != 0 {
			delta := x - a.Mean
			a.Mean += delta * w / a.Weight
			a.M2 += w * delta * (x - a.Mean)
		}
	}

	a.Count++

	sin, cos := math.Sincos(x)
	a.Sin += w * sin
	a.Cos += w * cos
}

// Skip records a sample with weight w that failed the acceptance test.
func (a *Accumulator) Skip(w float64) { a.Seen += w }

// Merge folds b into a.
func (a *Accumulator) Merge(b Accumulator) {
	switch {
	case b.Count == 0:
		a.Seen += b.Seen

		return

	case a.Count == 0:
		seen := a.Seen
		*a = b
		a.Seen += seen

		return
	}

	weight := a.Weight + b.Weight

	if weight != 0 {
		delta := b.Mean - a.Mean
		a.M2 += b.M2 + delta*delta*a.Weight*b.Weight/weight
		a.Mean += delta * b.Weight / weight
	}

	a.Count += b.Count
	a.Seen += b.Seen
	a.Weight = weight
	a.Sum += b.Sum
	a.Min = math.Min(a.Min, b.Min)
	a.Max = math.Max(a.Max, b.Max)
	a.Sin += b.Sin
	a.Cos += b.Cos
}

// Empty reports whether no sample has been accepted.
func (a Accumulator) Empty() bool { return a.Count == 0 }

// Value reduces the accumulated samples with kind k. An empty accumulator
// reports 0 for every kind. [Formula] has no samples and reports 0.
func (a Accumulator) Value(k Kind) float64 {
	if a.Count == 0 && k != Fraction {
		return 0
	}

	switch k {
	case Total:
		return a.Sum

	case Fraction:
		if a.Seen == 0 {
			return 0
		}

		return a.Weight / a.Seen

	case Mean:
		return a.Mean

	case Variance:
		if a.Weight == 0 {
			return 0
		}

		return math.Max(a.M2/a.Weight, 0)

	case Minimum:
		return a.Min

	case Maximum:
		return a.Max

	case CircMean:
		return math.Atan2(a.Sin, a.Cos)

	case CircVar:
		return 1 - a.resultant()

	case CircStd:
		r := a.resultant()

		switch {
		case r == 0:
			return math.Inf(1)
		case r >= 1:
			return 0
		}

		return math.Sqrt(-2 * math.Log(r))
	}

	return 0
}

// resultant returns the mean resultant length R in [0, 1]. Identical
// samples have R exactly 1.
func (a Accumulator) resultant() float64 {
	if a.Weight == 0 || a.Min == a.Max {
		return 1
	}

	return math.Min(math.Hypot(a.Sin, a.Cos)/math.Abs(a.Weight), 1)
}
