// Package stats implements the two interval estimators the report reuses:
// a Wilson score interval for binomial proportions (tip frequency,
// guarantee-achievement frequency) and a Student's t interval for
// continuous means (per-hour and per-session earnings). Both are standalone
// numeric functions so they can be checked against textbook values.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ConfidenceLevel is the two-sided coverage of every interval in the report.
const ConfidenceLevel = 0.95

// Interval is a point estimate with its confidence bounds. Undefined
// intervals (too few observations, NaN inputs) carry NaN bounds rather than
// failing.
type Interval struct {
	Point float64 `json:"point"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	N     int     `json:"n"`
}

// Defined reports whether the bounds are usable.
func (iv Interval) Defined() bool {
	return !math.IsNaN(iv.Lower) && !math.IsNaN(iv.Upper)
}

func undefined(point float64, n int) Interval {
	return Interval{Point: point, Lower: math.NaN(), Upper: math.NaN(), N: n}
}

// WilsonCI computes the Wilson score interval for a binomial proportion of
// successes out of trials. With p̂ = k/n and z the 0.975 normal quantile:
//
//	center = (p̂ + z²/2n) / (1 + z²/n)
//	half   = z·sqrt(p̂(1−p̂)/n + z²/4n²) / (1 + z²/n)
//
// The point estimate is p̂ itself; bounds are clamped to [0, 1]. Zero trials
// yield an undefined interval.
func WilsonCI(successes, trials int) Interval {
	if trials <= 0 {
		return undefined(math.NaN(), trials)
	}

	n := float64(trials)
	p := float64(successes) / n
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.5 + ConfidenceLevel/2)
	z2 := z * z

	denom := 1 + z2/n
	center := (p + z2/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z2/(4*n*n)) / denom

	return Interval{
		Point: p,
		Lower: math.Max(0, center-half),
		Upper: math.Min(1, center+half),
		N:     trials,
	}
}

// MeanCI computes the sample mean with a t-distribution confidence
// interval: mean ± t(0.975, n−1)·s/√n. Samples of one or zero observations
// yield undefined bounds. NaN observations propagate into the mean and
// bounds — an undefined ratio stays undefined, it is not dropped.
func MeanCI(sample []float64) Interval {
	n := len(sample)
	switch n {
	case 0:
		return undefined(math.NaN(), 0)
	case 1:
		return undefined(sample[0], 1)
	}

	mean := stat.Mean(sample, nil)
	sd := stat.StdDev(sample, nil)
	if math.IsNaN(mean) || math.IsNaN(sd) {
		return undefined(mean, n)
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}.Quantile(0.5 + ConfidenceLevel/2)
	half := t * sd / math.Sqrt(float64(n))

	return Interval{Point: mean, Lower: mean - half, Upper: mean + half, N: n}
}
