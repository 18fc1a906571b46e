// Package rangedist models the distribution of the sample range of
// multinomial category counts through a normal-theory surrogate: the
// range of k i.i.d. standard normals, whose CDF is obtained by
// numerical integration.
package rangedist

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"

	"unipower/domain/core"
)

// Quadrature budget. The node count doubles from minNodes until two
// successive Gauss-Legendre estimates agree to convergeTol; exceeding
// maxNodes fails with ErrIntegrationBudget instead of refining forever.
const (
	minNodes    = 129
	maxNodes    = 8256
	convergeTol = 1e-8

	// exp underflows to 0 below roughly -745 in float64
	logFloor = -745.0
)

// NormalRangeCDF evaluates P(range <= w) for the range (max - min) of
// k i.i.d. standard normal variables. The density of the minimum
// conditioned on range w integrates over the real line as
//
//	k * phi(x) * (Phi(x+w) - Phi(x))^(k-1)
//
// The (k-1)-th power is taken in log space so the integrand survives k
// in the tens of thousands, and the substitution x = t/(1-t^2) maps
// the real line onto (-1, 1) for Gauss-Legendre quadrature.
func NormalRangeCDF(w float64, k int) (float64, error) {
	if k < 1 {
		return 0, core.NewInvalidParameterError("k", "must be at least 1")
	}
	if w <= 0 || math.IsNaN(w) {
		return 0, nil
	}
	if k == 1 {
		// A single observation has range exactly 0.
		return 1, nil
	}

	km1 := float64(k - 1)
	integrand := func(t float64) float64 {
		u := 1 - t*t
		x := t / u
		jacobian := (1 + t*t) / (u * u)
		span := distuv.UnitNormal.CDF(x+w) - distuv.UnitNormal.CDF(x)
		if span <= 0 {
			return 0
		}
		logPow := km1 * math.Log(span)
		if logPow < logFloor {
			return 0
		}
		return float64(k) * distuv.UnitNormal.Prob(x) * math.Exp(logPow) * jacobian
	}

	prev := quad.Fixed(integrand, -1, 1, minNodes, quad.Legendre{}, 0)
	for n := 2 * minNodes; n <= maxNodes; n = 2 * n {
		est := quad.Fixed(integrand, -1, 1, n, quad.Legendre{}, 0)
		if math.Abs(est-prev) <= convergeTol {
			return clampUnit(est), nil
		}
		prev = est
	}
	return 0, core.NewIntegrationBudgetError(maxNodes, math.Abs(prev))
}

// MultinomialRangeCDF approximates P(range <= w) for the range of k
// multinomial category counts out of n trials under the uniform null.
// The discrete range is mapped onto the continuous normal-range
// distribution by a continuity correction of 1/(2n) and the
// variance-stabilizing rescale sqrt(k/n). This is a surrogate, not an
// exact distribution.
func MultinomialRangeCDF(w float64, n, k int) (float64, error) {
	if n < 1 {
		return 0, core.NewInvalidParameterError("n", "must be positive")
	}
	if k < 2 {
		return 0, core.NewInvalidParameterError("k", "must be at least 2")
	}
	cutoff := (w - 1/(2*float64(n))) * math.Sqrt(float64(k)/float64(n))
	return NormalRangeCDF(cutoff, k)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
