package power

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"unipower/domain/core"
)

// AnalyticTestName labels closed-form rows in the power table
const AnalyticTestName = "chi_square_analytic"

// The two-perturbed-category alternative at percentError = 0.1 has
// weighted squared deviation sum_i (p0_i - p1_i)^2 / p0_i =
// 2*(0.05)^2 / bins, so the noncentrality is sampleSize * 0.005 / bins.
const perturbationDeviation = 0.005

// Poisson-mixture evaluation of the noncentral chi-square tail
const (
	mixtureMassTarget = 1 - 1e-12
	logWeightFloor    = -745.0
)

// AnalyticChiSquarePower returns the closed-form power of the
// chi-square uniformity test under the percentError = 0.1 alternative.
// It is specific to that alternative: for other perturbations the
// noncentrality has to be re-derived.
func AnalyticChiSquarePower(sampleSize, bins int, alpha float64) (float64, error) {
	if sampleSize < 1 {
		return 0, core.NewInvalidParameterError("sampleSize", "must be positive")
	}
	if bins < 2 {
		return 0, core.NewInvalidParameterError("bins", "must be at least 2")
	}
	if err := ValidateAlpha(alpha); err != nil {
		return 0, err
	}

	df := float64(bins - 1)
	critical := distuv.ChiSquared{K: df}.Quantile(1 - alpha)
	lambda := float64(sampleSize) * perturbationDeviation / float64(bins)

	return noncentralChiSquareSurvival(critical, df, lambda), nil
}

// noncentralChiSquareSurvival computes P(X >= x) for a noncentral
// chi-square with the given degrees of freedom and noncentrality,
// as the Poisson(lambda/2) mixture of central chi-square tails:
//
//	sum_j e^(-l) l^j / j! * Survival(x; df + 2j),  l = lambda/2
//
// Weights are computed in log space so large noncentralities do not
// underflow the early terms; summation stops once the Poisson mass is
// covered to mixtureMassTarget.
func noncentralChiSquareSurvival(x, df, lambda float64) float64 {
	half := lambda / 2
	if half <= 0 {
		return distuv.ChiSquared{K: df}.Survival(x)
	}

	logHalf := math.Log(half)
	maxTerms := 64 + int(half+12*math.Sqrt(half+1))

	sum := 0.0
	mass := 0.0
	for j := 0; j < maxTerms; j++ {
		lg, _ := math.Lgamma(float64(j + 1))
		logW := -half + float64(j)*logHalf - lg
		if logW < logWeightFloor {
			continue
		}
		w := math.Exp(logW)
		mass += w
		sum += w * distuv.ChiSquared{K: df + 2*float64(j)}.Survival(x)
		if mass >= mixtureMassTarget {
			break
		}
	}
	if sum < 0 {
		return 0
	}
	if sum > 1 {
		return 1
	}
	return sum
}
