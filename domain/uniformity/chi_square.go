package uniformity

import (
	"gonum.org/v1/gonum/stat/distuv"

	"unipower/domain/core"
	"unipower/domain/multinomial"
)

// ChiSquareTester computes Pearson goodness-of-fit p-values against the
// uniform null. Expected counts are sampleSize/bins for every category
// regardless of the probabilities that generated the batch: an analyst
// testing for uniformity does not know the true perturbation, so the
// test is deliberately evaluated under its default uniform-null
// assumption.
type ChiSquareTester struct{}

// NewChiSquareTester creates a chi-square goodness-of-fit tester
func NewChiSquareTester() *ChiSquareTester {
	return &ChiSquareTester{}
}

// Name returns the tester name
func (t *ChiSquareTester) Name() string {
	return ChiSquareTestName
}

// PValues returns the upper-tail chi-square p-value for each replicate,
// with bins-1 degrees of freedom.
func (t *ChiSquareTester) PValues(batch *multinomial.Batch) ([]float64, error) {
	if batch == nil || batch.Reps() == 0 {
		return nil, core.NewInvalidParameterError("batch", "must contain replicates")
	}
	if batch.Bins < 2 {
		return nil, core.NewInvalidParameterError("bins", "must be at least 2")
	}

	expected := float64(batch.SampleSize) / float64(batch.Bins)
	dist := distuv.ChiSquared{K: float64(batch.Bins - 1)}

	pvals := make([]float64, batch.Reps())
	for r, counts := range batch.Replicates {
		stat := 0.0
		for _, c := range counts {
			diff := float64(c) - expected
			stat += diff * diff / expected
		}
		pvals[r] = dist.Survival(stat)
	}
	return pvals, nil
}
