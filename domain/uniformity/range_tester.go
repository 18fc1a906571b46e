package uniformity

import (
	"fmt"

	"unipower/domain/core"
	"unipower/domain/multinomial"
	"unipower/domain/rangedist"
)

// RangeTester tests uniformity through the sample range of category
// counts: a large max-min spread is evidence against uniformity. The
// null distribution of the range comes from the normal-approximation
// surrogate in rangedist, so p-values are approximate.
type RangeTester struct{}

// NewRangeTester creates a range-statistic tester
func NewRangeTester() *RangeTester {
	return &RangeTester{}
}

// Name returns the tester name
func (t *RangeTester) Name() string {
	return RangeTestName
}

// PValues returns the one-sided upper-tail p-value 1 - F(range) for
// each replicate. The range only takes integer values, so the CDF is
// memoized per distinct range within the batch.
func (t *RangeTester) PValues(batch *multinomial.Batch) ([]float64, error) {
	if batch == nil || batch.Reps() == 0 {
		return nil, core.NewInvalidParameterError("batch", "must contain replicates")
	}
	if batch.Bins < 2 {
		return nil, core.NewInvalidParameterError("bins", "must be at least 2")
	}

	memo := make(map[int]float64)
	pvals := make([]float64, batch.Reps())
	for r, counts := range batch.Replicates {
		if len(counts) != batch.Bins {
			return nil, core.NewInvalidParameterError("batch",
				fmt.Sprintf("replicate %d has %d categories, want %d", r, len(counts), batch.Bins))
		}
		w, n, err := rangeAndTotal(counts)
		if err != nil {
			return nil, err
		}
		if n != batch.SampleSize {
			return nil, core.NewInvalidParameterError("batch",
				fmt.Sprintf("replicate %d sums to %d, want %d", r, n, batch.SampleSize))
		}
		p, ok := memo[w]
		if !ok {
			cdf, err := rangedist.MultinomialRangeCDF(float64(w), n, batch.Bins)
			if err != nil {
				return nil, err
			}
			p = 1 - cdf
			memo[w] = p
		}
		pvals[r] = p
	}
	return pvals, nil
}

func rangeAndTotal(counts []int) (int, int, error) {
	if len(counts) == 0 {
		return 0, 0, core.NewInvalidParameterError("replicate", "must not be empty")
	}
	min, max, sum := counts[0], counts[0], 0
	for _, c := range counts {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
		sum += c
	}
	return max - min, sum, nil
}
