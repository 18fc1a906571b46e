// Package uniformity implements the two tests whose power the sweep
// estimates: Pearson chi-square goodness-of-fit and the sample-range
// test, both against the uniform-categorical null.
package uniformity

import (
	"unipower/domain/multinomial"
)

// Test names used in power table rows
const (
	ChiSquareTestName = "chi_square"
	RangeTestName     = "range"
)

// Tester computes one p-value per replicate in a batch
type Tester interface {
	Name() string
	PValues(batch *multinomial.Batch) ([]float64, error)
}
