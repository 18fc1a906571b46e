package multinomial

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"unipower/domain/core"
)

// Default simulation parameters for the reference scenario
const (
	DefaultPercentError = 0.1
	DefaultReps         = 100000
)

// ProbabilityVector holds per-category probabilities summing to 1
type ProbabilityVector []float64

// NearUniform builds the two-perturbed-category alternative: every
// category gets 1/bins except one lowered to (1-percentError/2)/bins
// and one raised to (1+percentError/2)/bins. percentError = 0 is the
// uniform null.
func NearUniform(bins int, percentError float64) (ProbabilityVector, error) {
	if bins < 2 {
		return nil, core.NewInvalidParameterError("bins", "must be at least 2")
	}
	if percentError < 0 || percentError >= 2 {
		return nil, core.NewInvalidParameterError("percentError", "must be in [0, 2)")
	}

	p := make(ProbabilityVector, bins)
	base := 1.0 / float64(bins)
	for i := range p {
		p[i] = base
	}
	p[0] = (1 - percentError/2) * base
	p[1] = (1 + percentError/2) * base
	return p, nil
}

// Batch is a collection of independent multinomial count vectors drawn
// under one (sampleSize, bins, percentError) setting. Every replicate
// has exactly Bins entries and sums to exactly SampleSize.
type Batch struct {
	SampleSize   int
	Bins         int
	PercentError float64
	Replicates   [][]int
}

// Reps returns the number of replicates in the batch
func (b *Batch) Reps() int {
	return len(b.Replicates)
}

// Generate draws reps independent multinomial count vectors of
// sampleSize trials over the near-uniform alternative. The draw is
// deterministic for a given source state.
func Generate(sampleSize, bins int, percentError float64, reps int, src rand.Source) (*Batch, error) {
	if sampleSize < 1 {
		return nil, core.NewInvalidParameterError("sampleSize", "must be positive")
	}
	if reps < 1 {
		return nil, core.NewInvalidParameterError("reps", "must be positive")
	}
	p, err := NearUniform(bins, percentError)
	if err != nil {
		return nil, err
	}

	batch := &Batch{
		SampleSize:   sampleSize,
		Bins:         bins,
		PercentError: percentError,
		Replicates:   make([][]int, reps),
	}
	for r := 0; r < reps; r++ {
		batch.Replicates[r] = drawCounts(p, sampleSize, src)
	}
	return batch, nil
}

// drawCounts samples one multinomial vector by the conditional-binomial
// decomposition: category i receives Binomial(remaining, p_i/massLeft)
// trials given the counts already assigned.
func drawCounts(p ProbabilityVector, n int, src rand.Source) []int {
	counts := make([]int, len(p))
	remaining := n
	massLeft := 1.0
	for i := 0; i < len(p)-1 && remaining > 0; i++ {
		cond := p[i] / massLeft
		if cond > 1 {
			cond = 1
		}
		b := distuv.Binomial{N: float64(remaining), P: cond, Src: src}
		c := int(b.Rand())
		counts[i] = c
		remaining -= c
		massLeft -= p[i]
		if massLeft <= 0 {
			break
		}
	}
	counts[len(p)-1] = remaining
	return counts
}
