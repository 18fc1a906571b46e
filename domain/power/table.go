// Package power holds the terminal output artifact of the study (the
// power table) and the two ways of filling it: empirical rejection
// rates from simulation, and the closed-form noncentral chi-square
// power.
package power

import (
	"github.com/montanaflynn/stats"

	"unipower/domain/core"
)

// DefaultAlpha is the significance level used throughout the study
const DefaultAlpha = 0.01

// Row is one power estimate at one grid point for one test
type Row struct {
	SampleSize int     `json:"sample_size" db:"sample_size"`
	Bins       int     `json:"bins" db:"bins"`
	Test       string  `json:"test" db:"test_name"`
	Power      float64 `json:"power" db:"power"`
}

// Table accumulates rows over a parameter grid
type Table struct {
	Rows []Row `json:"rows"`
}

// Append adds one row
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// TestNames returns the distinct test names in first-seen order
func (t *Table) TestNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range t.Rows {
		if !seen[r.Test] {
			seen[r.Test] = true
			names = append(names, r.Test)
		}
	}
	return names
}

// ForTest returns the rows belonging to one test, in table order
func (t *Table) ForTest(name string) []Row {
	var rows []Row
	for _, r := range t.Rows {
		if r.Test == name {
			rows = append(rows, r)
		}
	}
	return rows
}

// Summary describes the power surface of one test
type Summary struct {
	Test string  `json:"test"`
	Min  float64 `json:"min"`
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
}

// Summaries computes per-test min/mean/max power
func (t *Table) Summaries() ([]Summary, error) {
	var out []Summary
	for _, name := range t.TestNames() {
		var powers []float64
		for _, r := range t.ForTest(name) {
			powers = append(powers, r.Power)
		}
		min, err := stats.Min(powers)
		if err != nil {
			return nil, err
		}
		mean, err := stats.Mean(powers)
		if err != nil {
			return nil, err
		}
		max, err := stats.Max(powers)
		if err != nil {
			return nil, err
		}
		out = append(out, Summary{Test: name, Min: min, Mean: mean, Max: max})
	}
	return out, nil
}

// EmpiricalPower is the fraction of p-values at or below alpha
func EmpiricalPower(pvals []float64, alpha float64) (float64, error) {
	if err := ValidateAlpha(alpha); err != nil {
		return 0, err
	}
	if len(pvals) == 0 {
		return 0, core.NewInvalidParameterError("pvals", "must not be empty")
	}
	rejections := 0
	for _, p := range pvals {
		if p <= alpha {
			rejections++
		}
	}
	return float64(rejections) / float64(len(pvals)), nil
}

// ValidateAlpha checks a significance level
func ValidateAlpha(alpha float64) error {
	if alpha <= 0 || alpha >= 1 {
		return core.NewInvalidParameterError("alpha", "must be in (0, 1)")
	}
	return nil
}
