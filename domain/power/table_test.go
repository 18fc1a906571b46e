package power

import (
	"math"
	"testing"

	"unipower/domain/core"
)

func TestEmpiricalPower(t *testing.T) {
	pvals := []float64{0.001, 0.005, 0.01, 0.02, 0.5, 0.99}
	p, err := EmpiricalPower(pvals, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	// p <= alpha counts, so 0.01 itself rejects
	if math.Abs(p-0.5) > 1e-12 {
		t.Errorf("got %g, want 0.5", p)
	}
}

func TestEmpiricalPower_InvalidInputs(t *testing.T) {
	if _, err := EmpiricalPower(nil, 0.01); !core.IsInvalidParameter(err) {
		t.Errorf("empty p-values: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := EmpiricalPower([]float64{0.5}, 0); !core.IsInvalidParameter(err) {
		t.Errorf("alpha=0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := EmpiricalPower([]float64{0.5}, 1); !core.IsInvalidParameter(err) {
		t.Errorf("alpha=1: expected ErrInvalidParameter, got %v", err)
	}
}

func TestTable_SummariesGroupByTest(t *testing.T) {
	table := &Table{}
	table.Append(Row{SampleSize: 100, Bins: 5, Test: "chi_square", Power: 0.2})
	table.Append(Row{SampleSize: 200, Bins: 5, Test: "chi_square", Power: 0.6})
	table.Append(Row{SampleSize: 100, Bins: 5, Test: "range", Power: 0.1})

	summaries, err := table.Summaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}
	chi := summaries[0]
	if chi.Test != "chi_square" {
		t.Fatalf("expected chi_square first, got %s", chi.Test)
	}
	if chi.Min != 0.2 || chi.Max != 0.6 || math.Abs(chi.Mean-0.4) > 1e-12 {
		t.Errorf("chi_square summary wrong: %+v", chi)
	}
	if summaries[1].Test != "range" || summaries[1].Min != 0.1 {
		t.Errorf("range summary wrong: %+v", summaries[1])
	}
}

func TestTable_ForTestPreservesOrder(t *testing.T) {
	table := &Table{}
	for _, n := range []int{100, 200, 300} {
		table.Append(Row{SampleSize: n, Bins: 4, Test: "range", Power: float64(n) / 1000})
	}
	rows := table.ForTest("range")
	for i, n := range []int{100, 200, 300} {
		if rows[i].SampleSize != n {
			t.Fatalf("row %d out of order: %+v", i, rows[i])
		}
	}
}
