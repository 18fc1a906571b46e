package multinomial

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"unipower/domain/core"
)

func TestNearUniform_TwoBins(t *testing.T) {
	p, err := NearUniform(2, 0.1)
	if err != nil {
		t.Fatalf("bins=2 with percentError=0.1 must be valid: %v", err)
	}
	if math.Abs(p[0]-0.475) > 1e-12 || math.Abs(p[1]-0.525) > 1e-12 {
		t.Errorf("expected [0.475, 0.525], got %v", p)
	}
}

func TestNearUniform_SumsToOne(t *testing.T) {
	for _, bins := range []int{2, 3, 10, 100} {
		p, err := NearUniform(bins, 0.1)
		if err != nil {
			t.Fatalf("bins=%d: %v", bins, err)
		}
		if len(p) != bins {
			t.Fatalf("bins=%d: got %d entries", bins, len(p))
		}
		sum := 0.0
		for _, v := range p {
			if v <= 0 {
				t.Errorf("bins=%d: non-positive probability %g", bins, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("bins=%d: probabilities sum to %g", bins, sum)
		}
	}
}

func TestNearUniform_InvalidParameters(t *testing.T) {
	cases := []struct {
		name         string
		bins         int
		percentError float64
	}{
		{"one bin", 1, 0.1},
		{"zero bins", 0, 0.1},
		{"negative error", 10, -0.1},
		{"error makes probability zero", 10, 2.0},
		{"error above two", 10, 2.5},
	}
	for _, tc := range cases {
		if _, err := NearUniform(tc.bins, tc.percentError); !core.IsInvalidParameter(err) {
			t.Errorf("%s: expected ErrInvalidParameter, got %v", tc.name, err)
		}
	}
}

func TestGenerate_ReplicateInvariants(t *testing.T) {
	src := rand.NewSource(42)
	batch, err := Generate(500, 7, 0.1, 200, src)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Reps() != 200 {
		t.Fatalf("expected 200 replicates, got %d", batch.Reps())
	}
	for r, counts := range batch.Replicates {
		if len(counts) != 7 {
			t.Fatalf("replicate %d: %d categories, want 7", r, len(counts))
		}
		sum := 0
		for _, c := range counts {
			if c < 0 {
				t.Fatalf("replicate %d: negative count %d", r, c)
			}
			sum += c
		}
		if sum != 500 {
			t.Fatalf("replicate %d: counts sum to %d, want 500", r, sum)
		}
	}
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	a, err := Generate(300, 5, 0.1, 50, rand.NewSource(7))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(300, 5, 0.1, 50, rand.NewSource(7))
	if err != nil {
		t.Fatal(err)
	}
	for r := range a.Replicates {
		for i := range a.Replicates[r] {
			if a.Replicates[r][i] != b.Replicates[r][i] {
				t.Fatalf("replicate %d differs between identical seeds", r)
			}
		}
	}
}

func TestGenerate_InvalidParameters(t *testing.T) {
	src := rand.NewSource(1)
	if _, err := Generate(0, 5, 0.1, 10, src); !core.IsInvalidParameter(err) {
		t.Errorf("sampleSize=0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Generate(100, 1, 0.1, 10, src); !core.IsInvalidParameter(err) {
		t.Errorf("bins=1: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Generate(100, 5, 0.1, 0, src); !core.IsInvalidParameter(err) {
		t.Errorf("reps=0: expected ErrInvalidParameter, got %v", err)
	}
}

// Category means should track the perturbed probabilities, not the
// uniform baseline.
func TestGenerate_PerturbedCategoryMeans(t *testing.T) {
	const (
		n    = 1000
		bins = 4
		reps = 4000
	)
	batch, err := Generate(n, bins, 0.4, reps, rand.NewSource(11))
	if err != nil {
		t.Fatal(err)
	}
	totals := make([]float64, bins)
	for _, counts := range batch.Replicates {
		for i, c := range counts {
			totals[i] += float64(c)
		}
	}
	mean0 := totals[0] / reps // expected n*(1-0.2)/4 = 200
	mean1 := totals[1] / reps // expected n*(1+0.2)/4 = 300
	if math.Abs(mean0-200) > 5 {
		t.Errorf("lowered category mean %.2f, want ~200", mean0)
	}
	if math.Abs(mean1-300) > 5 {
		t.Errorf("raised category mean %.2f, want ~300", mean1)
	}
}
