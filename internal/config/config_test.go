package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Alpha != 0.01 {
		t.Errorf("default alpha %g, want 0.01", cfg.Simulation.Alpha)
	}
	if cfg.Simulation.PercentError != 0.1 {
		t.Errorf("default percentError %g, want 0.1", cfg.Simulation.PercentError)
	}
	if len(cfg.Sweeps.Small.SampleSizes) != 10 || cfg.Sweeps.Small.SampleSizes[0] != 100 {
		t.Errorf("unexpected small grid sample sizes: %v", cfg.Sweeps.Small.SampleSizes)
	}
	if cfg.Sweeps.Large.Bins[len(cfg.Sweeps.Large.Bins)-1] != 100 {
		t.Errorf("unexpected large grid bins: %v", cfg.Sweeps.Large.Bins)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALPHA", "0.05")
	t.Setenv("SMALL_SAMPLE_SIZES", "50,150")
	t.Setenv("SMALL_BINS", "2:6:2")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Alpha != 0.05 {
		t.Errorf("alpha %g, want 0.05", cfg.Simulation.Alpha)
	}
	wantN := []int{50, 150}
	if len(cfg.Sweeps.Small.SampleSizes) != 2 {
		t.Fatalf("sample sizes %v, want %v", cfg.Sweeps.Small.SampleSizes, wantN)
	}
	for i, n := range wantN {
		if cfg.Sweeps.Small.SampleSizes[i] != n {
			t.Errorf("sample sizes %v, want %v", cfg.Sweeps.Small.SampleSizes, wantN)
		}
	}
	wantK := []int{2, 4, 6}
	if len(cfg.Sweeps.Small.Bins) != 3 {
		t.Fatalf("bins %v, want %v", cfg.Sweeps.Small.Bins, wantK)
	}
	for i, k := range wantK {
		if cfg.Sweeps.Small.Bins[i] != k {
			t.Errorf("bins %v, want %v", cfg.Sweeps.Small.Bins, wantK)
		}
	}
}

func TestLoad_RejectsMalformedValues(t *testing.T) {
	t.Setenv("REPS", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-integer REPS")
	}
}

func TestLoad_RejectsMalformedRange(t *testing.T) {
	t.Setenv("LARGE_BINS", "10:5:1")
	if _, err := Load(); err == nil {
		t.Error("expected error for decreasing range")
	}
}
