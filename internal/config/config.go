package config

import (
	"os"
	"strconv"
	"strings"

	"unipower/domain/multinomial"
	"unipower/domain/power"
	"unipower/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Sweeps     SweepsConfig
	Output     OutputConfig
	Database   DatabaseConfig
	Server     ServerConfig
}

// SimulationConfig holds shared Monte-Carlo settings
type SimulationConfig struct {
	PercentError float64
	Reps         int
	Alpha        float64
	Seed         int64
	Workers      int
}

// GridConfig is one (sample sizes x bin counts) sweep grid
type GridConfig struct {
	SampleSizes []int
	Bins        []int
}

// SweepsConfig holds the three reference grids: two simulated sweeps
// at different scales and one fine analytic grid.
type SweepsConfig struct {
	Small    GridConfig
	Large    GridConfig
	Analytic GridConfig
}

// OutputConfig holds rendering targets
type OutputConfig struct {
	ExcelFile  string
	ReportFile string
}

// DatabaseConfig holds the optional result store connection
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	sim, err := loadSimulationConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load simulation configuration")
	}
	sweeps, err := loadSweepsConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sweep grids")
	}

	return &Config{
		Simulation: *sim,
		Sweeps:     *sweeps,
		Output: OutputConfig{
			ExcelFile:  getEnv("POWER_XLSX", "power_surfaces.xlsx"),
			ReportFile: getEnv("POWER_REPORT", "power_report.html"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
	}, nil
}

func loadSimulationConfig() (*SimulationConfig, error) {
	percentError, err := getEnvFloat("PERCENT_ERROR", multinomial.DefaultPercentError)
	if err != nil {
		return nil, err
	}
	reps, err := getEnvInt("REPS", multinomial.DefaultReps)
	if err != nil {
		return nil, err
	}
	alpha, err := getEnvFloat("ALPHA", power.DefaultAlpha)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvInt("SEED", 20260831)
	if err != nil {
		return nil, err
	}
	workers, err := getEnvInt("SWEEP_WORKERS", 4)
	if err != nil {
		return nil, err
	}
	return &SimulationConfig{
		PercentError: percentError,
		Reps:         reps,
		Alpha:        alpha,
		Seed:         int64(seed),
		Workers:      workers,
	}, nil
}

func loadSweepsConfig() (*SweepsConfig, error) {
	small, err := loadGrid("SMALL",
		rangeInts(100, 1000, 100),
		[]int{2, 3, 4, 5, 10, 20, 50})
	if err != nil {
		return nil, err
	}
	large, err := loadGrid("LARGE",
		rangeInts(5000, 50000, 5000),
		[]int{10, 20, 50, 100})
	if err != nil {
		return nil, err
	}
	analytic, err := loadGrid("ANALYTIC",
		rangeInts(100, 30000, 100),
		rangeInts(2, 100, 2))
	if err != nil {
		return nil, err
	}
	return &SweepsConfig{Small: *small, Large: *large, Analytic: *analytic}, nil
}

func loadGrid(prefix string, defaultSampleSizes, defaultBins []int) (*GridConfig, error) {
	sampleSizes, err := getEnvIntList(prefix+"_SAMPLE_SIZES", defaultSampleSizes)
	if err != nil {
		return nil, err
	}
	bins, err := getEnvIntList(prefix+"_BINS", defaultBins)
	if err != nil {
		return nil, err
	}
	return &GridConfig{SampleSizes: sampleSizes, Bins: bins}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be an integer", key)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "%s must be a number", key)
	}
	return f, nil
}

// getEnvIntList parses either a comma list ("2,5,10") or a range with
// step ("100:1000:100", bounds inclusive).
func getEnvIntList(key string, fallback []int) ([]int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	if strings.Contains(v, ":") {
		parts := strings.Split(v, ":")
		if len(parts) != 3 {
			return nil, errors.New("CONFIG_ERROR", key+" range must be start:stop:step")
		}
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "%s range start", key)
		}
		stop, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "%s range stop", key)
		}
		step, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, errors.Wrapf(err, "%s range step", key)
		}
		if step <= 0 || stop < start {
			return nil, errors.New("CONFIG_ERROR", key+" range must be increasing")
		}
		return rangeInts(start, stop, step), nil
	}

	var out []int
	for _, part := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "%s must be a comma list of integers", key)
		}
		out = append(out, n)
	}
	return out, nil
}

func rangeInts(start, stop, step int) []int {
	var out []int
	for v := start; v <= stop; v += step {
		out = append(out, v)
	}
	return out
}
