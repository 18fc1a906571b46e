package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"unipower/domain/core"
	"unipower/domain/multinomial"
	"unipower/domain/power"
	"unipower/domain/uniformity"
	"unipower/ports"
)

// PowerSweepService estimates test power over a (sampleSize, bins)
// grid. Simulated sweeps draw a batch per cell and score both testers;
// the analytic sweep fills the table from the closed-form chi-square
// power without replication.
type PowerSweepService struct {
	rngPort ports.RNGPort
	testers []uniformity.Tester
	workers int64
}

// SweepRequest defines one simulated sweep. Which grid axis is "the"
// sample size is pure configuration: both grids are crossed in full.
type SweepRequest struct {
	Label        string
	SampleSizes  []int
	Bins         []int
	PercentError float64
	Reps         int
	Alpha        float64
	Seed         int64
}

// AnalyticSweepRequest defines a closed-form sweep over a finer grid
type AnalyticSweepRequest struct {
	Label       string
	SampleSizes []int
	Bins        []int
	Alpha       float64
}

// SweepResult contains the finished power table for one sweep
type SweepResult struct {
	SweepID   core.SweepID `json:"sweep_id"`
	Label     string       `json:"label"`
	Seed      int64        `json:"seed"`
	Alpha     float64      `json:"alpha"`
	Table     power.Table  `json:"table"`
	RuntimeMs int64        `json:"runtime_ms"`
}

// NewPowerSweepService creates a sweep service with the given worker
// bound for grid cells. workers < 1 means sequential.
func NewPowerSweepService(rngPort ports.RNGPort, workers int) *PowerSweepService {
	if workers < 1 {
		workers = 1
	}
	return &PowerSweepService{
		rngPort: rngPort,
		testers: []uniformity.Tester{
			uniformity.NewChiSquareTester(),
			uniformity.NewRangeTester(),
		},
		workers: int64(workers),
	}
}

type gridCell struct {
	sampleSize int
	bins       int
}

// RunSweep executes one simulated sweep. Cells run concurrently under
// the worker bound, each drawing from its own named RNG stream, so the
// resulting table is identical for any worker count. The first cell
// error cancels the sweep and is returned; a missing cell would
// silently corrupt the table, so there is no skip path.
func (s *PowerSweepService) RunSweep(ctx context.Context, req SweepRequest) (*SweepResult, error) {
	start := time.Now()
	if err := validateGrids(req.SampleSizes, req.Bins); err != nil {
		return nil, err
	}
	if err := power.ValidateAlpha(req.Alpha); err != nil {
		return nil, err
	}

	cells := make([]gridCell, 0, len(req.SampleSizes)*len(req.Bins))
	for _, n := range req.SampleSizes {
		for _, k := range req.Bins {
			cells = append(cells, gridCell{sampleSize: n, bins: k})
		}
	}

	// Two rows per cell, preallocated so workers never contend and the
	// output keeps grid order.
	cellRows := make([][]power.Row, len(cells))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i, cell := range cells {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled by an earlier cell failure.
			break
		}
		wg.Add(1)
		go func(i int, cell gridCell) {
			defer wg.Done()
			defer sem.Release(1)
			rows, err := s.runCell(ctx, req, cell)
			if err != nil {
				fail(fmt.Errorf("cell n=%d k=%d: %w", cell.sampleSize, cell.bins, err))
				return
			}
			cellRows[i] = rows
		}(i, cell)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &SweepResult{
		SweepID: core.NewID(),
		Label:   req.Label,
		Seed:    req.Seed,
		Alpha:   req.Alpha,
	}
	for _, rows := range cellRows {
		for _, row := range rows {
			result.Table.Append(row)
		}
	}
	result.RuntimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// runCell draws one batch and scores every tester on it
func (s *PowerSweepService) runCell(ctx context.Context, req SweepRequest, cell gridCell) ([]power.Row, error) {
	streamName := fmt.Sprintf("sweep/%s/n=%d/k=%d", req.Label, cell.sampleSize, cell.bins)
	src, err := s.rngPort.SeededStream(ctx, streamName, req.Seed)
	if err != nil {
		return nil, err
	}

	batch, err := multinomial.Generate(cell.sampleSize, cell.bins, req.PercentError, req.Reps, src)
	if err != nil {
		return nil, err
	}

	rows := make([]power.Row, 0, len(s.testers))
	for _, tester := range s.testers {
		pvals, err := tester.PValues(batch)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tester.Name(), err)
		}
		pw, err := power.EmpiricalPower(pvals, req.Alpha)
		if err != nil {
			return nil, err
		}
		rows = append(rows, power.Row{
			SampleSize: cell.sampleSize,
			Bins:       cell.bins,
			Test:       tester.Name(),
			Power:      pw,
		})
	}
	return rows, nil
}

// RunAnalyticSweep fills a table from the closed-form chi-square power.
// No replication is involved, so the grid can be much finer.
func (s *PowerSweepService) RunAnalyticSweep(ctx context.Context, req AnalyticSweepRequest) (*SweepResult, error) {
	start := time.Now()
	if err := validateGrids(req.SampleSizes, req.Bins); err != nil {
		return nil, err
	}

	result := &SweepResult{
		SweepID: core.NewID(),
		Label:   req.Label,
		Alpha:   req.Alpha,
	}
	for _, n := range req.SampleSizes {
		for _, k := range req.Bins {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			pw, err := power.AnalyticChiSquarePower(n, k, req.Alpha)
			if err != nil {
				return nil, fmt.Errorf("cell n=%d k=%d: %w", n, k, err)
			}
			result.Table.Append(power.Row{
				SampleSize: n,
				Bins:       k,
				Test:       power.AnalyticTestName,
				Power:      pw,
			})
		}
	}
	result.RuntimeMs = time.Since(start).Milliseconds()
	return result, nil
}

func validateGrids(sampleSizes, bins []int) error {
	if len(sampleSizes) == 0 {
		return core.NewInvalidParameterError("sampleSizes", "grid must not be empty")
	}
	if len(bins) == 0 {
		return core.NewInvalidParameterError("bins", "grid must not be empty")
	}
	return nil
}
