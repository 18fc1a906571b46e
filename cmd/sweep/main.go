// The sweep command runs the reference power study: two simulated
// sweeps (small- and large-scale grids) plus the analytic chi-square
// sweep over a fine grid, then hands the tables to the renderers and,
// when DATABASE_URL is set, the result store.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"unipower/adapters/postgres"
	"unipower/adapters/render"
	"unipower/adapters/rng"
	"unipower/app"
	"unipower/internal"
	"unipower/internal/config"
	"unipower/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc := app.NewPowerSweepService(rng.NewStreamAdapter(), cfg.Simulation.Workers)
	ctx := context.Background()

	var store ports.ResultStore
	if cfg.Database.URL != "" {
		db, err := postgres.Connect(cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		repo := postgres.NewSweepRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		store = repo
	}

	sim := cfg.Simulation
	results := make([]*app.SweepResult, 0, 3)

	for _, sweep := range []struct {
		label string
		grid  config.GridConfig
	}{
		{"small", cfg.Sweeps.Small},
		{"large", cfg.Sweeps.Large},
	} {
		logger.Info("running %s sweep: %d x %d grid, %d reps per cell",
			sweep.label, len(sweep.grid.SampleSizes), len(sweep.grid.Bins), sim.Reps)
		res, err := svc.RunSweep(ctx, app.SweepRequest{
			Label:        sweep.label,
			SampleSizes:  sweep.grid.SampleSizes,
			Bins:         sweep.grid.Bins,
			PercentError: sim.PercentError,
			Reps:         sim.Reps,
			Alpha:        sim.Alpha,
			Seed:         sim.Seed,
		})
		if err != nil {
			return fmt.Errorf("%s sweep: %w", sweep.label, err)
		}
		logger.Info("%s sweep done: %d rows in %dms", sweep.label, len(res.Table.Rows), res.RuntimeMs)
		results = append(results, res)
	}

	logger.Info("running analytic sweep: %d x %d grid",
		len(cfg.Sweeps.Analytic.SampleSizes), len(cfg.Sweeps.Analytic.Bins))
	analytic, err := svc.RunAnalyticSweep(ctx, app.AnalyticSweepRequest{
		Label:       "analytic",
		SampleSizes: cfg.Sweeps.Analytic.SampleSizes,
		Bins:        cfg.Sweeps.Analytic.Bins,
		Alpha:       sim.Alpha,
	})
	if err != nil {
		return fmt.Errorf("analytic sweep: %w", err)
	}
	logger.Info("analytic sweep done: %d rows in %dms", len(analytic.Table.Rows), analytic.RuntimeMs)
	results = append(results, analytic)

	for _, res := range results {
		if store != nil {
			rec := ports.SweepRecord{
				ID:        res.SweepID,
				Label:     res.Label,
				Seed:      res.Seed,
				Alpha:     res.Alpha,
				RuntimeMs: res.RuntimeMs,
				CreatedAt: time.Now(),
				Table:     res.Table,
			}
			if err := store.SaveSweep(ctx, rec); err != nil {
				return fmt.Errorf("persist %s sweep: %w", res.Label, err)
			}
		}
	}

	// One workbook per sweep, one report covering the simulated sweeps.
	for _, res := range results {
		path := sweepFilename(cfg.Output.ExcelFile, res.Label)
		heatmap := render.NewExcelHeatmapRenderer(path)
		if err := heatmap.Render(ctx, res.Label, &res.Table); err != nil {
			return fmt.Errorf("render %s heat map: %w", res.Label, err)
		}
		logger.Info("wrote %s", path)
	}

	combined := results[0].Table
	for _, res := range results[1:] {
		combined.Rows = append(combined.Rows, res.Table.Rows...)
	}
	report := render.NewReportRenderer(cfg.Output.ReportFile, "Multinomial uniformity test power study")
	if err := report.Render(ctx, "all", &combined); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	logger.Info("wrote %s", cfg.Output.ReportFile)
	return nil
}

// sweepFilename inserts the sweep label before the extension
func sweepFilename(base, label string) string {
	ext := ".xlsx"
	name := base
	if n := len(base) - len(ext); n > 0 && base[n:] == ext {
		name = base[:n]
	}
	return name + "_" + label + ext
}
