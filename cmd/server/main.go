// The server command exposes the sweep service over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"unipower/adapters/rng"
	"unipower/app"
	"unipower/internal"
	"unipower/internal/config"
	"unipower/ui"
)

func main() {
	_ = godotenv.Load()
	logger := internal.NewDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	svc := app.NewPowerSweepService(rng.NewStreamAdapter(), cfg.Simulation.Workers)
	srv := ui.NewServer(svc, cfg, logger)
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
