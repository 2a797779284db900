package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"

	"floodplan/internal/config"
	"floodplan/internal/session"
	"floodplan/internal/telemetry"
	"floodplan/internal/terrain"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	out := flag.String("out", "", "output directory for CSV telemetry (overrides config)")
	seed := flag.Int64("seed", -1, "optimizer seed (overrides config when >= 0)")
	drains := flag.Int("drains", -1, "drains to auto-place (overrides config when >= 0)")
	ticks := flag.Int("ticks", -1, "storm ticks to simulate (overrides config when >= 0)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *out != "" {
		cfg.Run.OutputDir = *out
	}
	if *seed >= 0 {
		cfg.Run.Seed = *seed
	}
	if *drains >= 0 {
		cfg.Run.Drains = *drains
	}
	if *ticks >= 0 {
		cfg.Run.StormTicks = *ticks
	}

	logger, err := telemetry.NewRunLogger(cfg.Run.OutputDir)
	if err != nil {
		log.Fatalf("opening telemetry output: %v", err)
	}
	defer logger.Close()
	if dir := logger.Dir(); dir != "" {
		if err := cfg.WriteYAML(filepath.Join(dir, "config.yaml")); err != nil {
			log.Fatalf("saving effective config: %v", err)
		}
	}

	grid := terrain.Generate(cfg.TerrainConfig(), terrain.DefaultConnectivity)
	sess := session.New(grid, cfg.Run.Seed)
	if err := sess.Optimizer().Configure(cfg.ColonyParams()); err != nil {
		log.Printf("colony params clamped: %v", err)
	}
	if err := sess.Water().Configure(cfg.StormParams()); err != nil {
		log.Printf("storm params clamped: %v", err)
	}

	placed, err := sess.AutoPlaceDrains(cfg.Run.Drains)
	if err != nil {
		log.Fatalf("placing drains: %v", err)
	}
	fmt.Printf("city %dx%d, %d drains placed\n", grid.W, grid.H, placed)

	if err := sess.StartOptimization(); err != nil {
		log.Fatalf("starting optimization: %v", err)
	}
	for i := 0; i < cfg.Run.MaxIterations; i++ {
		if err := sess.Tick(); err != nil {
			log.Fatalf("iteration %d: %v", i+1, err)
		}
		snap := sess.Snapshot().Optimizer
		if err := logger.WriteIteration(telemetry.IterationRecord{
			Iteration:  snap.Iteration,
			Successes:  snap.Successes,
			BestCost:   snap.BestCost,
			Stagnation: snap.Stagnation,
			Converged:  snap.Converged,
		}); err != nil {
			log.Fatalf("writing iteration telemetry: %v", err)
		}
		if snap.Converged {
			break
		}
	}

	opt := sess.Snapshot().Optimizer
	fmt.Printf("optimization: %d iterations, best cost %.2f, success rate %.2f, converged=%v\n",
		opt.Iteration, opt.BestCost, opt.SuccessRate, opt.Converged)

	if err := sess.BeginDefense(); err != nil {
		log.Fatalf("beginning defense: %v", err)
	}
	for t := 0; t < cfg.Run.StormTicks; t++ {
		if err := sess.Tick(); err != nil {
			log.Fatalf("storm tick %d: %v", t+1, err)
		}
		snap := sess.Snapshot()
		if err := logger.WriteStorm(telemetry.StormRecord{
			Tick:         t + 1,
			TotalVolume:  snap.TotalVolume,
			DrainedTotal: snap.DrainedTotal,
			FloodedCells: snap.FloodedCells,
		}); err != nil {
			log.Fatalf("writing storm telemetry: %v", err)
		}
	}

	final := sess.Snapshot()
	fmt.Printf("storm: %d ticks, standing volume %.2f, drained %.2f, flooded cells %d\n",
		cfg.Run.StormTicks, final.TotalVolume, final.DrainedTotal, final.FloodedCells)
}
