// Command drain-sweep evaluates colony parameter combinations across seeds
// and reports which settings converge to the cheapest drainage routes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"floodplan/internal/aco"
	"floodplan/internal/config"
	"floodplan/internal/session"
	"floodplan/internal/telemetry"
	"floodplan/internal/terrain"
)

type paramSet struct {
	numAnts     int
	alpha       float64
	beta        float64
	evaporation float64
	strength    float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("ants=%d alpha=%.1f beta=%.1f evap=%.2f strength=%.1f",
		p.numAnts, p.alpha, p.beta, p.evaporation, p.strength)
}

type runResult struct {
	params      paramSet
	seed        int64
	bestCost    float64
	iterations  int
	successRate float64
	converged   bool
}

type setSummary struct {
	params       paramSet
	cost         telemetry.CostSummary
	iters        telemetry.CostSummary
	successRate  float64
	convergedAll bool
}

type sweepRow struct {
	NumAnts     int     `csv:"num_ants"`
	Alpha       float64 `csv:"alpha"`
	Beta        float64 `csv:"beta"`
	Evaporation float64 `csv:"evaporation"`
	Strength    float64 `csv:"strength"`
	MeanCost    float64 `csv:"mean_cost"`
	StdCost     float64 `csv:"std_cost"`
	MeanIters   float64 `csv:"mean_iterations"`
	SuccessRate float64 `csv:"success_rate"`
}

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	seeds := flag.Int("seeds", 5, "seeded runs per parameter set")
	maxIters := flag.Int("max-iters", 400, "iteration cap per run")
	drains := flag.Int("drains", 3, "drains to auto-place per run")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	csvPath := flag.String("csv", "", "optional CSV output file for per-set summaries")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	antOptions := []int{10, 20, 40}
	alphaOptions := []float64{0.5, 1.0, 2.0}
	betaOptions := []float64{1.0, 2.0, 4.0}
	evapOptions := []float64{0.05, 0.15, 0.3}
	strengthOptions := []float64{1.0, 2.0, 4.0}

	var sets []paramSet
	for _, ants := range antOptions {
		for _, alpha := range alphaOptions {
			for _, beta := range betaOptions {
				for _, evap := range evapOptions {
					for _, strength := range strengthOptions {
						sets = append(sets, paramSet{
							numAnts:     ants,
							alpha:       alpha,
							beta:        beta,
							evaporation: evap,
							strength:    strength,
						})
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets x %d seeds (%d workers)\n", len(sets), *seeds, *workers)
	start := time.Now()

	type job struct {
		params paramSet
		seed   int64
	}
	jobs := make(chan job)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- runScenario(cfg, j.params, j.seed, *drains, *maxIters)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			for s := 0; s < *seeds; s++ {
				jobs <- job{params: params, seed: int64(s + 1)}
			}
		}
		close(jobs)
	}()

	bySet := make(map[paramSet][]runResult)
	for res := range results {
		bySet[res.params] = append(bySet[res.params], res)
	}

	summaries := summarize(bySet)
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].cost.Mean < summaries[j].cost.Mean
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 parameter sets (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(summaries) && i < 5; i++ {
		s := summaries[i]
		fmt.Printf("%2d) cost=%.2f±%.2f iters=%.1f success=%.2f converged=%v %s\n",
			i+1, s.cost.Mean, s.cost.StdDev, s.iters.Mean, s.successRate, s.convergedAll, s.params)
	}

	if *csvPath != "" {
		if err := writeCSV(*csvPath, summaries); err != nil {
			log.Fatalf("writing CSV: %v", err)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(summaries), *csvPath)
	}
}

// runScenario runs one seeded optimization to convergence (or the iteration
// cap) over a freshly generated city.
func runScenario(cfg *config.Config, params paramSet, seed int64, drains, maxIters int) runResult {
	grid := terrain.Generate(cfg.TerrainConfig(), terrain.DefaultConnectivity)
	sess := session.New(grid, seed)

	p := cfg.ColonyParams()
	p.NumAnts = params.numAnts
	p.Alpha = params.alpha
	p.Beta = params.beta
	p.EvaporationRate = params.evaporation
	p.PheromoneStrength = params.strength
	if err := sess.Optimizer().Configure(p); err != nil {
		log.Printf("params clamped for %s: %v", params, err)
	}

	if _, err := sess.AutoPlaceDrains(drains); err != nil {
		log.Fatalf("placing drains: %v", err)
	}
	if err := sess.StartOptimization(); err != nil {
		log.Fatalf("starting optimization: %v", err)
	}

	for i := 0; i < maxIters; i++ {
		if err := sess.Tick(); err != nil {
			break
		}
		if sess.Optimizer().State() == aco.StateConverged {
			break
		}
	}

	snap := sess.Snapshot().Optimizer
	return runResult{
		params:      params,
		seed:        seed,
		bestCost:    snap.BestCost,
		iterations:  snap.Iteration,
		successRate: snap.SuccessRate,
		converged:   snap.Converged,
	}
}

func summarize(bySet map[paramSet][]runResult) []setSummary {
	var out []setSummary
	for params, runs := range bySet {
		costs := make([]float64, 0, len(runs))
		iters := make([]float64, 0, len(runs))
		rate := 0.0
		convergedAll := true
		for _, r := range runs {
			costs = append(costs, r.bestCost)
			iters = append(iters, float64(r.iterations))
			rate += r.successRate
			convergedAll = convergedAll && r.converged
		}
		out = append(out, setSummary{
			params:       params,
			cost:         telemetry.Summarize(costs),
			iters:        telemetry.Summarize(iters),
			successRate:  rate / float64(len(runs)),
			convergedAll: convergedAll,
		})
	}
	return out
}

func writeCSV(path string, summaries []setSummary) error {
	rows := make([]sweepRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, sweepRow{
			NumAnts:     s.params.numAnts,
			Alpha:       s.params.alpha,
			Beta:        s.params.beta,
			Evaporation: s.params.evaporation,
			Strength:    s.params.strength,
			MeanCost:    s.cost.Mean,
			StdCost:     s.cost.StdDev,
			MeanIters:   s.iters.Mean,
			SuccessRate: s.successRate,
		})
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(rows, f)
}
