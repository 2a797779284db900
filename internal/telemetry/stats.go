package telemetry

import "gonum.org/v1/gonum/stat"

// CostSummary aggregates converged path costs across repeated seeded runs.
type CostSummary struct {
	Runs   int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summarize computes distribution statistics over per-run values. An empty
// input yields a zero summary.
func Summarize(values []float64) CostSummary {
	if len(values) == 0 {
		return CostSummary{}
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean, std := stat.MeanStdDev(values, nil)
	if len(values) == 1 {
		std = 0
	}
	return CostSummary{
		Runs:   len(values),
		Mean:   mean,
		StdDev: std,
		Min:    min,
		Max:    max,
	}
}
