// Package telemetry writes structured run records for the headless tools:
// one CSV row per optimizer iteration and per storm tick.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// IterationRecord is one optimizer iteration's outcome.
type IterationRecord struct {
	Iteration  int     `csv:"iteration"`
	Successes  int     `csv:"successes"`
	BestCost   float64 `csv:"best_cost"`
	Stagnation int     `csv:"stagnation"`
	Converged  bool    `csv:"converged"`
}

// StormRecord is one water-simulation tick's outcome.
type StormRecord struct {
	Tick         int     `csv:"tick"`
	TotalVolume  float64 `csv:"total_volume"`
	DrainedTotal float64 `csv:"drained_total"`
	FloodedCells int     `csv:"flooded_cells"`
}

// RunLogger appends iteration and storm records to CSV files in an output
// directory. A nil RunLogger discards everything, so callers can log
// unconditionally.
type RunLogger struct {
	dir string

	iterFile  *os.File
	stormFile *os.File

	iterHeaderWritten  bool
	stormHeaderWritten bool
}

// NewRunLogger creates the output directory and its CSV files. Returns nil
// when dir is empty (output disabled).
func NewRunLogger(dir string) (*RunLogger, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	iterFile, err := os.Create(filepath.Join(dir, "iterations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating iterations.csv: %w", err)
	}
	stormFile, err := os.Create(filepath.Join(dir, "storm.csv"))
	if err != nil {
		iterFile.Close()
		return nil, fmt.Errorf("creating storm.csv: %w", err)
	}

	return &RunLogger{dir: dir, iterFile: iterFile, stormFile: stormFile}, nil
}

// Dir reports the output directory, empty for a disabled logger.
func (l *RunLogger) Dir() string {
	if l == nil {
		return ""
	}
	return l.dir
}

// WriteIteration appends one iteration record.
func (l *RunLogger) WriteIteration(rec IterationRecord) error {
	if l == nil {
		return nil
	}
	records := []IterationRecord{rec}
	if !l.iterHeaderWritten {
		if err := gocsv.Marshal(records, l.iterFile); err != nil {
			return fmt.Errorf("writing iteration record: %w", err)
		}
		l.iterHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.iterFile); err != nil {
		return fmt.Errorf("writing iteration record: %w", err)
	}
	return nil
}

// WriteStorm appends one storm tick record.
func (l *RunLogger) WriteStorm(rec StormRecord) error {
	if l == nil {
		return nil
	}
	records := []StormRecord{rec}
	if !l.stormHeaderWritten {
		if err := gocsv.Marshal(records, l.stormFile); err != nil {
			return fmt.Errorf("writing storm record: %w", err)
		}
		l.stormHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, l.stormFile); err != nil {
		return fmt.Errorf("writing storm record: %w", err)
	}
	return nil
}

// Close flushes and closes the CSV files.
func (l *RunLogger) Close() error {
	if l == nil {
		return nil
	}
	var firstErr error
	if err := l.iterFile.Close(); err != nil {
		firstErr = err
	}
	if err := l.stormFile.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
