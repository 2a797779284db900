// Package session orchestrates a planning session: it owns the grid and both
// engines, gates drain edits to the setup phase, and selects which engine a
// tick advances. Execution is single-threaded and step-synchronous; the
// session only moves when an external driver calls into it.
package session

import (
	"errors"
	"fmt"

	"floodplan/internal/aco"
	"floodplan/internal/core"
	"floodplan/internal/water"
)

// ErrWrongPhase indicates a command issued outside the phase that allows it.
var ErrWrongPhase = errors.New("session: command not valid in current phase")

// Phase tracks the session lifecycle.
type Phase int

const (
	// PhaseSetup allows drain placement and parameter edits.
	PhaseSetup Phase = iota
	// PhaseOptimizing runs one colony iteration per tick.
	PhaseOptimizing
	// PhaseDefending runs the storm: one rain event and one flow step per
	// tick over the fixed drain set.
	PhaseDefending
)

// String names the phase for status reporting.
func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseOptimizing:
		return "optimizing"
	case PhaseDefending:
		return "defending"
	default:
		return "unknown"
	}
}

// Session wires the grid and the two engines together behind phase gating.
type Session struct {
	grid  *core.Grid
	opt   *aco.Optimizer
	sim   *water.Simulator
	phase Phase
	ticks int
}

// Snapshot bundles the read-only state the renderer polls once per tick.
type Snapshot struct {
	Phase     Phase
	Tick      int
	Optimizer aco.Snapshot

	TotalVolume  float64
	DrainedTotal float64
	FloodedCells int
}

// New builds a session over the generated grid. Both engines share the seed
// lineage but own independent generators.
func New(grid *core.Grid, seed int64) *Session {
	return &Session{
		grid:  grid,
		opt:   aco.New(grid, seed),
		sim:   water.New(grid),
		phase: PhaseSetup,
	}
}

// Grid exposes the shared terrain model (read-only by convention).
func (s *Session) Grid() *core.Grid { return s.grid }

// Optimizer exposes the colony engine for snapshots and configuration.
func (s *Session) Optimizer() *aco.Optimizer { return s.opt }

// Water exposes the flood engine for snapshots and configuration.
func (s *Session) Water() *water.Simulator { return s.sim }

// Phase reports the current phase.
func (s *Session) Phase() Phase { return s.phase }

// AddDrain places a drain during setup. Outside setup, or on an occupied
// cell, the edit is rejected and reported; the grid is never touched.
func (s *Session) AddDrain(x, y int) error {
	if s.phase != PhaseSetup {
		return fmt.Errorf("%w: add drain during %s", ErrWrongPhase, s.phase)
	}
	return s.grid.AddDrain(x, y)
}

// RemoveDrain clears a drain during setup.
func (s *Session) RemoveDrain(x, y int) error {
	if s.phase != PhaseSetup {
		return fmt.Errorf("%w: remove drain during %s", ErrWrongPhase, s.phase)
	}
	return s.grid.RemoveDrain(x, y)
}

// StartOptimization transitions setup -> optimizing. Surfaces
// aco.ErrNoDrains without leaving setup.
func (s *Session) StartOptimization() error {
	if s.phase != PhaseSetup {
		return fmt.Errorf("%w: start optimization during %s", ErrWrongPhase, s.phase)
	}
	if err := s.opt.Start(); err != nil {
		return err
	}
	s.phase = PhaseOptimizing
	return nil
}

// BeginDefense transitions optimizing -> defending with a dry water field.
// The drain set is fixed for the whole storm.
func (s *Session) BeginDefense() error {
	if s.phase != PhaseOptimizing {
		return fmt.Errorf("%w: begin defense during %s", ErrWrongPhase, s.phase)
	}
	s.sim.Reset()
	s.phase = PhaseDefending
	return nil
}

// Tick advances whichever engine the current phase selects. During setup it
// is a no-op; during optimization a converged colony stops advancing and the
// driver decides when to begin the defense.
func (s *Session) Tick() error {
	s.ticks++
	switch s.phase {
	case PhaseOptimizing:
		if s.opt.State() == aco.StateConverged {
			return nil
		}
		return s.opt.RunIteration()
	case PhaseDefending:
		s.sim.ApplyRain(-1)
		s.sim.Step()
		return nil
	default:
		return nil
	}
}

// Reset aborts the session back to setup from any phase, discarding
// pheromone, convergence and water state while keeping the grid and the
// drain set untouched. Safe mid-iteration or mid-step.
func (s *Session) Reset() {
	s.opt.Reset()
	s.sim.Reset()
	s.phase = PhaseSetup
	s.ticks = 0
}

// Snapshot returns the per-tick view for the renderer and telemetry.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:        s.phase,
		Tick:         s.ticks,
		Optimizer:    s.opt.Snapshot(),
		TotalVolume:  s.sim.TotalVolume(),
		DrainedTotal: s.sim.DrainedTotal(),
		FloodedCells: s.sim.FloodedCells(0.5),
	}
}
