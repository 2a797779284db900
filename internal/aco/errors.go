package aco

import "errors"

// Sentinel errors for optimizer commands. Command failures are reported to
// the caller as values; per-ant walk failures never surface as errors.
var (
	// ErrNoDrains indicates a start command with zero drains configured.
	// The optimizer stays in StateSetup.
	ErrNoDrains = errors.New("aco: no drains configured")
	// ErrNotInSetup indicates a start command outside StateSetup.
	ErrNotInSetup = errors.New("aco: optimizer already started")
	// ErrNotIterating indicates RunIteration outside StateIterating.
	ErrNotIterating = errors.New("aco: optimizer is not iterating")
)
