package sim

import "errors"

// Sentinel kinds for simulation errors.
var (
	// ErrUnknownStrategy marks an unsupported strategy name.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrNilGenerator marks a random strategy invoked without a seeded generator.
	ErrNilGenerator = errors.New("random strategy needs a seeded generator")
	// ErrNotSinglePoint marks the fixed strategy applied to a multi-point set.
	ErrNotSinglePoint = errors.New("fixed strategy needs a single-point set")
	// ErrNoTargets marks a simulation with nothing to replay.
	ErrNoTargets = errors.New("no targets to simulate")
	// ErrNoPlayers marks a simulation with no point sets.
	ErrNoPlayers = errors.New("no point sets to simulate")
)
