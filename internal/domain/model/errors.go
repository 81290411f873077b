package model

import "errors"

// Sentinel kinds for domain input errors.
var (
	// ErrInvalidOptions marks a ruleset violating its invariants.
	ErrInvalidOptions = errors.New("invalid scoring options")
	// ErrUnknownCombine marks an unsupported combination-policy name.
	ErrUnknownCombine = errors.New("unknown combine policy")
	// ErrInvalidPointSet marks an empty or ownerless point set.
	ErrInvalidPointSet = errors.New("invalid point set")
	// ErrDuplicatePlayer marks a round with two submissions by one player.
	ErrDuplicatePlayer = errors.New("duplicate player in round")
	// ErrNoSubmissions marks a round with nothing to score.
	ErrNoSubmissions = errors.New("round has no submissions")
)
