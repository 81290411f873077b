package sim

import (
	"github.com/mevric/tpgkit/internal/geo"
	"github.com/mevric/tpgkit/pkg/logger"
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithWorkers bounds the number of rounds simulated concurrently.
// Results are bit-identical for any worker count.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMasterSeed sets the seed the per-round generators derive from.
func WithMasterSeed(seed int64) Option {
	return func(s *Simulator) {
		s.masterSeed = seed
	}
}

// WithModel sets the earth model used for scoring distances.
func WithModel(m geo.Model) Option {
	return func(s *Simulator) {
		s.model = m
	}
}

// WithLogger enables progress logging; the simulator is silent without it.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		s.log = l
	}
}
