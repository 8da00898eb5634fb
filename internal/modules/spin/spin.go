// Package spin implements an n-spin system as a superposition of bit-pattern
// basis states with real coefficients. Each basis state is encoded as an
// integer in [0, 2^size); bit b carries the value of spin b.
package spin

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/pkg/superposition"
)

// State holds a superposition over the bit-pattern basis of a fixed number
// of spins. It is mutated in place by operator applications and is owned
// exclusively by its creator.
type State struct {
	size  int
	state superposition.Superposition[int]
	log   zerolog.Logger
}

// New creates a spin state of the given size in the trivial superposition
// {0: 1}.
func New(size int, log zerolog.Logger) (*State, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be a positive integer, got %d", domain.ErrInvalidArgument, size)
	}
	s := &State{
		size:  size,
		state: superposition.New(0, 1),
		log:   log.With().Str("component", "spin_state").Logger(),
	}
	s.log.Debug().Int("size", size).Msg("Initialized spin state")
	return s, nil
}

// Size returns the number of spins. Immutable after construction.
func (s *State) Size() int {
	return s.size
}

// Superposition returns the current superposition. Callers must not retain
// it across further operator applications.
func (s *State) Superposition() superposition.Superposition[int] {
	return s.state
}

// Sz applies the sz operator power times in sequence. One application maps
// every stored term to size new terms, one per flipped bit, each carrying
// the source coefficient; contributions landing on the same flipped basis
// merge additively. Each step replaces the previous superposition entirely.
func (s *State) Sz(power int) error {
	if power < 1 {
		return fmt.Errorf("%w: power must be a positive integer, got %d", domain.ErrInvalidArgument, power)
	}
	for p := 1; p <= power; p++ {
		next := superposition.Superposition[int]{}
		for basis, coeff := range s.state {
			for bit := 0; bit < s.size; bit++ {
				next.Merge(basis^(1<<bit), coeff)
			}
		}
		s.state = next
		s.log.Debug().Int("step", p).Int("terms", next.Len()).Msg("Applied sz step")
	}
	return nil
}
