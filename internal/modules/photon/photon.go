// Package photon implements a two-mode photon Fock state |Bx, By> as a
// superposition of occupation-number pairs with real coefficients.
package photon

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/pkg/superposition"
)

// Pair is one occupation-number basis state: photon counts in the two modes.
type Pair struct {
	Bx int `json:"bx"`
	By int `json:"by"`
}

// State holds a superposition over two-mode occupation pairs. Mutated in
// place by Jz; owned exclusively by its creator.
type State struct {
	state superposition.Superposition[Pair]
	log   zerolog.Logger
}

// New creates the pure Fock state |bx, by> with coefficient 1.
func New(bx, by int, log zerolog.Logger) (*State, error) {
	if bx < 0 || by < 0 {
		return nil, fmt.Errorf("%w: occupation numbers must be non-negative, got (%d, %d)", domain.ErrInvalidArgument, bx, by)
	}
	s := &State{
		state: superposition.New(Pair{Bx: bx, By: by}, 1),
		log:   log.With().Str("component", "photon_state").Logger(),
	}
	s.log.Debug().Int("bx", bx).Int("by", by).Msg("Initialized photon state")
	return s, nil
}

// Superposition returns the current superposition. Callers must not retain
// it across further operator applications.
func (s *State) Superposition() superposition.Superposition[Pair] {
	return s.state
}

// Jz applies the ladder operator Jz = ax†ay − ay†ax once:
//
//	Jz|bx, by> = sqrt((bx+1)·by)|bx+1, by-1> − sqrt((by+1)·bx)|bx-1, by+1>
//
// Terms with by = 0 emit no raising contribution and terms with bx = 0 emit
// no lowering contribution. The state is replaced with the newly accumulated
// superposition; repeated application is the caller's responsibility.
func (s *State) Jz() {
	next := superposition.Superposition[Pair]{}
	for p, coeff := range s.state {
		if p.By > 0 {
			amp := math.Sqrt(float64(p.Bx+1)) * math.Sqrt(float64(p.By))
			next.Merge(Pair{Bx: p.Bx + 1, By: p.By - 1}, coeff*amp)
		}
		if p.Bx > 0 {
			amp := math.Sqrt(float64(p.By+1)) * math.Sqrt(float64(p.Bx))
			next.Merge(Pair{Bx: p.Bx - 1, By: p.By + 1}, -coeff*amp)
		}
	}
	s.state = next
	s.log.Debug().Int("terms", next.Len()).Msg("Applied Jz")
}
