// Package matrix tensor-combines two spin subsystems into a sparse matrix
// and derives the spectral quantities (eigenvalues, negativity) used to
// detect entanglement.
package matrix

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/internal/modules/spin"
	"github.com/qsimlab/spindle/pkg/linalg"
	"github.com/qsimlab/spindle/pkg/superposition"
)

// traceEpsilon is the threshold below which the trace is treated as
// degenerate and normalization is skipped.
const traceEpsilon = 1e-12

// Key addresses one sparse matrix entry: (left index, right index).
type Key struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// State is the tensor-product matrix of two equal-size spin subsystems,
// stored sparsely, together with its derived analysis: eigenvalues sorted
// ascending, the trace-normalized dense matrix, and the negativity (sum of
// negative eigenvalues of the normalized matrix). Derived fields are rebuilt
// after construction and after every partial transpose; each may be
// individually unavailable on numerical failure or a degenerate trace.
type State struct {
	size   int
	left   *spin.State
	right  *spin.State
	sparse superposition.Superposition[Key]

	eigenvalues []float64
	normalized  *mat.Dense
	negativity  float64
	hasNeg      bool

	log zerolog.Logger
}

// New builds a matrix state of the given size: constructs the left and right
// spin subsystems, applies sz with the respective powers, tensors the two
// superpositions into the sparse matrix, and runs the analysis.
func New(size, leftPower, rightPower int, log zerolog.Logger) (*State, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be a positive integer, got %d", domain.ErrInvalidArgument, size)
	}

	left, err := spin.New(size, log)
	if err != nil {
		return nil, err
	}
	right, err := spin.New(size, log)
	if err != nil {
		return nil, err
	}
	if err := left.Sz(leftPower); err != nil {
		return nil, fmt.Errorf("left subsystem: %w", err)
	}
	if err := right.Sz(rightPower); err != nil {
		return nil, fmt.Errorf("right subsystem: %w", err)
	}

	s := &State{
		size:   size,
		left:   left,
		right:  right,
		sparse: superposition.Superposition[Key]{},
		log:    log.With().Str("component", "matrix_state").Logger(),
	}
	for i, ci := range left.Superposition() {
		for j, cj := range right.Superposition() {
			s.sparse.Merge(Key{Row: i, Col: j}, ci*cj)
		}
	}
	s.log.Info().
		Int("size", size).
		Int("entries", s.sparse.Len()).
		Msg("Tensor-product matrix constructed")

	s.updateAnalysis()
	return s, nil
}

// Size returns the number of spins per subsystem.
func (s *State) Size() int {
	return s.size
}

// Dim returns the dense dimension 2^size.
func (s *State) Dim() int {
	return 1 << s.size
}

// Left returns the left spin subsystem (read-only after construction).
func (s *State) Left() *spin.State {
	return s.left
}

// Right returns the right spin subsystem (read-only after construction).
func (s *State) Right() *spin.State {
	return s.right
}

// Sparse returns the sparse matrix. Absent keys have coefficient zero.
// Callers must not retain it across a partial transpose.
func (s *State) Sparse() superposition.Superposition[Key] {
	return s.sparse
}

// Coefficient returns the matrix entry at (row, col), zero if absent.
func (s *State) Coefficient(row, col int) float64 {
	return s.sparse[Key{Row: row, Col: col}]
}

// Eigenvalues returns the real parts of the matrix eigenvalues sorted
// ascending, or ok=false when the last analysis could not compute them.
func (s *State) Eigenvalues() ([]float64, bool) {
	return s.eigenvalues, s.eigenvalues != nil
}

// NormalizedMatrix returns the trace-normalized dense matrix, or ok=false
// when the trace was degenerate.
func (s *State) NormalizedMatrix() (*mat.Dense, bool) {
	return s.normalized, s.normalized != nil
}

// Negativity returns the sum of the negative eigenvalues of the normalized
// matrix, or ok=false when it could not be computed.
func (s *State) Negativity() (float64, bool) {
	return s.negativity, s.hasNeg
}

// PartialTranspose transposes the low-k-bit subsystem of both indices: each
// entry (i, j) moves to row (i_high<<k | j_low), col (j_high<<k | i_low),
// with collisions merged additively. Valid because the basis encoding packs
// the subsystem's bits contiguously in the low-order k bits. The analysis is
// rebuilt afterwards. Applying the same k twice restores the matrix.
func (s *State) PartialTranspose(k int) error {
	if k < 0 || k > s.size {
		return fmt.Errorf("%w: partial transpose amount must be between 0 and %d, got %d", domain.ErrInvalidArgument, s.size, k)
	}
	mask := (1 << k) - 1
	next := superposition.Superposition[Key]{}
	for key, coeff := range s.sparse {
		iLow, iHigh := key.Row&mask, key.Row>>k
		jLow, jHigh := key.Col&mask, key.Col>>k
		next.Merge(Key{Row: iHigh<<k | jLow, Col: jHigh<<k | iLow}, coeff)
	}
	s.sparse = next
	s.log.Info().Int("k", k).Int("entries", next.Len()).Msg("Applied partial transpose")

	s.updateAnalysis()
	return nil
}

// updateAnalysis rebuilds every derived field from the sparse matrix.
// Numerical failures are recorded as unavailable fields, never returned as
// errors.
func (s *State) updateAnalysis() {
	dim := s.Dim()
	dense := mat.NewDense(dim, dim, nil)
	for key, coeff := range s.sparse {
		dense.Set(key.Row, key.Col, coeff)
	}

	eigs, err := linalg.RealEigenvalues(dense)
	if err != nil {
		s.log.Error().Err(err).Msg("Eigenvalue computation failed")
		s.eigenvalues = nil
	} else {
		s.eigenvalues = eigs
		s.log.Debug().Int("count", len(eigs)).Msg("Eigenvalues updated")
	}

	tr := mat.Trace(dense)
	if math.Abs(tr) <= traceEpsilon {
		s.normalized = nil
		s.negativity = 0
		s.hasNeg = false
		s.log.Warn().Msg("Matrix trace is zero; cannot normalize")
		return
	}

	normalized := mat.NewDense(dim, dim, nil)
	normalized.Scale(1/tr, dense)
	s.normalized = normalized

	normEigs, err := linalg.RealEigenvalues(normalized)
	if err != nil {
		s.log.Error().Err(err).Msg("Normalized eigenvalue computation failed")
		s.negativity = 0
		s.hasNeg = false
		return
	}
	s.negativity = linalg.SumNegative(normEigs)
	s.hasNeg = true
	s.log.Info().Float64("negativity", s.negativity).Msg("Negativity updated")
}
