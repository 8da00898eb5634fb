package matrix

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/pkg/superposition"
)

func mustNew(t *testing.T, size, leftPower, rightPower int) *State {
	t.Helper()
	s, err := New(size, leftPower, rightPower, zerolog.Nop())
	if err != nil {
		t.Fatalf("New(%d, %d, %d) returned error: %v", size, leftPower, rightPower, err)
	}
	return s
}

func TestNew_SingleSpinTensorProduct(t *testing.T) {
	s := mustNew(t, 1, 1, 1)

	if s.Dim() != 2 {
		t.Fatalf("Dim() = %d, want 2", s.Dim())
	}

	// Both subsystems are {1: 1} after one sz step, so the tensor product
	// has the single entry (1,1) -> 1.
	want := superposition.Superposition[Key]{{Row: 1, Col: 1}: 1}
	if !superposition.Equal(s.Sparse(), want) {
		t.Errorf("Sparse() = %v, want %v", s.Sparse(), want)
	}

	// Cross-check against the subsystem superpositions directly.
	for i, ci := range s.Left().Superposition() {
		for j, cj := range s.Right().Superposition() {
			if got := s.Coefficient(i, j); got != ci*cj {
				t.Errorf("Coefficient(%d, %d) = %v, want %v", i, j, got, ci*cj)
			}
		}
	}
}

func TestNew_AnalysisOfDiagonalMatrix(t *testing.T) {
	s := mustNew(t, 1, 1, 1)

	eigs, ok := s.Eigenvalues()
	if !ok {
		t.Fatal("Eigenvalues unavailable")
	}
	if len(eigs) != 2 || math.Abs(eigs[0]) > 1e-12 || math.Abs(eigs[1]-1) > 1e-12 {
		t.Errorf("Eigenvalues = %v, want [0, 1]", eigs)
	}

	if _, ok := s.NormalizedMatrix(); !ok {
		t.Error("NormalizedMatrix unavailable for a trace-1 matrix")
	}

	// Positive semi-definite after normalization: negativity is zero.
	neg, ok := s.Negativity()
	if !ok {
		t.Fatal("Negativity unavailable")
	}
	if neg != 0 {
		t.Errorf("Negativity = %v, want 0", neg)
	}
}

func TestNew_InvalidArguments(t *testing.T) {
	tests := []struct {
		name                    string
		size, leftPow, rightPow int
	}{
		{"zero size", 0, 1, 1},
		{"negative size", -1, 1, 1},
		{"zero left power", 1, 0, 1},
		{"zero right power", 1, 1, 0},
		{"negative right power", 2, 1, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.size, tt.leftPow, tt.rightPow, zerolog.Nop())
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Errorf("New(%d, %d, %d) error = %v, want ErrInvalidArgument",
					tt.size, tt.leftPow, tt.rightPow, err)
			}
		})
	}
}

func TestPartialTranspose_RoundTrip(t *testing.T) {
	for k := 0; k <= 2; k++ {
		s := mustNew(t, 2, 1, 1)
		before := s.Sparse().Clone()

		if err := s.PartialTranspose(k); err != nil {
			t.Fatalf("PartialTranspose(%d) returned error: %v", k, err)
		}
		if err := s.PartialTranspose(k); err != nil {
			t.Fatalf("Second PartialTranspose(%d) returned error: %v", k, err)
		}

		if !superposition.Equal(s.Sparse(), before) {
			t.Errorf("Double partial transpose with k=%d did not restore the matrix: %v != %v",
				k, s.Sparse(), before)
		}
	}
}

func TestPartialTranspose_DetectsEntanglement(t *testing.T) {
	// size=2, single sz step each: the transposed matrix picks up the
	// off-diagonal pair (0,3)/(3,0), whose block contributes the eigenvalue
	// -1; normalized by trace 2 the negativity is -0.5.
	s := mustNew(t, 2, 1, 1)
	if err := s.PartialTranspose(1); err != nil {
		t.Fatal(err)
	}

	want := superposition.Superposition[Key]{
		{Row: 1, Col: 1}: 1,
		{Row: 0, Col: 3}: 1,
		{Row: 3, Col: 0}: 1,
		{Row: 2, Col: 2}: 1,
	}
	if !superposition.Equal(s.Sparse(), want) {
		t.Fatalf("Sparse() after transpose = %v, want %v", s.Sparse(), want)
	}

	neg, ok := s.Negativity()
	if !ok {
		t.Fatal("Negativity unavailable")
	}
	if math.Abs(neg-(-0.5)) > 1e-9 {
		t.Errorf("Negativity = %v, want -0.5", neg)
	}
}

func TestPartialTranspose_InvalidAmount(t *testing.T) {
	s := mustNew(t, 2, 1, 1)
	before := s.Sparse().Clone()

	for _, k := range []int{-1, 3} {
		if err := s.PartialTranspose(k); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("PartialTranspose(%d) error = %v, want ErrInvalidArgument", k, err)
		}
	}
	if !superposition.Equal(s.Sparse(), before) {
		t.Error("Invalid partial transpose mutated the matrix")
	}
}

func TestDegenerateTrace(t *testing.T) {
	// left sz(1) = {1:1}, right sz(2) = {0:1}: the only entry is (1,0), so
	// the trace is exactly zero.
	s := mustNew(t, 1, 1, 2)

	want := superposition.Superposition[Key]{{Row: 1, Col: 0}: 1}
	if !superposition.Equal(s.Sparse(), want) {
		t.Fatalf("Sparse() = %v, want %v", s.Sparse(), want)
	}

	// Eigenvalues of the nilpotent matrix are still available.
	if eigs, ok := s.Eigenvalues(); !ok || len(eigs) != 2 {
		t.Errorf("Eigenvalues = %v, %v; want two values available", eigs, ok)
	}

	if _, ok := s.NormalizedMatrix(); ok {
		t.Error("NormalizedMatrix should be unavailable for a zero trace")
	}
	if _, ok := s.Negativity(); ok {
		t.Error("Negativity should be unavailable for a zero trace")
	}
}
