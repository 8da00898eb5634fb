// Package linalg wraps the dense eigenvalue routines the analysis step needs.
package linalg

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrFactorization is returned when the eigenvalue decomposition does not
// converge.
var ErrFactorization = errors.New("eigenvalue factorization failed")

// RealEigenvalues returns the real parts of the eigenvalues of a, sorted
// ascending. The input is a general (not necessarily symmetric) real matrix,
// so eigenvalues may be complex; only their real parts are reported.
func RealEigenvalues(a *mat.Dense) ([]float64, error) {
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); !ok {
		return nil, ErrFactorization
	}
	values := eig.Values(nil)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = real(v)
	}
	sort.Float64s(out)
	return out, nil
}

// SumNegative returns the sum of the strictly negative values in xs.
func SumNegative(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		if x < 0 {
			sum += x
		}
	}
	return sum
}
