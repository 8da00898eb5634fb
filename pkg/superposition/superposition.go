// Package superposition provides the sparse superposition primitive shared by
// the spin, photon and matrix modules: a mapping from basis labels to real
// coefficients with additive merge semantics.
package superposition

// Superposition maps basis labels to real coefficients. A label absent from
// the map has implicit coefficient zero. Entries whose coefficient becomes
// exactly zero may remain stored; consumers treat missing and zero entries
// identically.
type Superposition[B comparable] map[B]float64

// New returns a superposition holding the single term {basis: coeff}.
func New[B comparable](basis B, coeff float64) Superposition[B] {
	return Superposition[B]{basis: coeff}
}

// Merge adds delta to the coefficient of basis, creating the entry if absent.
// Contributions from different transformation paths landing on the same basis
// label accumulate; this is the collapsing/interference behavior.
func (s Superposition[B]) Merge(basis B, delta float64) {
	s[basis] += delta
}

// Len returns the number of stored terms.
func (s Superposition[B]) Len() int {
	return len(s)
}

// Clone returns an independent copy of s.
func (s Superposition[B]) Clone() Superposition[B] {
	out := make(Superposition[B], len(s))
	for basis, coeff := range s {
		out[basis] = coeff
	}
	return out
}

// Equal reports whether a and b assign the same coefficient to every basis
// label, treating missing entries as zero.
func Equal[B comparable](a, b Superposition[B]) bool {
	for basis, coeff := range a {
		if b[basis] != coeff {
			return false
		}
	}
	for basis, coeff := range b {
		if a[basis] != coeff {
			return false
		}
	}
	return true
}
