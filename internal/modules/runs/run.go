package runs

import (
	"sync"
	"time"

	"github.com/qsimlab/spindle/internal/modules/matrix"
	"github.com/qsimlab/spindle/pkg/superposition"
)

// Run is one computed matrix state and the parameters that produced it. The
// mutable fields (the matrix state, the transpose history, the update stamp)
// are guarded by the run's own lock, since the HTTP layer mutates and reads
// runs from concurrent request goroutines.
type Run struct {
	ID        string
	Size      int
	LeftSz    int
	RightSz   int
	CreatedAt time.Time

	mu          sync.RWMutex
	state       *matrix.State
	transposes  []int
	lastUpdated time.Time
}

// Snapshot is a consistent point-in-time view of a run. All reference fields
// are copies, so holders may use it without further locking.
type Snapshot struct {
	ID          string
	Size        int
	LeftSz      int
	RightSz     int
	Transposes  []int
	Dim         int
	Matrix      superposition.Superposition[matrix.Key]
	Eigenvalues []float64 // nil when unavailable
	Negativity  *float64  // nil when unavailable
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PartialTranspose applies a partial transpose to the run's matrix state
// under the write lock and records it in the transpose history.
func (r *Run) PartialTranspose(k int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.state.PartialTranspose(k); err != nil {
		return err
	}
	r.transposes = append(r.transposes, k)
	r.lastUpdated = time.Now()
	return nil
}

// Snapshot returns a consistent copy of the run's current state.
func (r *Run) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		ID:         r.ID,
		Size:       r.Size,
		LeftSz:     r.LeftSz,
		RightSz:    r.RightSz,
		Transposes: append([]int(nil), r.transposes...),
		Dim:        r.state.Dim(),
		Matrix:     r.state.Sparse().Clone(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.lastUpdated,
	}
	if eigs, ok := r.state.Eigenvalues(); ok {
		snap.Eigenvalues = append([]float64(nil), eigs...)
	}
	if neg, ok := r.state.Negativity(); ok {
		v := neg
		snap.Negativity = &v
	}
	return snap
}

// UpdatedAt returns the time of the run's last mutation.
func (r *Run) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastUpdated
}
