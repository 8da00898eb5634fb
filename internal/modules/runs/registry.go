// Package runs tracks computed matrix states in an in-memory registry so the
// HTTP API can revisit and mutate them. Nothing is persisted; entries expire
// after a TTL.
package runs

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Registry is a thread-safe, TTL-bounded store of runs. The registry lock
// guards the map; each run carries its own lock for its mutable state.
type Registry struct {
	mu   sync.RWMutex
	runs map[string]*Run
	ttl  time.Duration
	log  zerolog.Logger
}

// NewRegistry creates a registry whose entries expire after ttl.
func NewRegistry(ttl time.Duration, log zerolog.Logger) *Registry {
	return &Registry{
		runs: make(map[string]*Run),
		ttl:  ttl,
		log:  log.With().Str("component", "run_registry").Logger(),
	}
}

// Add stores a run.
func (r *Registry) Add(run *Run) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = run
	r.log.Debug().Str("run_id", run.ID).Msg("Run stored")
}

// Get returns the run with the given id.
func (r *Registry) Get(id string) (*Run, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	return run, ok
}

// List returns all runs, newest first.
func (r *Registry) List() []*Run {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes the run with the given id, reporting whether it existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.runs[id]; !ok {
		return false
	}
	delete(r.runs, id)
	return true
}

// PruneExpired removes runs older than the TTL (measured against their last
// update) and returns the ids removed.
func (r *Registry) PruneExpired(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var pruned []string
	for id, run := range r.runs {
		if now.Sub(run.UpdatedAt()) > r.ttl {
			delete(r.runs, id)
			pruned = append(pruned, id)
		}
	}
	if len(pruned) > 0 {
		r.log.Info().Int("count", len(pruned)).Msg("Pruned expired runs")
	}
	return pruned
}
