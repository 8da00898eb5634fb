package runs

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/events"
)

// PruneJob evicts expired runs from the registry on a schedule.
type PruneJob struct {
	registry *Registry
	events   *events.Manager
	log      zerolog.Logger
}

// NewPruneJob creates the prune job.
func NewPruneJob(registry *Registry, ev *events.Manager, log zerolog.Logger) *PruneJob {
	return &PruneJob{
		registry: registry,
		events:   ev,
		log:      log.With().Str("component", "prune_job").Logger(),
	}
}

// Name implements scheduler.Job.
func (j *PruneJob) Name() string {
	return "prune_expired_runs"
}

// Run implements scheduler.Job.
func (j *PruneJob) Run() error {
	for _, id := range j.registry.PruneExpired(time.Now()) {
		j.events.Emit(events.RunPruned, "runs", map[string]interface{}{"run_id": id})
	}
	return nil
}
