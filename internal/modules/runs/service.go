package runs

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/qsimlab/spindle/internal/domain"
	"github.com/qsimlab/spindle/internal/events"
	"github.com/qsimlab/spindle/internal/modules/matrix"
	"github.com/qsimlab/spindle/internal/modules/photon"
)

// Service owns run creation and mutation, emitting an event for every state
// change.
type Service struct {
	registry *Registry
	events   *events.Manager
	maxSize  int
	log      zerolog.Logger
}

// NewService creates a run service. maxSize caps the accepted spin count,
// since the analysis materializes a dense 2^size matrix.
func NewService(registry *Registry, ev *events.Manager, maxSize int, log zerolog.Logger) *Service {
	return &Service{
		registry: registry,
		events:   ev,
		maxSize:  maxSize,
		log:      log.With().Str("component", "run_service").Logger(),
	}
}

// Create builds and analyzes a matrix state and stores it under a fresh id.
func (s *Service) Create(size, leftSz, rightSz int) (*Run, error) {
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: size %d exceeds the configured maximum %d", domain.ErrInvalidArgument, size, s.maxSize)
	}

	started := time.Now()
	state, err := matrix.New(size, leftSz, rightSz, s.log)
	if err != nil {
		s.events.EmitError("runs", err, map[string]interface{}{
			"size":     size,
			"left_sz":  leftSz,
			"right_sz": rightSz,
		})
		return nil, err
	}
	duration := time.Since(started)

	now := time.Now()
	run := &Run{
		ID:          uuid.NewString(),
		Size:        size,
		LeftSz:      leftSz,
		RightSz:     rightSz,
		CreatedAt:   now,
		state:       state,
		lastUpdated: now,
	}
	s.registry.Add(run)

	s.log.Info().
		Str("run_id", run.ID).
		Dur("duration_ms", duration).
		Msg("Run created")
	s.events.Emit(events.RunCreated, "runs", map[string]interface{}{
		"run_id":   run.ID,
		"size":     size,
		"left_sz":  leftSz,
		"right_sz": rightSz,
	})
	if _, ok := state.Negativity(); !ok {
		s.events.Emit(events.DegenerateTrace, "runs", map[string]interface{}{"run_id": run.ID})
	}
	return run, nil
}

// Get returns the stored run with the given id.
func (s *Service) Get(id string) (*Run, error) {
	run, ok := s.registry.Get(id)
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	return run, nil
}

// List returns all stored runs, newest first.
func (s *Service) List() []*Run {
	return s.registry.List()
}

// Delete removes the run with the given id.
func (s *Service) Delete(id string) error {
	if !s.registry.Delete(id) {
		return fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	s.events.Emit(events.RunDeleted, "runs", map[string]interface{}{"run_id": id})
	return nil
}

// PartialTranspose applies a partial transpose to a stored run and
// re-analyzes it.
func (s *Service) PartialTranspose(id string, k int) (*Run, error) {
	run, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := run.PartialTranspose(k); err != nil {
		s.events.EmitError("runs", err, map[string]interface{}{
			"run_id": id,
			"k":      k,
		})
		return nil, err
	}

	s.events.Emit(events.PartialTransposeApplied, "runs", map[string]interface{}{
		"run_id": id,
		"k":      k,
	})
	if run.Snapshot().Negativity == nil {
		s.events.Emit(events.DegenerateTrace, "runs", map[string]interface{}{"run_id": id})
	}
	return run, nil
}

// EvolvePhoton builds the Fock state |bx, by> and applies Jz the requested
// number of times.
func (s *Service) EvolvePhoton(bx, by, applications int) (*photon.State, error) {
	if applications < 0 {
		return nil, fmt.Errorf("%w: applications must be non-negative, got %d", domain.ErrInvalidArgument, applications)
	}
	state, err := photon.New(bx, by, s.log)
	if err != nil {
		s.events.EmitError("runs", err, map[string]interface{}{
			"bx": bx,
			"by": by,
		})
		return nil, err
	}
	for i := 0; i < applications; i++ {
		state.Jz()
	}
	s.events.Emit(events.PhotonEvolved, "runs", map[string]interface{}{
		"bx":           bx,
		"by":           by,
		"applications": applications,
		"terms":        state.Superposition().Len(),
	})
	return state, nil
}
