// Package events provides the structured event sink the computation modules
// report through. Events are logged and fanned out to subscribers (the
// websocket stream).
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType represents different event types
type EventType string

const (
	RunCreated              EventType = "RUN_CREATED"
	RunDeleted              EventType = "RUN_DELETED"
	RunPruned               EventType = "RUN_PRUNED"
	PartialTransposeApplied EventType = "PARTIAL_TRANSPOSE_APPLIED"
	PhotonEvolved           EventType = "PHOTON_EVOLVED"
	DegenerateTrace         EventType = "DEGENERATE_TRACE"
	ErrorOccurred           EventType = "ERROR_OCCURRED"
)

// Event represents a system event
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
	Module    string                 `json:"module"`
}

// Manager handles event emission, logging and subscriber fan-out
type Manager struct {
	log  zerolog.Logger
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewManager creates a new event manager
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		log:  log.With().Str("service", "events").Logger(),
		subs: make(map[chan Event]struct{}),
	}
}

// Emit emits an event
func (m *Manager) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
		Module:    module,
	}

	eventJSON, _ := json.Marshal(event)
	m.log.Info().
		Str("event_type", string(eventType)).
		Str("module", module).
		RawJSON("event", eventJSON).
		Msg("Event emitted")

	m.mu.RLock()
	defer m.mu.RUnlock()
	for sub := range m.subs {
		select {
		case sub <- event:
		default:
			// Slow subscriber; drop rather than block emitters.
		}
	}
}

// EmitError emits an error event
func (m *Manager) EmitError(module string, err error, context map[string]interface{}) {
	data := map[string]interface{}{"error": err.Error()}
	for k, v := range context {
		data[k] = v
	}
	m.Emit(ErrorOccurred, module, data)
}

// Subscribe registers a new subscriber channel. The returned cancel func
// removes and closes it.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		if _, ok := m.subs[ch]; ok {
			delete(m.subs, ch)
			close(ch)
		}
		m.mu.Unlock()
	}
	return ch, cancel
}
