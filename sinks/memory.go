package sinks

import (
	"sync"

	"github.com/willibrandon/mtlog-attributed/core"
)

// MemorySink stores log events in memory for testing purposes.
type MemorySink struct {
	events []core.LogEvent
	mu     sync.RWMutex
}

// NewMemorySink creates a new memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{
		events: make([]core.LogEvent, 0),
	}
}

// Emit stores a copy of the event.
func (m *MemorySink) Emit(event *core.LogEvent) {
	eventCopy := *event
	if event.Properties != nil {
		eventCopy.Properties = make(map[string]any, len(event.Properties))
		for k, v := range event.Properties {
			eventCopy.Properties[k] = v
		}
	}

	m.mu.Lock()
	m.events = append(m.events, eventCopy)
	m.mu.Unlock()
}

// Close does nothing for memory sink.
func (m *MemorySink) Close() error {
	return nil
}

// Events returns a copy of all stored events.
func (m *MemorySink) Events() []core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]core.LogEvent, len(m.events))
	copy(result, m.events)
	return result
}

// Clear removes all stored events.
func (m *MemorySink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = m.events[:0]
}

// Count returns the number of stored events.
func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// LastEvent returns the most recent event, or nil if no events.
func (m *MemorySink) LastEvent() *core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.events) == 0 {
		return nil
	}
	event := m.events[len(m.events)-1]
	return &event
}

// LastStructure returns the named property of the most recent event when it
// was captured as a structure.
func (m *MemorySink) LastStructure(name string) (*core.StructureValue, bool) {
	event := m.LastEvent()
	if event == nil {
		return nil, false
	}
	return event.Structure(name)
}
