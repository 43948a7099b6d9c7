package sinks

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

func TestConditionalSink(t *testing.T) {
	memory := NewMemorySink()
	sink := NewConditionalSink("audit", AndPredicate(
		LevelPredicate(core.WarningLevel),
		PropertyPredicate("Order"),
		NotPredicate(PropertyPredicate("Test")),
	), memory)

	sink.Emit(&core.LogEvent{Level: core.ErrorLevel, Properties: map[string]any{"Order": 1}})
	sink.Emit(&core.LogEvent{Level: core.InformationLevel, Properties: map[string]any{"Order": 1}})
	sink.Emit(&core.LogEvent{Level: core.ErrorLevel, Properties: map[string]any{}})
	sink.Emit(&core.LogEvent{Level: core.ErrorLevel, Properties: map[string]any{"Order": 1, "Test": true}})
	sink.Emit(nil)

	assert.Equal(t, 1, memory.Count())
	assert.NoError(t, sink.Close())
}

func TestConditionalSinkPredicatePanic(t *testing.T) {
	var messages []string
	selflog.EnableFunc(func(msg string) { messages = append(messages, msg) })
	defer selflog.Disable()

	memory := NewMemorySink()
	sink := NewConditionalSink("", func(*core.LogEvent) bool { panic("bad predicate") }, memory)
	sink.Emit(&core.LogEvent{})

	assert.Equal(t, 0, memory.Count())
	if assert.Len(t, messages, 1) {
		assert.Contains(t, messages[0], "[conditional:unnamed] predicate panic: bad predicate")
	}
	assert.Panics(t, func() { NewConditionalSink("x", nil, memory) })
}
