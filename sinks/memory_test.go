package sinks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtlog-attributed/core"
)

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	assert.Nil(t, sink.LastEvent())
	_, ok := sink.LastStructure("Order")
	assert.False(t, ok)

	props := map[string]any{"Order": &core.StructureValue{TypeTag: "Order"}}
	sink.Emit(&core.LogEvent{MessageTemplate: "{@Order}", Properties: props})
	props["Order"] = core.NewScalarValue("changed")

	require.Equal(t, 1, sink.Count())
	sv, ok := sink.LastStructure("Order")
	require.True(t, ok, "stored events are isolated from later changes")
	assert.Equal(t, "Order", sv.TypeTag)

	sink.Emit(&core.LogEvent{MessageTemplate: "second"})
	assert.Len(t, sink.Events(), 2)
	assert.Equal(t, "second", sink.LastEvent().MessageTemplate)

	sink.Clear()
	assert.Equal(t, 0, sink.Count())
	assert.NoError(t, sink.Close())
}
