package sinks

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

func testEvent(template string, props map[string]any) *core.LogEvent {
	return &core.LogEvent{
		Timestamp:       time.Date(2025, 3, 4, 5, 6, 7, 8_000_000, time.UTC),
		Level:           core.WarningLevel,
		MessageTemplate: template,
		Properties:      props,
	}
}

func TestConsoleSinkRendersTemplate(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSinkWithWriter(&buf)

	sink.Emit(testEvent("Order {Id} for {@Customer}", map[string]any{
		"Id": core.NewScalarValue(7),
		"Customer": &core.StructureValue{
			TypeTag:    "Customer",
			Properties: []core.LogEventProperty{{Name: "Name", Value: core.NewScalarValue("alice")}},
		},
		"Extra": core.NewScalarValue("hidden"),
	}))

	assert.Equal(t, "[2025-03-04 05:06:07.008] [WRN] Order 7 for Customer {Name:alice}\n", buf.String())
}

func TestConsoleSinkWithProperties(t *testing.T) {
	var buf bytes.Buffer
	sink := NewConsoleSinkWithProperties(&buf)

	event := testEvent("Started", map[string]any{
		"B": core.NewScalarValue(2),
		"A": core.NewScalarValue("x"),
	})
	event.Exception = errors.New("boom")
	sink.Emit(event)

	assert.Equal(t, "[2025-03-04 05:06:07.008] [WRN] Started {A=x, B=2}\nboom\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestConsoleSinkReportsWriteErrors(t *testing.T) {
	var messages []string
	selflog.EnableFunc(func(msg string) { messages = append(messages, msg) })
	defer selflog.Disable()

	NewConsoleSinkWithWriter(failingWriter{}).Emit(testEvent("x", nil))

	assert.Len(t, messages, 1)
	assert.True(t, strings.Contains(messages[0], "[console] write failed: disk full"))
}

func TestLevelAbbreviation(t *testing.T) {
	assert.Equal(t, "VRB", levelAbbreviation(core.VerboseLevel))
	assert.Equal(t, "FTL", levelAbbreviation(core.FatalLevel))
	assert.Equal(t, "???", levelAbbreviation(core.LogEventLevel(9)))
}
