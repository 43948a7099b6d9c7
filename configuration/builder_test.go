package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/sinks"
)

type order struct {
	ID     int
	Secret string `log:"-"`
	Trace  string `log:",onlyat=Debug"`
}

func buildWithMemory(t *testing.T, doc string) (*Result, *sinks.MemorySink) {
	t.Helper()

	memory := sinks.NewMemorySink()
	builder := NewLoggerBuilder()
	builder.RegisterSink("Memory", func(map[string]any) (core.LogEventSink, error) {
		return memory, nil
	})

	config, err := LoadFromYAML([]byte(doc))
	require.NoError(t, err)
	result, err := builder.Build(config)
	require.NoError(t, err)
	return result, memory
}

func TestBuildWithAttributes(t *testing.T) {
	result, memory := buildWithMemory(t, `
Mtlog:
  MinimumLevel: Information
  DynamicLevel: true
  WriteTo:
    - Name: Memory
  Enrich: [WithMinimumLevel]
  Properties:
    Application: orders
  Destructure:
    UsingAttributes: true
`)
	require.NotNil(t, result.LevelSwitch)

	result.Logger.Information("Placed {@Order}", order{ID: 7, Secret: "s", Trace: "t"})
	sv, ok := memory.LastStructure("Order")
	require.True(t, ok)
	assert.Equal(t, []string{"ID"}, sv.Names())

	event := memory.LastEvent()
	assert.Equal(t, "Information", event.Properties["MinimumLevel"].(*core.ScalarValue).Value)
	assert.Equal(t, "orders", event.Properties["Application"].(*core.ScalarValue).Value)

	result.LevelSwitch.Debug()
	result.Logger.Information("Placed {@Order}", order{ID: 7, Secret: "s", Trace: "t"})
	sv, ok = memory.LastStructure("Order")
	require.True(t, ok)
	assert.Equal(t, []string{"ID", "Trace"}, sv.Names())
}

func TestBuildWithoutAttributes(t *testing.T) {
	result, memory := buildWithMemory(t, `
Mtlog:
  WriteTo:
    - Name: Memory
`)
	assert.Nil(t, result.LevelSwitch)

	result.Logger.Information("Placed {@Order}", order{ID: 7, Secret: "s"})
	sv, ok := memory.LastStructure("Order")
	require.True(t, ok)
	assert.NotContains(t, sv.Names(), "Secret", "default destructurer honors log:\"-\"")
	assert.Contains(t, sv.Names(), "Trace", "level gates need the attribute policy")
}

func TestBuildFilter(t *testing.T) {
	result, memory := buildWithMemory(t, `
Mtlog:
  MinimumLevel: Verbose
  WriteTo:
    - Name: Memory
  Filter:
    - Name: ByLevel
      Args:
        minimumLevel: Warning
`)

	result.Logger.Information("dropped")
	result.Logger.Warning("kept")
	require.Equal(t, 1, memory.Count())
	assert.Equal(t, "kept", memory.LastEvent().MessageTemplate)
}

func TestBuildErrors(t *testing.T) {
	builder := NewLoggerBuilder()

	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"level", "Mtlog:\n  MinimumLevel: Loud\n", "invalid minimum level"},
		{"sink", "Mtlog:\n  WriteTo:\n    - Name: Nowhere\n", "unknown sink type: Nowhere"},
		{"enricher", "Mtlog:\n  Enrich: [WithNothing]\n", "unknown enricher: WithNothing"},
		{"filter", "Mtlog:\n  Filter:\n    - Name: Sometimes\n", "unknown filter: Sometimes"},
		{"console output", "Mtlog:\n  WriteTo:\n    - Name: Console\n      Args:\n        output: printer\n", "unsupported console output"},
		{"filter level", "Mtlog:\n  Filter:\n    - Name: ByLevel\n      Args:\n        minimumLevel: Loud\n", "failed to create filter ByLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadFromYAML([]byte(tt.doc))
			require.NoError(t, err)
			_, err = builder.Build(config)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
