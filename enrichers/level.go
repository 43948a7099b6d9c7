package enrichers

import (
	"github.com/willibrandon/mtlog-attributed/core"
)

// MinimumLevelEnricher records the minimum level that was active when the
// event was written. Level-gated fields in destructured properties were
// included or left out based on this same level.
type MinimumLevelEnricher struct {
	levels       core.LevelSource
	propertyName string
}

// NewMinimumLevelEnricher creates an enricher that reads levels on every event.
func NewMinimumLevelEnricher(levels core.LevelSource) *MinimumLevelEnricher {
	return &MinimumLevelEnricher{levels: levels, propertyName: "MinimumLevel"}
}

// Enrich adds the current minimum level name.
func (e *MinimumLevelEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(e.propertyName, core.NewScalarValue(e.levels.Level().String())))
}
