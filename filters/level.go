// Package filters provides common core.LogEventFilter implementations.
package filters

import (
	"github.com/willibrandon/mtlog-attributed/core"
)

// LevelFilter filters log events against a level source, which may be a
// level switch shared with the logger.
type LevelFilter struct {
	levels core.LevelSource
}

// NewLevelFilter creates a filter that only allows events at or above the
// level reported by levels.
func NewLevelFilter(levels core.LevelSource) *LevelFilter {
	return &LevelFilter{levels: levels}
}

// IsEnabled returns true if the event level is at or above the minimum level.
func (f *LevelFilter) IsEnabled(event *core.LogEvent) bool {
	return core.IsLevelEnabled(f.levels, event.Level)
}

// MinimumLevelFilter is a convenience function that creates a fixed level filter.
func MinimumLevelFilter(level core.LogEventLevel) core.LogEventFilter {
	return NewLevelFilter(core.FixedLevel(level))
}
