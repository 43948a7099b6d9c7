package filters

import (
	"github.com/willibrandon/mtlog-attributed/core"
)

// PredicateFilter filters log events based on a custom predicate function.
type PredicateFilter struct {
	predicate func(*core.LogEvent) bool
}

// NewPredicateFilter creates a filter that uses a custom predicate function.
func NewPredicateFilter(predicate func(*core.LogEvent) bool) *PredicateFilter {
	return &PredicateFilter{predicate: predicate}
}

// IsEnabled returns the result of the predicate function.
func (f *PredicateFilter) IsEnabled(event *core.LogEvent) bool {
	if f.predicate == nil {
		return true
	}
	return f.predicate(event)
}

// ByExcluding creates a filter that excludes events matching the predicate.
func ByExcluding(predicate func(*core.LogEvent) bool) core.LogEventFilter {
	return NewPredicateFilter(func(event *core.LogEvent) bool {
		return !predicate(event)
	})
}

// ByIncluding creates a filter that includes only events matching the predicate.
func ByIncluding(predicate func(*core.LogEvent) bool) core.LogEventFilter {
	return NewPredicateFilter(predicate)
}

// HasStructureField matches events whose property was captured as a
// structure containing field.
func HasStructureField(property, field string) func(*core.LogEvent) bool {
	return func(event *core.LogEvent) bool {
		sv, ok := event.Structure(property)
		if !ok {
			return false
		}
		_, ok = sv.Property(field)
		return ok
	}
}
