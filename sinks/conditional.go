package sinks

import (
	"github.com/samber/lo"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

// Predicate selects events.
type Predicate func(*core.LogEvent) bool

// ConditionalSink forwards events matching a predicate to a target sink.
// A panicking predicate drops the event.
type ConditionalSink struct {
	name      string
	predicate Predicate
	target    core.LogEventSink
}

// NewConditionalSink creates a sink that only forwards events matching the predicate.
func NewConditionalSink(name string, predicate Predicate, target core.LogEventSink) *ConditionalSink {
	if predicate == nil || target == nil {
		panic("sinks: conditional sink needs a predicate and a target")
	}
	if name == "" {
		name = "unnamed"
	}
	return &ConditionalSink{name: name, predicate: predicate, target: target}
}

// Emit forwards the event when the predicate matches.
func (s *ConditionalSink) Emit(event *core.LogEvent) {
	if event != nil && s.matches(event) {
		s.target.Emit(event)
	}
}

func (s *ConditionalSink) matches(event *core.LogEvent) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if selflog.IsEnabled() {
				selflog.Printf("[conditional:%s] predicate panic: %v", s.name, r)
			}
		}
	}()
	return s.predicate(event)
}

// Close closes the target sink.
func (s *ConditionalSink) Close() error {
	return s.target.Close()
}

// LevelPredicate matches events at or above level.
func LevelPredicate(level core.LogEventLevel) Predicate {
	return func(event *core.LogEvent) bool {
		return event.Level >= level
	}
}

// PropertyPredicate matches events carrying the named property.
func PropertyPredicate(name string) Predicate {
	return func(event *core.LogEvent) bool {
		_, ok := event.Properties[name]
		return ok
	}
}

// AndPredicate matches when every predicate matches.
func AndPredicate(predicates ...Predicate) Predicate {
	return func(event *core.LogEvent) bool {
		return lo.EveryBy(predicates, func(p Predicate) bool { return p(event) })
	}
}

// NotPredicate inverts a predicate.
func NotPredicate(predicate Predicate) Predicate {
	return func(event *core.LogEvent) bool {
		return !predicate(event)
	}
}
