package mtlog

import (
	"reflect"

	"github.com/willibrandon/mtlog-attributed/attributed"
	"github.com/willibrandon/mtlog-attributed/core"
)

// config holds the configuration for building a logger.
type config struct {
	minimumLevel core.LogEventLevel
	levelSwitch  *LoggingLevelSwitch
	enrichers    []core.LogEventEnricher
	filters      []core.LogEventFilter
	sinks        []core.LogEventSink
	properties   map[string]any
	maxDepth     int
	scalarTypes  []reflect.Type

	// policies are built once the level source is known.
	policies []func(levels core.LevelSource) core.DestructuringPolicy
}

// Option is a functional option for configuring a logger.
type Option func(*config)

// WithMinimumLevel sets the minimum log level.
func WithMinimumLevel(level core.LogEventLevel) Option {
	return func(c *config) {
		c.minimumLevel = level
	}
}

// WithLevelSwitch enables dynamic level control using the specified level switch.
// When a level switch is provided, it takes precedence over the static minimum
// level, both for filtering events and for level-gated fields.
func WithLevelSwitch(levelSwitch *LoggingLevelSwitch) Option {
	return func(c *config) {
		c.levelSwitch = levelSwitch
	}
}

// WithEnricher adds an enricher to the pipeline.
func WithEnricher(enricher core.LogEventEnricher) Option {
	return func(c *config) {
		c.enrichers = append(c.enrichers, enricher)
	}
}

// WithFilter adds a filter to the pipeline.
func WithFilter(filter core.LogEventFilter) Option {
	return func(c *config) {
		c.filters = append(c.filters, filter)
	}
}

// WithSink adds a sink to the pipeline.
func WithSink(sink core.LogEventSink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sink)
	}
}

// WithProperty adds a global property to all log events.
func WithProperty(name string, value any) Option {
	return func(c *config) {
		c.properties[name] = value
	}
}

// WithMaximumDepth limits how deeply nested values are destructured.
func WithMaximumDepth(depth int) Option {
	return func(c *config) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithScalarType makes the default destructurer capture t as a scalar.
func WithScalarType(t reflect.Type) Option {
	return func(c *config) {
		c.scalarTypes = append(c.scalarTypes, t)
	}
}

// WithDestructuringPolicy adds a policy consulted, in registration order,
// before the default destructurer for {@Name} properties.
func WithDestructuringPolicy(policy core.DestructuringPolicy) Option {
	return func(c *config) {
		c.policies = append(c.policies, func(core.LevelSource) core.DestructuringPolicy {
			return policy
		})
	}
}

// WithAttributes adds a tag-driven destructuring policy bound to this
// logger's level switch, or to its fixed minimum level when no switch is
// configured. opts may override the binding.
func WithAttributes(opts ...attributed.Option) Option {
	return withAttributed(attributed.New, opts)
}

// WithAttributesConcurrent is WithAttributes with a cache that never waits
// on another goroutine's first compilation of a type.
func WithAttributesConcurrent(opts ...attributed.Option) Option {
	return withAttributed(attributed.NewConcurrent, opts)
}

func withAttributed(build func(...attributed.Option) *attributed.Policy, opts []attributed.Option) Option {
	return func(c *config) {
		c.policies = append(c.policies, func(levels core.LevelSource) core.DestructuringPolicy {
			all := append([]attributed.Option{attributed.WithLevelSource(levels)}, opts...)
			return build(all...)
		})
	}
}
