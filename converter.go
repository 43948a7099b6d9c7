package mtlog

import (
	"fmt"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/destructure"
)

// maxDepthReached replaces values nested deeper than the configured limit.
const maxDepthReached = "<max depth reached>"

// propertyValueConverter turns template arguments into property values.
// Destructuring policies are consulted in order; the default destructurer
// handles whatever they decline.
type propertyValueConverter struct {
	maxDepth int
	policies []core.DestructuringPolicy
	fallback *destructure.Destructurer
}

func newPropertyValueConverter(maxDepth int, policies []core.DestructuringPolicy, fallback *destructure.Destructurer) *propertyValueConverter {
	return &propertyValueConverter{
		maxDepth: maxDepth,
		policies: policies,
		fallback: fallback,
	}
}

// CreatePropertyValue implements core.LogEventPropertyValueFactory.
func (c *propertyValueConverter) CreatePropertyValue(value any, destructure bool) core.LogEventPropertyValue {
	return c.create(value, destructure, 0)
}

// stringify captures the string form of value.
func (c *propertyValueConverter) stringify(value any) core.LogEventPropertyValue {
	if value == nil {
		return core.NewScalarValue(nil)
	}
	return core.NewScalarValue(fmt.Sprint(value))
}

func (c *propertyValueConverter) create(value any, destructure bool, depth int) core.LogEventPropertyValue {
	if value == nil || !destructure || isPrimitive(value) {
		return core.NewScalarValue(value)
	}
	if depth >= c.maxDepth {
		return core.NewScalarValue(maxDepthReached)
	}

	nested := depthLimiter{converter: c, depth: depth + 1}
	for _, policy := range c.policies {
		if result, ok := policy.TryDestructure(value, nested); ok {
			return result
		}
	}
	return c.fallback.Destructure(value, nested)
}

// depthLimiter is the factory handed to policies and the default
// destructurer; each level of nesting gets its own.
type depthLimiter struct {
	converter *propertyValueConverter
	depth     int
}

func (d depthLimiter) CreatePropertyValue(value any, destructure bool) core.LogEventPropertyValue {
	return d.converter.create(value, destructure, d.depth)
}

func isPrimitive(value any) bool {
	switch value.(type) {
	case bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return true
	}
	return false
}
