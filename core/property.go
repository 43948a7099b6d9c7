package core

// LogEventProperty represents a single property of a log event.
type LogEventProperty struct {
	// Name is the property name.
	Name string

	// Value is the property value, usually a LogEventPropertyValue.
	Value any
}

// LogEventPropertyFactory creates log event properties.
type LogEventPropertyFactory interface {
	// CreateProperty creates a new log event property.
	CreateProperty(name string, value any) *LogEventProperty
}

// LogEventPropertyValueFactory converts arbitrary values into property values.
// Destructuring policies call back into it for nested values.
type LogEventPropertyValueFactory interface {
	// CreatePropertyValue converts value. When destructure is false the value
	// is captured as a scalar; otherwise its structure is captured.
	CreatePropertyValue(value any, destructure bool) LogEventPropertyValue
}
