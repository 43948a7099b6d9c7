// Package mtlog is a message-template logger whose {@Name} properties can be
// destructured by pluggable policies, including the tag-driven policy in
// package attributed.
package mtlog

import (
	"strconv"
	"time"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/destructure"
	"github.com/willibrandon/mtlog-attributed/parser"
)

// Logger is the default implementation of core.Logger.
type Logger struct {
	levels     core.LevelSource
	pipeline   *pipeline
	converter  *propertyValueConverter
	properties map[string]any
}

var _ core.Logger = (*Logger)(nil)

// New creates a logger. The default minimum level is Information.
func New(opts ...Option) *Logger {
	c := &config{
		minimumLevel: core.InformationLevel,
		maxDepth:     10,
		properties:   make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}

	var levels core.LevelSource = core.FixedLevel(c.minimumLevel)
	if c.levelSwitch != nil {
		levels = c.levelSwitch
	}

	policies := make([]core.DestructuringPolicy, 0, len(c.policies))
	for _, build := range c.policies {
		policies = append(policies, build(levels))
	}

	fallback := destructure.NewDestructurer()
	for _, t := range c.scalarTypes {
		fallback.RegisterScalarType(t)
	}

	properties := make(map[string]any, len(c.properties))
	for k, v := range c.properties {
		properties[k] = core.NewScalarValue(v)
	}

	return &Logger{
		levels:     levels,
		pipeline:   newPipeline(c.enrichers, c.filters, c.sinks),
		converter:  newPropertyValueConverter(c.maxDepth, policies, fallback),
		properties: properties,
	}
}

// Verbose writes a verbose-level log event.
func (l *Logger) Verbose(messageTemplate string, args ...any) {
	l.Write(core.VerboseLevel, messageTemplate, args...)
}

// Debug writes a debug-level log event.
func (l *Logger) Debug(messageTemplate string, args ...any) {
	l.Write(core.DebugLevel, messageTemplate, args...)
}

// Information writes an information-level log event.
func (l *Logger) Information(messageTemplate string, args ...any) {
	l.Write(core.InformationLevel, messageTemplate, args...)
}

// Info writes an information-level log event.
func (l *Logger) Info(messageTemplate string, args ...any) {
	l.Write(core.InformationLevel, messageTemplate, args...)
}

// Warning writes a warning-level log event.
func (l *Logger) Warning(messageTemplate string, args ...any) {
	l.Write(core.WarningLevel, messageTemplate, args...)
}

// Warn writes a warning-level log event.
func (l *Logger) Warn(messageTemplate string, args ...any) {
	l.Write(core.WarningLevel, messageTemplate, args...)
}

// Error writes an error-level log event.
func (l *Logger) Error(messageTemplate string, args ...any) {
	l.Write(core.ErrorLevel, messageTemplate, args...)
}

// Fatal writes a fatal-level log event.
func (l *Logger) Fatal(messageTemplate string, args ...any) {
	l.Write(core.FatalLevel, messageTemplate, args...)
}

// IsEnabled returns true if events at the specified level would be processed.
func (l *Logger) IsEnabled(level core.LogEventLevel) bool {
	return core.IsLevelEnabled(l.levels, level)
}

// Write writes a log event at the specified level.
func (l *Logger) Write(level core.LogEventLevel, messageTemplate string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}

	tmpl := parser.ParseCached(messageTemplate)
	event := &core.LogEvent{
		Timestamp:       time.Now(),
		Level:           level,
		MessageTemplate: messageTemplate,
		Properties:      make(map[string]any, len(args)+len(l.properties)),
	}
	if len(args) > 0 {
		if err, ok := args[len(args)-1].(error); ok {
			event.Exception = err
		}
	}

	l.bindProperties(tmpl, args, event.Properties)
	for k, v := range l.properties {
		if _, exists := event.Properties[k]; !exists {
			event.Properties[k] = v
		}
	}

	l.pipeline.process(event, propertyFactory{})
}

// bindProperties matches arguments to template properties positionally.
// Arguments without a placeholder are kept under their index.
func (l *Logger) bindProperties(tmpl *parser.MessageTemplate, args []any, properties map[string]any) {
	tokens := tmpl.PropertyTokens()
	for i, token := range tokens {
		if i >= len(args) {
			break
		}
		properties[token.PropertyName] = l.capture(args[i], token.Capturing)
	}
	for i := len(tokens); i < len(args); i++ {
		properties[strconv.Itoa(i)] = l.converter.CreatePropertyValue(args[i], false)
	}
}

func (l *Logger) capture(value any, hint parser.CapturingHint) core.LogEventPropertyValue {
	switch hint {
	case parser.Destructure:
		return l.converter.CreatePropertyValue(value, true)
	case parser.Stringify:
		return l.converter.stringify(value)
	default:
		return l.converter.CreatePropertyValue(value, false)
	}
}

// ForContext creates a logger that adds the specified property to every
// event. A name starting with '@' destructures the value.
func (l *Logger) ForContext(propertyName string, value any) core.Logger {
	hint := parser.Default
	if len(propertyName) > 1 && propertyName[0] == '@' {
		hint, propertyName = parser.Destructure, propertyName[1:]
	}

	properties := make(map[string]any, len(l.properties)+1)
	for k, v := range l.properties {
		properties[k] = v
	}
	properties[propertyName] = l.capture(value, hint)

	return &Logger{
		levels:     l.levels,
		pipeline:   l.pipeline,
		converter:  l.converter,
		properties: properties,
	}
}

// Close closes all sinks.
func (l *Logger) Close() error {
	return l.pipeline.close()
}

// propertyFactory is a simple implementation of LogEventPropertyFactory.
type propertyFactory struct{}

// CreateProperty creates a new log event property.
func (propertyFactory) CreateProperty(name string, value any) *core.LogEventProperty {
	return &core.LogEventProperty{
		Name:  name,
		Value: value,
	}
}
