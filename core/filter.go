package core

// LogEventFilter determines which events proceed through the pipeline.
// Filters run after enrichment and before any sink sees the event.
type LogEventFilter interface {
	// IsEnabled returns true if the event should be logged.
	IsEnabled(event *LogEvent) bool
}
