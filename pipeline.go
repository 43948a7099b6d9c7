package mtlog

import (
	"go.uber.org/multierr"

	"github.com/willibrandon/mtlog-attributed/core"
)

// pipeline represents the immutable logging pipeline.
// Once created, the pipeline cannot be modified.
type pipeline struct {
	enrichers []core.LogEventEnricher
	filters   []core.LogEventFilter
	sinks     []core.LogEventSink
}

// newPipeline creates a new pipeline with the given stages.
func newPipeline(enrichers []core.LogEventEnricher, filters []core.LogEventFilter, sinks []core.LogEventSink) *pipeline {
	return &pipeline{
		enrichers: enrichers,
		filters:   filters,
		sinks:     sinks,
	}
}

// process runs a log event through all pipeline stages. Properties have
// already been captured when the event reaches the pipeline.
func (p *pipeline) process(event *core.LogEvent, factory core.LogEventPropertyFactory) {
	// Stage 1: Enrichment - add contextual properties
	for _, enricher := range p.enrichers {
		enricher.Enrich(event, factory)
	}

	// Stage 2: Filtering - determine if event should proceed
	for _, filter := range p.filters {
		if !filter.IsEnabled(event) {
			return
		}
	}

	// Stage 3: Output - send to sinks
	for _, sink := range p.sinks {
		sink.Emit(event)
	}
}

// close closes every sink, combining their errors.
func (p *pipeline) close() error {
	var err error
	for _, sink := range p.sinks {
		err = multierr.Append(err, sink.Close())
	}
	return err
}
