package configuration

import (
	"os"

	"github.com/cockroachdb/errors"

	mtlog "github.com/willibrandon/mtlog-attributed"
	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/enrichers"
	"github.com/willibrandon/mtlog-attributed/filters"
	"github.com/willibrandon/mtlog-attributed/sinks"
)

// SinkFactory creates a sink from configuration.
type SinkFactory func(args map[string]any) (core.LogEventSink, error)

// EnricherFactory creates an enricher. levels is the level source of the
// logger being built.
type EnricherFactory func(levels core.LevelSource) (core.LogEventEnricher, error)

// FilterFactory creates a filter from configuration.
type FilterFactory func(args map[string]any) (core.LogEventFilter, error)

// LoggerBuilder builds a logger from configuration.
type LoggerBuilder struct {
	sinkFactories     map[string]SinkFactory
	enricherFactories map[string]EnricherFactory
	filterFactories   map[string]FilterFactory
}

// Result is a built logger and, when DynamicLevel is set, its level switch.
type Result struct {
	Logger      *mtlog.Logger
	LevelSwitch *mtlog.LoggingLevelSwitch
}

// NewLoggerBuilder creates a new logger builder with default factories.
func NewLoggerBuilder() *LoggerBuilder {
	lb := &LoggerBuilder{
		sinkFactories:     make(map[string]SinkFactory),
		enricherFactories: make(map[string]EnricherFactory),
		filterFactories:   make(map[string]FilterFactory),
	}

	lb.RegisterSink("Console", createConsoleSink)

	lb.RegisterEnricher("WithMachineName", func(core.LevelSource) (core.LogEventEnricher, error) {
		return enrichers.NewMachineNameEnricher(), nil
	})
	lb.RegisterEnricher("WithMinimumLevel", func(levels core.LevelSource) (core.LogEventEnricher, error) {
		return enrichers.NewMinimumLevelEnricher(levels), nil
	})

	lb.RegisterFilter("ByLevel", func(args map[string]any) (core.LogEventFilter, error) {
		level, err := core.ParseLevel(GetString(args, "minimumLevel", "Information"))
		if err != nil {
			return nil, err
		}
		return filters.MinimumLevelFilter(level), nil
	})

	return lb
}

// RegisterSink registers a sink factory.
func (lb *LoggerBuilder) RegisterSink(name string, factory SinkFactory) {
	lb.sinkFactories[name] = factory
}

// RegisterEnricher registers an enricher factory.
func (lb *LoggerBuilder) RegisterEnricher(name string, factory EnricherFactory) {
	lb.enricherFactories[name] = factory
}

// RegisterFilter registers a filter factory.
func (lb *LoggerBuilder) RegisterFilter(name string, factory FilterFactory) {
	lb.filterFactories[name] = factory
}

// Build creates a logger from configuration.
func (lb *LoggerBuilder) Build(config *Configuration) (*Result, error) {
	c := config.Mtlog
	result := &Result{}

	level, err := core.ParseLevel(c.MinimumLevel)
	if err != nil {
		return nil, errors.Wrap(err, "invalid minimum level")
	}

	var levels core.LevelSource = core.FixedLevel(level)
	options := []mtlog.Option{mtlog.WithMinimumLevel(level)}
	if c.DynamicLevel {
		result.LevelSwitch = mtlog.NewLoggingLevelSwitch(level)
		levels = result.LevelSwitch
		options = append(options, mtlog.WithLevelSwitch(result.LevelSwitch))
	}

	for _, sc := range c.WriteTo {
		factory, ok := lb.sinkFactories[sc.Name]
		if !ok {
			return nil, errors.Newf("unknown sink type: %s", sc.Name)
		}
		sink, err := factory(sc.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create sink %s", sc.Name)
		}
		options = append(options, mtlog.WithSink(sink))
	}

	for _, name := range c.Enrich {
		factory, ok := lb.enricherFactories[name]
		if !ok {
			return nil, errors.Newf("unknown enricher: %s", name)
		}
		enricher, err := factory(levels)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create enricher %s", name)
		}
		options = append(options, mtlog.WithEnricher(enricher))
	}

	for _, fc := range c.Filter {
		factory, ok := lb.filterFactories[fc.Name]
		if !ok {
			return nil, errors.Newf("unknown filter: %s", fc.Name)
		}
		filter, err := factory(fc.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create filter %s", fc.Name)
		}
		options = append(options, mtlog.WithFilter(filter))
	}

	for name, value := range c.Properties {
		options = append(options, mtlog.WithProperty(name, value))
	}

	d := c.Destructure
	if d.MaximumDepth > 0 {
		options = append(options, mtlog.WithMaximumDepth(d.MaximumDepth))
	}
	if d.UsingAttributes {
		if d.Concurrent {
			options = append(options, mtlog.WithAttributesConcurrent())
		} else {
			options = append(options, mtlog.WithAttributes())
		}
	}

	result.Logger = mtlog.New(options...)
	return result, nil
}

func createConsoleSink(args map[string]any) (core.LogEventSink, error) {
	w := os.Stdout
	switch out := GetString(args, "output", "stdout"); out {
	case "stdout":
	case "stderr":
		w = os.Stderr
	default:
		return nil, errors.Newf("unsupported console output: %s", out)
	}
	if GetBool(args, "showProperties", false) {
		return sinks.NewConsoleSinkWithProperties(w), nil
	}
	return sinks.NewConsoleSinkWithWriter(w), nil
}
