// Package configuration builds loggers from JSON or YAML documents.
//
// A minimal document enabling tag-driven destructuring bound to a runtime
// level switch:
//
//	Mtlog:
//	  MinimumLevel: Information
//	  DynamicLevel: true
//	  WriteTo:
//	    - Name: Console
//	  Destructure:
//	    UsingAttributes: true
//	    Concurrent: true
package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoggerConfiguration represents the logger section of a configuration document.
type LoggerConfiguration struct {
	MinimumLevel string `json:"MinimumLevel,omitempty" yaml:"MinimumLevel,omitempty"`

	// DynamicLevel backs the minimum level with a LoggingLevelSwitch that the
	// caller can change at runtime.
	DynamicLevel bool `json:"DynamicLevel,omitempty" yaml:"DynamicLevel,omitempty"`

	WriteTo     []SinkConfiguration      `json:"WriteTo,omitempty" yaml:"WriteTo,omitempty"`
	Enrich      []string                 `json:"Enrich,omitempty" yaml:"Enrich,omitempty"`
	Filter      []FilterConfiguration    `json:"Filter,omitempty" yaml:"Filter,omitempty"`
	Properties  map[string]any           `json:"Properties,omitempty" yaml:"Properties,omitempty"`
	Destructure DestructureConfiguration `json:"Destructure,omitempty" yaml:"Destructure,omitempty"`
}

// DestructureConfiguration controls how {@Name} properties are captured.
type DestructureConfiguration struct {
	// UsingAttributes enables the tag-driven policy.
	UsingAttributes bool `json:"UsingAttributes,omitempty" yaml:"UsingAttributes,omitempty"`

	// Concurrent selects the policy variant that never waits on another
	// goroutine's compilation.
	Concurrent bool `json:"Concurrent,omitempty" yaml:"Concurrent,omitempty"`

	MaximumDepth int `json:"MaximumDepth,omitempty" yaml:"MaximumDepth,omitempty"`
}

// SinkConfiguration represents a sink configuration.
type SinkConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// FilterConfiguration represents a filter configuration.
type FilterConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	Mtlog LoggerConfiguration `json:"Mtlog" yaml:"Mtlog"`
}

// LoadFromFile loads configuration from a file. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse JSON")
	}
	config.applyDefaults()
	return &config, nil
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Configuration) applyDefaults() {
	if c.Mtlog.MinimumLevel == "" {
		c.Mtlog.MinimumLevel = "Information"
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, err := cast.ToStringE(v); err == nil {
			return s
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args. Strings such as
// "true" and numbers are accepted.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			return b
		}
	}
	return defaultValue
}
