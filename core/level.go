package core

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// LogEventLevel specifies the severity of a log event.
type LogEventLevel int

const (
	// VerboseLevel is the most detailed logging level.
	VerboseLevel LogEventLevel = iota

	// DebugLevel is for debugging information.
	DebugLevel

	// InformationLevel is for informational messages.
	InformationLevel

	// WarningLevel is for warnings.
	WarningLevel

	// ErrorLevel is for errors.
	ErrorLevel

	// FatalLevel is for fatal errors.
	FatalLevel
)

var levelNames = [...]string{"Verbose", "Debug", "Information", "Warning", "Error", "Fatal"}

// String returns the level name, e.g. "Warning".
func (l LogEventLevel) String() string {
	if l < VerboseLevel || int(l) >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[l]
}

// ParseLevel parses a level name. Full names and the three-letter
// abbreviations used by the console sink are accepted, case-insensitively.
func ParseLevel(s string) (LogEventLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "vrb", "trace":
		return VerboseLevel, nil
	case "debug", "dbg":
		return DebugLevel, nil
	case "information", "info", "inf":
		return InformationLevel, nil
	case "warning", "warn", "wrn":
		return WarningLevel, nil
	case "error", "err":
		return ErrorLevel, nil
	case "fatal", "ftl":
		return FatalLevel, nil
	default:
		return InformationLevel, errors.Newf("unknown log level: %q", s)
	}
}

// LevelSource reports the currently active minimum level. Implementations
// may change their answer at any time; callers must not cache it.
type LevelSource interface {
	Level() LogEventLevel
}

// FixedLevel is a LevelSource that never changes.
type FixedLevel LogEventLevel

// Level returns the fixed level.
func (f FixedLevel) Level() LogEventLevel {
	return LogEventLevel(f)
}

// IsLevelEnabled reports whether an event at level would pass the minimum
// level currently reported by source.
func IsLevelEnabled(source LevelSource, level LogEventLevel) bool {
	return level >= source.Level()
}
