package attributed

import (
	"reflect"

	"github.com/willibrandon/mtlog-attributed/core"
)

// Option configures a Policy.
type Option func(*Policy)

// WithLevelSource binds the level consulted by level-gated fields. The
// source is read on every call, so a *mtlog.LoggingLevelSwitch changes
// field visibility as soon as its level changes.
func WithLevelSource(levels core.LevelSource) Option {
	return func(p *Policy) {
		p.levels = levels
	}
}

// WithMinimumLevel binds a fixed minimum level.
func WithMinimumLevel(level core.LogEventLevel) Option {
	return WithLevelSource(core.FixedLevel(level))
}

// WithScanner replaces the reflection-based scanner.
func WithScanner(scan Scanner) Option {
	return func(p *Policy) {
		if scan != nil {
			p.scan = scan
		}
	}
}

// WithScalarType marks t, and pointers to t, as scalar without a tag. It
// takes precedence over anything the scanner would find on t. A nil t is
// ignored.
func WithScalarType(t reflect.Type, mutable bool) Option {
	return func(p *Policy) {
		if t != nil {
			p.scalarTypes[t] = mutable
		}
	}
}
