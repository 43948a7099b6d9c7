package attributed

import (
	"github.com/willibrandon/mtlog-attributed/core"
)

// Gate is the inclusion axis of a Disposition.
type Gate uint8

const (
	// GateAlways includes the field unconditionally.
	GateAlways Gate = iota

	// GateOnlyAtOrAbove includes the field while events at Threshold are enabled.
	GateOnlyAtOrAbove

	// GateNotAbove includes the field while the minimum level does not exceed Threshold.
	GateNotAbove

	// GateExcluded never includes the field.
	GateExcluded
)

func (g Gate) String() string {
	switch g {
	case GateAlways:
		return "always"
	case GateOnlyAtOrAbove:
		return "onlyat"
	case GateNotAbove:
		return "notabove"
	case GateExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Encoding is the representation axis of a Disposition.
type Encoding uint8

const (
	// EncodeStructure hands the field value back to the value factory.
	EncodeStructure Encoding = iota

	// EncodeScalar captures the field value as an opaque scalar.
	EncodeScalar
)

// Disposition describes how one field is treated: whether it is included
// (Gate, Threshold) and how it is encoded (Encoding, Mutable). The two axes
// are independent.
type Disposition struct {
	Gate      Gate
	Threshold core.LogEventLevel
	Encoding  Encoding
	Mutable   bool
}

// gateRules lists inclusion markers from strongest to weakest. The first
// rule that matches a field's annotations decides its gate.
var gateRules = []struct {
	gate  Gate
	match func(Annotations) (core.LogEventLevel, bool)
}{
	{GateExcluded, func(a Annotations) (core.LogEventLevel, bool) { return 0, a.Excluded }},
	{GateOnlyAtOrAbove, func(a Annotations) (core.LogEventLevel, bool) { return threshold(a.OnlyAt) }},
	{GateNotAbove, func(a Annotations) (core.LogEventLevel, bool) { return threshold(a.NotAbove) }},
}

func threshold(l *core.LogEventLevel) (core.LogEventLevel, bool) {
	if l == nil {
		return 0, false
	}
	return *l, true
}

// dispositionOf applies marker precedence to a field's annotations.
func dispositionOf(a Annotations) Disposition {
	d := Disposition{Gate: GateAlways, Encoding: EncodeStructure}
	for _, rule := range gateRules {
		if level, ok := rule.match(a); ok {
			d.Gate, d.Threshold = rule.gate, level
			break
		}
	}
	if a.Scalar {
		d.Encoding, d.Mutable = EncodeScalar, a.Mutable
	}
	return d
}

// Visible reports whether a field with this disposition is included given
// the level currently reported by levels. The level is read on every call.
// With no level source, level-gated fields are hidden.
func (d Disposition) Visible(levels core.LevelSource) bool {
	switch d.Gate {
	case GateAlways:
		return true
	case GateExcluded:
		return false
	}
	if levels == nil {
		return false
	}

	switch d.Gate {
	case GateOnlyAtOrAbove:
		return core.IsLevelEnabled(levels, d.Threshold)
	case GateNotAbove:
		return levels.Level() <= d.Threshold
	default:
		return false
	}
}
