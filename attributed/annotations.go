package attributed

import (
	"strings"

	"github.com/fatih/structtag"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

// TagKey is the struct tag key read by the scanner.
const TagKey = "log"

const (
	optScalar   = "scalar"
	optMutable  = "mutable"
	optIgnore   = "ignore"
	optOnlyAt   = "onlyat"
	optNotAbove = "notabove"
)

// Annotations are the raw markers found on one field or type, before any
// precedence is applied.
type Annotations struct {
	// Name overrides the logged field name when non-empty.
	Name string

	Scalar   bool
	Mutable  bool
	Excluded bool

	// OnlyAt and NotAbove hold level-gate thresholds when present.
	OnlyAt   *core.LogEventLevel
	NotAbove *core.LogEventLevel
}

// Recognized reports whether any marker understood by the classifier is
// present. A rename alone is not a marker.
func (a Annotations) Recognized() bool {
	return a.Scalar || a.Excluded || a.OnlyAt != nil || a.NotAbove != nil
}

// parseAnnotations reads the log key of a raw struct tag. Malformed tags and
// unknown options are reported through selflog and otherwise ignored.
func parseAnnotations(owner, field, tag string) Annotations {
	var a Annotations
	if tag == "" {
		return a
	}

	tags, err := structtag.Parse(tag)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[attributed] malformed tag on %s.%s: %v", owner, field, err)
		}
		return a
	}
	if tags == nil {
		return a
	}
	logTag, err := tags.Get(TagKey)
	if err != nil {
		return a
	}

	if logTag.Name == "-" && len(logTag.Options) == 0 {
		a.Excluded = true
		return a
	}
	a.Name = logTag.Name

	for _, opt := range logTag.Options {
		key, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch strings.ToLower(key) {
		case optScalar:
			a.Scalar = true
		case optMutable:
			a.Mutable = true
		case optIgnore:
			a.Excluded = true
		case optOnlyAt:
			a.OnlyAt = parseThreshold(owner, field, key, value)
		case optNotAbove:
			a.NotAbove = parseThreshold(owner, field, key, value)
		case "":
		default:
			if selflog.IsEnabled() {
				selflog.Printf("[attributed] unknown option %q on %s.%s", key, owner, field)
			}
		}
	}
	return a
}

func parseThreshold(owner, field, key, value string) *core.LogEventLevel {
	level, err := core.ParseLevel(value)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[attributed] dropping %s on %s.%s: %v", key, owner, field, err)
		}
		return nil
	}
	return &level
}
