package attributed

import (
	"reflect"

	"go.uber.org/atomic"

	"github.com/willibrandon/mtlog-attributed/core"
	"github.com/willibrandon/mtlog-attributed/selflog"
)

// Policy is a core.DestructuringPolicy driven by struct tags. Each Policy
// owns its decision cache; decisions live as long as the Policy does.
type Policy struct {
	cache       decisionCache
	levels      core.LevelSource
	scan        Scanner
	scalarTypes map[reflect.Type]bool

	compiled atomic.Int64
}

var _ core.DestructuringPolicy = (*Policy)(nil)

// New creates a policy that compiles each type exactly once.
func New(opts ...Option) *Policy {
	return newPolicy(newExclusiveCache(), opts)
}

// NewConcurrent creates a policy whose cache never blocks a lookup on
// another goroutine's compilation, at the cost of occasionally compiling a
// type twice.
func NewConcurrent(opts ...Option) *Policy {
	return newPolicy(newOptimisticCache(), opts)
}

func newPolicy(cache decisionCache, opts []Option) *Policy {
	p := &Policy{
		cache:       cache,
		scan:        ScanType,
		scalarTypes: make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TryDestructure captures value when its type carries annotations. It
// returns false, without side effects beyond caching the decision, for nil
// values, nil pointers and types without annotations.
func (p *Policy) TryDestructure(value any, factory core.LogEventPropertyValueFactory) (core.LogEventPropertyValue, bool) {
	if value == nil {
		return nil, false
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil, false
	}

	plan := p.cache.lookup(v.Type(), p.compile)
	if plan == nil {
		return nil, false
	}
	return plan.Build(value, factory, p.levels), true
}

// PlanFor returns the cached plan for t. found is false when t has not been
// seen yet; a seen but declined type returns a nil plan and true.
func (p *Policy) PlanFor(t reflect.Type) (plan *Plan, found bool) {
	return p.cache.peek(t)
}

// Stats describes the decision cache.
type Stats struct {
	// Compiled counts scanner and classifier runs.
	Compiled int64

	// Plans and Ignored count cached decisions.
	Plans   int64
	Ignored int64
}

// Stats returns a snapshot of the cache counters.
func (p *Policy) Stats() Stats {
	plans, ignored := p.cache.counts()
	return Stats{
		Compiled: p.compiled.Load(),
		Plans:    plans,
		Ignored:  ignored,
	}
}

func (p *Policy) compile(t reflect.Type) *Plan {
	p.compiled.Inc()

	var plan *Plan
	if mutable, ok := p.registeredScalar(t); ok {
		plan = Classify(&TypeMetadata{Type: t, Scalar: &ScalarAnnotation{Mutable: mutable}})
	} else {
		plan = Classify(p.scan(t))
	}

	if selflog.IsEnabled() {
		selflog.Printf("[attributed] compiled %s: %s", t, plan)
	}
	return plan
}

func (p *Policy) registeredScalar(t reflect.Type) (mutable, ok bool) {
	if mutable, ok = p.scalarTypes[t]; ok {
		return mutable, true
	}
	if t.Kind() == reflect.Pointer {
		mutable, ok = p.scalarTypes[t.Elem()]
	}
	return mutable, ok
}
