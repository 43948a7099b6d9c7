package attributed

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

// decisionCache maps a type to its Plan, or to nil for declined types.
type decisionCache interface {
	// lookup returns the cached decision for t, calling compile to produce
	// it when t has not been seen.
	lookup(t reflect.Type, compile func(reflect.Type) *Plan) *Plan

	// peek returns the cached decision without compiling.
	peek(t reflect.Type) (plan *Plan, found bool)

	// counts returns how many types have a plan and how many were declined.
	counts() (plans, ignored int64)
}

// notApplicable stands in for declined types inside the exclusive cache.
var notApplicable = &Plan{}

// exclusiveCache inserts each decision once. Concurrent first lookups of
// the same type share a single compilation; lookups of other types never
// wait.
type exclusiveCache struct {
	entries sync.Map // reflect.Type -> *Plan
	flight  singleflight.Group

	plans   atomic.Int64
	ignored atomic.Int64
}

func newExclusiveCache() *exclusiveCache {
	return &exclusiveCache{}
}

func (c *exclusiveCache) lookup(t reflect.Type, compile func(reflect.Type) *Plan) *Plan {
	if e, ok := c.entries.Load(t); ok {
		return decided(e)
	}

	e, _, _ := c.flight.Do(flightKey(t), func() (any, error) {
		if e, ok := c.entries.Load(t); ok {
			return e, nil
		}
		plan := compile(t)
		if plan == nil {
			plan = notApplicable
		}
		actual, loaded := c.entries.LoadOrStore(t, plan)
		if !loaded {
			if plan == notApplicable {
				c.ignored.Inc()
			} else {
				c.plans.Inc()
			}
		}
		return actual, nil
	})
	return decided(e)
}

func (c *exclusiveCache) peek(t reflect.Type) (*Plan, bool) {
	e, ok := c.entries.Load(t)
	if !ok {
		return nil, false
	}
	return decided(e), true
}

func (c *exclusiveCache) counts() (int64, int64) {
	return c.plans.Load(), c.ignored.Load()
}

func decided(e any) *Plan {
	if p := e.(*Plan); p != notApplicable {
		return p
	}
	return nil
}

// flightKey identifies t by the address of its runtime type descriptor, which
// is unique per type, unlike its printed name.
func flightKey(t reflect.Type) string {
	return fmt.Sprintf("%p", t)
}

// optimisticCache keeps declined types and plans in separate maps and never
// waits for another goroutine. Racing compilations of the same type are
// allowed; the first insert wins and every caller returns the committed
// entry.
type optimisticCache struct {
	ignored sync.Map // reflect.Type -> struct{}
	plans   sync.Map // reflect.Type -> *Plan

	planCount    atomic.Int64
	ignoredCount atomic.Int64
}

func newOptimisticCache() *optimisticCache {
	return &optimisticCache{}
}

func (c *optimisticCache) lookup(t reflect.Type, compile func(reflect.Type) *Plan) *Plan {
	if plan, ok := c.peek(t); ok {
		return plan
	}

	if plan := compile(t); plan == nil {
		if _, loaded := c.ignored.LoadOrStore(t, struct{}{}); !loaded {
			c.ignoredCount.Inc()
		}
	} else if _, loaded := c.plans.LoadOrStore(t, plan); !loaded {
		c.planCount.Inc()
	}

	// One more pass observes whichever entry was committed first.
	plan, _ := c.peek(t)
	return plan
}

func (c *optimisticCache) peek(t reflect.Type) (*Plan, bool) {
	if _, ok := c.ignored.Load(t); ok {
		return nil, true
	}
	if p, ok := c.plans.Load(t); ok {
		return p.(*Plan), true
	}
	return nil, false
}

func (c *optimisticCache) counts() (int64, int64) {
	return c.planCount.Load(), c.ignoredCount.Load()
}
