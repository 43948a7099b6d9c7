package attributed

import (
	"reflect"
	"sync"

	"go.uber.org/atomic"

	"github.com/willibrandon/mtlog-attributed/core"
)

// policyFactory stands in for the host value factory: annotated values go
// back through the policy, anything else becomes a scalar.
type policyFactory struct {
	policy *Policy
}

func (f policyFactory) CreatePropertyValue(value any, destructure bool) core.LogEventPropertyValue {
	if destructure && f.policy != nil {
		if pv, ok := f.policy.TryDestructure(value, f); ok {
			return pv
		}
	}
	return core.NewScalarValue(value)
}

// countingScanner wraps ScanType and records how often each type is scanned.
type countingScanner struct {
	total atomic.Int64
	mu    sync.Mutex
	calls map[reflect.Type]int
}

func newCountingScanner() *countingScanner {
	return &countingScanner{calls: make(map[reflect.Type]int)}
}

func (c *countingScanner) scan(t reflect.Type) *TypeMetadata {
	c.total.Inc()
	c.mu.Lock()
	c.calls[t]++
	c.mu.Unlock()
	return ScanType(t)
}

func (c *countingScanner) count(t reflect.Type) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[t]
}

func destructure(t testingT, p *Policy, value any) *core.StructureValue {
	t.Helper()
	pv, ok := p.TryDestructure(value, policyFactory{policy: p})
	if !ok {
		t.Fatalf("%T was not handled", value)
	}
	sv, ok := pv.(*core.StructureValue)
	if !ok {
		t.Fatalf("expected structure for %T, got %T", value, pv)
	}
	return sv
}

type testingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

func property(sv *core.StructureValue, name string) core.LogEventPropertyValue {
	v, ok := sv.Property(name)
	if !ok {
		return nil
	}
	return v.(core.LogEventPropertyValue)
}
