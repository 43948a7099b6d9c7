package attributed

import (
	"fmt"
	"reflect"

	"github.com/willibrandon/mtlog-attributed/core"
)

// Build captures value according to the plan. Level-gated fields are
// checked against levels at this moment; fields that are not visible are
// left out entirely. Structure-encoded fields are converted through
// factory, which may re-enter the policy.
func (p *Plan) Build(value any, factory core.LogEventPropertyValueFactory, levels core.LevelSource) core.LogEventPropertyValue {
	if p.Kind == ScalarPlan {
		return makeScalar(value, p.Mutable)
	}

	v := reflect.ValueOf(value)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return core.NewScalarValue(nil)
		}
		v = v.Elem()
	}

	props := make([]core.LogEventProperty, 0, len(p.Fields))
	for i := range p.Fields {
		f := &p.Fields[i]
		if !f.Visible(levels) {
			continue
		}

		raw := f.Read(v)
		var pv core.LogEventPropertyValue
		if f.Encoding == EncodeScalar {
			pv = makeScalar(raw, f.Mutable)
		} else {
			pv = factory.CreatePropertyValue(raw, true)
		}
		props = append(props, core.LogEventProperty{Name: f.Name, Value: pv})
	}

	return &core.StructureValue{TypeTag: p.TypeTag, Properties: props}
}

// makeScalar wraps v. Mutable values are rendered now so later changes to
// the instance do not leak into an event that is still buffered. A panic in
// String is not recovered.
func makeScalar(v any, mutable bool) *core.ScalarValue {
	if !mutable || v == nil {
		return core.NewScalarValue(v)
	}
	if s, ok := stringer(v); ok {
		return core.NewScalarValue(s.String())
	}
	return core.NewScalarValue(fmt.Sprint(v))
}

// stringer finds a String method on v, including one declared on *T when v
// holds a T. A nil pointer never qualifies.
func stringer(v any) (fmt.Stringer, bool) {
	if isNilPointer(v) {
		return nil, false
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer || !reflect.PointerTo(rv.Type()).Implements(stringerType) {
		return nil, false
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface().(fmt.Stringer), true
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
